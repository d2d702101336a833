package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/class-union/union-server/internal/models"
	"github.com/class-union/union-server/internal/repositories"
)

type PostMongo struct {
	collection *mongo.Collection
}

func NewPostMongo(db *mongo.Database) repositories.PostRepository {
	return &PostMongo{collection: db.Collection(CollectionBlogPosts)}
}

func (p *PostMongo) Create(ctx context.Context, post *models.BlogPost) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	if _, err := p.collection.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to create blog post: %w", err)
	}
	return nil
}

func (p *PostMongo) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var post models.BlogPost
	if err := p.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}
	return &post, nil
}

func (p *PostMongo) List(ctx context.Context, filters repositories.ContentFilters) ([]*models.BlogPost, error) {
	cursor, err := p.collection.Find(ctx, contentFilter(filters, "authorId"), contentFindOptions(filters))
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []*models.BlogPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode blog posts: %w", err)
	}
	return posts, nil
}

func (p *PostMongo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, p.collection, id)
}
