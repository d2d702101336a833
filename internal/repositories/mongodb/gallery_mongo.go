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

type GalleryMongo struct {
	collection *mongo.Collection
}

func NewGalleryMongo(db *mongo.Database) repositories.GalleryRepository {
	return &GalleryMongo{collection: db.Collection(CollectionGallery)}
}

func (g *GalleryMongo) Create(ctx context.Context, image *models.GalleryImage) error {
	if image.ID.IsZero() {
		image.ID = primitive.NewObjectID()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now().UTC()
	}

	if _, err := g.collection.InsertOne(ctx, image); err != nil {
		return fmt.Errorf("failed to create gallery image: %w", err)
	}
	return nil
}

func (g *GalleryMongo) GetByID(ctx context.Context, id string) (*models.GalleryImage, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var image models.GalleryImage
	if err := g.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&image); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get gallery image: %w", err)
	}
	return &image, nil
}

func (g *GalleryMongo) List(ctx context.Context, filters repositories.ContentFilters) ([]*models.GalleryImage, error) {
	cursor, err := g.collection.Find(ctx, contentFilter(filters, "uploadedBy"), contentFindOptions(filters))
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery images: %w", err)
	}
	defer cursor.Close(ctx)

	var images []*models.GalleryImage
	if err := cursor.All(ctx, &images); err != nil {
		return nil, fmt.Errorf("failed to decode gallery images: %w", err)
	}
	return images, nil
}

func (g *GalleryMongo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, g.collection, id)
}
