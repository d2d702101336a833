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

type EventMongo struct {
	collection *mongo.Collection
}

func NewEventMongo(db *mongo.Database) repositories.EventRepository {
	return &EventMongo{collection: db.Collection(CollectionEvents)}
}

func (e *EventMongo) Create(ctx context.Context, event *models.Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	if _, err := e.collection.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (e *EventMongo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var event models.Event
	if err := e.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

func (e *EventMongo) List(ctx context.Context, filters repositories.ContentFilters) ([]*models.Event, error) {
	cursor, err := e.collection.Find(ctx, contentFilter(filters, "createdBy"), contentFindOptions(filters))
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

func (e *EventMongo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, e.collection, id)
}
