package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/class-union/union-server/internal/models"
	"github.com/class-union/union-server/internal/repositories"
)

type NotificationMongo struct {
	collection *mongo.Collection
}

func NewNotificationMongo(db *mongo.Database) repositories.NotificationRepository {
	return &NotificationMongo{collection: db.Collection(CollectionNotifications)}
}

func (n *NotificationMongo) Create(ctx context.Context, notification *models.Notification) error {
	prepare(notification)

	if _, err := n.collection.InsertOne(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// CreateMany inserts all records in a single multi-document write, the
// broadcast path. One insert per target user, all issued together.
func (n *NotificationMongo) CreateMany(ctx context.Context, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	docs := make([]interface{}, len(notifications))
	for i, notification := range notifications {
		prepare(notification)
		docs[i] = notification
	}

	if _, err := n.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}
	return nil
}

// ListByUser returns all of a user's notifications, newest first. The sort is
// applied here at read time; the store itself guarantees no order.
func (n *NotificationMongo) ListByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	return n.list(ctx, bson.M{"userId": userID})
}

func (n *NotificationMongo) ListUnreadByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	return n.list(ctx, bson.M{"userId": userID, "read": false})
}

func (n *NotificationMongo) list(ctx context.Context, filter bson.M) ([]*models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := n.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []*models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

func (n *NotificationMongo) MarkRead(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	result, err := n.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func prepare(notification *models.Notification) {
	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	if notification.Type == "" {
		notification.Type = models.NotificationInfo
	}
}
