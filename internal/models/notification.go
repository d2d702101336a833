package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationInfo         NotificationType = "info"
	NotificationWarning      NotificationType = "warning"
	NotificationSuccess      NotificationType = "success"
	NotificationAnnouncement NotificationType = "announcement"
)

// Notification is a document in the "notifications" collection. Records are
// mutated only to flip Read to true and are never deleted.
type Notification struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"userId"`
	Title     string             `json:"title" bson:"title"`
	Message   string             `json:"message" bson:"message"`
	Type      NotificationType   `json:"type" bson:"type"`
	Read      bool               `json:"read" bson:"read"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"`
}
