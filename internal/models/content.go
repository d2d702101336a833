package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogPost is a document in the "blogPosts" collection.
type BlogPost struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	AuthorID  string             `json:"author_id" bson:"authorId"`
	ImageURL  string             `json:"image_url,omitempty" bson:"imageUrl,omitempty"`
	FileID    string             `json:"file_id,omitempty" bson:"fileId,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"`
}

// Event is a document in the "events" collection.
type Event struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Date        time.Time          `json:"date" bson:"date"`
	Location    string             `json:"location,omitempty" bson:"location,omitempty"`
	CreatedBy   string             `json:"created_by" bson:"createdBy"`
	ImageURL    string             `json:"image_url,omitempty" bson:"imageUrl,omitempty"`
	FileID      string             `json:"file_id,omitempty" bson:"fileId,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"createdAt"`
}

// GalleryImage is a document in the "gallery" collection. URL always points at
// the file relay (/api/files/{fileId}).
type GalleryImage struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	URL        string             `json:"url" bson:"url"`
	FileID     string             `json:"file_id" bson:"fileId"`
	Caption    string             `json:"caption,omitempty" bson:"caption,omitempty"`
	UploadedBy string             `json:"uploaded_by" bson:"uploadedBy"`
	CreatedAt  time.Time          `json:"created_at" bson:"createdAt"`
}

// FileRef returns the blob id referenced by the record, if any. Deleting a
// record must also delete this blob (two sequential calls, not a transaction).
func (p *BlogPost) FileRef() string     { return p.FileID }
func (e *Event) FileRef() string        { return e.FileID }
func (g *GalleryImage) FileRef() string { return g.FileID }
