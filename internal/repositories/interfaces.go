package repositories

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/class-union/union-server/internal/models"
)

// ===== SHARED ERRORS =====

var (
	// ErrNotFound is returned when a record or blob does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID is returned when an identifier is not a valid ObjectID.
	ErrInvalidID = errors.New("invalid identifier")
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role   *models.UserRole `json:"role"`
	Query  string           `json:"q"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type ContentFilters struct {
	AuthorID  *string    `json:"author_id"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	SortOrder string     `json:"sort_order"` // "asc", "desc"; default "desc" by createdAt
}

// ===== FILE STORE TYPES =====

// FileInfo describes a stored blob.
type FileInfo struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	ContentType  string    `json:"content_type"`
	Length       int64     `json:"length"`
	OriginalName string    `json:"original_name"`
	Folder       string    `json:"folder"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// ===== REPOSITORY INTERFACES =====

type UserRepository interface {
	// EnsureProfile creates the profile on first sign-in (set-on-insert
	// upsert) and returns the stored document either way, so a repeat
	// sign-in never duplicates and never overwrites an out-of-band role
	// change.
	EnsureProfile(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	ListIDs(ctx context.Context) ([]string, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.BlogPost) error
	GetByID(ctx context.Context, id string) (*models.BlogPost, error)
	List(ctx context.Context, filters ContentFilters) ([]*models.BlogPost, error)
	Delete(ctx context.Context, id string) error
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context, filters ContentFilters) ([]*models.Event, error)
	Delete(ctx context.Context, id string) error
}

type GalleryRepository interface {
	Create(ctx context.Context, image *models.GalleryImage) error
	GetByID(ctx context.Context, id string) (*models.GalleryImage, error)
	List(ctx context.Context, filters ContentFilters) ([]*models.GalleryImage, error)
	Delete(ctx context.Context, id string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	// CreateMany inserts all records in one multi-document write (broadcast).
	CreateMany(ctx context.Context, notifications []*models.Notification) error
	ListByUser(ctx context.Context, userID string) ([]*models.Notification, error)
	ListUnreadByUser(ctx context.Context, userID string) ([]*models.Notification, error)
	// MarkRead flips a single record to read=true.
	MarkRead(ctx context.Context, id string) error
}

type DashboardRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountPosts(ctx context.Context) (int64, error)
	CountEvents(ctx context.Context) (int64, error)
	CountGalleryImages(ctx context.Context) (int64, error)
	CountNotifications(ctx context.Context) (int64, error)
}

type FileRepository interface {
	// Store writes the blob and returns its generated id.
	Store(ctx context.Context, filename, contentType, originalName, folder string, content io.Reader) (string, error)
	// Open returns blob info plus a reader for the content. The caller closes
	// the reader.
	Open(ctx context.Context, id string) (*FileInfo, io.ReadCloser, error)
	// Delete removes the blob. Deleting a missing id returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

type ChatRepository interface {
	// Append stores the message in the room history and publishes it to live
	// subscribers.
	Append(ctx context.Context, msg *models.Message) error
	// History returns up to limit messages ordered by timestamp ascending.
	// Ordering is applied at read time.
	History(ctx context.Context, roomID string, limit int64) ([]*models.Message, error)
	// Subscribe delivers messages for a room until ctx is cancelled. The
	// returned cancel func tears the subscription down.
	Subscribe(ctx context.Context, roomID string) (<-chan *models.Message, func(), error)
}
