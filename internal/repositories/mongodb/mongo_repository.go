// Package mongodb implements the repository interfaces on MongoDB: one
// collection per record type plus a GridFS bucket for blobs.
package mongodb

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/class-union/union-server/internal/repositories"
	"github.com/class-union/union-server/internal/repositories/redischat"
)

// Collection names. These are the external contract with the document store;
// the schemas are owned by the models package.
const (
	CollectionUsers         = "users"
	CollectionBlogPosts     = "blogPosts"
	CollectionEvents        = "events"
	CollectionGallery       = "gallery"
	CollectionNotifications = "notifications"
)

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	DB           *mongo.Database
	RedisClient  *redis.Client
	GridFSBucket string
}

// MongoRepository implements the main Repository interface
type MongoRepository struct {
	db          *mongo.Database
	redisClient *redis.Client

	// Repository instances
	user         repositories.UserRepository
	post         repositories.PostRepository
	event        repositories.EventRepository
	gallery      repositories.GalleryRepository
	notification repositories.NotificationRepository
	dashboard    repositories.DashboardRepository
	file         repositories.FileRepository
	chat         repositories.ChatRepository
}

// NewMongoRepository creates a repository backed by the given database. The
// redis client is optional: it backs the profile cache and the chat store.
func NewMongoRepository(config RepositoryConfig) (repositories.Repository, error) {
	repo := &MongoRepository{
		db:          config.DB,
		redisClient: config.RedisClient,
	}

	file, err := NewFileGridFS(config.DB, config.GridFSBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gridfs bucket: %w", err)
	}

	repo.user = NewUserMongo(config.DB, config.RedisClient)
	repo.post = NewPostMongo(config.DB)
	repo.event = NewEventMongo(config.DB)
	repo.gallery = NewGalleryMongo(config.DB)
	repo.notification = NewNotificationMongo(config.DB)
	repo.dashboard = NewDashboardMongo(config.DB)
	repo.file = file
	repo.chat = redischat.NewChatRedis(config.RedisClient)

	return repo, nil
}

func (r *MongoRepository) User() repositories.UserRepository                 { return r.user }
func (r *MongoRepository) Post() repositories.PostRepository                 { return r.post }
func (r *MongoRepository) Event() repositories.EventRepository               { return r.event }
func (r *MongoRepository) Gallery() repositories.GalleryRepository           { return r.gallery }
func (r *MongoRepository) Notification() repositories.NotificationRepository { return r.notification }
func (r *MongoRepository) Dashboard() repositories.DashboardRepository       { return r.dashboard }
func (r *MongoRepository) File() repositories.FileRepository                 { return r.file }
func (r *MongoRepository) Chat() repositories.ChatRepository                 { return r.chat }

// Ping verifies the database connection.
func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}

// Close disconnects the underlying client.
func (r *MongoRepository) Close() error {
	return r.db.Client().Disconnect(context.Background())
}

// ===== MANAGER =====

type repositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

// NewRepositoryManager creates a lifecycle manager for the Mongo-backed
// repository set.
func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &repositoryManager{config: config}
}

func (m *repositoryManager) Initialize() error {
	repo, err := NewMongoRepository(m.config)
	if err != nil {
		return err
	}
	m.repo = repo
	return nil
}

func (m *repositoryManager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *repositoryManager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repository manager not initialized")
	}
	return m.repo.Ping(ctx)
}

func (m *repositoryManager) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}
