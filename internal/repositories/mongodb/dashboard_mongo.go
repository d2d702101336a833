package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/class-union/union-server/internal/repositories"
)

// DashboardMongo answers the admin dashboard's aggregate counts.
type DashboardMongo struct {
	db *mongo.Database
}

func NewDashboardMongo(db *mongo.Database) repositories.DashboardRepository {
	return &DashboardMongo{db: db}
}

func (d *DashboardMongo) CountUsers(ctx context.Context) (int64, error) {
	return d.count(ctx, CollectionUsers)
}

func (d *DashboardMongo) CountPosts(ctx context.Context) (int64, error) {
	return d.count(ctx, CollectionBlogPosts)
}

func (d *DashboardMongo) CountEvents(ctx context.Context) (int64, error) {
	return d.count(ctx, CollectionEvents)
}

func (d *DashboardMongo) CountGalleryImages(ctx context.Context) (int64, error) {
	return d.count(ctx, CollectionGallery)
}

func (d *DashboardMongo) CountNotifications(ctx context.Context) (int64, error) {
	return d.count(ctx, CollectionNotifications)
}

func (d *DashboardMongo) count(ctx context.Context, collection string) (int64, error) {
	count, err := d.db.Collection(collection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", collection, err)
	}
	return count, nil
}
