package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/class-union/union-server/internal/cache"
	"github.com/class-union/union-server/internal/models"
	"github.com/class-union/union-server/internal/repositories"
)

// UserMongo stores profiles in the "users" collection with a redis cache in
// front, since the auth middleware resolves the profile on every request.
type UserMongo struct {
	collection *mongo.Collection
	cache      *cache.CacheHelper
}

func NewUserMongo(db *mongo.Database, redisClient *redis.Client) repositories.UserRepository {
	return &UserMongo{
		collection: db.Collection(CollectionUsers),
		cache:      cache.NewCacheHelper(redisClient, cache.UserCacheConfig.Prefix),
	}
}

// EnsureProfile creates the profile document on first sign-in. The upsert
// only sets fields on insert, so an existing profile (including a role
// promoted out-of-band) is returned untouched, and concurrent first sign-ins
// cannot create duplicates.
func (u *UserMongo) EnsureProfile(ctx context.Context, user *models.User) (*models.User, error) {
	onInsert := bson.M{
		"email":       user.Email,
		"displayName": user.DisplayName,
		"role":        user.Role,
		"createdAt":   time.Now().UTC(),
	}
	if user.AvatarURL != nil {
		onInsert["avatarUrl"] = *user.AvatarURL
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	result := u.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$setOnInsert": onInsert},
		opts,
	)

	var stored models.User
	if err := result.Decode(&stored); err != nil {
		return nil, fmt.Errorf("failed to ensure profile: %w", err)
	}

	// Cache failures never fail the request.
	_ = u.cache.Set(ctx, stored.ID, &stored, cache.UserCacheConfig.TTL)

	return &stored, nil
}

func (u *UserMongo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var cached models.User
	if err := u.cache.Get(ctx, id, &cached); err == nil {
		return &cached, nil
	}

	var user models.User
	err := u.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	_ = u.cache.Set(ctx, id, &user, cache.UserCacheConfig.TTL)

	return &user, nil
}

func (u *UserMongo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	filter := bson.M{}
	if filters.Role != nil {
		filter["role"] = *filters.Role
	}
	if filters.Query != "" {
		filter["$or"] = bson.A{
			bson.M{"displayName": bson.M{"$regex": filters.Query, "$options": "i"}},
			bson.M{"email": bson.M{"$regex": filters.Query, "$options": "i"}},
		}
	}

	total, err := u.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if filters.Limit > 0 {
		opts.SetLimit(int64(filters.Limit)).SetSkip(int64(filters.Offset))
	}

	cursor, err := u.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, total, nil
}

// ListIDs returns every profile id, used for notification broadcasts.
func (u *UserMongo) ListIDs(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := u.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list user ids: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user id: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user ids: %w", err)
	}

	return ids, nil
}
