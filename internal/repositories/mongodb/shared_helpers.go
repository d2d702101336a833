package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/class-union/union-server/internal/repositories"
)

// parseObjectID maps a hex id to an ObjectID, translating bad input to the
// repository-level sentinel.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repositories.ErrInvalidID
	}
	return oid, nil
}

// contentFindOptions builds find options for content listings: createdAt
// descending unless the filter asks for ascending, plus pagination.
func contentFindOptions(filters repositories.ContentFilters) *options.FindOptions {
	order := -1
	if filters.SortOrder == "asc" {
		order = 1
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: order}})
	if filters.Limit > 0 {
		opts.SetLimit(int64(filters.Limit)).SetSkip(int64(filters.Offset))
	}
	return opts
}

// contentFilter builds the find filter shared by the content collections.
func contentFilter(filters repositories.ContentFilters, authorField string) bson.M {
	filter := bson.M{}
	if filters.AuthorID != nil {
		filter[authorField] = *filters.AuthorID
	}

	created := bson.M{}
	if filters.DateFrom != nil {
		created["$gte"] = *filters.DateFrom
	}
	if filters.DateTo != nil {
		created["$lte"] = *filters.DateTo
	}
	if len(created) > 0 {
		filter["createdAt"] = created
	}

	return filter
}

// deleteByID removes one document, mapping zero deletions to ErrNotFound.
func deleteByID(ctx context.Context, collection *mongo.Collection, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	result, err := collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
