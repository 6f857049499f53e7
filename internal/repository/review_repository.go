package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lacongolaise/review-service/internal/models"
)

const (
	reviewsCollection = "reviews"

	// ListLimit caps every list query. It is not a page size.
	ListLimit = 1000
)

// hideInternalID keeps the Mongo _id out of every read.
var hideInternalID = bson.D{{Key: "_id", Value: 0}}

type ReviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection(reviewsCollection)}
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if _, err := r.collection.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) List(ctx context.Context, order models.SortOrder) ([]models.Review, error) {
	opts := options.Find().
		SetProjection(hideInternalID).
		SetSort(order.Keys()).
		SetLimit(ListLimit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := make([]models.Review, 0)
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}

	return reviews, nil
}

// Stats computes the mean rating and review count in a single $group stage.
// An empty collection yields no group document, reported as zeros.
func (r *ReviewRepository) Stats(ctx context.Context) (float64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"average_rating": bson.M{"$avg": "$rating"},
			"total_reviews":  bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("aggregate review stats: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Average float64 `bson:"average_rating"`
		Total   int64   `bson:"total_reviews"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, 0, fmt.Errorf("decode review stats: %w", err)
	}

	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].Average, results[0].Total, nil
}
