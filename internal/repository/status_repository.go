package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lacongolaise/review-service/internal/models"
)

const statusChecksCollection = "status_checks"

type StatusRepository struct {
	collection *mongo.Collection
}

func NewStatusRepository(db *mongo.Database) *StatusRepository {
	return &StatusRepository{collection: db.Collection(statusChecksCollection)}
}

func (r *StatusRepository) Create(ctx context.Context, check *models.StatusCheck) error {
	if _, err := r.collection.InsertOne(ctx, check); err != nil {
		return fmt.Errorf("insert status check: %w", err)
	}
	return nil
}

// List returns status checks in natural storage order.
func (r *StatusRepository) List(ctx context.Context) ([]models.StatusCheck, error) {
	opts := options.Find().
		SetProjection(hideInternalID).
		SetLimit(ListLimit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find status checks: %w", err)
	}
	defer cursor.Close(ctx)

	checks := make([]models.StatusCheck, 0)
	if err = cursor.All(ctx, &checks); err != nil {
		return nil, fmt.Errorf("decode status checks: %w", err)
	}

	return checks, nil
}
