package models

import (
	"errors"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"lacongolaise/review-service/internal/utils/validator"
)

// Review is a customer review as stored and as returned to clients.
// The Mongo _id is never decoded into it.
type Review struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   *string   `json:"comment" bson:"comment"`
	CreatedAt Timestamp `json:"created_at" bson:"created_at"`
}

// ReviewCreate is the inbound payload for a new review.
type ReviewCreate struct {
	Name    string  `json:"name" validate:"required,min=1,max=100"`
	Rating  *int    `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=500"`

	decodeErrors []FieldError
}

// Validate reports decoding problems and constraint violations together,
// at most one per field.
func (rc ReviewCreate) Validate() error {
	fields := append([]FieldError{}, rc.decodeErrors...)

	var vErr *ValidationError
	if err := validateBody(rc); errors.As(err, &vErr) {
		for _, f := range vErr.Fields {
			if !hasLoc(fields, f.Loc) {
				fields = append(fields, f)
			}
		}
	} else if err != nil {
		return err
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func hasLoc(fields []FieldError, loc []string) bool {
	for _, f := range fields {
		if slices.Equal(f.Loc, loc) {
			return true
		}
	}
	return false
}

// NewReview builds a review from a validated payload.
func NewReview(rc ReviewCreate, now time.Time) Review {
	return Review{
		ID:        uuid.NewString(),
		Name:      rc.Name,
		Rating:    *rc.Rating,
		Comment:   rc.Comment,
		CreatedAt: NewTimestamp(now),
	}
}

// ReviewStats is the aggregate over all reviews.
type ReviewStats struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}

// NewReviewStats rounds the average to one decimal place. Exact ties round
// to even, so 3.25 becomes 3.2 and 3.75 becomes 3.8.
func NewReviewStats(average float64, total int64) ReviewStats {
	if total == 0 {
		return ReviewStats{}
	}
	return ReviewStats{
		AverageRating: roundToTenth(average),
		TotalReviews:  total,
	}
}

// roundToTenth formats the exact binary value with one decimal, which applies
// round-half-to-even on exact ties.
func roundToTenth(v float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}

func validateBody(payload interface{}) error {
	err := validator.GetValidator().Struct(payload)
	if err == nil {
		return nil
	}

	violations := validator.ParseErrors(err)
	fields := make([]FieldError, 0, len(violations))
	for _, v := range violations {
		loc := []string{"body"}
		if v.Field != "" {
			loc = append(loc, v.Field)
		}
		fields = append(fields, FieldError{Loc: loc, Msg: v.Message, Type: v.Type})
	}

	return &ValidationError{Fields: fields}
}
