package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"lacongolaise/review-service/internal/models"
)

type ReviewService interface {
	CreateReview(ctx context.Context, input models.ReviewCreate) (*models.Review, error)
	ListReviews(ctx context.Context, order models.SortOrder) ([]models.Review, error)
	GetReviewStats(ctx context.Context) (*models.ReviewStats, error)
}

type ReviewHandler struct {
	service ReviewService
}

func NewReviewHandler(service ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// CreateReview stores a new review. Responds 200, not 201, to stay compatible
// with existing clients.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var input models.ReviewCreate
	if err := bindJSON(c, &input); err != nil {
		handleServiceError(c, err)
		return
	}

	review, err := h.service.CreateReview(c.Request.Context(), input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// GetReviews lists reviews ordered by ?sort=, newest first when omitted.
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	order := models.DefaultSortOrder
	if raw, ok := c.GetQuery("sort"); ok {
		parsed, err := models.ParseSortOrder(raw)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		order = parsed
	}

	reviews, err := h.service.ListReviews(c.Request.Context(), order)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) GetReviewStats(c *gin.Context) {
	stats, err := h.service.GetReviewStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
