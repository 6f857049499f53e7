package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const rootMessage = "La Congolaise API"

func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": rootMessage})
}

// RegisterRoutes mounts every API route on the given group, normally /api.
func RegisterRoutes(api *gin.RouterGroup, reviews *ReviewHandler, status *StatusHandler) {
	api.GET("/", Root)

	reviewRoutes := api.Group("/reviews")
	{
		reviewRoutes.POST("", reviews.CreateReview)
		reviewRoutes.GET("", reviews.GetReviews)
		reviewRoutes.GET("/stats", reviews.GetReviewStats)
	}

	statusRoutes := api.Group("/status")
	{
		statusRoutes.POST("", status.CreateStatusCheck)
		statusRoutes.GET("", status.GetStatusChecks)
	}
}
