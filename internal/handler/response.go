package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lacongolaise/review-service/internal/models"
)

// bindJSON decodes the request body, reporting malformed input as a validation error.
func bindJSON(c *gin.Context, dst interface{}) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return models.NewValidationError(
			[]string{"body", typeErr.Field},
			"type_error",
			typeErr.Field+" must be of type "+typeErr.Type.String(),
		)
	}

	return models.NewValidationError([]string{"body"}, "json_invalid", "request body must be a valid JSON object")
}

func handleServiceError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": validationErr.Fields})
		return
	}

	log.Printf("[%s %s] %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
}
