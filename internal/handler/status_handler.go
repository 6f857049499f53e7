package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"lacongolaise/review-service/internal/models"
)

type StatusService interface {
	CreateStatusCheck(ctx context.Context, input models.StatusCheckCreate) (*models.StatusCheck, error)
	GetStatusChecks(ctx context.Context) ([]models.StatusCheck, error)
}

type StatusHandler struct {
	service StatusService
}

func NewStatusHandler(service StatusService) *StatusHandler {
	return &StatusHandler{service: service}
}

func (h *StatusHandler) CreateStatusCheck(c *gin.Context) {
	var input models.StatusCheckCreate
	if err := bindJSON(c, &input); err != nil {
		handleServiceError(c, err)
		return
	}

	check, err := h.service.CreateStatusCheck(c.Request.Context(), input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, check)
}

func (h *StatusHandler) GetStatusChecks(c *gin.Context) {
	checks, err := h.service.GetStatusChecks(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, checks)
}
