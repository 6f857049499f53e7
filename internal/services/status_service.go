package services

import (
	"context"
	"time"

	"lacongolaise/review-service/internal/models"
)

type StatusRepository interface {
	Create(ctx context.Context, check *models.StatusCheck) error
	List(ctx context.Context) ([]models.StatusCheck, error)
}

type StatusService struct {
	repo StatusRepository
	now  func() time.Time
}

func NewStatusService(repo StatusRepository) *StatusService {
	return &StatusService{repo: repo, now: time.Now}
}

func (s *StatusService) CreateStatusCheck(ctx context.Context, input models.StatusCheckCreate) (*models.StatusCheck, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	check := models.NewStatusCheck(input, s.now())
	if err := s.repo.Create(ctx, &check); err != nil {
		return nil, err
	}
	return &check, nil
}

func (s *StatusService) GetStatusChecks(ctx context.Context) ([]models.StatusCheck, error) {
	return s.repo.List(ctx)
}
