package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"lacongolaise/review-service/internal/models"
	"lacongolaise/review-service/internal/utils"
)

const (
	statsGenerationKey  = "reviews:stats:gen"
	statsCacheKeyPrefix = "reviews:stats:"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	List(ctx context.Context, order models.SortOrder) ([]models.Review, error)
	Stats(ctx context.Context) (float64, int64, error)
}

type ReviewService struct {
	repo     ReviewRepository
	cache    *redis.Client
	cacheTTL time.Duration
	now      func() time.Time
}

// NewReviewService builds the service. A nil cache disables stats caching.
func NewReviewService(repo ReviewRepository, cache *redis.Client, cacheTTL time.Duration) *ReviewService {
	return &ReviewService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

func (s *ReviewService) CreateReview(ctx context.Context, input models.ReviewCreate) (*models.Review, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	review := models.NewReview(input, s.now())
	if err := s.repo.Create(ctx, &review); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return &review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, order models.SortOrder) ([]models.Review, error) {
	return s.repo.List(ctx, order)
}

func (s *ReviewService) GetReviewStats(ctx context.Context) (*models.ReviewStats, error) {
	// The generation is read before aggregating, so a result computed while a
	// review is being inserted lands under a key that is already retired.
	key, cacheable := s.statsKey(ctx)
	if cacheable {
		if stats, ok := s.cachedStats(ctx, key); ok {
			return stats, nil
		}
	}

	average, total, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	stats := models.NewReviewStats(average, total)
	if cacheable {
		s.storeStats(ctx, key, &stats)
	}
	return &stats, nil
}

// statsKey returns the cache key for the current stats generation.
func (s *ReviewService) statsKey(ctx context.Context) (string, bool) {
	if s.cache == nil {
		return "", false
	}

	gen, err := utils.GetFromCache(ctx, s.cache, statsGenerationKey)
	switch {
	case errors.Is(err, redis.Nil):
		gen = "0"
	case err != nil:
		log.Printf("[CACHE] Failed to read review stats generation: %v", err)
		return "", false
	}
	return statsCacheKeyPrefix + gen, true
}

func (s *ReviewService) cachedStats(ctx context.Context, key string) (*models.ReviewStats, bool) {
	raw, err := utils.GetFromCache(ctx, s.cache, key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[CACHE] Failed to read review stats: %v", err)
		}
		return nil, false
	}

	var stats models.ReviewStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		log.Printf("[CACHE] Dropping unreadable review stats entry: %v", err)
		return nil, false
	}
	return &stats, true
}

func (s *ReviewService) storeStats(ctx context.Context, key string, stats *models.ReviewStats) {
	data, err := json.Marshal(stats)
	if err != nil {
		log.Printf("[CACHE] Failed to marshal review stats: %v", err)
		return
	}
	if err := utils.SetToCache(ctx, s.cache, key, string(data), s.cacheTTL); err != nil {
		log.Printf("[CACHE] Failed to store review stats: %v", err)
	}
}

// invalidateStats retires every cached stats entry by bumping the generation.
// It runs even when the client has already gone away.
func (s *ReviewService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := utils.IncrementInCache(context.WithoutCancel(ctx), s.cache, statsGenerationKey); err != nil {
		log.Printf("[CACHE] Failed to invalidate review stats: %v", err)
	}
}
