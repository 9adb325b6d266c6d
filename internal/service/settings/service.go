package settings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/praxisops/dienstplan-api/internal/model"
	"github.com/praxisops/dienstplan-api/internal/repository"
	"github.com/praxisops/dienstplan-api/pkg/logger"
)

const (
	cacheTTL        = 5 * time.Minute
	cleanupInterval = 10 * time.Minute
)

// Service reads practice settings with a short-lived cache in front. The
// planner hits this on every week load, while the settings themselves change
// maybe once per practice lifetime.
type Service struct {
	repo        repository.SettingsRepository
	cache       *cache.Cache
	defaultDays int
	logger      *logger.Logger
}

// NewService wires the settings reader. defaultDays is the deployment-wide
// fallback grid size from configuration; an invalid value degrades to the
// built-in default.
func NewService(repo repository.SettingsRepository, defaultDays int, log *logger.Logger) *Service {
	if !model.ValidPlannerDays(defaultDays) {
		defaultDays = model.DefaultPlannerDays
	}
	return &Service{
		repo:        repo,
		cache:       cache.New(cacheTTL, cleanupInterval),
		defaultDays: defaultDays,
		logger:      log,
	}
}

// PlannerDays returns how many days the planner grid shows for a practice.
// Any failure or invalid stored value falls back to the default; the planner
// must render even when the settings store is down.
func (s *Service) PlannerDays(ctx context.Context, practiceID uuid.UUID) int {
	key := practiceID.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached.(int)
	}

	days, err := s.repo.GetPlannerDays(ctx, practiceID)
	if err != nil {
		s.logger.Debug("falling back to default planner days", "practice_id", key)
		return s.defaultDays
	}
	if !model.ValidPlannerDays(days) {
		days = s.defaultDays
	}

	s.cache.Set(key, days, cache.DefaultExpiration)
	return days
}

// Invalidate drops the cached value for one practice.
func (s *Service) Invalidate(practiceID uuid.UUID) {
	s.cache.Delete(practiceID.String())
}
