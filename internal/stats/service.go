package stats

import (
	"context"
	"errors"
	"time"

	"plantstore-be/internal/cache"
	"plantstore-be/internal/logger"

	"go.uber.org/zap"
)

const (
	dashboardKey = "stats:dashboard"
	dashboardTTL = 30 * time.Second
)

type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	Invalidate(ctx context.Context)
}

// DashboardCache is the slice of the cache the service needs.
type DashboardCache interface {
	GetJSON(ctx context.Context, key string, dest any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type service struct {
	repo          Repository
	cache         DashboardCache
	lowStockLimit int
}

// NewService builds the dashboard service. cache may be nil; aggregates
// then always hit the database directly.
func NewService(repo Repository, c DashboardCache, lowStockLimit int) Service {
	return &service{repo: repo, cache: c, lowStockLimit: lowStockLimit}
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DashboardStats"),
	)

	if s.cache != nil {
		var cached Dashboard
		err := s.cache.GetJSON(ctx, dashboardKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn("stats cache read failed", zap.Error(err))
		}
	}

	d, err := s.repo.Dashboard(ctx, s.lowStockLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, dashboardKey, d, dashboardTTL); err != nil {
			log.Warn("stats cache write failed", zap.Error(err))
		}
	}
	return d, nil
}

// Invalidate drops the cached dashboard so the next read reflects a
// mutation immediately instead of after the TTL.
func (s *service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, dashboardKey); err != nil {
		logger.FromCtx(ctx).Warn("stats cache invalidation failed", zap.Error(err))
	}
}
