// Package service orchestrates the report pipeline: fetch through the result
// cache, publish fresh data downstream, and expose readiness.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/lake-report-service/internal/cache"
	"github.com/couchcryptid/lake-report-service/internal/domain"
	"github.com/couchcryptid/lake-report-service/internal/observability"
)

// Cache keys. The schedule key carries the day so each weekday page expires
// independently.
const (
	reservoirCacheKey   = "norfork-lake"
	scheduleCachePrefix = "swpa-schedule-"
)

// ReservoirSource fetches the current reservoir-operations report.
type ReservoirSource interface {
	FetchReservoirReport(ctx context.Context) (domain.ReservoirReport, error)
}

// ScheduleSource fetches the loading schedule for a resolved day key.
type ScheduleSource interface {
	FetchSchedule(ctx context.Context, day string) (domain.ScheduleReport, error)
}

// ReportPublisher forwards freshly fetched reservoir reports downstream.
type ReportPublisher interface {
	PublishReservoirReport(ctx context.Context, report domain.ReservoirReport) error
}

// Service serves both reports through a shared TTL cache with stale fallback.
type Service struct {
	reservoir ReservoirSource
	schedule  ScheduleSource
	publisher ReportPublisher // nil when publishing is disabled

	reservoirCache *cache.Cache[domain.ReservoirReport]
	scheduleCache  *cache.Cache[domain.ScheduleReport]

	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// New creates the report service. ttl applies uniformly to every cached
// report; clock may be nil for real time.
func New(
	reservoir ReservoirSource,
	schedule ScheduleSource,
	publisher ReportPublisher,
	ttl time.Duration,
	clock clockwork.Clock,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Service {
	return &Service{
		reservoir:      reservoir,
		schedule:       schedule,
		publisher:      publisher,
		reservoirCache: cache.New[domain.ReservoirReport](ttl, clock),
		scheduleCache:  cache.New[domain.ScheduleReport](ttl, clock),
		logger:         logger,
		metrics:        metrics,
	}
}

// ReservoirReport returns the cached reservoir report, refreshing it from the
// source when expired. A failed refresh serves the last known good report.
func (s *Service) ReservoirReport(ctx context.Context) (domain.ReservoirReport, error) {
	report, outcome, err := s.reservoirCache.GetOrFetch(ctx, reservoirCacheKey, s.fetchReservoir)
	s.observe(reservoirCacheKey, outcome)
	return report, err
}

// Schedule returns the cached loading schedule for an already resolved day
// key (sun..sat).
func (s *Service) Schedule(ctx context.Context, day string) (domain.ScheduleReport, error) {
	key := scheduleCachePrefix + day
	report, outcome, err := s.scheduleCache.GetOrFetch(ctx, key, func(ctx context.Context) (domain.ScheduleReport, error) {
		rep, err := s.schedule.FetchSchedule(ctx, day)
		if err == nil {
			s.ready.Store(true)
		}
		return rep, err
	})
	s.observe(key, outcome)
	return report, err
}

// CheckReadiness reports ready once any report has been fetched successfully.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("no report fetched yet")
	}
	return nil
}

func (s *Service) fetchReservoir(ctx context.Context) (domain.ReservoirReport, error) {
	report, err := s.reservoir.FetchReservoirReport(ctx)
	if err != nil {
		return domain.ReservoirReport{}, err
	}
	s.ready.Store(true)
	s.publish(ctx, report)
	return report, nil
}

// publish forwards a fresh report to the configured publisher. Publishing is
// best effort and never fails the serving path.
func (s *Service) publish(ctx context.Context, report domain.ReservoirReport) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishReservoirReport(ctx, report); err != nil {
		s.logger.Warn("publish reservoir report failed", "error", err)
	}
}

func (s *Service) observe(key string, outcome cache.Outcome) {
	s.metrics.CacheLookups.WithLabelValues(key, string(outcome)).Inc()
	if outcome == cache.OutcomeStale {
		s.logger.Warn("serving stale report after failed refresh", "key", key)
	}
}
