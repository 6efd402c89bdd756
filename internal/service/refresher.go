package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/couchcryptid/lake-report-service/internal/domain"
)

// refreshTimeout bounds one prewarm cycle; generous next to the per-request
// HTTP client timeout since a cycle touches two sources.
const refreshTimeout = 2 * time.Minute

// Refresher keeps the cache warm on a cron schedule so interactive requests
// rarely pay for an upstream fetch. It is a pure optimization: per-request
// behavior is identical with or without it.
type Refresher struct {
	svc    *Service
	cron   *cron.Cron
	logger *slog.Logger
}

// NewRefresher schedules cache prewarms per the cron spec (standard 5-field
// format, e.g. "*/10 * * * *").
func NewRefresher(svc *Service, spec string, logger *slog.Logger) (*Refresher, error) {
	r := &Refresher{
		svc:    svc,
		cron:   cron.New(),
		logger: logger,
	}
	if _, err := r.cron.AddFunc(spec, r.refresh); err != nil {
		return nil, fmt.Errorf("schedule cache refresh %q: %w", spec, err)
	}
	return r, nil
}

// Start runs one immediate prewarm, then the cron schedule until ctx is done.
// The initial prewarm runs in the background so startup is not held up by a
// slow upstream.
func (r *Refresher) Start(ctx context.Context) {
	go r.refresh()
	r.cron.Start()
	go func() {
		<-ctx.Done()
		<-r.cron.Stop().Done()
	}()
}

// refresh warms the reservoir report and today's schedule. Failures only log;
// the cache's stale fallback covers request traffic either way.
func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if _, err := r.svc.ReservoirReport(ctx); err != nil {
		r.logger.Warn("scheduled reservoir refresh failed", "error", err)
	}

	day, err := domain.ResolveDayKey("today", time.Now())
	if err != nil {
		return
	}
	if _, err := r.svc.Schedule(ctx, day); err != nil {
		r.logger.Warn("scheduled schedule refresh failed", "day", day, "error", err)
	}
}
