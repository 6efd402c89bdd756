package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/lake-report-service/internal/domain"
	"github.com/couchcryptid/lake-report-service/internal/observability"
)

type fakeReservoirSource struct {
	calls  int
	report domain.ReservoirReport
	err    error
}

func (f *fakeReservoirSource) FetchReservoirReport(_ context.Context) (domain.ReservoirReport, error) {
	f.calls++
	if f.err != nil {
		return domain.ReservoirReport{}, f.err
	}
	return f.report, nil
}

type fakeScheduleSource struct {
	calls map[string]int
	err   error
}

func (f *fakeScheduleSource) FetchSchedule(_ context.Context, day string) (domain.ScheduleReport, error) {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[day]++
	if f.err != nil {
		return domain.ScheduleReport{}, f.err
	}
	return domain.ScheduleReport{Day: day, Entries: []domain.ScheduleEntry{{HourEnding: 1, Megawatts: 40}}}, nil
}

type recordingPublisher struct {
	published int
	err       error
}

func (p *recordingPublisher) PublishReservoirReport(_ context.Context, _ domain.ReservoirReport) error {
	p.published++
	return p.err
}

func reportWithElevation(elevation float64) domain.ReservoirReport {
	return domain.ReservoirReport{
		Hourly: []domain.ReservoirReading{{
			Timestamp:   time.Date(2025, 12, 6, 21, 0, 0, 0, time.UTC),
			SourceDate:  "06DEC2025",
			SourceTime:  "1500",
			ElevationFt: elevation,
		}},
	}
}

func newTestService(reservoir ReservoirSource, schedule ScheduleSource, publisher ReportPublisher, clock clockwork.Clock) *Service {
	return New(reservoir, schedule, publisher, 15*time.Minute, clock,
		slog.Default(), observability.NewMetricsForTesting())
}

func TestReservoirReport_CachedWithinTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	source := &fakeReservoirSource{report: reportWithElevation(553.43)}
	svc := newTestService(source, &fakeScheduleSource{}, nil, clock)

	first, err := svc.ReservoirReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 553.43, first.Hourly[0].ElevationFt)

	clock.Advance(10 * time.Minute)

	_, err = svc.ReservoirReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls, "second request within TTL must hit the cache")
}

func TestReservoirReport_StaleFallback(t *testing.T) {
	clock := clockwork.NewFakeClock()
	source := &fakeReservoirSource{report: reportWithElevation(553.43)}
	svc := newTestService(source, &fakeScheduleSource{}, nil, clock)

	_, err := svc.ReservoirReport(context.Background())
	require.NoError(t, err)

	clock.Advance(16 * time.Minute)
	source.err = &domain.FetchError{Source: "usace", URL: "http://example", Err: errors.New("timeout")}

	report, err := svc.ReservoirReport(context.Background())
	require.NoError(t, err, "stale value must be served instead of the fetch error")
	assert.Equal(t, 553.43, report.Hourly[0].ElevationFt)
}

func TestReservoirReport_ErrorWithEmptyCache(t *testing.T) {
	source := &fakeReservoirSource{err: &domain.FetchError{Source: "usace", URL: "http://example", Status: 503}}
	svc := newTestService(source, &fakeScheduleSource{}, nil, clockwork.NewFakeClock())

	_, err := svc.ReservoirReport(context.Background())
	require.Error(t, err)

	var fetchErr *domain.FetchError
	assert.ErrorAs(t, err, &fetchErr)
}

func TestSchedule_KeyedPerDay(t *testing.T) {
	source := &fakeScheduleSource{}
	svc := newTestService(&fakeReservoirSource{}, source, nil, clockwork.NewFakeClock())

	wed, err := svc.Schedule(context.Background(), "wed")
	require.NoError(t, err)
	assert.Equal(t, "wed", wed.Day)

	_, err = svc.Schedule(context.Background(), "thu")
	require.NoError(t, err)
	_, err = svc.Schedule(context.Background(), "wed")
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls["wed"], "per-day entries must be cached independently")
	assert.Equal(t, 1, source.calls["thu"])
}

func TestPublisher_OnlyOnFreshFetch(t *testing.T) {
	clock := clockwork.NewFakeClock()
	source := &fakeReservoirSource{report: reportWithElevation(553.43)}
	pub := &recordingPublisher{}
	svc := newTestService(source, &fakeScheduleSource{}, pub, clock)

	_, err := svc.ReservoirReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, pub.published)

	// Cache hit: no new data, nothing to publish.
	_, err = svc.ReservoirReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, pub.published)

	// Failed refresh serves stale and publishes nothing.
	clock.Advance(16 * time.Minute)
	source.err = errors.New("down")
	_, err = svc.ReservoirReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, pub.published)
}

func TestPublisher_FailureDoesNotFailServing(t *testing.T) {
	source := &fakeReservoirSource{report: reportWithElevation(553.43)}
	pub := &recordingPublisher{err: errors.New("broker unavailable")}
	svc := newTestService(source, &fakeScheduleSource{}, pub, clockwork.NewFakeClock())

	report, err := svc.ReservoirReport(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, report.Hourly)
}

func TestCheckReadiness(t *testing.T) {
	source := &fakeReservoirSource{report: reportWithElevation(553.43)}
	svc := newTestService(source, &fakeScheduleSource{}, nil, clockwork.NewFakeClock())

	require.Error(t, svc.CheckReadiness(context.Background()))

	_, err := svc.ReservoirReport(context.Background())
	require.NoError(t, err)

	assert.NoError(t, svc.CheckReadiness(context.Background()))
}
