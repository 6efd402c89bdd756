// Package swpa fetches and parses the Southwestern Power Administration
// projected loading schedule pages.
package swpa

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/lake-report-service/internal/adapter/htmltext"
	"github.com/couchcryptid/lake-report-service/internal/domain"
	"github.com/couchcryptid/lake-report-service/internal/observability"
)

const source = "swpa"

// Client retrieves the per-day schedule pages. One page exists per weekday,
// addressed by the 3-letter lowercase day key.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a schedule client. baseURL is the path prefix the day key
// and ".htm" extension are appended to.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// FetchSchedule performs one fetch-extract-parse cycle for an already
// resolved day key (sun..sat).
func (c *Client) FetchSchedule(ctx context.Context, day string) (domain.ScheduleReport, error) {
	start := time.Now()
	url := c.baseURL + day + ".htm"

	raw, err := c.fetchRaw(ctx, url)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(source, "network_error").Inc()
		return domain.ScheduleReport{}, err
	}

	report, err := domain.ParseScheduleReport(htmltext.Extract(raw), day)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(source, "parse_error").Inc()
		c.logger.Error("schedule page no longer matches the expected layout",
			"day", day, "url", url, "error", err)
		return domain.ScheduleReport{}, err
	}

	c.metrics.FetchRequests.WithLabelValues(source, "success").Inc()
	c.metrics.FetchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())

	c.logger.Info("schedule fetched",
		"day", day,
		"date_label", report.DateLabel,
		"entries", len(report.Entries),
	)

	return report, nil
}

func (c *Client) fetchRaw(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &domain.FetchError{Source: source, URL: url, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.FetchError{Source: source, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &domain.FetchError{Source: source, URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.FetchError{Source: source, URL: url, Err: err}
	}
	return string(body), nil
}
