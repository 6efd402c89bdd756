// Package usace fetches and parses the Army Corps reservoir-operations report.
package usace

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

const source = "usace"

// Client retrieves the tabular reservoir report from its fixed URL.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a reservoir report client. The timeout bounds the whole
// request; there are no retries, the caller's cache decides what a failure means.
func NewClient(url string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// FetchReservoirReport performs one fetch-extract-parse cycle.
func (c *Client) FetchReservoirReport(ctx context.Context) (domain.ReservoirReport, error) {
	start := time.Now()

	raw, err := c.fetchRaw(ctx)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(source, "network_error").Inc()
		return domain.ReservoirReport{}, err
	}

	report, stats := domain.ParseReservoirReport(htmltext.Extract(raw))

	c.metrics.FetchRequests.WithLabelValues(source, "success").Inc()
	c.metrics.FetchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	c.metrics.RowsDropped.WithLabelValues(source).Add(float64(stats.DroppedRows))

	c.logger.Info("reservoir report fetched",
		"readings", len(report.Hourly),
		"matched_rows", stats.MatchedRows,
		"dropped_rows", stats.DroppedRows,
	)
	if len(report.Hourly) == 0 {
		// Either the lake page is legitimately empty or the format drifted;
		// callers see the empty sequence and decide.
		c.logger.Warn("reservoir report contained no parseable data rows", "url", c.url)
	}

	return report, nil
}

func (c *Client) fetchRaw(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", &domain.FetchError{Source: source, URL: c.url, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.FetchError{Source: source, URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &domain.FetchError{Source: source, URL: c.url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.FetchError{Source: source, URL: c.url, Err: err}
	}
	return string(body), nil
}
