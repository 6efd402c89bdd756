package swpa

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/lake-report-service/internal/domain"
	"github.com/couchcryptid/lake-report-service/internal/observability"
)

const samplePage = `<html><body><pre>            SOUTHWESTERN POWER ADMINISTRATION

     FRIDAY    DECEMBER 05, 2025      EST. SYSTEM PEAK  2145 MW

              PROJECTED LOADING SCHEDULE

 HR     BSD   NFD   GFD
  1      0     0    50
  2     10    40    55
 24      0    92     0
TOTAL  2145
</pre></body></html>`

func testClient(baseURL string) *Client {
	return NewClient(baseURL, 5*time.Second,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NewMetricsForTesting())
}

func TestFetchSchedule(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fri.htm", r.URL.Path)
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	report, err := testClient(srv.URL + "/").FetchSchedule(context.Background(), "fri")
	require.NoError(t, err)

	assert.Equal(t, "fri", report.Day)
	assert.Equal(t, "FRIDAY DECEMBER 05, 2025", report.DateLabel)
	require.Len(t, report.Entries, 3)
	assert.Equal(t, domain.ScheduleEntry{HourEnding: 2, Megawatts: 40}, report.Entries[1])
}

func TestFetchSchedule_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL + "/").FetchSchedule(context.Background(), "fri")
	require.Error(t, err)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.Status)
	assert.Equal(t, "swpa", fetchErr.Source)
}

func TestFetchSchedule_UnrecognizedLayout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><pre>page format changed entirely</pre></body></html>"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL + "/").FetchSchedule(context.Background(), "fri")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)
}
