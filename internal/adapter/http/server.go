package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/lake-report-service/internal/domain"
	"github.com/couchcryptid/lake-report-service/internal/observability"
)

// ReportService serves cached lake reports.
type ReportService interface {
	ReservoirReport(ctx context.Context) (domain.ReservoirReport, error)
	Schedule(ctx context.Context, day string) (domain.ScheduleReport, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the report API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	svc        ReportService
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with the report and operational routes.
func NewServer(addr string, svc ReportService, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		svc:     svc,
		logger:  logger,
		metrics: metrics,
	}

	mux.HandleFunc("GET /api/lake", s.handleLake)
	mux.HandleFunc("GET /api/schedule/{day}", s.handleSchedule)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleLake(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.ReservoirReport(r.Context())
	if err != nil {
		s.logger.Error("reservoir report unavailable", "error", err)
		s.writeError(w, "lake", http.StatusInternalServerError, "reservoir report unavailable")
		return
	}
	s.writeJSON(w, "lake", http.StatusOK, report)
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	day, err := domain.ResolveDayKey(r.PathValue("day"), time.Now())
	if err != nil {
		s.writeError(w, "schedule", http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.svc.Schedule(r.Context(), day)
	if err != nil {
		s.logger.Error("schedule unavailable", "day", day, "error", err)
		s.writeError(w, "schedule", http.StatusInternalServerError, "schedule report unavailable")
		return
	}
	s.writeJSON(w, "schedule", http.StatusOK, report)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, "healthz", http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.svc.CheckReadiness(ctx); err != nil {
		s.writeJSON(w, "readyz", http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	s.writeJSON(w, "readyz", http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) writeError(w http.ResponseWriter, endpoint string, status int, msg string) {
	s.writeJSON(w, endpoint, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, endpoint string, status int, v any) {
	s.metrics.ReportsServed.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}
