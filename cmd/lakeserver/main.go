package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/lake-report-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/lake-report-service/internal/adapter/kafka"
	"github.com/couchcryptid/lake-report-service/internal/adapter/swpa"
	"github.com/couchcryptid/lake-report-service/internal/adapter/usace"
	"github.com/couchcryptid/lake-report-service/internal/config"
	"github.com/couchcryptid/lake-report-service/internal/observability"
	"github.com/couchcryptid/lake-report-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	reservoir := usace.NewClient(cfg.UsaceURL, cfg.FetchTimeout, logger, metrics)
	schedule := swpa.NewClient(cfg.SwpaBaseURL, cfg.FetchTimeout, logger, metrics)

	// Report publishing is feature-flagged via KAFKA_BROKERS.
	var publisher service.ReportPublisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	svc := service.New(reservoir, schedule, publisher, cfg.CacheTTL, nil, logger, metrics)

	refresher, err := service.NewRefresher(svc, cfg.RefreshCron, logger)
	if err != nil {
		logger.Error("invalid refresh schedule", "spec", cfg.RefreshCron, "error", err)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	refresher.Start(ctx)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
