// Command reportdump fetches the reservoir report and a day's generation
// schedule once and prints the parsed JSON. Useful for checking whether the
// upstream pages still match the expected layouts without starting the server.
//
// Usage:
//
//	go run ./cmd/reportdump            # reservoir report + today's schedule
//	go run ./cmd/reportdump -day fri   # a specific day
//	go run ./cmd/reportdump -schedule=false
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/couchcryptid/lake-report-service/internal/adapter/swpa"
	"github.com/couchcryptid/lake-report-service/internal/adapter/usace"
	"github.com/couchcryptid/lake-report-service/internal/config"
	"github.com/couchcryptid/lake-report-service/internal/domain"
	"github.com/couchcryptid/lake-report-service/internal/observability"
)

func main() {
	day := flag.String("day", "today", "schedule day (sun..sat, today, tomorrow)")
	reservoir := flag.Bool("reservoir", true, "fetch the reservoir report")
	schedule := flag.Bool("schedule", true, "fetch the generation schedule")
	flag.Parse()

	if code := run(*day, *reservoir, *schedule); code != 0 {
		os.Exit(code)
	}
}

func run(day string, fetchReservoir, fetchSchedule bool) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load config: %v\n", err)
		return 1
	}

	logger := observability.NewLogger("warn", "text")
	metrics := observability.NewMetricsForTesting()

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.FetchTimeout)
	defer cancel()

	code := 0

	if fetchReservoir {
		client := usace.NewClient(cfg.UsaceURL, cfg.FetchTimeout, logger, metrics)
		report, err := client.FetchReservoirReport(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reservoir report: %v\n", err)
			code = 1
		} else {
			fmt.Printf("=== Reservoir report (%d readings) ===\n", len(report.Hourly))
			dump(report)
		}
	}

	if fetchSchedule {
		dayKey, err := domain.ResolveDayKey(day, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "schedule: %v\n", err)
			return 1
		}

		client := swpa.NewClient(cfg.SwpaBaseURL, cfg.FetchTimeout, logger, metrics)
		sched, err := client.FetchSchedule(ctx, dayKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "schedule (%s): %v\n", dayKey, err)
			code = 1
		} else {
			fmt.Printf("=== Schedule %s (%d hours) ===\n", dayKey, len(sched.Entries))
			dump(sched)
		}
	}

	return code
}

func dump(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v) //nolint:errcheck // stdout
}
