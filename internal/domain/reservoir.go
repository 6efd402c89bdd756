package domain

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// Pool constants use the report's fixed NNN.NN numeric format.
	topFloodPoolRe     = regexp.MustCompile(`Top\s+Flood\s+Pool.*?(\d{3}\.\d{2})`)
	currentPowerPoolRe = regexp.MustCompile(`Current\s+Power\s+Pool.*?(\d{3}\.\d{2})`)

	// reservoirRowRe anchors a data row: date token, time token, elevation.
	reservoirRowRe = regexp.MustCompile(`^(\d{2}[A-Z]{3}\d{4})\s+(\d{4})\s+([\d.]+)`)
)

// Whitespace-split field positions in a reservoir data row. The layout is
// visually aligned, not contractually fixed-width, so positional inference is
// the accepted trade-off; this is the one place layout drift will break.
const (
	fieldDate         = 0
	fieldTime         = 1
	fieldElevation    = 2
	fieldTailwater    = 3
	fieldGenMwh       = 5
	fieldGenCfs       = 6
	fieldTotalRelease = 8
)

const maxReservoirReadings = 48

// ReservoirParseStats counts how the line scan went, for logging and metrics.
type ReservoirParseStats struct {
	MatchedRows int
	DroppedRows int
}

// ParseReservoirReport scans extracted plaintext for pool metadata and hourly
// lake readings in a single pass. Malformed rows are dropped, never fatal;
// zero readings is a legitimate result and left to the caller to interpret.
func ParseReservoirReport(text string) (ReservoirReport, ReservoirParseStats) {
	var (
		report ReservoirReport
		stats  ReservoirParseStats
	)

	for _, line := range strings.Split(text, "\n") {
		if report.Meta.TopFloodPoolFt == nil {
			report.Meta.TopFloodPoolFt = matchPoolLevel(line, topFloodPoolRe)
		}
		if report.Meta.CurrentPowerPoolFt == nil {
			report.Meta.CurrentPowerPoolFt = matchPoolLevel(line, currentPowerPoolRe)
		}

		trimmed := strings.TrimSpace(line)
		if !reservoirRowRe.MatchString(trimmed) {
			continue
		}
		stats.MatchedRows++

		reading, ok := parseReservoirRow(trimmed)
		if !ok {
			stats.DroppedRows++
			continue
		}
		report.Hourly = append(report.Hourly, reading)
	}

	sort.SliceStable(report.Hourly, func(i, j int) bool {
		return report.Hourly[i].Timestamp.After(report.Hourly[j].Timestamp)
	})
	if len(report.Hourly) > maxReservoirReadings {
		report.Hourly = report.Hourly[:maxReservoirReadings]
	}

	return report, stats
}

// parseReservoirRow splits an anchored row into positional fields. The
// elevation is required; any other absent or non-numeric field stays nil.
func parseReservoirRow(trimmed string) (ReservoirReading, bool) {
	fields := strings.Fields(trimmed)
	if len(fields) <= fieldElevation {
		return ReservoirReading{}, false
	}

	elevation, err := strconv.ParseFloat(fields[fieldElevation], 64)
	if err != nil || !isFinite(elevation) {
		return ReservoirReading{}, false
	}

	ts, err := NormalizeTimestamp(fields[fieldDate], fields[fieldTime])
	if err != nil {
		return ReservoirReading{}, false
	}

	return ReservoirReading{
		Timestamp:       ts,
		SourceDate:      fields[fieldDate],
		SourceTime:      fields[fieldTime],
		ElevationFt:     elevation,
		TailwaterFt:     optionalFloat(fields, fieldTailwater),
		GenerationMwh:   optionalFloat(fields, fieldGenMwh),
		GenerationCfs:   optionalFloat(fields, fieldGenCfs),
		TotalReleaseCfs: optionalFloat(fields, fieldTotalRelease),
	}, true
}

func matchPoolLevel(line string, re *regexp.Regexp) *float64 {
	m := re.FindStringSubmatch(line)
	if len(m) < 2 {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &v
}

func optionalFloat(fields []string, idx int) *float64 {
	if idx >= len(fields) {
		return nil
	}
	v, err := strconv.ParseFloat(fields[idx], 64)
	if err != nil || !isFinite(v) {
		return nil
	}
	return &v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
