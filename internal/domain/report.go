package domain

import "time"

// ReservoirReading is one hourly lake observation. Optional columns are
// pointers so "no data" and "zero" stay distinct in the JSON output.
type ReservoirReading struct {
	Timestamp       time.Time `json:"timestamp"`
	SourceDate      string    `json:"dateStr"` // original date token, e.g. "06DEC2025"
	SourceTime      string    `json:"timeStr"` // original time token, e.g. "1500"
	ElevationFt     float64   `json:"elevation"`
	TailwaterFt     *float64  `json:"tailwater,omitempty"`
	GenerationMwh   *float64  `json:"generationMwh,omitempty"`
	GenerationCfs   *float64  `json:"generationCfs,omitempty"`
	TotalReleaseCfs *float64  `json:"totalReleaseCfs,omitempty"`
}

// ReservoirMeta holds the report-wide pool constants. The first match in the
// document wins; later occurrences never overwrite a set field.
type ReservoirMeta struct {
	TopFloodPoolFt     *float64 `json:"topFloodPool,omitempty"`
	CurrentPowerPoolFt *float64 `json:"currentPowerPool,omitempty"`
}

// ReservoirReport aggregates the pool metadata with the hourly readings,
// newest first, capped at the most recent 48 entries.
type ReservoirReport struct {
	Meta   ReservoirMeta      `json:"meta"`
	Hourly []ReservoirReading `json:"hourly"`
}

// ScheduleEntry is one hour of the NFD generation schedule.
type ScheduleEntry struct {
	HourEnding int `json:"hour"` // 1..24, hour-ending convention
	Megawatts  int `json:"nfdMw"`
}

// ScheduleReport is the parsed loading schedule for one requested day.
// DateLabel is a best-effort human date string from the page header and may
// be empty. Entries keep source encounter order.
type ScheduleReport struct {
	Day       string          `json:"day"`
	DateLabel string          `json:"date"`
	Entries   []ScheduleEntry `json:"schedule"`
}
