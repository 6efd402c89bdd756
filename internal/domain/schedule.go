package domain

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	scheduleSectionMarker = "PROJECTED LOADING SCHEDULE"
	scheduleUnitColumn    = "NFD"

	// The header line naming the unit columns sits within a few lines of the
	// section marker; the date line sits near the top of the page.
	headerSearchWindow = 10
	dateSearchWindow   = 20

	// The value sits visually under the header token. A window from 2 chars
	// before to 5 after the column anchor covers right- and center-aligned
	// numbers up to the widths SWPA prints.
	anchorLead  = 2
	anchorTrail = 5
)

var (
	hourRowRe  = regexp.MustCompile(`^(\d{1,2})\s`)
	yearDigits = regexp.MustCompile(`\d{4}`)
)

// Phrases that share the date-marker line but are not part of the date.
var dateLabelCuts = []string{
	"EST. SYSTEM PEAK",
	"EST SYSTEM PEAK",
	"TEMPERATURE",
	"TEMP:",
}

// ParseScheduleReport extracts the per-hour NFD generation table for the
// given day key (3-letter abbreviation, case-insensitive). The table is
// column-aligned by character position; the offset of "NFD" in the header
// line is the anchor for every data row.
func ParseScheduleReport(text, day string) (ScheduleReport, error) {
	dayKey := normalizeDayKey(day)
	lines := strings.Split(text, "\n")

	sectionIdx := -1
	for i, line := range lines {
		if strings.Contains(line, scheduleSectionMarker) {
			sectionIdx = i
			break
		}
	}
	if sectionIdx < 0 {
		return ScheduleReport{}, &ParseError{
			Report:  "schedule",
			Element: `"` + scheduleSectionMarker + `" marker`,
			Err:     ErrSectionNotFound,
		}
	}

	headerIdx, anchor := -1, -1
	for i := sectionIdx; i < sectionIdx+headerSearchWindow && i < len(lines); i++ {
		if idx := strings.Index(lines[i], scheduleUnitColumn); idx >= 0 {
			headerIdx, anchor = i, idx
			break
		}
	}
	if headerIdx < 0 {
		return ScheduleReport{}, &ParseError{
			Report:  "schedule",
			Element: `"` + scheduleUnitColumn + `" column header`,
			Err:     ErrColumnNotFound,
		}
	}

	report := ScheduleReport{
		Day:       dayKey,
		DateLabel: findDateLabel(lines, dayKey),
	}

	for _, line := range lines[headerIdx+1:] {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "TOTAL") || strings.Contains(trimmed, "PROJECT TABLE") {
			break
		}

		m := hourRowRe.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		hour, err := strconv.Atoi(m[1])
		if err != nil || hour < 1 || hour > 24 {
			continue
		}

		mw, ok := columnValue(line, anchor)
		if !ok {
			// Blank column position: the source legitimately leaves hours empty.
			continue
		}
		report.Entries = append(report.Entries, ScheduleEntry{HourEnding: hour, Megawatts: mw})
	}

	return report, nil
}

// columnValue reads the integer under the column anchor from the untrimmed
// line, or reports false when that position holds no number.
func columnValue(line string, anchor int) (int, bool) {
	start := anchor - anchorLead
	if start < 0 {
		start = 0
	}
	end := anchor + anchorTrail
	if end > len(line) {
		end = len(line)
	}
	if start >= end {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(line[start:end]))
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// findDateLabel locates the day-marker line near the top of the page: the
// first line containing the day's name and a 4-digit year. Returns "" when
// no such line exists; a missing date is not a failure.
func findDateLabel(lines []string, dayKey string) string {
	for i := 0; i < dateSearchWindow && i < len(lines); i++ {
		line := lines[i]
		if !strings.Contains(strings.ToLower(line), dayKey) {
			continue
		}
		if !yearDigits.MatchString(line) {
			continue
		}
		return cleanDateLabel(line)
	}
	return ""
}

// cleanDateLabel strips known boilerplate sharing the date line and collapses
// internal whitespace, e.g. "WEDNESDAY    DECEMBER 03, 2025".
func cleanDateLabel(line string) string {
	label := strings.ReplaceAll(line, scheduleSectionMarker, "")
	upper := strings.ToUpper(label)
	for _, cut := range dateLabelCuts {
		if idx := strings.Index(upper, cut); idx >= 0 {
			label = label[:idx]
			upper = upper[:idx]
		}
	}
	return strings.Join(strings.Fields(label), " ")
}

// normalizeDayKey lowercases and shortens a day identifier to its 3-letter key.
func normalizeDayKey(day string) string {
	key := strings.ToLower(strings.TrimSpace(day))
	if len(key) > 3 {
		key = key[:3]
	}
	return key
}
