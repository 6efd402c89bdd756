package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Fixed Central offsets. The report prints local wall-clock times with no
// offset, so the zone is chosen per month rather than from real DST rules
// (see the package doc for the accepted one-hour error window).
var (
	centralStandard = time.FixedZone("CST", -6*60*60)
	centralDaylight = time.FixedZone("CDT", -5*60*60)
)

var monthAbbrevs = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

// NormalizeTimestamp converts a "DDMMMYYYY" date token and an "HHMM" time
// token into an absolute UTC instant. "2400" means 00:00 of the following
// calendar day. The UTC offset is a pure function of the token's month.
func NormalizeTimestamp(dateToken, timeToken string) (time.Time, error) {
	if len(dateToken) != 9 {
		return time.Time{}, fmt.Errorf("normalize timestamp: bad date token %q", dateToken)
	}
	day, err := strconv.Atoi(dateToken[:2])
	if err != nil {
		return time.Time{}, fmt.Errorf("normalize timestamp: bad day in %q", dateToken)
	}
	month, ok := monthAbbrevs[dateToken[2:5]]
	if !ok {
		return time.Time{}, fmt.Errorf("normalize timestamp: unknown month in %q", dateToken)
	}
	year, err := strconv.Atoi(dateToken[5:])
	if err != nil {
		return time.Time{}, fmt.Errorf("normalize timestamp: bad year in %q", dateToken)
	}

	if len(timeToken) != 4 {
		return time.Time{}, fmt.Errorf("normalize timestamp: bad time token %q", timeToken)
	}
	hour, errH := strconv.Atoi(timeToken[:2])
	minute, errM := strconv.Atoi(timeToken[2:])
	if errH != nil || errM != nil {
		return time.Time{}, fmt.Errorf("normalize timestamp: bad time token %q", timeToken)
	}

	// End-of-day convention: 2400 rolls into the next calendar day.
	nextDay := false
	if hour == 24 && minute == 0 {
		hour = 0
		nextDay = true
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("normalize timestamp: time %q out of range", timeToken)
	}

	t := time.Date(year, month, day, hour, minute, 0, 0, offsetForMonth(month))
	// time.Date normalizes impossible dates (31FEB -> 02MAR); reject those.
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("normalize timestamp: invalid calendar date %q", dateToken)
	}
	if nextDay {
		t = t.AddDate(0, 0, 1)
	}
	return t.UTC(), nil
}

// offsetForMonth picks the seasonal zone: April through October daylight,
// November through March standard.
func offsetForMonth(m time.Month) *time.Location {
	if m >= time.April && m <= time.October {
		return centralDaylight
	}
	return centralStandard
}
