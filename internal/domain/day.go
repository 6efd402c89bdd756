package domain

import (
	"fmt"
	"strings"
	"time"
)

// centralCalendar resolves "today"/"tomorrow" against the source's region.
// Falls back to the fixed standard offset on hosts without tzdata.
var centralCalendar = func() *time.Location {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		return centralStandard
	}
	return loc
}()

var validDayKeys = map[string]bool{
	"sun": true, "mon": true, "tue": true, "wed": true,
	"thu": true, "fri": true, "sat": true,
}

// ResolveDayKey maps a requested day identifier to the 3-letter key used in
// schedule URLs. Accepts the seven weekday abbreviations plus the aliases
// "today" and "tomorrow", resolved against the Central calendar date at now.
func ResolveDayKey(day string, now time.Time) (string, error) {
	key := strings.ToLower(strings.TrimSpace(day))
	switch key {
	case "today":
		key = weekdayKey(now.In(centralCalendar))
	case "tomorrow":
		key = weekdayKey(now.In(centralCalendar).AddDate(0, 0, 1))
	}
	if !validDayKeys[key] {
		return "", fmt.Errorf("invalid day %q: use sun, mon, tue, wed, thu, fri, sat, today, or tomorrow", day)
	}
	return key, nil
}

func weekdayKey(t time.Time) string {
	return strings.ToLower(t.Weekday().String()[:3])
}
