package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/validator"
)

// MinutesUnknown is returned by ParseToMinutes when the input cannot be read.
// Callers must treat it as "unknown", never as midnight.
const MinutesUnknown = -1

const minutesPerDay = 24 * 60

// Layouts carrying their own offset; the instant is converted to the
// employee's location before reading the clock.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
}

// Layouts without an offset are read as wall-clock time in the employee's location.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseMinutes converts a full timestamp or a bare "HH:MM" into minutes since
// midnight (0..1439) in loc. ok is false when the input is unreadable.
func ParseMinutes(input string, loc *time.Location) (minutes int, ok bool) {
	if loc == nil {
		loc = time.UTC
	}
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, false
	}

	if isTimestamp(s) {
		t, ok := parseTimestamp(s, loc)
		if !ok {
			return 0, false
		}
		return t.Hour()*60 + t.Minute(), true
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 || !validator.IsNumeric(parts[0]) || !validator.IsNumeric(parts[1]) {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// ParseToMinutes is ParseMinutes collapsed onto the MinutesUnknown sentinel.
func ParseToMinutes(input string, loc *time.Location) int {
	m, ok := ParseMinutes(input, loc)
	if !ok {
		return MinutesUnknown
	}
	return m
}

// isTimestamp reports whether s carries a date part: either a 'T' separator
// or a "YYYY-MM-DD " prefix.
func isTimestamp(s string) bool {
	if strings.ContainsRune(s, 'T') {
		return true
	}
	return len(s) > 10 && s[4] == '-' && s[7] == '-' && s[10] == ' '
}

func parseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
