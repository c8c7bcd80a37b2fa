package schedule

import (
	"fmt"
	"time"
)

// ComputeLateMinutes returns how many minutes checkIn is past scheduledStart.
// It is 0 when either input is missing or unreadable, and never negative.
func ComputeLateMinutes(checkIn, scheduledStart *string, loc *time.Location) int {
	if checkIn == nil || scheduledStart == nil {
		return 0
	}
	in, ok := ParseMinutes(*checkIn, loc)
	if !ok {
		return 0
	}
	start, ok := ParseMinutes(*scheduledStart, loc)
	if !ok {
		return 0
	}
	return max(0, in-start)
}

// FormatLateness renders minutes as "Hh Mm" from one hour up, "Mm" below.
// ok is false for zero (or negative) lateness so callers can omit the field.
func FormatLateness(minutes int) (label string, ok bool) {
	if minutes <= 0 {
		return "", false
	}
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60), true
	}
	return fmt.Sprintf("%dm", minutes), true
}
