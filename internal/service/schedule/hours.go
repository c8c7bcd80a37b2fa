package schedule

import (
	"math"

	"github.com/cmlabs-hris/hris-schedule-engine/internal/domain/shift"
)

// countsTowardHours reports whether a shift's hours are credited.
// A forgotten checkout still credits the scheduled hours.
func countsTowardHours(status shift.ShiftStatus) bool {
	return status == shift.ShiftStatusEnded || status == shift.ShiftStatusForgotCheckout
}

// SumCountedHours totals the credited hours of a day's shifts, rounded once to
// two decimals. In HoursActual mode a shift without actual hours falls back to
// its scheduled hours.
func SumCountedHours(shifts []shift.ShiftRecord, mode shift.HoursMode) float64 {
	var acc hoursAccumulator
	for _, s := range shifts {
		if !countsTowardHours(s.Status) {
			continue
		}
		hours := s.ScheduledHours
		if mode == shift.HoursActual && s.ActualHours != nil {
			hours = *s.ActualHours
		}
		acc.Add(hours)
	}
	return acc.Total()
}

// hoursAccumulator is a Neumaier compensated sum. Negative, NaN and infinite
// inputs are ignored so the total stays non-negative and finite.
type hoursAccumulator struct {
	sum float64
	c   float64
}

func (a *hoursAccumulator) Add(v float64) {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	t := a.sum + v
	if math.Abs(a.sum) >= math.Abs(v) {
		a.c += (a.sum - t) + v
	} else {
		a.c += (v - t) + a.sum
	}
	a.sum = t
}

// Total returns the sum rounded to two decimals.
func (a *hoursAccumulator) Total() float64 {
	return roundHours(a.sum + a.c)
}

func roundHours(v float64) float64 {
	return math.Round(v*100) / 100
}
