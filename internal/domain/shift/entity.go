package shift

import (
	"strings"
	"time"
)

// ShiftRecord is one scheduled work period for one employee on one date.
// Records are delivered read-only by the schedule source; the engine only
// derives new values from copies.
type ShiftRecord struct {
	UserCode       string
	Date           time.Time
	ShiftCode      string
	ShiftName      string
	ScheduledStart string // HH:MM
	ScheduledEnd   string // HH:MM
	CheckInTime    *string
	CheckOutTime   *string
	Status         ShiftStatus
	ScheduledHours float64
	ActualHours    *float64 // set only once both check-in and check-out exist
}

type ShiftStatus string

const (
	ShiftStatusNotStarted     ShiftStatus = "NOT_STARTED"
	ShiftStatusActive         ShiftStatus = "ACTIVE"
	ShiftStatusEnded          ShiftStatus = "ENDED"
	ShiftStatusAbsent         ShiftStatus = "ABSENT"
	ShiftStatusForgotCheckout ShiftStatus = "FORGOT_CHECKOUT"
	ShiftStatusUnknown        ShiftStatus = "UNKNOWN"
)

var ShiftStatusValues = []string{
	string(ShiftStatusNotStarted),
	string(ShiftStatusActive),
	string(ShiftStatusEnded),
	string(ShiftStatusAbsent),
	string(ShiftStatusForgotCheckout),
}

// ParseShiftStatus maps a raw status string onto the closed set.
// Anything unrecognised becomes ShiftStatusUnknown.
func ParseShiftStatus(raw string) ShiftStatus {
	switch s := ShiftStatus(strings.ToUpper(strings.TrimSpace(raw))); s {
	case ShiftStatusNotStarted, ShiftStatusActive, ShiftStatusEnded,
		ShiftStatusAbsent, ShiftStatusForgotCheckout:
		return s
	default:
		return ShiftStatusUnknown
	}
}

// DayStatus is the reconciled status of one calendar date.
type DayStatus string

const (
	DayStatusNone       DayStatus = "" // placeholder cell, renders blank
	DayStatusNotStarted DayStatus = "NOT_STARTED"
	DayStatusActive     DayStatus = "ACTIVE"
	DayStatusEnded      DayStatus = "ENDED"
	DayStatusAbsent     DayStatus = "ABSENT"
	DayStatusWeekend    DayStatus = "WEEKEND"
)

// DayStatusValues lists the statuses a real (non-placeholder) day can resolve to.
var DayStatusValues = []DayStatus{
	DayStatusNotStarted,
	DayStatusActive,
	DayStatusEnded,
	DayStatusAbsent,
	DayStatusWeekend,
}

// DayAggregate is the derived view of one calendar date. Day 0 marks a
// grid placeholder which carries no status, hours or shifts.
type DayAggregate struct {
	Day               int
	Date              *time.Time
	Shifts            []ShiftRecord
	Status            DayStatus
	TotalCountedHours float64
	ShiftCount        int
	LateMinutes       int
}

func (d DayAggregate) IsPlaceholder() bool {
	return d.Day == 0
}

// Placeholder returns an empty grid cell.
func Placeholder() DayAggregate {
	return DayAggregate{Status: DayStatusNone}
}

const DaysPerWeek = 7

// CalendarGrid is one visible month laid out Monday..Sunday.
type CalendarGrid struct {
	Year  int
	Month time.Month
	Rows  [][DaysPerWeek]DayAggregate
}

// Cells flattens the grid row by row.
func (g CalendarGrid) Cells() []DayAggregate {
	cells := make([]DayAggregate, 0, len(g.Rows)*DaysPerWeek)
	for _, row := range g.Rows {
		cells = append(cells, row[:]...)
	}
	return cells
}

// Summary aggregates a run of days. Placeholders never contribute.
type Summary struct {
	StatusCounts      map[DayStatus]int
	TotalCountedHours float64
	TotalLateMinutes  int
	LateDays          int
	ShiftCount        int
}

// HoursMode selects which hour figure the working-hours aggregator sums.
type HoursMode string

const (
	HoursScheduled HoursMode = "scheduled"
	HoursActual    HoursMode = "actual"
)

var HoursModeValues = []string{
	string(HoursScheduled),
	string(HoursActual),
}
