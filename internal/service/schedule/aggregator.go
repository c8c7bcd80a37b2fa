package schedule

import (
	"time"

	"github.com/cmlabs-hris/hris-schedule-engine/internal/domain/shift"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/calendar"
)

// Aggregator turns grouped shift records into day, week and month views.
// It holds no mutable state and is safe for concurrent use.
type Aggregator struct {
	cal     calendar.Calendar
	weekend [shift.DaysPerWeek]bool // Monday-first
}

// NewAggregator builds an aggregator over cal. weekendDays uses ISO numbering
// (1=Monday ... 7=Sunday); out-of-range values are ignored.
func NewAggregator(cal calendar.Calendar, weekendDays []int) *Aggregator {
	a := &Aggregator{cal: cal}
	for _, d := range weekendDays {
		if d >= 1 && d <= shift.DaysPerWeek {
			a.weekend[d-1] = true
		}
	}
	return a
}

func (a *Aggregator) Calendar() calendar.Calendar {
	return a.cal
}

// IsWeekend reports whether date falls on a configured non-working weekday.
func (a *Aggregator) IsWeekend(date time.Time) bool {
	return a.weekend[a.cal.WeekdayIndex(date)]
}

// GroupByDate groups records using the aggregator's location for timestamps.
func (a *Aggregator) GroupByDate(records []shift.ShiftRecord) DateGroups {
	return GroupByDate(records, a.cal.Location())
}

// BuildDay derives the aggregate of one date from its shifts. A weekend date
// without any shift resolves to WEEKEND regardless of anything else.
func (a *Aggregator) BuildDay(date time.Time, shifts []shift.ShiftRecord, mode shift.HoursMode) shift.DayAggregate {
	d := a.cal.Date(date)

	status := ResolveDayStatus(shifts)
	if len(shifts) == 0 && a.IsWeekend(d) {
		status = shift.DayStatusWeekend
	}

	owned := make([]shift.ShiftRecord, len(shifts))
	copy(owned, shifts)

	lateMinutes := 0
	for _, s := range shifts {
		start := s.ScheduledStart
		lateMinutes += ComputeLateMinutes(s.CheckInTime, &start, a.cal.Location())
	}

	return shift.DayAggregate{
		Day:               d.Day(),
		Date:              &d,
		Shifts:            owned,
		Status:            status,
		TotalCountedHours: SumCountedHours(shifts, mode),
		ShiftCount:        len(shifts),
		LateMinutes:       lateMinutes,
	}
}

// BuildMonth returns one aggregate per day of the month, indexed day-1.
func (a *Aggregator) BuildMonth(year int, month time.Month, groups DateGroups, mode shift.HoursMode) []shift.DayAggregate {
	start := a.cal.StartOfMonth(year, month)
	n := a.cal.DaysInMonth(year, month)

	days := make([]shift.DayAggregate, 0, n)
	for i := 0; i < n; i++ {
		date := a.cal.AddDays(start, i)
		days = append(days, a.BuildDay(date, groups.On(a.cal.DateKey(date)), mode))
	}
	return days
}

// BuildWeek returns the Monday..Sunday aggregates of the week containing anchor.
func (a *Aggregator) BuildWeek(anchor time.Time, groups DateGroups, mode shift.HoursMode) []shift.DayAggregate {
	start := a.cal.StartOfWeek(anchor)

	days := make([]shift.DayAggregate, 0, shift.DaysPerWeek)
	for i := 0; i < shift.DaysPerWeek; i++ {
		date := a.cal.AddDays(start, i)
		days = append(days, a.BuildDay(date, groups.On(a.cal.DateKey(date)), mode))
	}
	return days
}

// Summarize totals a run of days, skipping placeholders.
func (a *Aggregator) Summarize(days []shift.DayAggregate) shift.Summary {
	summary := shift.Summary{StatusCounts: make(map[shift.DayStatus]int, len(shift.DayStatusValues))}
	for _, s := range shift.DayStatusValues {
		summary.StatusCounts[s] = 0
	}

	var hours hoursAccumulator
	for _, d := range days {
		if d.IsPlaceholder() {
			continue
		}
		summary.StatusCounts[d.Status]++
		hours.Add(d.TotalCountedHours)
		summary.TotalLateMinutes += d.LateMinutes
		summary.ShiftCount += d.ShiftCount
		if d.LateMinutes > 0 {
			summary.LateDays++
		}
	}
	summary.TotalCountedHours = hours.Total()

	return summary
}
