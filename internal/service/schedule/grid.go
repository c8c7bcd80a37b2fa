package schedule

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-schedule-engine/internal/domain/shift"
)

// BuildMonthGrid lays a month out in Monday-first rows of seven cells.
//
// days is expected to hold one aggregate per day of the month (Day = 1..n).
// Entries with an out-of-range Day are dropped and missing days are rebuilt
// empty, so a short or malformed slice never breaks the layout. The first
// entry wins when a day appears twice.
func (a *Aggregator) BuildMonthGrid(year int, month time.Month, days []shift.DayAggregate) (shift.CalendarGrid, error) {
	if month < time.January || month > time.December {
		return shift.CalendarGrid{}, fmt.Errorf("build grid for month %d: %w", month, shift.ErrInvalidMonth)
	}

	n := a.cal.DaysInMonth(year, month)
	first := a.cal.StartOfMonth(year, month)

	byDay := make([]*shift.DayAggregate, n+1)
	for i := range days {
		d := days[i]
		if d.Day < 1 || d.Day > n || byDay[d.Day] != nil {
			continue
		}
		byDay[d.Day] = &d
	}

	leading := a.cal.WeekdayIndex(first)
	total := leading + n
	if rem := total % shift.DaysPerWeek; rem != 0 {
		total += shift.DaysPerWeek - rem
	}

	cells := make([]shift.DayAggregate, 0, total)
	for i := 0; i < leading; i++ {
		cells = append(cells, shift.Placeholder())
	}
	for day := 1; day <= n; day++ {
		if byDay[day] != nil {
			cells = append(cells, *byDay[day])
			continue
		}
		cells = append(cells, a.BuildDay(a.cal.AddDays(first, day-1), nil, shift.HoursScheduled))
	}
	for len(cells) < total {
		cells = append(cells, shift.Placeholder())
	}

	rows := make([][shift.DaysPerWeek]shift.DayAggregate, 0, total/shift.DaysPerWeek)
	for i := 0; i < total; i += shift.DaysPerWeek {
		var row [shift.DaysPerWeek]shift.DayAggregate
		copy(row[:], cells[i:i+shift.DaysPerWeek])
		rows = append(rows, row)
	}

	return shift.CalendarGrid{
		Year:  year,
		Month: month,
		Rows:  rows,
	}, nil
}
