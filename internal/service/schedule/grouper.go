package schedule

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-schedule-engine/internal/domain/shift"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/calendar"
)

// DateGroups holds shift records keyed by YYYY-MM-DD.
type DateGroups map[string][]shift.ShiftRecord

// GroupByDate buckets records by calendar date. Within a date, shifts are
// ordered by scheduled start; shifts whose start cannot be read go last and
// ties keep their input order. The input slice is left untouched.
func GroupByDate(records []shift.ShiftRecord, loc *time.Location) DateGroups {
	groups := make(DateGroups)
	for _, r := range records {
		key := r.Date.Format(calendar.DateLayout)
		groups[key] = append(groups[key], r)
	}

	for key, shifts := range groups {
		sort.SliceStable(shifts, func(i, j int) bool {
			return startSortKey(shifts[i], loc) < startSortKey(shifts[j], loc)
		})
		groups[key] = shifts
	}

	return groups
}

func startSortKey(r shift.ShiftRecord, loc *time.Location) int {
	m, ok := ParseMinutes(r.ScheduledStart, loc)
	if !ok {
		return minutesPerDay
	}
	return m
}

// On returns the shifts of one date, or nil.
func (g DateGroups) On(key string) []shift.ShiftRecord {
	return g[key]
}

// Dates returns the date keys in ascending order.
func (g DateGroups) Dates() []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
