package shift

import (
	"context"
)

// ScheduleService exposes the aggregation engine to the HTTP layer.
type ScheduleService interface {
	// GetMonthCalendar builds the month grid and its summary for the caller.
	GetMonthCalendar(ctx context.Context, req MonthCalendarRequest) (MonthCalendarResponse, error)

	// GetWeek builds the Monday..Sunday week containing the requested date.
	GetWeek(ctx context.Context, req WeekRequest) (WeekResponse, error)

	// GetActionableShift selects the shift a check-in/out should target and caches it.
	GetActionableShift(ctx context.Context, req ActionableShiftRequest) (ShiftResponse, error)

	// GetCachedActionableShift reads a previously selected shift from the cache only.
	GetCachedActionableShift(ctx context.Context, req ActionableShiftRequest) (ShiftResponse, error)
}
