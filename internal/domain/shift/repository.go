package shift

import (
	"context"
	"time"
)

// ShiftRepository is the schedule source, keyed by (userCode, fromDate, toDate).
type ShiftRepository interface {
	// ListByUserAndRange returns every shift of userCode with from <= date <= to,
	// ordered by date then scheduled start.
	ListByUserAndRange(ctx context.Context, userCode string, from, to time.Time) ([]ShiftRecord, error)

	// GetTimezone returns the IANA zone name of the employee's branch.
	GetTimezone(ctx context.Context, userCode string) (string, error)
}

// ActionableShiftCache stores the shift a check-in/out action should target,
// keyed by user and date, so the action can complete without re-querying.
type ActionableShiftCache interface {
	// Get returns ErrCacheMiss when nothing is stored for the key.
	Get(ctx context.Context, userCode string, date time.Time) (ShiftRecord, error)
	Set(ctx context.Context, userCode string, date time.Time, record ShiftRecord) error
}
