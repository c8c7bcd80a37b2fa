package shift

import "errors"

var (
	// Engine errors
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// Lookup errors
	ErrNoShiftsForDate = errors.New("no shifts scheduled for this date")
	ErrCacheMiss       = errors.New("actionable shift not cached for this date")

	// Validation errors
	ErrInvalidDateFormat   = errors.New("invalid date format, use YYYY-MM-DD")
	ErrRangeTooLarge       = errors.New("requested date range is too large")
	ErrMissingEmployeeCode = errors.New("employee_code claim is missing or invalid")
)
