package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-schedule-engine/internal/domain/shift"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

// ListByUserAndRange implements shift.ShiftRepository.
func (s *shiftRepository) ListByUserAndRange(ctx context.Context, userCode string, from, to time.Time) ([]shift.ShiftRecord, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT user_code, work_date, shift_code, shift_name,
			   to_char(scheduled_start, 'HH24:MI'), to_char(scheduled_end, 'HH24:MI'),
			   check_in_at, check_out_at, status,
			   scheduled_hours::float8, actual_hours::float8
		FROM shift_schedules
		WHERE user_code = $1
		  AND work_date BETWEEN $2::date AND $3::date
		ORDER BY work_date ASC, scheduled_start ASC, shift_code ASC
	`

	rows, err := q.Query(ctx, query, userCode, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query shift schedules: %w", err)
	}
	defer rows.Close()

	var records []shift.ShiftRecord
	for rows.Next() {
		var (
			r        shift.ShiftRecord
			checkIn  *time.Time
			checkOut *time.Time
			status   string
		)
		if err := rows.Scan(
			&r.UserCode, &r.Date, &r.ShiftCode, &r.ShiftName,
			&r.ScheduledStart, &r.ScheduledEnd,
			&checkIn, &checkOut, &status,
			&r.ScheduledHours, &r.ActualHours,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift schedule: %w", err)
		}
		r.CheckInTime = timestampPtrToString(checkIn)
		r.CheckOutTime = timestampPtrToString(checkOut)
		r.Status = shift.ParseShiftStatus(status)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift schedules: %w", err)
	}

	return records, nil
}

// GetTimezone implements shift.ShiftRepository.
func (s *shiftRepository) GetTimezone(ctx context.Context, userCode string) (string, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT b.timezone
		FROM employees e
		JOIN branches b ON b.id = e.branch_id
		WHERE e.employee_code = $1
		  AND e.deleted_at IS NULL
		LIMIT 1
	`

	var timezone string
	if err := q.QueryRow(ctx, query, userCode).Scan(&timezone); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("no branch timezone for employee %s: %w", userCode, err)
		}
		return "", fmt.Errorf("failed to get timezone: %w", err)
	}

	return timezone, nil
}

// timestampPtrToString renders a stored instant as RFC3339 so the engine can
// read it back in the employee's zone.
func timestampPtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
