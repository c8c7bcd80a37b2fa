package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-schedule-engine/internal/domain/shift"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/calendar"
)

const keyPrefix = "schedule:actionable"

// Key builds the cache key of a user's actionable shift on one date.
func Key(userCode string, date time.Time) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, userCode, date.Format(calendar.DateLayout))
}

// cachedShift is the stored form of a shift.ShiftRecord.
type cachedShift struct {
	UserCode       string   `json:"user_code"`
	Date           string   `json:"date"`
	ShiftCode      string   `json:"shift_code"`
	ShiftName      string   `json:"shift_name"`
	ScheduledStart string   `json:"scheduled_start"`
	ScheduledEnd   string   `json:"scheduled_end"`
	CheckInTime    *string  `json:"check_in_time,omitempty"`
	CheckOutTime   *string  `json:"check_out_time,omitempty"`
	Status         string   `json:"status"`
	ScheduledHours float64  `json:"scheduled_hours"`
	ActualHours    *float64 `json:"actual_hours,omitempty"`
}

func encode(r shift.ShiftRecord) ([]byte, error) {
	return json.Marshal(cachedShift{
		UserCode:       r.UserCode,
		Date:           r.Date.Format(calendar.DateLayout),
		ShiftCode:      r.ShiftCode,
		ShiftName:      r.ShiftName,
		ScheduledStart: r.ScheduledStart,
		ScheduledEnd:   r.ScheduledEnd,
		CheckInTime:    r.CheckInTime,
		CheckOutTime:   r.CheckOutTime,
		Status:         string(r.Status),
		ScheduledHours: r.ScheduledHours,
		ActualHours:    r.ActualHours,
	})
}

func decode(data []byte) (shift.ShiftRecord, error) {
	var c cachedShift
	if err := json.Unmarshal(data, &c); err != nil {
		return shift.ShiftRecord{}, fmt.Errorf("decode cached shift: %w", err)
	}
	date, err := time.Parse(calendar.DateLayout, c.Date)
	if err != nil {
		return shift.ShiftRecord{}, fmt.Errorf("decode cached shift date: %w", err)
	}
	return shift.ShiftRecord{
		UserCode:       c.UserCode,
		Date:           date,
		ShiftCode:      c.ShiftCode,
		ShiftName:      c.ShiftName,
		ScheduledStart: c.ScheduledStart,
		ScheduledEnd:   c.ScheduledEnd,
		CheckInTime:    c.CheckInTime,
		CheckOutTime:   c.CheckOutTime,
		Status:         shift.ParseShiftStatus(c.Status),
		ScheduledHours: c.ScheduledHours,
		ActualHours:    c.ActualHours,
	}, nil
}
