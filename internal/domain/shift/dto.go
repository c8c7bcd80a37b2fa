package shift

import (
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/validator"
)

// ========================================
// REQUEST DTOs
// ========================================

type MonthCalendarRequest struct {
	UserCode  string `json:"-"`
	Year      int    `json:"year"`  // 0 = current year
	Month     int    `json:"month"` // 0 = current month
	HoursMode string `json:"hours_mode"`
}

func (r *MonthCalendarRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year != 0 && (r.Year < 1970 || r.Year > 9999) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1970 and 9999",
		})
	}

	if r.Month < 0 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if r.HoursMode == "" {
		r.HoursMode = string(HoursScheduled)
	} else if !validator.IsInSlice(r.HoursMode, HoursModeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_mode",
			Message: "hours_mode must be 'scheduled' or 'actual'",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WeekRequest struct {
	UserCode  string `json:"-"`
	Date      string `json:"date"` // YYYY-MM-DD, empty = today
	HoursMode string `json:"hours_mode"`
}

func (r *WeekRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: ErrInvalidDateFormat.Error(),
			})
		}
	}

	if r.HoursMode == "" {
		r.HoursMode = string(HoursScheduled)
	} else if !validator.IsInSlice(r.HoursMode, HoursModeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_mode",
			Message: "hours_mode must be 'scheduled' or 'actual'",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ActionableShiftRequest struct {
	UserCode string `json:"-"`
	Date     string `json:"date"` // YYYY-MM-DD, empty = today
}

func (r *ActionableShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: ErrInvalidDateFormat.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RESPONSE DTOs
// ========================================

type ShiftResponse struct {
	Date           string   `json:"date"`
	ShiftCode      string   `json:"shift_code"`
	ShiftName      string   `json:"shift_name"`
	ScheduledStart string   `json:"scheduled_start"`
	ScheduledEnd   string   `json:"scheduled_end"`
	CheckInTime    *string  `json:"check_in_time,omitempty"`
	CheckOutTime   *string  `json:"check_out_time,omitempty"`
	Status         string   `json:"status"`
	StatusLabel    string   `json:"status_label"`
	ScheduledHours float64  `json:"scheduled_hours"`
	ActualHours    *float64 `json:"actual_hours,omitempty"`
	LateMinutes    int      `json:"late_minutes"`
	LateLabel      *string  `json:"late_label,omitempty"`
}

type DayResponse struct {
	Day               int             `json:"day"`
	Date              *string         `json:"date,omitempty"`
	IsPlaceholder     bool            `json:"is_placeholder"`
	Status            string          `json:"status,omitempty"`
	StatusLabel       string          `json:"status_label,omitempty"`
	Color             string          `json:"color,omitempty"`
	TotalCountedHours float64         `json:"total_counted_hours"`
	ShiftCount        int             `json:"shift_count"`
	LateMinutes       int             `json:"late_minutes"`
	LateLabel         *string         `json:"late_label,omitempty"`
	Shifts            []ShiftResponse `json:"shifts,omitempty"`
}

type SummaryResponse struct {
	StatusCounts      map[string]int `json:"status_counts"`
	TotalCountedHours float64        `json:"total_counted_hours"`
	TotalLateMinutes  int            `json:"total_late_minutes"`
	TotalLateLabel    *string        `json:"total_late_label,omitempty"`
	LateDays          int            `json:"late_days"`
	ShiftCount        int            `json:"shift_count"`
}

type MonthCalendarResponse struct {
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	HoursMode string          `json:"hours_mode"`
	Weeks     [][]DayResponse `json:"weeks"`
	Summary   SummaryResponse `json:"summary"`
}

type WeekResponse struct {
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	HoursMode string          `json:"hours_mode"`
	Days      []DayResponse   `json:"days"`
	Summary   SummaryResponse `json:"summary"`
}
