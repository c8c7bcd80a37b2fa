package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-schedule-engine/internal/domain/shift"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/validator"
)

type ScheduleHandler interface {
	GetMyCalendar(w http.ResponseWriter, r *http.Request)
	GetMyWeek(w http.ResponseWriter, r *http.Request)
	GetMyActionableShift(w http.ResponseWriter, r *http.Request)
	GetMyCachedActionableShift(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService shift.ScheduleService
}

func NewScheduleHandler(scheduleService shift.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// GetMyCalendar implements ScheduleHandler.
// GET /schedules/my/calendar?year=2024&month=5&hours=actual
func (h *scheduleHandlerImpl) GetMyCalendar(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	var errs validator.ValidationErrors
	year, ok := queryInt(params.Get("year"))
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a number"})
	}
	month, ok := queryInt(params.Get("month"))
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be a number"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	req := shift.MonthCalendarRequest{
		Year:      year,
		Month:     month,
		HoursMode: params.Get("hours"),
	}

	result, err := h.scheduleService.GetMonthCalendar(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyWeek implements ScheduleHandler.
// GET /schedules/my/week?date=2024-05-15&hours=scheduled
func (h *scheduleHandlerImpl) GetMyWeek(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	req := shift.WeekRequest{
		Date:      params.Get("date"),
		HoursMode: params.Get("hours"),
	}

	result, err := h.scheduleService.GetWeek(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyActionableShift implements ScheduleHandler.
// GET /schedules/my/actionable?date=2024-05-15
func (h *scheduleHandlerImpl) GetMyActionableShift(w http.ResponseWriter, r *http.Request) {
	req := shift.ActionableShiftRequest{Date: r.URL.Query().Get("date")}

	result, err := h.scheduleService.GetActionableShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyCachedActionableShift implements ScheduleHandler.
// GET /schedules/my/actionable/cached?date=2024-05-15
func (h *scheduleHandlerImpl) GetMyCachedActionableShift(w http.ResponseWriter, r *http.Request) {
	req := shift.ActionableShiftRequest{Date: r.URL.Query().Get("date")}

	result, err := h.scheduleService.GetCachedActionableShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// queryInt parses an optional integer query parameter; empty means 0.
func queryInt(value string) (int, bool) {
	if value == "" {
		return 0, true
	}
	n, err := strconv.Atoi(value)
	return n, err == nil
}
