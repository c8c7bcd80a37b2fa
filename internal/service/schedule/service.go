package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/hris-schedule-engine/internal/domain/shift"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

var dayStatusColors = map[shift.DayStatus]string{
	shift.DayStatusEnded:      "#4CAF50",
	shift.DayStatusActive:     "#2196F3",
	shift.DayStatusNotStarted: "#9E9E9E",
	shift.DayStatusAbsent:     "#F44336",
	shift.DayStatusWeekend:    "#FFC107",
}

// Options configures the schedule service. Zero values fall back to UTC,
// a Saturday/Sunday weekend, no range limit and time.Now.
type Options struct {
	DefaultLocation *time.Location
	WeekendDays     []int
	MaxRangeDays    int
	Now             func() time.Time
}

type scheduleServiceImpl struct {
	shiftRepo  shift.ShiftRepository
	cache      shift.ActionableShiftCache
	translator *i18n.Translator
	opts       Options
}

// GetMonthCalendar implements shift.ScheduleService.
func (s *scheduleServiceImpl) GetMonthCalendar(ctx context.Context, req shift.MonthCalendarRequest) (shift.MonthCalendarResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.MonthCalendarResponse{}, err
	}

	userCode, err := s.userCode(ctx, req.UserCode)
	if err != nil {
		return shift.MonthCalendarResponse{}, err
	}

	agg := s.aggregatorFor(ctx, userCode)
	cal := agg.Calendar()

	today := s.today(cal)
	year, month := req.Year, time.Month(req.Month)
	if year == 0 {
		year = today.Year()
	}
	if month == 0 {
		month = today.Month()
	}

	records, err := s.loadRange(ctx, userCode, cal.StartOfMonth(year, month), cal.EndOfMonth(year, month))
	if err != nil {
		return shift.MonthCalendarResponse{}, err
	}

	mode := shift.HoursMode(req.HoursMode)
	days := agg.BuildMonth(year, month, agg.GroupByDate(records), mode)

	grid, err := agg.BuildMonthGrid(year, month, days)
	if err != nil {
		return shift.MonthCalendarResponse{}, err
	}

	locale := i18n.LocaleFromContext(ctx)
	weeks := make([][]shift.DayResponse, 0, len(grid.Rows))
	for _, row := range grid.Rows {
		week := make([]shift.DayResponse, 0, shift.DaysPerWeek)
		for _, cell := range row {
			week = append(week, s.mapDayToResponse(cell, cal, locale))
		}
		weeks = append(weeks, week)
	}

	return shift.MonthCalendarResponse{
		Year:      year,
		Month:     int(month),
		HoursMode: string(mode),
		Weeks:     weeks,
		Summary:   s.mapSummaryToResponse(agg.Summarize(days)),
	}, nil
}

// GetWeek implements shift.ScheduleService.
func (s *scheduleServiceImpl) GetWeek(ctx context.Context, req shift.WeekRequest) (shift.WeekResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.WeekResponse{}, err
	}

	userCode, err := s.userCode(ctx, req.UserCode)
	if err != nil {
		return shift.WeekResponse{}, err
	}

	agg := s.aggregatorFor(ctx, userCode)
	cal := agg.Calendar()

	anchor, err := s.dateOrToday(cal, req.Date)
	if err != nil {
		return shift.WeekResponse{}, err
	}

	start := cal.StartOfWeek(anchor)
	end := cal.AddDays(start, shift.DaysPerWeek-1)

	records, err := s.loadRange(ctx, userCode, start, end)
	if err != nil {
		return shift.WeekResponse{}, err
	}

	mode := shift.HoursMode(req.HoursMode)
	days := agg.BuildWeek(anchor, agg.GroupByDate(records), mode)

	locale := i18n.LocaleFromContext(ctx)
	dayResponses := make([]shift.DayResponse, 0, len(days))
	for _, d := range days {
		dayResponses = append(dayResponses, s.mapDayToResponse(d, cal, locale))
	}

	return shift.WeekResponse{
		StartDate: cal.DateKey(start),
		EndDate:   cal.DateKey(end),
		HoursMode: string(mode),
		Days:      dayResponses,
		Summary:   s.mapSummaryToResponse(agg.Summarize(days)),
	}, nil
}

// GetActionableShift implements shift.ScheduleService.
func (s *scheduleServiceImpl) GetActionableShift(ctx context.Context, req shift.ActionableShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	userCode, err := s.userCode(ctx, req.UserCode)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	agg := s.aggregatorFor(ctx, userCode)
	cal := agg.Calendar()

	date, err := s.dateOrToday(cal, req.Date)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	records, err := s.loadRange(ctx, userCode, date, date)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	selected, ok := SelectActionableShift(agg.GroupByDate(records).On(cal.DateKey(date)))
	if !ok {
		return shift.ShiftResponse{}, shift.ErrNoShiftsForDate
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userCode, date, selected); err != nil {
			slog.Warn("failed to cache actionable shift",
				"employee_code", userCode,
				"date", cal.DateKey(date),
				"error", err,
			)
		}
	}

	return s.mapShiftToResponse(selected, cal, i18n.LocaleFromContext(ctx)), nil
}

// GetCachedActionableShift implements shift.ScheduleService.
func (s *scheduleServiceImpl) GetCachedActionableShift(ctx context.Context, req shift.ActionableShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	userCode, err := s.userCode(ctx, req.UserCode)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if s.cache == nil {
		return shift.ShiftResponse{}, shift.ErrCacheMiss
	}

	agg := s.aggregatorFor(ctx, userCode)
	cal := agg.Calendar()

	date, err := s.dateOrToday(cal, req.Date)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	cached, err := s.cache.Get(ctx, userCode, date)
	if err != nil {
		if errors.Is(err, shift.ErrCacheMiss) {
			return shift.ShiftResponse{}, shift.ErrCacheMiss
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to read actionable shift cache: %w", err)
	}

	return s.mapShiftToResponse(cached, cal, i18n.LocaleFromContext(ctx)), nil
}

func NewScheduleService(
	shiftRepo shift.ShiftRepository,
	cache shift.ActionableShiftCache,
	translator *i18n.Translator,
	opts Options,
) shift.ScheduleService {
	if opts.DefaultLocation == nil {
		opts.DefaultLocation = time.UTC
	}
	if len(opts.WeekendDays) == 0 {
		opts.WeekendDays = []int{6, 7}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &scheduleServiceImpl{
		shiftRepo:  shiftRepo,
		cache:      cache,
		translator: translator,
		opts:       opts,
	}
}

// userCode prefers an explicit code and otherwise reads employee_code from the JWT.
func (s *scheduleServiceImpl) userCode(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeCode, ok := claims["employee_code"].(string)
	if !ok || validator.IsEmpty(employeeCode) {
		return "", shift.ErrMissingEmployeeCode
	}
	return employeeCode, nil
}

// aggregatorFor builds an aggregator in the employee's branch timezone.
func (s *scheduleServiceImpl) aggregatorFor(ctx context.Context, userCode string) *Aggregator {
	loc := s.opts.DefaultLocation

	timezoneStr, err := s.shiftRepo.GetTimezone(ctx, userCode)
	if err != nil {
		slog.Debug("using default timezone",
			"employee_code", userCode,
			"timezone", loc.String(),
			"error", err,
		)
	} else if tz, err := time.LoadLocation(timezoneStr); err == nil {
		loc = tz
	} else {
		slog.Warn("invalid branch timezone, using default",
			"employee_code", userCode,
			"timezone", timezoneStr,
		)
	}

	return NewAggregator(calendar.New(loc), s.opts.WeekendDays)
}

func (s *scheduleServiceImpl) today(cal calendar.Calendar) time.Time {
	return cal.Date(s.opts.Now().In(cal.Location()))
}

func (s *scheduleServiceImpl) dateOrToday(cal calendar.Calendar, value string) (time.Time, error) {
	if value == "" {
		return s.today(cal), nil
	}
	date, err := cal.ParseDate(value)
	if err != nil {
		return time.Time{}, shift.ErrInvalidDateFormat
	}
	return date, nil
}

// loadRange fetches the inclusive [from, to] range after checking it against MaxRangeDays.
func (s *scheduleServiceImpl) loadRange(ctx context.Context, userCode string, from, to time.Time) ([]shift.ShiftRecord, error) {
	days := int(math.Round(to.Sub(from).Hours()/24)) + 1
	if s.opts.MaxRangeDays > 0 && days > s.opts.MaxRangeDays {
		return nil, shift.ErrRangeTooLarge
	}

	records, err := s.shiftRepo.ListByUserAndRange(ctx, userCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift schedules: %w", err)
	}
	return records, nil
}

func (s *scheduleServiceImpl) label(locale, messageID, fallback string) string {
	if s.translator == nil {
		return fallback
	}
	return s.translator.T(locale, messageID)
}

func (s *scheduleServiceImpl) mapDayToResponse(d shift.DayAggregate, cal calendar.Calendar, locale string) shift.DayResponse {
	if d.IsPlaceholder() {
		return shift.DayResponse{IsPlaceholder: true}
	}

	resp := shift.DayResponse{
		Day:               d.Day,
		Status:            string(d.Status),
		StatusLabel:       s.label(locale, "day_status_"+string(d.Status), string(d.Status)),
		Color:             dayStatusColors[d.Status],
		TotalCountedHours: d.TotalCountedHours,
		ShiftCount:        d.ShiftCount,
		LateMinutes:       d.LateMinutes,
	}
	if d.Date != nil {
		key := cal.DateKey(*d.Date)
		resp.Date = &key
	}
	if label, ok := FormatLateness(d.LateMinutes); ok {
		resp.LateLabel = &label
	}
	for _, sh := range d.Shifts {
		resp.Shifts = append(resp.Shifts, s.mapShiftToResponse(sh, cal, locale))
	}
	return resp
}

func (s *scheduleServiceImpl) mapShiftToResponse(r shift.ShiftRecord, cal calendar.Calendar, locale string) shift.ShiftResponse {
	start := r.ScheduledStart
	lateMinutes := ComputeLateMinutes(r.CheckInTime, &start, cal.Location())

	resp := shift.ShiftResponse{
		Date:           cal.DateKey(r.Date),
		ShiftCode:      r.ShiftCode,
		ShiftName:      r.ShiftName,
		ScheduledStart: r.ScheduledStart,
		ScheduledEnd:   r.ScheduledEnd,
		CheckInTime:    r.CheckInTime,
		CheckOutTime:   r.CheckOutTime,
		Status:         string(r.Status),
		StatusLabel:    s.label(locale, "shift_status_"+string(r.Status), string(r.Status)),
		ScheduledHours: r.ScheduledHours,
		ActualHours:    r.ActualHours,
		LateMinutes:    lateMinutes,
	}
	if label, ok := FormatLateness(lateMinutes); ok {
		resp.LateLabel = &label
	}
	return resp
}

func (s *scheduleServiceImpl) mapSummaryToResponse(sum shift.Summary) shift.SummaryResponse {
	counts := make(map[string]int, len(sum.StatusCounts))
	for status, n := range sum.StatusCounts {
		counts[string(status)] = n
	}

	resp := shift.SummaryResponse{
		StatusCounts:      counts,
		TotalCountedHours: sum.TotalCountedHours,
		TotalLateMinutes:  sum.TotalLateMinutes,
		LateDays:          sum.LateDays,
		ShiftCount:        sum.ShiftCount,
	}
	if label, ok := FormatLateness(sum.TotalLateMinutes); ok {
		resp.TotalLateLabel = &label
	}
	return resp
}
