package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-schedule-engine/internal/domain/shift"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/cache"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShiftRepo struct {
	records  []shift.ShiftRecord
	timezone string
	tzErr    error
	listErr  error

	calls []struct{ from, to string }
}

func (f *fakeShiftRepo) ListByUserAndRange(ctx context.Context, userCode string, from, to time.Time) ([]shift.ShiftRecord, error) {
	f.calls = append(f.calls, struct{ from, to string }{from.Format(calendar.DateLayout), to.Format(calendar.DateLayout)})
	if f.listErr != nil {
		return nil, f.listErr
	}

	lo, hi := from.Format(calendar.DateLayout), to.Format(calendar.DateLayout)
	var out []shift.ShiftRecord
	for _, r := range f.records {
		key := r.Date.Format(calendar.DateLayout)
		if r.UserCode == userCode && key >= lo && key <= hi {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) GetTimezone(ctx context.Context, userCode string) (string, error) {
	if f.tzErr != nil {
		return "", f.tzErr
	}
	return f.timezone, nil
}

type failingCache struct{}

func (failingCache) Get(ctx context.Context, userCode string, date time.Time) (shift.ShiftRecord, error) {
	return shift.ShiftRecord{}, errors.New("connection refused")
}

func (failingCache) Set(ctx context.Context, userCode string, date time.Time, record shift.ShiftRecord) error {
	return errors.New("connection refused")
}

func novemberRecords() []shift.ShiftRecord {
	ended := newShift("2023-11-01", "MORNING", "08:00", shift.ShiftStatusEnded, 8)
	ended.CheckInTime = strPtr("2023-11-01T08:15:00Z")
	ended.UserCode = "2023-0007"

	absentA := newShift("2023-11-02", "MORNING", "08:00", shift.ShiftStatusAbsent, 4)
	absentA.UserCode = "2023-0007"
	absentB := newShift("2023-11-02", "AFTERNOON", "13:00", shift.ShiftStatusAbsent, 4)
	absentB.UserCode = "2023-0007"

	return []shift.ShiftRecord{absentB, ended, absentA}
}

func newTestService(t *testing.T, repo shift.ShiftRepository, c shift.ActionableShiftCache, opts Options) shift.ScheduleService {
	t.Helper()
	translator, err := i18n.New("en")
	require.NoError(t, err)
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Date(2023, 11, 20, 10, 0, 0, 0, time.UTC) }
	}
	return NewScheduleService(repo, c, translator, opts)
}

func TestScheduleService_GetMonthCalendar(t *testing.T) {
	repo := &fakeShiftRepo{records: novemberRecords(), timezone: "UTC"}
	svc := newTestService(t, repo, nil, Options{})

	resp, err := svc.GetMonthCalendar(context.Background(), shift.MonthCalendarRequest{
		UserCode: "2023-0007",
		Year:     2023,
		Month:    11,
	})
	require.NoError(t, err)

	assert.Equal(t, 2023, resp.Year)
	assert.Equal(t, 11, resp.Month)
	assert.Equal(t, "scheduled", resp.HoursMode)
	require.Len(t, resp.Weeks, 5)
	for _, week := range resp.Weeks {
		assert.Len(t, week, 7)
	}

	assert.True(t, resp.Weeks[0][0].IsPlaceholder)
	assert.True(t, resp.Weeks[0][1].IsPlaceholder)
	assert.Empty(t, resp.Weeks[0][0].Color)

	first := resp.Weeks[0][2]
	assert.Equal(t, 1, first.Day)
	require.NotNil(t, first.Date)
	assert.Equal(t, "2023-11-01", *first.Date)
	assert.Equal(t, "ENDED", first.Status)
	assert.Equal(t, "Completed", first.StatusLabel)
	assert.Equal(t, "#4CAF50", first.Color)
	assert.Equal(t, 8.0, first.TotalCountedHours)
	assert.Equal(t, 15, first.LateMinutes)
	require.NotNil(t, first.LateLabel)
	assert.Equal(t, "15m", *first.LateLabel)
	require.Len(t, first.Shifts, 1)
	assert.Equal(t, "Checked out", first.Shifts[0].StatusLabel)

	second := resp.Weeks[0][3]
	assert.Equal(t, "ABSENT", second.Status)
	assert.Equal(t, 0.0, second.TotalCountedHours)
	require.Len(t, second.Shifts, 2)
	assert.Equal(t, "MORNING", second.Shifts[0].ShiftCode)
	assert.Equal(t, "AFTERNOON", second.Shifts[1].ShiftCode)

	saturday := resp.Weeks[0][5]
	assert.Equal(t, 4, saturday.Day)
	assert.Equal(t, "WEEKEND", saturday.Status)
	assert.Equal(t, "#FFC107", saturday.Color)

	last := resp.Weeks[4]
	assert.Equal(t, 30, last[3].Day)
	assert.True(t, last[4].IsPlaceholder)
	assert.True(t, last[6].IsPlaceholder)

	assert.Equal(t, 1, resp.Summary.StatusCounts["ENDED"])
	assert.Equal(t, 1, resp.Summary.StatusCounts["ABSENT"])
	assert.Equal(t, 8, resp.Summary.StatusCounts["WEEKEND"])
	assert.Equal(t, 20, resp.Summary.StatusCounts["NOT_STARTED"])
	assert.Equal(t, 0, resp.Summary.StatusCounts["ACTIVE"])
	assert.Equal(t, 8.0, resp.Summary.TotalCountedHours)
	assert.Equal(t, 15, resp.Summary.TotalLateMinutes)
	assert.Equal(t, 1, resp.Summary.LateDays)
	assert.Equal(t, 3, resp.Summary.ShiftCount)

	require.Len(t, repo.calls, 1)
	assert.Equal(t, "2023-11-01", repo.calls[0].from)
	assert.Equal(t, "2023-11-30", repo.calls[0].to)
}

func TestScheduleService_GetMonthCalendar_DefaultsToCurrentMonth(t *testing.T) {
	repo := &fakeShiftRepo{tzErr: errors.New("no rows")}
	svc := newTestService(t, repo, nil, Options{DefaultLocation: jakarta()})

	resp, err := svc.GetMonthCalendar(context.Background(), shift.MonthCalendarRequest{UserCode: "2023-0007"})
	require.NoError(t, err)
	assert.Equal(t, 2023, resp.Year)
	assert.Equal(t, 11, resp.Month)
}

func TestScheduleService_GetMonthCalendar_Localised(t *testing.T) {
	repo := &fakeShiftRepo{records: novemberRecords(), timezone: "UTC"}
	svc := newTestService(t, repo, nil, Options{})

	ctx := i18n.WithLocale(context.Background(), "id")
	resp, err := svc.GetMonthCalendar(ctx, shift.MonthCalendarRequest{UserCode: "2023-0007", Year: 2023, Month: 11})
	require.NoError(t, err)
	assert.Equal(t, "Selesai", resp.Weeks[0][2].StatusLabel)
	assert.Equal(t, "Libur", resp.Weeks[0][5].StatusLabel)
}

func TestScheduleService_GetMonthCalendar_Validation(t *testing.T) {
	svc := newTestService(t, &fakeShiftRepo{}, nil, Options{})

	_, err := svc.GetMonthCalendar(context.Background(), shift.MonthCalendarRequest{UserCode: "2023-0007", Year: 2023, Month: 13})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "month", verrs[0].Field)

	_, err = svc.GetMonthCalendar(context.Background(), shift.MonthCalendarRequest{UserCode: "2023-0007", HoursMode: "overtime"})
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "hours_mode", verrs[0].Field)
}

func TestScheduleService_GetMonthCalendar_RangeTooLarge(t *testing.T) {
	repo := &fakeShiftRepo{}
	svc := newTestService(t, repo, nil, Options{MaxRangeDays: 7})

	_, err := svc.GetMonthCalendar(context.Background(), shift.MonthCalendarRequest{UserCode: "2023-0007", Year: 2023, Month: 11})
	assert.ErrorIs(t, err, shift.ErrRangeTooLarge)
	assert.Empty(t, repo.calls)
}

func TestScheduleService_GetMonthCalendar_RepositoryError(t *testing.T) {
	boom := errors.New("db down")
	svc := newTestService(t, &fakeShiftRepo{listErr: boom}, nil, Options{})

	_, err := svc.GetMonthCalendar(context.Background(), shift.MonthCalendarRequest{UserCode: "2023-0007", Year: 2023, Month: 11})
	assert.ErrorIs(t, err, boom)
}

func TestScheduleService_GetMonthCalendar_ActualHours(t *testing.T) {
	ended := newShift("2023-11-01", "MORNING", "08:00", shift.ShiftStatusEnded, 8)
	ended.UserCode = "2023-0007"
	ended.ActualHours = floatPtr(6.5)

	svc := newTestService(t, &fakeShiftRepo{records: []shift.ShiftRecord{ended}}, nil, Options{})

	resp, err := svc.GetMonthCalendar(context.Background(), shift.MonthCalendarRequest{
		UserCode:  "2023-0007",
		Year:      2023,
		Month:     11,
		HoursMode: "actual",
	})
	require.NoError(t, err)
	assert.Equal(t, "actual", resp.HoursMode)
	assert.Equal(t, 6.5, resp.Weeks[0][2].TotalCountedHours)
	assert.Equal(t, 6.5, resp.Summary.TotalCountedHours)
}

func TestScheduleService_GetWeek(t *testing.T) {
	active := newShift("2023-11-15", "MORNING", "08:00", shift.ShiftStatusActive, 8)
	active.UserCode = "2023-0007"
	repo := &fakeShiftRepo{records: append(novemberRecords(), active), timezone: "Asia/Jakarta"}
	svc := newTestService(t, repo, nil, Options{})

	resp, err := svc.GetWeek(context.Background(), shift.WeekRequest{UserCode: "2023-0007", Date: "2023-11-15"})
	require.NoError(t, err)

	assert.Equal(t, "2023-11-13", resp.StartDate)
	assert.Equal(t, "2023-11-19", resp.EndDate)
	require.Len(t, resp.Days, 7)
	assert.Equal(t, 13, resp.Days[0].Day)
	assert.Equal(t, "NOT_STARTED", resp.Days[0].Status)
	assert.Equal(t, "ACTIVE", resp.Days[2].Status)
	assert.Equal(t, "#2196F3", resp.Days[2].Color)
	assert.Equal(t, "WEEKEND", resp.Days[5].Status)
	assert.Equal(t, "WEEKEND", resp.Days[6].Status)
	assert.Equal(t, 1, resp.Summary.StatusCounts["ACTIVE"])
	assert.Equal(t, 2, resp.Summary.StatusCounts["WEEKEND"])

	require.Len(t, repo.calls, 1)
	assert.Equal(t, "2023-11-13", repo.calls[0].from)
	assert.Equal(t, "2023-11-19", repo.calls[0].to)
}

func TestScheduleService_GetWeek_CustomWeekend(t *testing.T) {
	svc := newTestService(t, &fakeShiftRepo{}, nil, Options{WeekendDays: []int{5}})

	resp, err := svc.GetWeek(context.Background(), shift.WeekRequest{UserCode: "2023-0007", Date: "2023-11-15"})
	require.NoError(t, err)
	assert.Equal(t, "WEEKEND", resp.Days[4].Status)
	assert.Equal(t, "NOT_STARTED", resp.Days[5].Status)
}

func TestScheduleService_GetWeek_InvalidDate(t *testing.T) {
	svc := newTestService(t, &fakeShiftRepo{}, nil, Options{})

	_, err := svc.GetWeek(context.Background(), shift.WeekRequest{UserCode: "2023-0007", Date: "15/11/2023"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "date", verrs[0].Field)
}

func TestScheduleService_ActionableShift_RoundTrip(t *testing.T) {
	notStarted := newShift("2023-11-20", "NIGHT", "20:00", shift.ShiftStatusNotStarted, 4)
	notStarted.UserCode = "2023-0007"
	active := newShift("2023-11-20", "MORNING", "08:00", shift.ShiftStatusActive, 8)
	active.UserCode = "2023-0007"
	active.CheckInTime = strPtr("2023-11-20T09:05:00Z")

	c := cache.NewMemoryCache(time.Hour)
	svc := newTestService(t, &fakeShiftRepo{records: []shift.ShiftRecord{notStarted, active}}, c, Options{})
	ctx := context.Background()
	req := shift.ActionableShiftRequest{UserCode: "2023-0007"}

	_, err := svc.GetCachedActionableShift(ctx, req)
	assert.ErrorIs(t, err, shift.ErrCacheMiss)

	resp, err := svc.GetActionableShift(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "MORNING", resp.ShiftCode)
	assert.Equal(t, "ACTIVE", resp.Status)
	assert.Equal(t, "Checked in", resp.StatusLabel)
	assert.Equal(t, "2023-11-20", resp.Date)
	assert.Equal(t, 65, resp.LateMinutes)
	require.NotNil(t, resp.LateLabel)
	assert.Equal(t, "1h 5m", *resp.LateLabel)

	cached, err := svc.GetCachedActionableShift(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, resp, cached)
}

func TestScheduleService_ActionableShift_NoShifts(t *testing.T) {
	svc := newTestService(t, &fakeShiftRepo{}, cache.NewMemoryCache(time.Hour), Options{})

	_, err := svc.GetActionableShift(context.Background(), shift.ActionableShiftRequest{UserCode: "2023-0007", Date: "2023-11-21"})
	assert.ErrorIs(t, err, shift.ErrNoShiftsForDate)
}

func TestScheduleService_ActionableShift_CacheFailure(t *testing.T) {
	s := newShift("2023-11-20", "MORNING", "08:00", shift.ShiftStatusNotStarted, 8)
	s.UserCode = "2023-0007"
	svc := newTestService(t, &fakeShiftRepo{records: []shift.ShiftRecord{s}}, failingCache{}, Options{})

	resp, err := svc.GetActionableShift(context.Background(), shift.ActionableShiftRequest{UserCode: "2023-0007"})
	require.NoError(t, err)
	assert.Equal(t, "MORNING", resp.ShiftCode)

	_, err = svc.GetCachedActionableShift(context.Background(), shift.ActionableShiftRequest{UserCode: "2023-0007"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, shift.ErrCacheMiss)
}

func TestScheduleService_EmployeeCodeFromClaims(t *testing.T) {
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	repo := &fakeShiftRepo{records: novemberRecords()}
	svc := newTestService(t, repo, nil, Options{})

	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"employee_code": "2023-0007",
		"company_id":    "c-1",
		"type":          "access",
	})
	require.NoError(t, err)
	ctx := jwtauth.NewContext(context.Background(), token, nil)

	resp, err := svc.GetWeek(ctx, shift.WeekRequest{Date: "2023-11-01"})
	require.NoError(t, err)
	assert.Equal(t, "ENDED", resp.Days[2].Status)

	noCode, _, err := tokenAuth.Encode(map[string]interface{}{"company_id": "c-1"})
	require.NoError(t, err)
	ctx = jwtauth.NewContext(context.Background(), noCode, nil)

	_, err = svc.GetWeek(ctx, shift.WeekRequest{Date: "2023-11-01"})
	assert.ErrorIs(t, err, shift.ErrMissingEmployeeCode)

	_, err = svc.GetWeek(context.Background(), shift.WeekRequest{Date: "2023-11-01"})
	assert.ErrorIs(t, err, shift.ErrMissingEmployeeCode)
}
