package schedule

import (
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/hris-schedule-engine/internal/domain/shift"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/calendar"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func jakarta() *time.Location {
	return calendar.LoadLocation("Asia/Jakarta")
}

func newTestAggregator() *Aggregator {
	return NewAggregator(calendar.New(time.UTC), []int{6, 7})
}

func mustDate(s string) time.Time {
	d, err := time.Parse(calendar.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func newShift(date string, code string, start string, status shift.ShiftStatus, hours float64) shift.ShiftRecord {
	return shift.ShiftRecord{
		UserCode:       "2024-0001",
		Date:           mustDate(date),
		ShiftCode:      code,
		ShiftName:      "Shift " + code,
		ScheduledStart: start,
		ScheduledEnd:   "17:00",
		Status:         status,
		ScheduledHours: hours,
	}
}

func withStatus(status shift.ShiftStatus) shift.ShiftRecord {
	return newShift("2024-05-13", string(status), "08:00", status, 4)
}
