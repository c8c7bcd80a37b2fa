package schedule

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-schedule-engine/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByDate(t *testing.T) {
	records := []shift.ShiftRecord{
		newShift("2024-05-14", "B", "13:00", shift.ShiftStatusNotStarted, 4),
		newShift("2024-05-13", "PM", "13:00", shift.ShiftStatusEnded, 4),
		newShift("2024-05-13", "AM", "08:00", shift.ShiftStatusEnded, 4),
		newShift("2024-05-14", "A", "07:00", shift.ShiftStatusNotStarted, 4),
	}

	groups := GroupByDate(records, time.UTC)

	assert.Equal(t, []string{"2024-05-13", "2024-05-14"}, groups.Dates())

	day13 := groups.On("2024-05-13")
	require.Len(t, day13, 2)
	assert.Equal(t, "AM", day13[0].ShiftCode)
	assert.Equal(t, "PM", day13[1].ShiftCode)

	day14 := groups.On("2024-05-14")
	require.Len(t, day14, 2)
	assert.Equal(t, "A", day14[0].ShiftCode)

	assert.Nil(t, groups.On("2024-05-15"))
}

func TestGroupByDate_UnreadableStartGoesLast(t *testing.T) {
	records := []shift.ShiftRecord{
		newShift("2024-05-13", "X", "??", shift.ShiftStatusNotStarted, 4),
		newShift("2024-05-13", "B", "09:00", shift.ShiftStatusNotStarted, 4),
		newShift("2024-05-13", "C", "09:00", shift.ShiftStatusNotStarted, 4),
	}

	day := GroupByDate(records, time.UTC).On("2024-05-13")

	require.Len(t, day, 3)
	assert.Equal(t, "B", day[0].ShiftCode)
	assert.Equal(t, "C", day[1].ShiftCode)
	assert.Equal(t, "X", day[2].ShiftCode)
}

func TestGroupByDate_DoesNotMutateInput(t *testing.T) {
	records := []shift.ShiftRecord{
		newShift("2024-05-13", "PM", "13:00", shift.ShiftStatusEnded, 4),
		newShift("2024-05-13", "AM", "08:00", shift.ShiftStatusEnded, 4),
	}

	GroupByDate(records, time.UTC)

	assert.Equal(t, "PM", records[0].ShiftCode)
	assert.Equal(t, "AM", records[1].ShiftCode)
}

func TestGroupByDate_Empty(t *testing.T) {
	groups := GroupByDate(nil, time.UTC)
	assert.Empty(t, groups.Dates())
}
