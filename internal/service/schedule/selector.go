package schedule

import "github.com/cmlabs-hris/hris-schedule-engine/internal/domain/shift"

// SelectActionableShift picks the shift a check-in/out action applies to:
// the ACTIVE shift, else the first NOT_STARTED one, else the first shift.
// ok is false only when shifts is empty.
func SelectActionableShift(shifts []shift.ShiftRecord) (selected shift.ShiftRecord, ok bool) {
	if len(shifts) == 0 {
		return shift.ShiftRecord{}, false
	}

	for _, s := range shifts {
		if s.Status == shift.ShiftStatusActive {
			return s, true
		}
	}

	for _, s := range shifts {
		if s.Status == shift.ShiftStatusNotStarted {
			return s, true
		}
	}

	return shifts[0], true
}
