package schedule

import "github.com/cmlabs-hris/hris-schedule-engine/internal/domain/shift"

// ResolveDayStatus reduces the shifts of one date to a single status.
//
// Precedence: ACTIVE > ENDED > NOT_STARTED > ABSENT. A day with no shifts is
// NOT_STARTED here; the weekend override is applied by the day builder.
// ABSENT, FORGOT_CHECKOUT and any unknown status share the ABSENT bucket.
func ResolveDayStatus(shifts []shift.ShiftRecord) shift.DayStatus {
	if len(shifts) == 0 {
		return shift.DayStatusNotStarted
	}

	var hasEnded, hasNotStarted bool
	for _, s := range shifts {
		switch s.Status {
		case shift.ShiftStatusActive:
			return shift.DayStatusActive
		case shift.ShiftStatusEnded:
			hasEnded = true
		case shift.ShiftStatusNotStarted:
			hasNotStarted = true
		case shift.ShiftStatusAbsent, shift.ShiftStatusForgotCheckout, shift.ShiftStatusUnknown:
		default:
			// raw strings that bypassed ParseShiftStatus
		}
	}

	switch {
	case hasEnded:
		return shift.DayStatusEnded
	case hasNotStarted:
		return shift.DayStatusNotStarted
	default:
		return shift.DayStatusAbsent
	}
}
