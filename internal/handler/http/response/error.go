package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-schedule-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/domain/shift"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, shift.ErrMissingEmployeeCode):
		Forbidden(w, "An employee profile is required")

	// Schedule errors
	case errors.Is(err, shift.ErrInvalidDateFormat):
		BadRequest(w, err.Error(), map[string]string{"date": err.Error()})
	case errors.Is(err, shift.ErrInvalidMonth):
		BadRequest(w, err.Error(), map[string]string{"month": err.Error()})
	case errors.Is(err, shift.ErrRangeTooLarge):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, shift.ErrNoShiftsForDate):
		NotFound(w, "No shifts scheduled for this date")
	case errors.Is(err, shift.ErrCacheMiss):
		NotFound(w, "No actionable shift cached for this date")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
