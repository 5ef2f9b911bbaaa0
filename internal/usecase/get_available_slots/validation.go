package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/PsyBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.Date.Validate(); err != nil {
		return fmt.Errorf("%w: invalid date format: %v", ErrInvalidInput, err)
	}

	if !req.Time.IsZero() {
		if err := req.Time.Validate(); err != nil {
			return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(date types.DateString, now time.Time) error {
	if date.String() < types.NewDateString(now).String() {
		return ErrInvalidDate
	}
	return nil
}
