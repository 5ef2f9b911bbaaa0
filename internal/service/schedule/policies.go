package schedule

import (
	"fmt"

	"github.com/m04kA/PsyBookingService/pkg/types"
)

// Policy правило массовой установки доступности на дату
type Policy struct {
	Name      string
	Available func(t types.TimeString) bool
}

// ActivateAll открывает все слоты дня
func ActivateAll() Policy {
	return Policy{
		Name:      "activate_all",
		Available: func(types.TimeString) bool { return true },
	}
}

// DeactivateAll закрывает все незабронированные слоты дня
func DeactivateAll() Policy {
	return Policy{
		Name:      "deactivate_all",
		Available: func(types.TimeString) bool { return false },
	}
}

// WorkingHoursOnly открывает слоты с startHour <= час < endHour, остальные закрывает
func WorkingHoursOnly(startHour, endHour int) (Policy, error) {
	if startHour < 0 || endHour > 24 || startHour >= endHour {
		return Policy{}, fmt.Errorf("%w: working hours %d-%d", ErrInvalidInput, startHour, endHour)
	}

	return Policy{
		Name: fmt.Sprintf("working_hours_%02d_%02d", startHour, endHour),
		Available: func(t types.TimeString) bool {
			hour := t.Hour()
			return hour >= startHour && hour < endHour
		},
	}, nil
}
