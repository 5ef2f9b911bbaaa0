package bulk_set_slots

import (
	"fmt"

	"github.com/m04kA/PsyBookingService/internal/service/schedule"
)

// Названия политик в API
const (
	PolicyActivateAll   = "activate_all"
	PolicyDeactivateAll = "deactivate_all"
	PolicyWorkingHours  = "working_hours"
)

// BulkSetRequest HTTP request model
type BulkSetRequest struct {
	Policy    string `json:"policy"`
	StartHour int    `json:"startHour,omitempty"` // для working_hours
	EndHour   int    `json:"endHour,omitempty"`   // для working_hours, не включительно
}

// ToPolicy конвертирует запрос в политику календаря
func (r *BulkSetRequest) ToPolicy() (schedule.Policy, error) {
	switch r.Policy {
	case PolicyActivateAll:
		return schedule.ActivateAll(), nil
	case PolicyDeactivateAll:
		return schedule.DeactivateAll(), nil
	case PolicyWorkingHours:
		return schedule.WorkingHoursOnly(r.StartHour, r.EndHour)
	default:
		return schedule.Policy{}, fmt.Errorf("unknown policy %q", r.Policy)
	}
}
