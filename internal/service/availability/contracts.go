package availability

import (
	"context"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

// SlotCalendar интерфейс календаря (только чтение)
type SlotCalendar interface {
	GetSlots(ctx context.Context, providerID string, date types.DateString) (domain.DaySlots, error)
}
