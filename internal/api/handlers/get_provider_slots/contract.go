package get_provider_slots

import (
	"context"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

type SlotCalendar interface {
	GetSlots(ctx context.Context, providerID string, date types.DateString) (domain.DaySlots, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
