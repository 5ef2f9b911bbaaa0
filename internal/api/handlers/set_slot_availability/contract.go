package set_slot_availability

import (
	"context"

	"github.com/m04kA/PsyBookingService/pkg/types"
)

type SlotCalendar interface {
	SetAvailability(ctx context.Context, providerID string, date types.DateString, slotTime types.TimeString, available bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
