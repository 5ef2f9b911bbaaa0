package bulk_set_slots

import (
	"context"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/internal/service/schedule"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

type SlotCalendar interface {
	BulkSet(ctx context.Context, providerID string, date types.DateString, policy schedule.Policy) (domain.DaySlots, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
