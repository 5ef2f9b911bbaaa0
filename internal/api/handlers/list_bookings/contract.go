package list_bookings

import (
	"context"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

type BookingService interface {
	ListAll(ctx context.Context) ([]*domain.Booking, error)
	BookingsForProvider(ctx context.Context, providerID string) ([]*domain.Booking, error)
	BookingsForDate(ctx context.Context, date types.DateString) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
