package cancel_booking

import (
	"context"

	"github.com/m04kA/PsyBookingService/internal/domain"
)

type BookingService interface {
	Get(ctx context.Context, id string) (*domain.Booking, error)
	RemoveBooking(ctx context.Context, id string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
