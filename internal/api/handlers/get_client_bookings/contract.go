package get_client_bookings

import (
	"context"

	"github.com/m04kA/PsyBookingService/internal/domain"
)

type ClientService interface {
	BookingsFor(ctx context.Context, phone string) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
