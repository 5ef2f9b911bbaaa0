package create_booking

import (
	"context"

	createBooking "github.com/m04kA/PsyBookingService/internal/usecase/create_booking"
)

// BookingCreator создает бронирование в журнале источника (online, provider или manager)
type BookingCreator interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
