package update_payment_status

import (
	"context"

	"github.com/m04kA/PsyBookingService/internal/domain"
)

type BookingService interface {
	Get(ctx context.Context, id string) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id string, payment domain.PaymentStatus) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
