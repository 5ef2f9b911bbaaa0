package clients

import (
	"context"

	"github.com/m04kA/PsyBookingService/internal/domain"
)

// BookingReader источник бронирований по журналам (только чтение)
type BookingReader interface {
	BookingsBySource(ctx context.Context) (map[domain.Source][]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
