package create_booking

import (
	"context"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/internal/service/bookings/models"
)

// BookingManager интерфейс менеджера бронирований
type BookingManager interface {
	AddBooking(ctx context.Context, req *models.AddBookingRequest) (*domain.Booking, error)
}

// ProviderDirectory интерфейс справочника специалистов
type ProviderDirectory interface {
	GetProvider(ctx context.Context, id string) (*domain.Provider, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
