package bookings

import (
	"context"
	"time"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

// SlotCalendar интерфейс календаря слотов
type SlotCalendar interface {
	GetSlots(ctx context.Context, providerID string, date types.DateString) (domain.DaySlots, error)
	GetSchedule(ctx context.Context, providerID string) (domain.ProviderSchedule, error)
	MarkBooked(ctx context.Context, providerID string, date types.DateString, slotTime types.TimeString) error
	FreeSlot(ctx context.Context, providerID string, date types.DateString, slotTime types.TimeString) error
}

// Ledger интерфейс журнала бронирований одного источника
type Ledger interface {
	Source() domain.Source
	Bookings(ctx context.Context) ([]*domain.Booking, error)
	Find(ctx context.Context, id string) (*domain.Booking, error)
	Append(ctx context.Context, booking *domain.Booking) error
	Update(ctx context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error)
	Remove(ctx context.Context, id string) error
}

// Metrics интерфейс метрик бронирований
type Metrics interface {
	ObserveBooking(source, outcome string)
	ObserveRemoval(source string)
	ObserveCompensationFailure(operation string)
	ObserveExpiredHolds(n int)
	SetInconsistencies(counts map[string]int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
