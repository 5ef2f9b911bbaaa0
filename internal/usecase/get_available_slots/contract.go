package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

// Aggregator интерфейс агрегатора свободных слотов
type Aggregator interface {
	AvailableSlotsForDate(ctx context.Context, date types.DateString, activeProviders []string) (domain.DaySlots, error)
	ProvidersForSlot(ctx context.Context, date types.DateString, slotTime types.TimeString, activeProviders []string) ([]string, error)
}

// ProviderDirectory интерфейс справочника специалистов
type ProviderDirectory interface {
	ListActive(ctx context.Context) ([]domain.Provider, error)
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
