package schedule

import (
	"context"

	"github.com/m04kA/PsyBookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Get(ctx context.Context, providerID string) (domain.ProviderSchedule, error)
	Save(ctx context.Context, providerID string, schedule domain.ProviderSchedule) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
