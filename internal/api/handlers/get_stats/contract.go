package get_stats

import (
	"context"

	"github.com/m04kA/PsyBookingService/internal/domain"
)

type BookingService interface {
	Stats(ctx context.Context) (domain.BookingStats, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
