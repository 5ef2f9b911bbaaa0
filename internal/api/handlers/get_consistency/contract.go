package get_consistency

import (
	"context"

	"github.com/m04kA/PsyBookingService/internal/service/bookings/models"
)

type BookingService interface {
	CheckConsistency(ctx context.Context, providerIDs []string) (*models.ConsistencyReport, error)
}

// ProviderIDs источник списка специалистов для сверки по умолчанию
type ProviderIDs interface {
	IDs() []string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
