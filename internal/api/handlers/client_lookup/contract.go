package client_lookup

import (
	"context"

	"github.com/m04kA/PsyBookingService/internal/domain"
)

type ClientService interface {
	Lookup(ctx context.Context, phone string) (*domain.ClientRecord, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
