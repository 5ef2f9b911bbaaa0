package specialistservice

import "context"

// Remote удаленный справочник специалистов
type Remote interface {
	GetSpecialist(ctx context.Context, id string) (*Specialist, error)
	ListSpecialists(ctx context.Context) ([]Specialist, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
