package holdexpiry

import (
	"context"
	"time"
)

// Expirer снимает неоплаченные онлайн-брони старше ttl
type Expirer interface {
	ExpireStaleHolds(ctx context.Context, ttl time.Duration) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker периодически освобождает слоты брошенных онлайн-броней
type Worker struct {
	expirer  Expirer
	ttl      time.Duration
	interval time.Duration
	logger   Logger
}

// NewWorker создает воркер; ttl <= 0 означает, что воркер не нужен
func NewWorker(expirer Expirer, ttl, interval time.Duration, logger Logger) *Worker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Worker{
		expirer:  expirer,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
	}
}

// Enabled true, если политика истечения включена
func (w *Worker) Enabled() bool {
	return w.ttl > 0
}

// Start блокируется до отмены контекста
func (w *Worker) Start(ctx context.Context) {
	if !w.Enabled() {
		w.logger.Info("Hold expiry disabled")
		return
	}

	w.logger.Info("Starting hold expiry worker: ttl=%s, interval=%s", w.ttl, w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Hold expiry worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce один проход, возвращает число снятых броней
func (w *Worker) RunOnce(ctx context.Context) int {
	n, err := w.expirer.ExpireStaleHolds(ctx, w.ttl)
	if err != nil {
		w.logger.Error("Hold expiry failed: %v", err)
		return 0
	}
	return n
}
