package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/PsyBookingService/internal/domain"
)

// ExpireStaleHolds снимает онлайн-брони, не оплаченные за ttl.
// ttl <= 0 отключает политику.
func (s *Service) ExpireStaleHolds(ctx context.Context, ttl time.Duration) (int, error) {
	if ttl <= 0 {
		return 0, nil
	}

	ledger, ok := s.ledgers[domain.SourceOnline]
	if !ok {
		return 0, nil
	}

	bookings, err := ledger.Bookings(ctx)
	if err != nil {
		s.logger.Error("ExpireStaleHolds: failed to read online ledger: %v", err)
		return 0, mapLedgerError("ExpireStaleHolds", err)
	}

	deadline := s.timeProvider.Now().Add(-ttl)
	stale := func(b *domain.Booking) bool {
		return b.IsAwaitingPayment() && b.CreatedAt.Before(deadline)
	}

	expired := 0
	for _, b := range bookings {
		if !stale(b) {
			continue
		}

		// Снимок читался без блокировки: оплату могли подтвердить, removeIf проверит заново
		if _, err := s.removeIf(ctx, "ExpireStaleHolds", b.ID, stale); err != nil {
			if errors.Is(err, ErrBookingNotFound) {
				continue
			}
			if errors.Is(err, errBookingChanged) {
				s.logger.Info("ExpireStaleHolds: booking id=%s was confirmed, hold kept", b.ID)
				continue
			}
			s.logger.Error("ExpireStaleHolds: failed to expire booking id=%s: %v", b.ID, err)
			continue
		}
		expired++
	}

	if expired > 0 {
		s.logger.Info("ExpireStaleHolds: expired %d holds older than %s", expired, ttl)
		s.metrics.ObserveExpiredHolds(expired)
	}
	return expired, nil
}
