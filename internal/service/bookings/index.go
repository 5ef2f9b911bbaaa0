package bookings

import (
	"context"

	"github.com/m04kA/PsyBookingService/internal/domain"
)

// ensureIndex строит индекс при первом обращении
func (s *Service) ensureIndex(ctx context.Context) error {
	s.indexMu.RLock()
	ready := s.indexReady
	s.indexMu.RUnlock()
	if ready {
		return nil
	}

	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	if s.indexReady {
		return nil
	}
	return s.rebuildIndexLocked(ctx)
}

// rebuildIndexLocked вызывается под indexMu
func (s *Service) rebuildIndexLocked(ctx context.Context) error {
	index := make(map[string]domain.Source)
	for source, ledger := range s.ledgers {
		bookings, err := ledger.Bookings(ctx)
		if err != nil {
			s.logger.Error("LoadIndex: failed to read %s ledger: %v", source, err)
			return mapLedgerError("LoadIndex", err)
		}
		for _, b := range bookings {
			if prev, ok := index[b.ID]; ok {
				s.logger.Warn("LoadIndex: booking id=%s present in %s and %s ledgers, keeping %s", b.ID, prev, source, prev)
				continue
			}
			index[b.ID] = source
		}
	}

	s.index = index
	s.indexReady = true
	s.logger.Info("LoadIndex: indexed %d bookings", len(index))
	return nil
}

func (s *Service) indexGet(id string) (domain.Source, bool) {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	source, ok := s.index[id]
	return source, ok
}

func (s *Service) indexPut(id string, source domain.Source) {
	s.indexMu.Lock()
	s.index[id] = source
	s.indexMu.Unlock()
}

func (s *Service) indexDelete(id string) {
	s.indexMu.Lock()
	delete(s.index, id)
	s.indexMu.Unlock()
}
