package bookings

import (
	"context"
	"sort"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/internal/service/bookings/models"
)

// CheckConsistency сверяет занятые слоты календаря с активными записями журналов.
// Проверка идет без блокировок, поэтому параллельная бронь может дать ложное срабатывание.
func (s *Service) CheckConsistency(ctx context.Context, providerIDs []string) (*models.ConsistencyReport, error) {
	s.logger.Info("CheckConsistency: providers=%d", len(providerIDs))

	// 1. Активные записи по слотам
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	active := make(map[domain.SlotKey][]string)
	for _, b := range all {
		if !b.IsActive() {
			continue
		}
		active[b.Slot()] = append(active[b.Slot()], b.ID)
	}

	// 2. Занятые слоты календаря
	providers := make(map[string]struct{}, len(providerIDs))
	booked := make(map[domain.SlotKey]struct{})
	for _, providerID := range providerIDs {
		providers[providerID] = struct{}{}

		schedule, err := s.calendar.GetSchedule(ctx, providerID)
		if err != nil {
			s.logger.Error("CheckConsistency: failed to read schedule of provider %s: %v", providerID, err)
			return nil, mapCalendarError(err)
		}
		for date, day := range schedule {
			for _, slot := range day {
				if slot.Booked {
					booked[domain.SlotKey{ProviderID: providerID, Date: date, Time: slot.Time}] = struct{}{}
				}
			}
		}
	}

	report := &models.ConsistencyReport{
		CheckedAt: s.timeProvider.Now().UTC(),
		Bookings:  len(all),
		Providers: len(providerIDs),
		Issues:    []models.ConsistencyIssue{},
		Counts: map[string]int{
			models.IssuePhantomHold:   0,
			models.IssueOrphanRecord:  0,
			models.IssueDoubleBooking: 0,
		},
	}

	// 3. Слот занят, записи нет
	for key := range booked {
		if _, ok := active[key]; !ok {
			report.Add(models.IssuePhantomHold, key, nil)
		}
	}

	// 4. Запись есть, слот свободен; несколько записей на слот
	for key, ids := range active {
		if _, checked := providers[key.ProviderID]; !checked {
			continue
		}
		if _, ok := booked[key]; !ok {
			report.Add(models.IssueOrphanRecord, key, ids)
		}
		if len(ids) > 1 {
			report.Add(models.IssueDoubleBooking, key, ids)
		}
	}

	sortIssues(report.Issues)
	s.metrics.SetInconsistencies(report.Counts)

	if !report.IsConsistent() {
		s.logger.Warn("CheckConsistency: found %d issues: %v", len(report.Issues), report.Counts)
	}
	return report, nil
}

func sortIssues(issues []models.ConsistencyIssue) {
	sort.Slice(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.ProviderID != b.ProviderID {
			return a.ProviderID < b.ProviderID
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.Kind < b.Kind
	})
}
