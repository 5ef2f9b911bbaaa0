package clients

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/PsyBookingService/internal/domain"
)

// Service сопоставляет клиента с записями во всех журналах по телефону.
// Ничего не пишет.
type Service struct {
	bookings BookingReader
	logger   Logger
}

func NewService(bookings BookingReader, logger Logger) *Service {
	return &Service{bookings: bookings, logger: logger}
}

// Lookup ищет клиента сначала в онлайн-журнале, затем в журналах специалистов и менеджеров
func (s *Service) Lookup(ctx context.Context, phone string) (*domain.ClientRecord, error) {
	normalized := Normalize(phone)
	if normalized == "" {
		return nil, ErrInvalidInput
	}

	bySource, err := s.bookings.BookingsBySource(ctx)
	if err != nil {
		s.logger.Error("Lookup: failed to read ledgers: %v", err)
		return nil, fmt.Errorf("%w: Lookup - read ledgers: %v", ErrInternal, err)
	}

	sets := make([][]domain.ClientRecord, 0, len(domain.AllSources))
	for _, source := range domain.AllSources {
		sets = append(sets, toClientRecords(bySource[source]))
	}

	record, ok := FindByPhone(normalized, sets...)
	if !ok {
		s.logger.Info("Lookup: no client for phone=%s", mask(normalized))
		return nil, ErrClientNotFound
	}

	s.logger.Info("Lookup: client found, phone=%s, source=%s", mask(normalized), record.Source)
	return &record, nil
}

// BookingsFor все бронирования клиента из всех журналов, новые первыми
func (s *Service) BookingsFor(ctx context.Context, phone string) ([]*domain.Booking, error) {
	normalized := Normalize(phone)
	if normalized == "" {
		return nil, ErrInvalidInput
	}

	bySource, err := s.bookings.BookingsBySource(ctx)
	if err != nil {
		s.logger.Error("BookingsFor: failed to read ledgers: %v", err)
		return nil, fmt.Errorf("%w: BookingsFor - read ledgers: %v", ErrInternal, err)
	}

	var result []*domain.Booking
	for _, source := range domain.AllSources {
		for _, b := range bySource[source] {
			if SamePhone(b.ClientPhone, normalized) {
				result = append(result, b)
			}
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func toClientRecords(bookings []*domain.Booking) []domain.ClientRecord {
	records := make([]domain.ClientRecord, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, domain.ClientRecord{
			Name:      b.ClientName,
			Phone:     b.ClientPhone,
			Email:     b.ClientEmail,
			BookingID: b.ID,
			Source:    b.Source,
		})
	}
	return records
}

// mask скрывает середину номера в логах
func mask(phone string) string {
	if len(phone) < 6 {
		return "***"
	}
	return phone[:2] + "*****" + phone[len(phone)-4:]
}
