package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

// Service агрегирует свободные слоты по всем активным специалистам.
// Результат носит рекомендательный характер: бронирование перепроверяет слот под блокировкой.
type Service struct {
	calendar SlotCalendar
}

func NewService(calendar SlotCalendar) *Service {
	return &Service{calendar: calendar}
}

// AvailableSlotsForDate объединение открытых свободных слотов всех специалистов,
// без повторов по времени, по возрастанию времени
func (s *Service) AvailableSlotsForDate(ctx context.Context, date types.DateString, activeProviders []string) (domain.DaySlots, error) {
	if err := date.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	seen := make(map[types.TimeString]struct{})
	result := domain.DaySlots{}

	for _, providerID := range activeProviders {
		slots, err := s.calendar.GetSlots(ctx, providerID, date)
		if err != nil {
			return nil, fmt.Errorf("%w: provider=%s: %v", ErrInternal, providerID, err)
		}

		for _, slot := range slots {
			if !slot.IsOpen() {
				continue
			}
			if _, ok := seen[slot.Time]; ok {
				continue
			}
			seen[slot.Time] = struct{}{}
			result = append(result, slot)
		}
	}

	result.SortByTime()
	return result, nil
}

// ProvidersForSlot специалисты, у которых выбранное время открыто и свободно
func (s *Service) ProvidersForSlot(ctx context.Context, date types.DateString, slotTime types.TimeString, activeProviders []string) ([]string, error) {
	if err := date.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := slotTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var providers []string
	for _, providerID := range activeProviders {
		slots, err := s.calendar.GetSlots(ctx, providerID, date)
		if err != nil {
			return nil, fmt.Errorf("%w: provider=%s: %v", ErrInternal, providerID, err)
		}

		if idx := slots.Find(slotTime); idx >= 0 && slots[idx].IsOpen() {
			providers = append(providers, providerID)
		}
	}
	return providers, nil
}
