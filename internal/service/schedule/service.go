package schedule

import (
	"context"
	"fmt"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/pkg/keylock"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

// Service календарь слотов специалистов.
// Каждый read-modify-write schedule:{providerId} выполняется под блокировкой специалиста.
type Service struct {
	repo     ScheduleRepository
	template Template
	locks    *keylock.KeyedMutex
	logger   Logger
}

// NewService создает новый экземпляр календаря
func NewService(repo ScheduleRepository, template Template, logger Logger) *Service {
	return &Service{
		repo:     repo,
		template: template,
		locks:    keylock.New(),
		logger:   logger,
	}
}

// Template шаблон дня, по которому создаются новые даты
func (s *Service) Template() Template {
	return s.template
}

// GetSlots возвращает слоты даты; для несозданной даты отдает шаблон без записи в хранилище
func (s *Service) GetSlots(ctx context.Context, providerID string, date types.DateString) (domain.DaySlots, error) {
	if err := validateDay(providerID, date); err != nil {
		return nil, err
	}

	schedule, err := s.repo.Get(ctx, providerID)
	if err != nil {
		s.logger.Error("GetSlots: failed to load schedule provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetSlots - repository error: %v", ErrInternal, err)
	}

	day, ok := schedule[date]
	if !ok {
		return s.template.Slots(), nil
	}
	return day.Clone(), nil
}

// GetSchedule возвращает все созданные даты специалиста
func (s *Service) GetSchedule(ctx context.Context, providerID string) (domain.ProviderSchedule, error) {
	if !domain.IsValidProviderID(providerID) {
		return nil, fmt.Errorf("%w: invalid provider id %q", ErrInvalidInput, providerID)
	}

	schedule, err := s.repo.Get(ctx, providerID)
	if err != nil {
		s.logger.Error("GetSchedule: failed to load schedule provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}
	return schedule, nil
}

// SetAvailability открывает или закрывает один слот.
// Забронированный слот закрыть нельзя (ErrSlotLocked).
func (s *Service) SetAvailability(ctx context.Context, providerID string, date types.DateString, slotTime types.TimeString, available bool) error {
	s.logger.Info("SetAvailability: provider=%s, date=%s, time=%s, available=%t", providerID, date, slotTime, available)

	if err := validateSlot(providerID, date, slotTime); err != nil {
		return err
	}

	return s.modifyDay(ctx, providerID, date, func(day domain.DaySlots) error {
		idx := day.Find(slotTime)
		if idx < 0 {
			return fmt.Errorf("%w: time %s is outside the day template", ErrInvalidInput, slotTime)
		}

		if day[idx].Booked && !available {
			s.logger.Warn("SetAvailability: slot %s %s %s is booked", providerID, date, slotTime)
			return ErrSlotLocked
		}

		day[idx].Available = available
		return nil
	})
}

// BulkSet применяет политику ко всем слотам даты; забронированные слоты не трогает
func (s *Service) BulkSet(ctx context.Context, providerID string, date types.DateString, policy Policy) (domain.DaySlots, error) {
	s.logger.Info("BulkSet: provider=%s, date=%s, policy=%s", providerID, date, policy.Name)

	if err := validateDay(providerID, date); err != nil {
		return nil, err
	}
	if policy.Available == nil {
		return nil, fmt.Errorf("%w: empty policy", ErrInvalidInput)
	}

	var result domain.DaySlots
	err := s.modifyDay(ctx, providerID, date, func(day domain.DaySlots) error {
		skipped := 0
		for i := range day {
			if day[i].Booked {
				skipped++
				continue
			}
			day[i].Available = policy.Available(day[i].Time)
		}
		if skipped > 0 {
			s.logger.Info("BulkSet: provider=%s, date=%s, %d booked slots left unchanged", providerID, date, skipped)
		}
		result = day.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// MarkBooked помечает открытый свободный слот как забронированный
func (s *Service) MarkBooked(ctx context.Context, providerID string, date types.DateString, slotTime types.TimeString) error {
	if err := validateSlot(providerID, date, slotTime); err != nil {
		return err
	}

	return s.modifyDay(ctx, providerID, date, func(day domain.DaySlots) error {
		idx := day.Find(slotTime)
		if idx < 0 || !day[idx].Available {
			return fmt.Errorf("%w: %s %s %s", ErrSlotUnavailable, providerID, date, slotTime)
		}
		if day[idx].Booked {
			return fmt.Errorf("%w: %s %s %s", ErrSlotAlreadyBooked, providerID, date, slotTime)
		}

		day[idx].Booked = true
		return nil
	})
}

// FreeSlot снимает бронь со слота, доступность сохраняется.
// Для несозданной даты ничего не записывает.
func (s *Service) FreeSlot(ctx context.Context, providerID string, date types.DateString, slotTime types.TimeString) error {
	if err := validateSlot(providerID, date, slotTime); err != nil {
		return err
	}

	unlock := s.locks.Lock(providerID)
	defer unlock()

	schedule, err := s.repo.Get(ctx, providerID)
	if err != nil {
		s.logger.Error("FreeSlot: failed to load schedule provider=%s: %v", providerID, err)
		return fmt.Errorf("%w: FreeSlot - repository error: %v", ErrInternal, err)
	}

	day, ok := schedule[date]
	if !ok {
		return nil
	}

	idx := day.Find(slotTime)
	if idx < 0 {
		return fmt.Errorf("%w: time %s is outside the day", ErrInvalidInput, slotTime)
	}
	if !day[idx].Booked {
		return nil
	}

	day[idx].Booked = false
	schedule[date] = day

	if err := s.repo.Save(ctx, providerID, schedule); err != nil {
		s.logger.Error("FreeSlot: failed to save schedule provider=%s: %v", providerID, err)
		return fmt.Errorf("%w: FreeSlot - repository error: %v", ErrInternal, err)
	}
	return nil
}

// modifyDay загружает расписание под блокировкой специалиста, применяет fn к дате
// (создавая ее из шаблона) и сохраняет результат. При ошибке fn ничего не пишется.
func (s *Service) modifyDay(ctx context.Context, providerID string, date types.DateString, fn func(day domain.DaySlots) error) error {
	return s.locks.WithLock(providerID, func() error {
		schedule, err := s.repo.Get(ctx, providerID)
		if err != nil {
			s.logger.Error("modifyDay: failed to load schedule provider=%s: %v", providerID, err)
			return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
		}

		day, ok := schedule[date]
		if !ok {
			day = s.template.Slots()
		} else {
			day = day.Clone()
		}

		if err := fn(day); err != nil {
			return err
		}

		schedule[date] = day
		if err := s.repo.Save(ctx, providerID, schedule); err != nil {
			s.logger.Error("modifyDay: failed to save schedule provider=%s: %v", providerID, err)
			return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
		}
		return nil
	})
}

func validateDay(providerID string, date types.DateString) error {
	if !domain.IsValidProviderID(providerID) {
		return fmt.Errorf("%w: invalid provider id %q", ErrInvalidInput, providerID)
	}
	if err := date.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func validateSlot(providerID string, date types.DateString, slotTime types.TimeString) error {
	if err := validateDay(providerID, date); err != nil {
		return err
	}
	if err := slotTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
