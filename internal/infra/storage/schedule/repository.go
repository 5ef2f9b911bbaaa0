package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/internal/infra/storage/kv"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

// Repository репозиторий расписаний: schedule:{providerId} -> {date: TimeSlot[]}
// Блокировки read-modify-write остаются на стороне календаря.
type Repository struct {
	store Store
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// Get возвращает расписание специалиста; отсутствующий ключ дает пустое расписание
func (r *Repository) Get(ctx context.Context, providerID string) (domain.ProviderSchedule, error) {
	raw, err := r.store.Get(ctx, domain.ScheduleKey(providerID))
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return domain.ProviderSchedule{}, nil
		}
		return nil, fmt.Errorf("%w: Get - provider=%s: %v", ErrRead, providerID, err)
	}

	schedule := domain.ProviderSchedule{}
	if err := json.Unmarshal(raw, &schedule); err != nil {
		return nil, fmt.Errorf("%w: Get - provider=%s: %v", ErrDecode, providerID, err)
	}
	return schedule, nil
}

// GetDay возвращает слоты одной даты; ok=false, если дата еще не создавалась
func (r *Repository) GetDay(ctx context.Context, providerID string, date types.DateString) (domain.DaySlots, bool, error) {
	schedule, err := r.Get(ctx, providerID)
	if err != nil {
		return nil, false, err
	}
	day, ok := schedule[date]
	return day, ok, nil
}

// Save перезаписывает расписание специалиста целиком
func (r *Repository) Save(ctx context.Context, providerID string, schedule domain.ProviderSchedule) error {
	raw, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("%w: Save - provider=%s: %v", ErrWrite, providerID, err)
	}

	if err := r.store.Set(ctx, domain.ScheduleKey(providerID), raw); err != nil {
		return fmt.Errorf("%w: Save - provider=%s: %v", ErrWrite, providerID, err)
	}
	return nil
}
