package get_available_slots

import (
	"context"
	"fmt"
	"time"
)

// UseCase use case для получения свободных слотов по всем активным специалистам
type UseCase struct {
	aggregator   Aggregator
	directory    ProviderDirectory
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(aggregator Aggregator, directory ProviderDirectory, location *time.Location, logger Logger) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		aggregator:   aggregator,
		directory:    directory,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения свободных слотов.
// Результат рекомендательный: занятость перепроверяется при бронировании.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, time=%s", req.Date, req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в часовом поясе расписания
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Дата не должна быть в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date)
		return nil, err
	}

	// 4. Получаем активных специалистов
	providers, err := uc.directory.ListActive(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list providers: %v", err)
		return nil, fmt.Errorf("%w: failed to list providers: %v", ErrInternal, err)
	}

	ids := make([]string, 0, len(providers))
	for _, p := range providers {
		ids = append(ids, p.ID)
	}

	// 5. Объединяем свободные слоты
	slots, err := uc.aggregator.AvailableSlotsForDate(ctx, req.Date, ids)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to aggregate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to aggregate slots: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:      req.Date,
		Slots:     upcomingTimes(slots, req.Date, now),
		Providers: []ProviderSlot{},
	}

	// 6. Специалисты на выбранное время
	if !req.Time.IsZero() && !isSlotStarted(req.Date, req.Time, now) {
		offering, err := uc.aggregator.ProvidersForSlot(ctx, req.Date, req.Time, ids)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to resolve providers for %s %s: %v", req.Date, req.Time, err)
			return nil, fmt.Errorf("%w: failed to resolve providers: %v", ErrInternal, err)
		}

		byID := make(map[string]int, len(providers))
		for i, p := range providers {
			byID[p.ID] = i
		}
		for _, id := range offering {
			p := providers[byID[id]]
			resp.Providers = append(resp.Providers, ProviderSlot{ID: p.ID, Name: p.Name, Price: p.Price})
		}
	}

	uc.logger.Info("GetAvailableSlots: %d free slots across %d providers on %s", len(resp.Slots), len(ids), req.Date)
	return resp, nil
}
