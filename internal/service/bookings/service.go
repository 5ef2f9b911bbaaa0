package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PsyBookingService/internal/domain"
	ledgerRepo "github.com/m04kA/PsyBookingService/internal/infra/storage/ledger"
	"github.com/m04kA/PsyBookingService/internal/service/bookings/models"
	scheduleService "github.com/m04kA/PsyBookingService/internal/service/schedule"
	"github.com/m04kA/PsyBookingService/pkg/keylock"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

// Исходы попытки бронирования для метрик
const (
	outcomeCreated  = "created"
	outcomeConflict = "conflict"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// Service единая точка входа для всех операций с бронированиями.
// Пара (MarkBooked, Append) и пара (FreeSlot, Remove) выполняются под блокировкой слота,
// поэтому на один слот приходится не больше одной активной записи.
type Service struct {
	calendar     SlotCalendar
	ledgers      map[domain.Source]Ledger
	locks        *keylock.KeyedMutex
	metrics      Metrics
	timeProvider TimeProvider
	location     *time.Location
	duration     int
	newID        func() string
	logger       Logger

	indexMu    sync.RWMutex
	index      map[string]domain.Source
	indexReady bool
}

// Option настройка сервиса
type Option func(*Service)

// WithLocation часовой пояс, в котором трактуются дата и время слота
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(s *Service) {
		if tp != nil {
			s.timeProvider = tp
		}
	}
}

// WithDefaultDuration длительность сессии, если в запросе она не указана
func WithDefaultDuration(minutes int) Option {
	return func(s *Service) {
		if minutes > 0 {
			s.duration = minutes
		}
	}
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	calendar SlotCalendar,
	ledgers []Ledger,
	metrics Metrics,
	logger Logger,
	opts ...Option,
) *Service {
	s := &Service{
		calendar:     calendar,
		ledgers:      make(map[domain.Source]Ledger, len(ledgers)),
		locks:        keylock.New(),
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		location:     time.UTC,
		duration:     domain.DefaultSessionMinutes,
		newID:        uuid.NewString,
		logger:       logger,
		index:        make(map[string]domain.Source),
	}
	for _, l := range ledgers {
		s.ledgers[l.Source()] = l
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadIndex строит индекс id -> источник по всем журналам
func (s *Service) LoadIndex(ctx context.Context) error {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	return s.rebuildIndexLocked(ctx)
}

// AddBooking создает бронирование в журнале req.Source.
// Слот помечается занятым до записи в журнал; при неудачной записи бронь со слота снимается.
func (s *Service) AddBooking(ctx context.Context, req *models.AddBookingRequest) (*domain.Booking, error) {
	s.logger.Info("AddBooking: source=%s, provider=%s, date=%s, time=%s",
		req.Source, req.ProviderID, req.Date, req.Time)

	// 1. Валидация входных данных
	if err := validateAddRequest(req); err != nil {
		s.logger.Warn("AddBooking: validation failed: %v", err)
		s.metrics.ObserveBooking(string(req.Source), outcomeRejected)
		return nil, err
	}

	ledger, ok := s.ledgers[req.Source]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, req.Source)
	}

	// 2. Слот не должен начинаться в прошлом
	now := s.timeProvider.Now()
	slotStart, err := req.Date.At(req.Time, s.location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if slotStart.Before(now) {
		s.logger.Warn("AddBooking: slot %s %s is in the past", req.Date, req.Time)
		s.metrics.ObserveBooking(string(req.Source), outcomeRejected)
		return nil, fmt.Errorf("%w: slot %s %s is in the past", ErrInvalidInput, req.Date, req.Time)
	}

	if err := s.ensureIndex(ctx); err != nil {
		return nil, err
	}

	booking := newBooking(req, s.newID(), now, s.duration)
	key := booking.Slot()

	// 3. Критическая секция слота
	unlock := s.locks.Lock(key.String())
	defer unlock()

	// 3.1. Занимаем слот в календаре
	if err := s.calendar.MarkBooked(ctx, key.ProviderID, key.Date, key.Time); err != nil {
		mapped := mapCalendarError(err)
		if errors.Is(mapped, ErrSlotAlreadyBooked) || errors.Is(mapped, ErrSlotUnavailable) {
			s.logger.Warn("AddBooking: slot %s rejected: %v", key, err)
			s.metrics.ObserveBooking(string(req.Source), outcomeConflict)
		} else {
			s.logger.Error("AddBooking: failed to mark slot %s: %v", key, err)
			s.metrics.ObserveBooking(string(req.Source), outcomeFailed)
		}
		return nil, mapped
	}

	// 3.2. Пишем в журнал источника
	if err := ledger.Append(ctx, booking); err != nil {
		s.logger.Error("AddBooking: failed to append booking id=%s to %s ledger: %v", booking.ID, req.Source, err)
		s.metrics.ObserveBooking(string(req.Source), outcomeFailed)

		// Компенсация: освобождаем слот
		if freeErr := s.calendar.FreeSlot(ctx, key.ProviderID, key.Date, key.Time); freeErr != nil {
			s.logger.Error("AddBooking: compensation failed, slot %s stays booked without a record, manual reconciliation required: %v",
				key, freeErr)
			s.metrics.ObserveCompensationFailure("add_booking")
		}
		return nil, fmt.Errorf("%w: AddBooking - %v", ErrLedgerWriteFailure, err)
	}

	s.indexPut(booking.ID, booking.Source)
	s.metrics.ObserveBooking(string(req.Source), outcomeCreated)

	s.logger.Info("AddBooking: created booking id=%s, source=%s, slot=%s", booking.ID, booking.Source, key)
	return booking, nil
}

// Get возвращает бронирование по ID
func (s *Service) Get(ctx context.Context, id string) (*domain.Booking, error) {
	ledger, err := s.ledgerFor(ctx, id)
	if err != nil {
		return nil, err
	}

	booking, err := ledger.Find(ctx, id)
	if err != nil {
		return nil, mapLedgerError("Get", err)
	}
	return booking, nil
}

// UpdateStatus меняет статус; отмена удаляет бронирование и освобождает слот
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	s.logger.Info("UpdateStatus: id=%s, status=%s", id, status)

	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	if status == domain.StatusCancelled {
		removed, err := s.RemoveBooking(ctx, id)
		if err != nil {
			return nil, err
		}
		removed.Status = domain.StatusCancelled
		return removed, nil
	}

	return s.update(ctx, "UpdateStatus", id, domain.BookingPatch{Status: &status})
}

// UpdatePaymentStatus меняет статус оплаты (подтверждение брони)
func (s *Service) UpdatePaymentStatus(ctx context.Context, id string, payment domain.PaymentStatus) (*domain.Booking, error) {
	s.logger.Info("UpdatePaymentStatus: id=%s, paymentStatus=%s", id, payment)

	if payment == domain.PaymentUnknown || !payment.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, payment)
	}

	return s.update(ctx, "UpdatePaymentStatus", id, domain.BookingPatch{PaymentStatus: &payment})
}

// update применяет патч под блокировкой слота.
// Возврат отмененной записи в работу заново занимает слот; если слот уже занят, запись не меняется.
func (s *Service) update(ctx context.Context, op string, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	ledger, err := s.ledgerFor(ctx, id)
	if err != nil {
		return nil, err
	}

	current, err := ledger.Find(ctx, id)
	if err != nil {
		return nil, mapLedgerError(op, err)
	}
	key := current.Slot()

	unlock := s.locks.Lock(key.String())
	defer unlock()

	current, err = ledger.Find(ctx, id)
	if err != nil {
		return nil, mapLedgerError(op, err)
	}

	reactivate := !current.IsActive() && patch.Status != nil && *patch.Status != domain.StatusCancelled
	if reactivate {
		if err := s.calendar.MarkBooked(ctx, key.ProviderID, key.Date, key.Time); err != nil {
			s.logger.Warn("%s: cannot reactivate booking id=%s, slot %s: %v", op, id, key, err)
			return nil, mapCalendarError(err)
		}
	}

	updated, err := ledger.Update(ctx, id, patch)
	if err != nil {
		s.logger.Error("%s: failed to update booking id=%s: %v", op, id, err)

		if reactivate {
			if freeErr := s.calendar.FreeSlot(ctx, key.ProviderID, key.Date, key.Time); freeErr != nil {
				s.logger.Error("%s: compensation failed, slot %s stays booked without an active record, manual reconciliation required: %v",
					op, key, freeErr)
				s.metrics.ObserveCompensationFailure("update_booking")
			}
		}
		return nil, mapLedgerError(op, err)
	}
	return updated, nil
}

// RemoveBooking освобождает слот, затем удаляет запись из журнала.
// Если удаление не удалось, слот снова помечается занятым.
func (s *Service) RemoveBooking(ctx context.Context, id string) (*domain.Booking, error) {
	s.logger.Info("RemoveBooking: id=%s", id)
	return s.removeIf(ctx, "RemoveBooking", id, nil)
}

// removeIf удаляет запись, только если cond выполняется для нее после перечитывания под блокировкой.
// nil cond удаляет безусловно.
func (s *Service) removeIf(ctx context.Context, op string, id string, cond func(*domain.Booking) bool) (*domain.Booking, error) {
	ledger, err := s.ledgerFor(ctx, id)
	if err != nil {
		return nil, err
	}

	booking, err := ledger.Find(ctx, id)
	if err != nil {
		return nil, mapLedgerError(op, err)
	}
	key := booking.Slot()

	unlock := s.locks.Lock(key.String())
	defer unlock()

	// Перечитываем под блокировкой: запись могли удалить или изменить параллельно
	booking, err = ledger.Find(ctx, id)
	if err != nil {
		return nil, mapLedgerError(op, err)
	}
	if cond != nil && !cond(booking) {
		return nil, fmt.Errorf("%w: id=%s", errBookingChanged, id)
	}

	// Отмененная запись слот не держит
	freed := false
	if booking.IsActive() {
		if err := s.calendar.FreeSlot(ctx, key.ProviderID, key.Date, key.Time); err != nil {
			s.logger.Error("%s: failed to free slot %s: %v", op, key, err)
			return nil, mapCalendarError(err)
		}
		freed = true
	}

	if err := ledger.Remove(ctx, id); err != nil {
		s.logger.Error("%s: failed to remove booking id=%s from %s ledger: %v", op, id, booking.Source, err)

		if freed {
			if markErr := s.calendar.MarkBooked(ctx, key.ProviderID, key.Date, key.Time); markErr != nil {
				s.logger.Error("%s: compensation failed, booking id=%s has no slot hold at %s, manual reconciliation required: %v",
					op, id, key, markErr)
				s.metrics.ObserveCompensationFailure("remove_booking")
			}
		}
		return nil, mapLedgerError(op, err)
	}

	s.indexDelete(id)
	s.metrics.ObserveRemoval(string(booking.Source))

	s.logger.Info("%s: removed booking id=%s, slot=%s", op, id, key)
	return booking, nil
}

// BookingsBySource бронирования, сгруппированные по журналам
func (s *Service) BookingsBySource(ctx context.Context) (map[domain.Source][]*domain.Booking, error) {
	result := make(map[domain.Source][]*domain.Booking, len(s.ledgers))
	for _, source := range domain.AllSources {
		ledger, ok := s.ledgers[source]
		if !ok {
			continue
		}

		bookings, err := ledger.Bookings(ctx)
		if err != nil {
			s.logger.Error("BookingsBySource: failed to read %s ledger: %v", source, err)
			return nil, mapLedgerError("BookingsBySource", err)
		}
		result[source] = bookings
	}
	return result, nil
}

// ListAll все бронирования всех журналов, новые первыми
func (s *Service) ListAll(ctx context.Context) ([]*domain.Booking, error) {
	bySource, err := s.BookingsBySource(ctx)
	if err != nil {
		return nil, err
	}

	var all []*domain.Booking
	for _, source := range domain.AllSources {
		all = append(all, bySource[source]...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

// BookingsForProvider бронирования специалиста
func (s *Service) BookingsForProvider(ctx context.Context, providerID string) ([]*domain.Booking, error) {
	return s.filter(ctx, func(b *domain.Booking) bool { return b.ProviderID == providerID })
}

// BookingsForDate бронирования на дату
func (s *Service) BookingsForDate(ctx context.Context, date types.DateString) ([]*domain.Booking, error) {
	return s.filter(ctx, func(b *domain.Booking) bool { return b.Date == date })
}

func (s *Service) filter(ctx context.Context, keep func(*domain.Booking) bool) ([]*domain.Booking, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Booking, 0, len(all))
	for _, b := range all {
		if keep(b) {
			result = append(result, b)
		}
	}
	return result, nil
}

// Stats сводка по всем журналам; выручка считается только по завершенным сессиям
func (s *Service) Stats(ctx context.Context) (domain.BookingStats, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return domain.BookingStats{}, err
	}

	stats := domain.BookingStats{Total: len(all)}
	for _, b := range all {
		switch b.Status {
		case domain.StatusScheduled:
			stats.Scheduled++
		case domain.StatusInProgress:
			stats.InProgress++
		case domain.StatusCompleted:
			stats.Completed++
			stats.TotalRevenue += b.Price
		case domain.StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

func (s *Service) ledgerFor(ctx context.Context, id string) (Ledger, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty booking id", ErrInvalidInput)
	}

	if err := s.ensureIndex(ctx); err != nil {
		return nil, err
	}

	source, ok := s.indexGet(id)
	if !ok {
		return nil, fmt.Errorf("%w: id=%s", ErrBookingNotFound, id)
	}

	ledger, ok := s.ledgers[source]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, source)
	}
	return ledger, nil
}

func newBooking(req *models.AddBookingRequest, id string, now time.Time, defaultDuration int) *domain.Booking {
	duration := req.DurationMinutes
	if duration <= 0 {
		duration = defaultDuration
	}

	payment := req.PaymentStatus
	if payment == domain.PaymentUnknown && req.Source == domain.SourceOnline {
		payment = domain.PaymentPending
	}

	return &domain.Booking{
		ID:              id,
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		ProviderID:      req.ProviderID,
		ProviderName:    req.ProviderName,
		Date:            req.Date,
		Time:            req.Time,
		SessionType:     req.SessionType,
		DurationMinutes: duration,
		Price:           req.Price,
		Status:          domain.StatusScheduled,
		PaymentStatus:   payment,
		Notes:           req.Notes,
		CreatedAt:       now.UTC().Truncate(time.Second),
		Source:          req.Source,
	}
}

func mapCalendarError(err error) error {
	switch {
	case errors.Is(err, scheduleService.ErrSlotAlreadyBooked):
		return fmt.Errorf("%w: %v", ErrSlotAlreadyBooked, err)
	case errors.Is(err, scheduleService.ErrSlotUnavailable):
		return fmt.Errorf("%w: %v", ErrSlotUnavailable, err)
	case errors.Is(err, scheduleService.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: calendar error: %v", ErrInternal, err)
	}
}

func mapLedgerError(op string, err error) error {
	switch {
	case errors.Is(err, ledgerRepo.ErrRecordNotFound):
		return fmt.Errorf("%w: %s - %v", ErrBookingNotFound, op, err)
	case errors.Is(err, ledgerRepo.ErrInvalidRecord):
		return fmt.Errorf("%w: %s - %v", ErrInvalidInput, op, err)
	case errors.Is(err, ledgerRepo.ErrWrite), errors.Is(err, ledgerRepo.ErrDuplicateID):
		return fmt.Errorf("%w: %s - %v", ErrLedgerWriteFailure, op, err)
	default:
		return fmt.Errorf("%w: %s - %v", ErrInternal, op, err)
	}
}
