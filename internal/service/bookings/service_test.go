package bookings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/internal/infra/storage/kv"
	ledgerRepo "github.com/m04kA/PsyBookingService/internal/infra/storage/ledger"
	scheduleRepo "github.com/m04kA/PsyBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/PsyBookingService/internal/service/availability"
	"github.com/m04kA/PsyBookingService/internal/service/bookings/models"
	scheduleService "github.com/m04kA/PsyBookingService/internal/service/schedule"
	"github.com/m04kA/PsyBookingService/pkg/logger"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

const (
	anna = "anna-petrova"
	igor = "igor-smirnov"
	day  = types.DateString("2025-09-01")
)

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type metricsRecorder struct {
	mu            sync.Mutex
	outcomes      map[string]int
	removals      int
	compensations int
	expired       int
	inconsistent  map[string]int
}

func newMetricsRecorder() *metricsRecorder {
	return &metricsRecorder{outcomes: make(map[string]int)}
}

func (m *metricsRecorder) ObserveBooking(source, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[source+"/"+outcome]++
}

func (m *metricsRecorder) ObserveRemoval(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removals++
}

func (m *metricsRecorder) ObserveCompensationFailure(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.compensations++
}

func (m *metricsRecorder) ObserveExpiredHolds(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expired += n
}

func (m *metricsRecorder) SetInconsistencies(counts map[string]int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inconsistent = counts
}

// failingStore отказывает в записи выбранных ключей
type failingStore struct {
	kv.Store
	mu   sync.Mutex
	keys map[string]bool
}

func (s *failingStore) failOn(key string, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = fail
}

func (s *failingStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	fail := s.keys[key]
	s.mu.Unlock()
	if fail {
		return errors.New("disk full")
	}
	return s.Store.Set(ctx, key, value)
}

// brokenFree календарь, который не может освободить слот
type brokenFree struct {
	SlotCalendar
}

func (brokenFree) FreeSlot(context.Context, string, types.DateString, types.TimeString) error {
	return errors.New("schedule store is down")
}

type fixture struct {
	svc      *Service
	calendar *scheduleService.Service
	store    *failingStore
	clock    *fixedClock
	metrics  *metricsRecorder
	online   *ledgerRepo.Ledger[ledgerRepo.OnlineRecord]
	provider *ledgerRepo.Ledger[ledgerRepo.ProviderRecord]
	manager  *ledgerRepo.Ledger[ledgerRepo.ManagerRecord]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := &failingStore{Store: kv.NewMemoryStore(), keys: make(map[string]bool)}
	calendar := scheduleService.NewService(
		scheduleRepo.NewRepository(store),
		scheduleService.DefaultTemplate(),
		logger.NewNop(),
	)
	f := &fixture{
		calendar: calendar,
		store:    store,
		clock:    &fixedClock{now: time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)},
		metrics:  newMetricsRecorder(),
		online:   ledgerRepo.NewOnlineLedger(store),
		provider: ledgerRepo.NewProviderLedger(store),
		manager:  ledgerRepo.NewManagerLedger(store),
	}
	f.svc = NewService(
		calendar,
		[]Ledger{f.online, f.provider, f.manager},
		f.metrics,
		logger.NewNop(),
		WithTimeProvider(f.clock),
	)
	return f
}

func (f *fixture) openDay(t *testing.T, providerID string) {
	t.Helper()
	_, err := f.calendar.BulkSet(context.Background(), providerID, day, scheduleService.ActivateAll())
	require.NoError(t, err)
}

func (f *fixture) slot(t *testing.T, providerID string, slotTime types.TimeString) domain.TimeSlot {
	t.Helper()
	slots, err := f.calendar.GetSlots(context.Background(), providerID, day)
	require.NoError(t, err)
	idx := slots.Find(slotTime)
	require.GreaterOrEqual(t, idx, 0)
	return slots[idx]
}

func request(source domain.Source, providerID string, slotTime types.TimeString) *models.AddBookingRequest {
	return &models.AddBookingRequest{
		Source:       source,
		ClientName:   "Мария Иванова",
		ClientPhone:  "+7 (918) 108-97-71",
		ClientEmail:  "maria@example.com",
		ProviderID:   providerID,
		ProviderName: "Анна Петрова",
		Date:         day,
		Time:         slotTime,
		SessionType:  "online",
		Price:        3500,
	}
}

func TestAddBooking_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)

	booking, err := f.svc.AddBooking(ctx, request(domain.SourceOnline, anna, "10:00"))
	require.NoError(t, err)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, domain.StatusScheduled, booking.Status)
	assert.Equal(t, domain.PaymentPending, booking.PaymentStatus)
	assert.Equal(t, domain.DefaultSessionMinutes, booking.DurationMinutes)
	assert.Equal(t, domain.SourceOnline, booking.Source)

	assert.True(t, f.slot(t, anna, "10:00").Booked)

	got, err := f.svc.Get(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ClientName, got.ClientName)
	assert.Equal(t, domain.SourceOnline, got.Source)

	assert.Equal(t, 1, f.metrics.outcomes["online/created"])
}

func TestAddBooking_EachSourceWritesOwnLedger(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)

	for i, source := range domain.AllSources {
		slotTime, err := types.NewTimeStringFromMinutes((10 + i) * 60)
		require.NoError(t, err)
		_, err = f.svc.AddBooking(ctx, request(source, anna, slotTime))
		require.NoError(t, err)
	}

	bySource, err := f.svc.BookingsBySource(ctx)
	require.NoError(t, err)
	for _, source := range domain.AllSources {
		require.Len(t, bySource[source], 1, source)
		assert.Equal(t, source, bySource[source][0].Source)
	}

	// Оплата по умолчанию выставляется только онлайн-брони
	assert.Equal(t, domain.PaymentUnknown, bySource[domain.SourceProvider][0].PaymentStatus)
}

func TestAddBooking_DefaultDuration(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)
	WithDefaultDuration(50)(f.svc)

	booking, err := f.svc.AddBooking(ctx, request(domain.SourceManager, anna, "10:00"))
	require.NoError(t, err)
	assert.Equal(t, 50, booking.DurationMinutes)

	req := request(domain.SourceManager, anna, "11:00")
	req.DurationMinutes = 90
	booking, err = f.svc.AddBooking(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 90, booking.DurationMinutes)

	stored, err := f.svc.Get(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, stored.DurationMinutes)
}

func TestAddBooking_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)

	tests := []struct {
		name   string
		mutate func(r *models.AddBookingRequest)
	}{
		{name: "empty name", mutate: func(r *models.AddBookingRequest) { r.ClientName = "  " }},
		{name: "unknown source", mutate: func(r *models.AddBookingRequest) { r.Source = "phone" }},
		{name: "bad provider id", mutate: func(r *models.AddBookingRequest) { r.ProviderID = "anna petrova" }},
		{name: "bad date", mutate: func(r *models.AddBookingRequest) { r.Date = "01.09.2025" }},
		{name: "bad time", mutate: func(r *models.AddBookingRequest) { r.Time = "25:00" }},
		{name: "negative price", mutate: func(r *models.AddBookingRequest) { r.Price = -1 }},
		{name: "unknown payment", mutate: func(r *models.AddBookingRequest) { r.PaymentStatus = "refunded" }},
		{name: "slot in the past", mutate: func(r *models.AddBookingRequest) { r.Date = "2025-08-31"; r.Time = "11:00" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request(domain.SourceOnline, anna, "10:00")
			tt.mutate(req)

			_, err := f.svc.AddBooking(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	all, err := f.svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.False(t, f.slot(t, anna, "10:00").Booked)
}

func TestAddBooking_SlotNotOpened(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.AddBooking(ctx, request(domain.SourceManager, anna, "10:00"))
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	all, err := f.svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, 1, f.metrics.outcomes["manager/conflict"])
}

func TestAddBooking_ConcurrentSameSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)

	const workers = 30
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
	)

	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		source := domain.AllSources[i%len(domain.AllSources)]
		go func() {
			defer wg.Done()
			<-start
			_, err := f.svc.AddBooking(ctx, request(source, anna, "12:00"))
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, ErrSlotAlreadyBooked):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(workers-1), conflicts.Load())

	all, err := f.svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAddBooking_ConcurrentDifferentSlots(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)
	f.openDay(t, igor)

	times := scheduleService.DefaultTemplate().Times()
	var wg sync.WaitGroup
	for _, providerID := range []string{anna, igor} {
		for _, slotTime := range times {
			wg.Add(1)
			go func(providerID string, slotTime types.TimeString) {
				defer wg.Done()
				_, err := f.svc.AddBooking(ctx, request(domain.SourceOnline, providerID, slotTime))
				assert.NoError(t, err)
			}(providerID, slotTime)
		}
	}
	wg.Wait()

	all, err := f.svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2*len(times))

	report, err := f.svc.CheckConsistency(ctx, []string{anna, igor})
	require.NoError(t, err)
	assert.True(t, report.IsConsistent(), "%+v", report.Issues)
}

func TestAddBooking_CompensatesLedgerFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)
	f.store.failOn(domain.ProviderLedgerKey, true)

	_, err := f.svc.AddBooking(ctx, request(domain.SourceProvider, anna, "15:00"))
	assert.ErrorIs(t, err, ErrLedgerWriteFailure)

	slot := f.slot(t, anna, "15:00")
	assert.False(t, slot.Booked)
	assert.True(t, slot.Available)
	assert.Zero(t, f.metrics.compensations)

	// После восстановления хранилища слот снова можно забронировать
	f.store.failOn(domain.ProviderLedgerKey, false)
	_, err = f.svc.AddBooking(ctx, request(domain.SourceProvider, anna, "15:00"))
	require.NoError(t, err)
}

func TestAddBooking_CompensationFailureIsCounted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)
	f.svc.calendar = brokenFree{SlotCalendar: f.calendar}
	f.store.failOn(domain.ManagerLedgerKey, true)

	_, err := f.svc.AddBooking(ctx, request(domain.SourceManager, anna, "15:00"))
	assert.ErrorIs(t, err, ErrLedgerWriteFailure)
	assert.Equal(t, 1, f.metrics.compensations)

	// Слот остался занятым без записи, сверка это видит
	report, err := f.svc.CheckConsistency(ctx, []string{anna})
	require.NoError(t, err)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, models.IssuePhantomHold, report.Issues[0].Kind)
	assert.Equal(t, "15:00", report.Issues[0].Time)
}

func TestRemoveBooking_FreesSlotForRebooking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)

	booking, err := f.svc.AddBooking(ctx, request(domain.SourceOnline, anna, "10:00"))
	require.NoError(t, err)

	_, err = f.svc.AddBooking(ctx, request(domain.SourceManager, anna, "10:00"))
	require.ErrorIs(t, err, ErrSlotAlreadyBooked)

	removed, err := f.svc.RemoveBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, removed.ID)

	slot := f.slot(t, anna, "10:00")
	assert.False(t, slot.Booked)
	assert.True(t, slot.Available)

	_, err = f.svc.Get(ctx, booking.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.svc.AddBooking(ctx, request(domain.SourceManager, anna, "10:00"))
	require.NoError(t, err)
	assert.Equal(t, 1, f.metrics.removals)
}

func TestRemoveBooking_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RemoveBooking(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.svc.RemoveBooking(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRemoveBooking_RestoresHoldOnLedgerFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)

	booking, err := f.svc.AddBooking(ctx, request(domain.SourceOnline, anna, "18:00"))
	require.NoError(t, err)

	f.store.failOn(domain.OnlineLedgerKey, true)
	_, err = f.svc.RemoveBooking(ctx, booking.ID)
	assert.ErrorIs(t, err, ErrLedgerWriteFailure)

	assert.True(t, f.slot(t, anna, "18:00").Booked)
	_, err = f.svc.Get(ctx, booking.ID)
	assert.NoError(t, err)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)

	booking, err := f.svc.AddBooking(ctx, request(domain.SourceProvider, anna, "11:00"))
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(ctx, booking.ID, domain.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, updated.Status)
	assert.True(t, f.slot(t, anna, "11:00").Booked)

	_, err = f.svc.UpdateStatus(ctx, booking.ID, "done")
	assert.ErrorIs(t, err, ErrInvalidInput)

	cancelled, err := f.svc.UpdateStatus(ctx, booking.ID, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	assert.False(t, f.slot(t, anna, "11:00").Booked)

	_, err = f.svc.Get(ctx, booking.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdatePaymentStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)

	booking, err := f.svc.AddBooking(ctx, request(domain.SourceOnline, anna, "11:00"))
	require.NoError(t, err)

	updated, err := f.svc.UpdatePaymentStatus(ctx, booking.ID, domain.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, updated.PaymentStatus)
	assert.Equal(t, domain.StatusScheduled, updated.Status)

	_, err = f.svc.UpdatePaymentStatus(ctx, booking.ID, domain.PaymentUnknown)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// cancelledRecord запись журнала специалиста, оставшаяся после отмены
func cancelledRecord(id string, slotTime types.TimeString) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		ClientName:      "Олег",
		ProviderID:      anna,
		ProviderName:    "Анна Петрова",
		Date:            day,
		Time:            slotTime,
		DurationMinutes: 60,
		Price:           3500,
		Status:          domain.StatusCancelled,
		CreatedAt:       time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC),
		Source:          domain.SourceProvider,
	}
}

func TestUpdateStatus_ReactivationTakesSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)

	require.NoError(t, f.provider.Append(ctx, cancelledRecord("old", "10:00")))
	require.NoError(t, f.provider.Append(ctx, cancelledRecord("retired", "12:00")))

	_, err := f.svc.AddBooking(ctx, request(domain.SourceOnline, anna, "10:00"))
	require.NoError(t, err)

	// Слот 10:00 уже принадлежит онлайн-брони
	_, err = f.svc.UpdateStatus(ctx, "old", domain.StatusScheduled)
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)

	old, err := f.svc.Get(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, old.Status)

	report, err := f.svc.CheckConsistency(ctx, []string{anna})
	require.NoError(t, err)
	assert.True(t, report.IsConsistent(), "issues: %+v", report.Issues)

	// Свободный слот занимается заново
	assert.False(t, f.slot(t, anna, "12:00").Booked)
	retired, err := f.svc.UpdateStatus(ctx, "retired", domain.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, retired.Status)
	assert.True(t, f.slot(t, anna, "12:00").Booked)

	report, err = f.svc.CheckConsistency(ctx, []string{anna})
	require.NoError(t, err)
	assert.True(t, report.IsConsistent(), "issues: %+v", report.Issues)
}

func TestUpdateStatus_ReactivationClosedSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.provider.Append(ctx, cancelledRecord("old", "10:00")))

	_, err := f.svc.UpdateStatus(ctx, "old", domain.StatusScheduled)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestUpdateStatus_ReactivationReleasesSlotOnLedgerFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)

	require.NoError(t, f.provider.Append(ctx, cancelledRecord("old", "10:00")))

	f.store.failOn(domain.ProviderLedgerKey, true)
	_, err := f.svc.UpdateStatus(ctx, "old", domain.StatusScheduled)
	assert.ErrorIs(t, err, ErrLedgerWriteFailure)
	f.store.failOn(domain.ProviderLedgerKey, false)

	assert.False(t, f.slot(t, anna, "10:00").Booked)
	assert.Zero(t, f.metrics.compensations)
}

func TestGet_IndexesExistingLedgers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	existing := &domain.Booking{
		ID:              "legacy-1",
		ClientName:      "Олег",
		ProviderID:      igor,
		ProviderName:    "Игорь Смирнов",
		Date:            day,
		Time:            "14:00",
		DurationMinutes: 50,
		Price:           4000,
		Status:          domain.StatusScheduled,
		PaymentStatus:   domain.PaymentUnpaid,
		CreatedAt:       time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC),
		Source:          domain.SourceManager,
	}
	require.NoError(t, f.manager.Append(ctx, existing))

	got, err := f.svc.Get(ctx, "legacy-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceManager, got.Source)
	assert.Equal(t, 50, got.DurationMinutes)
}

func TestListAll_NewestFirstAndFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)
	f.openDay(t, igor)

	first, err := f.svc.AddBooking(ctx, request(domain.SourceOnline, anna, "10:00"))
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	second, err := f.svc.AddBooking(ctx, request(domain.SourceProvider, igor, "10:00"))
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	third, err := f.svc.AddBooking(ctx, request(domain.SourceManager, anna, "12:00"))
	require.NoError(t, err)

	all, err := f.svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	forAnna, err := f.svc.BookingsForProvider(ctx, anna)
	require.NoError(t, err)
	assert.Len(t, forAnna, 2)

	forDay, err := f.svc.BookingsForDate(ctx, day)
	require.NoError(t, err)
	assert.Len(t, forDay, 3)

	otherDay, err := f.svc.BookingsForDate(ctx, "2025-09-02")
	require.NoError(t, err)
	assert.Empty(t, otherDay)
}

func TestStats_RevenueFromCompletedOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)

	done, err := f.svc.AddBooking(ctx, request(domain.SourceManager, anna, "09:00"))
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, done.ID, domain.StatusCompleted)
	require.NoError(t, err)

	active, err := f.svc.AddBooking(ctx, request(domain.SourceOnline, anna, "10:00"))
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, active.ID, domain.StatusInProgress)
	require.NoError(t, err)

	_, err = f.svc.AddBooking(ctx, request(domain.SourceProvider, anna, "11:00"))
	require.NoError(t, err)

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStats{
		Total:        3,
		Scheduled:    1,
		InProgress:   1,
		Completed:    1,
		TotalRevenue: 3500,
	}, stats)
}

func TestCheckConsistency(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)

	_, err := f.svc.AddBooking(ctx, request(domain.SourceOnline, anna, "09:00"))
	require.NoError(t, err)

	// Занятый слот без записи
	require.NoError(t, f.calendar.MarkBooked(ctx, anna, day, "13:00"))

	// Две записи на один свободный слот, мимо менеджера
	for i, l := range []Ledger{f.provider, f.manager} {
		b := request(l.Source(), anna, "16:00")
		require.NoError(t, l.Append(ctx, &domain.Booking{
			ID:              fmt.Sprintf("raw-%d", i),
			ClientName:      b.ClientName,
			ProviderID:      b.ProviderID,
			ProviderName:    b.ProviderName,
			Date:            b.Date,
			Time:            b.Time,
			DurationMinutes: 60,
			Price:           b.Price,
			Status:          domain.StatusScheduled,
			CreatedAt:       f.clock.Now(),
			Source:          l.Source(),
		}))
	}

	report, err := f.svc.CheckConsistency(ctx, []string{anna})
	require.NoError(t, err)
	assert.False(t, report.IsConsistent())
	assert.Equal(t, 3, report.Bookings)
	assert.Equal(t, map[string]int{
		models.IssuePhantomHold:   1,
		models.IssueOrphanRecord:  1,
		models.IssueDoubleBooking: 1,
	}, report.Counts)
	assert.Equal(t, report.Counts, f.metrics.inconsistent)

	require.Len(t, report.Issues, 3)
	assert.Equal(t, "13:00", report.Issues[0].Time)
	assert.Equal(t, models.IssuePhantomHold, report.Issues[0].Kind)
	assert.Equal(t, models.IssueDoubleBooking, report.Issues[1].Kind)
	assert.Equal(t, []string{"raw-0", "raw-1"}, report.Issues[1].BookingIDs)
	assert.Equal(t, models.IssueOrphanRecord, report.Issues[2].Kind)
}

func TestExpireStaleHolds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)

	stale, err := f.svc.AddBooking(ctx, request(domain.SourceOnline, anna, "10:00"))
	require.NoError(t, err)

	paid, err := f.svc.AddBooking(ctx, request(domain.SourceOnline, anna, "11:00"))
	require.NoError(t, err)
	_, err = f.svc.UpdatePaymentStatus(ctx, paid.ID, domain.PaymentPaid)
	require.NoError(t, err)

	manual, err := f.svc.AddBooking(ctx, request(domain.SourceManager, anna, "12:00"))
	require.NoError(t, err)

	f.clock.Advance(20 * time.Minute)
	fresh, err := f.svc.AddBooking(ctx, request(domain.SourceOnline, anna, "13:00"))
	require.NoError(t, err)

	n, err := f.svc.ExpireStaleHolds(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = f.svc.ExpireStaleHolds(ctx, 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, f.metrics.expired)

	_, err = f.svc.Get(ctx, stale.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.False(t, f.slot(t, anna, "10:00").Booked)

	for _, id := range []string{paid.ID, manual.ID, fresh.ID} {
		_, err := f.svc.Get(ctx, id)
		assert.NoError(t, err)
	}
}

// confirmingLedger выполняет afterSnapshot один раз, сразу после того как отдал список записей
type confirmingLedger struct {
	Ledger
	afterSnapshot func()
}

func (l *confirmingLedger) Bookings(ctx context.Context) ([]*domain.Booking, error) {
	bookings, err := l.Ledger.Bookings(ctx)
	if hook := l.afterSnapshot; hook != nil {
		l.afterSnapshot = nil
		hook()
	}
	return bookings, err
}

func TestExpireStaleHolds_KeepsHoldPaidDuringSweep(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)

	online := &confirmingLedger{Ledger: f.online}
	svc := NewService(
		f.calendar,
		[]Ledger{online, f.provider, f.manager},
		f.metrics,
		logger.NewNop(),
		WithTimeProvider(f.clock),
	)

	hold, err := svc.AddBooking(ctx, request(domain.SourceOnline, anna, "10:00"))
	require.NoError(t, err)
	f.clock.Advance(30 * time.Minute)

	// Клиент оплачивает бронь, пока воркер разбирает устаревший снимок
	online.afterSnapshot = func() {
		_, err := svc.UpdatePaymentStatus(ctx, hold.ID, domain.PaymentPaid)
		require.NoError(t, err)
	}

	n, err := svc.ExpireStaleHolds(ctx, 15*time.Minute)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, f.metrics.removals)
	assert.Zero(t, f.metrics.expired)

	got, err := svc.Get(ctx, hold.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
	assert.True(t, f.slot(t, anna, "10:00").Booked)
}

func TestRemoveIf_ConditionCheckedUnderLock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openDay(t, anna)

	booking, err := f.svc.AddBooking(ctx, request(domain.SourceOnline, anna, "10:00"))
	require.NoError(t, err)

	_, err = f.svc.removeIf(ctx, "test", booking.ID, func(b *domain.Booking) bool {
		return b.PaymentStatus == domain.PaymentPaid
	})
	assert.ErrorIs(t, err, errBookingChanged)
	assert.True(t, f.slot(t, anna, "10:00").Booked)

	removed, err := f.svc.removeIf(ctx, "test", booking.ID, func(b *domain.Booking) bool {
		return b.IsAwaitingPayment()
	})
	require.NoError(t, err)
	assert.Equal(t, booking.ID, removed.ID)
	assert.False(t, f.slot(t, anna, "10:00").Booked)
}

func TestEndToEnd_BookAndCancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	aggregator := availability.NewService(f.calendar)

	// 1. Специалист открывает 09:00 и 10:00
	policy, err := scheduleService.WorkingHoursOnly(9, 11)
	require.NoError(t, err)
	_, err = f.calendar.BulkSet(ctx, anna, day, policy)
	require.NoError(t, err)

	free := func() []string {
		slots, err := aggregator.AvailableSlotsForDate(ctx, day, []string{anna})
		require.NoError(t, err)
		out := make([]string, 0, len(slots))
		for _, s := range slots {
			out = append(out, s.Time.String())
		}
		return out
	}
	assert.Equal(t, []string{"09:00", "10:00"}, free())

	// 2. Клиент бронирует 10:00
	booking, err := f.svc.AddBooking(ctx, request(domain.SourceOnline, anna, "10:00"))
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, free())

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Scheduled)

	// 3. Отмена возвращает слот
	_, err = f.svc.UpdateStatus(ctx, booking.ID, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00"}, free())

	stats, err = f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Scheduled)
}
