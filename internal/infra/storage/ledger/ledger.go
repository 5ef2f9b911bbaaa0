package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/internal/infra/storage/kv"
)

// Ledger журнал бронирований одного источника, хранится JSON-массивом под одним ключом.
// Все read-modify-write выполняются под мьютексом журнала.
type Ledger[R any] struct {
	store  Store
	key    string
	source domain.Source
	codec  Codec[R]
	mu     sync.Mutex
}

func newLedger[R any](store Store, key string, source domain.Source, codec Codec[R]) *Ledger[R] {
	return &Ledger[R]{
		store:  store,
		key:    key,
		source: source,
		codec:  codec,
	}
}

// Source источник, которому принадлежит журнал
func (l *Ledger[R]) Source() domain.Source {
	return l.source
}

// List возвращает сырые записи журнала
func (l *Ledger[R]) List(ctx context.Context) ([]R, error) {
	raw, err := l.store.Get(ctx, l.key)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: List - key=%s: %v", ErrRead, l.key, err)
	}

	var records []R
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: List - key=%s: %v", ErrInvalidRecord, l.key, err)
	}
	return records, nil
}

// Bookings возвращает записи в едином представлении.
// Первая невалидная запись прерывает чтение с ErrInvalidRecord.
func (l *Ledger[R]) Bookings(ctx context.Context) ([]*domain.Booking, error) {
	records, err := l.List(ctx)
	if err != nil {
		return nil, err
	}

	bookings := make([]*domain.Booking, 0, len(records))
	for _, record := range records {
		booking, err := l.codec.ToBooking(record)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

// Find возвращает бронирование по ID
func (l *Ledger[R]) Find(ctx context.Context, id string) (*domain.Booking, error) {
	records, err := l.List(ctx)
	if err != nil {
		return nil, err
	}

	idx := l.indexOf(records, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: Find - id=%s, source=%s", ErrRecordNotFound, id, l.source)
	}
	return l.codec.ToBooking(records[idx])
}

// Append добавляет бронирование в конец журнала
func (l *Ledger[R]) Append(ctx context.Context, booking *domain.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.List(ctx)
	if err != nil {
		return err
	}

	if l.indexOf(records, booking.ID) >= 0 {
		return fmt.Errorf("%w: Append - id=%s, source=%s", ErrDuplicateID, booking.ID, l.source)
	}

	records = append(records, l.codec.FromBooking(booking))
	return l.save(ctx, records)
}

// Update применяет частичное обновление и возвращает обновленное бронирование
func (l *Ledger[R]) Update(ctx context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.List(ctx)
	if err != nil {
		return nil, err
	}

	idx := l.indexOf(records, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: Update - id=%s, source=%s", ErrRecordNotFound, id, l.source)
	}

	booking, err := l.codec.ToBooking(records[idx])
	if err != nil {
		return nil, err
	}
	patch.Apply(booking)
	records[idx] = l.codec.FromBooking(booking)

	if err := l.save(ctx, records); err != nil {
		return nil, err
	}
	return booking, nil
}

// Remove удаляет запись из журнала
func (l *Ledger[R]) Remove(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.List(ctx)
	if err != nil {
		return err
	}

	idx := l.indexOf(records, id)
	if idx < 0 {
		return fmt.Errorf("%w: Remove - id=%s, source=%s", ErrRecordNotFound, id, l.source)
	}

	records = append(records[:idx], records[idx+1:]...)
	return l.save(ctx, records)
}

func (l *Ledger[R]) indexOf(records []R, id string) int {
	for i := range records {
		if l.codec.RecordID(records[i]) == id {
			return i
		}
	}
	return -1
}

func (l *Ledger[R]) save(ctx context.Context, records []R) error {
	if records == nil {
		records = []R{}
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: save - key=%s: %v", ErrWrite, l.key, err)
	}

	if err := l.store.Set(ctx, l.key, raw); err != nil {
		return fmt.Errorf("%w: save - key=%s: %v", ErrWrite, l.key, err)
	}
	return nil
}
