package clients

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/pkg/logger"
)

type fakeReader struct {
	bySource map[domain.Source][]*domain.Booking
	err      error
}

func (f *fakeReader) BookingsBySource(context.Context) (map[domain.Source][]*domain.Booking, error) {
	return f.bySource, f.err
}

func booking(id, phone string, source domain.Source, createdAt time.Time) *domain.Booking {
	return &domain.Booking{ID: id, ClientName: "client-" + id, ClientPhone: phone, Source: source, CreatedAt: createdAt}
}

func TestService_Lookup(t *testing.T) {
	day := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)
	reader := &fakeReader{bySource: map[domain.Source][]*domain.Booking{
		domain.SourceManager: {booking("m-1", "89181089771", domain.SourceManager, day)},
		domain.SourceOnline:  {booking("o-1", "+7 900 111-22-33", domain.SourceOnline, day)},
	}}
	svc := NewService(reader, logger.NewNop())

	record, err := svc.Lookup(context.Background(), "+7 (918) 108-97-71")
	require.NoError(t, err)
	assert.Equal(t, "m-1", record.BookingID)
	assert.Equal(t, domain.SourceManager, record.Source)

	_, err = svc.Lookup(context.Background(), "+7 999 000-00-00")
	assert.ErrorIs(t, err, ErrClientNotFound)

	_, err = svc.Lookup(context.Background(), "---")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_BookingsFor(t *testing.T) {
	day := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)
	reader := &fakeReader{bySource: map[domain.Source][]*domain.Booking{
		domain.SourceOnline:   {booking("o-1", "+7 (918) 108-97-71", domain.SourceOnline, day)},
		domain.SourceProvider: {booking("p-1", "9181089771", domain.SourceProvider, day.Add(time.Hour))},
		domain.SourceManager:  {booking("m-1", "+7 900 111-22-33", domain.SourceManager, day.Add(2*time.Hour))},
	}}
	svc := NewService(reader, logger.NewNop())

	got, err := svc.BookingsFor(context.Background(), "89181089771")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p-1", got[0].ID)
	assert.Equal(t, "o-1", got[1].ID)
}

func TestService_ReadFailure(t *testing.T) {
	svc := NewService(&fakeReader{err: errors.New("ledger corrupted")}, logger.NewNop())

	_, err := svc.Lookup(context.Background(), "89181089771")
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.BookingsFor(context.Background(), "89181089771")
	assert.ErrorIs(t, err, ErrInternal)
}
