package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/internal/integrations/specialistservice"
	bookingService "github.com/m04kA/PsyBookingService/internal/service/bookings"
	"github.com/m04kA/PsyBookingService/internal/service/bookings/models"
	"github.com/m04kA/PsyBookingService/pkg/logger"
	"github.com/m04kA/PsyBookingService/pkg/ptr"
)

type managerStub struct {
	got *models.AddBookingRequest
	err error
}

func (m *managerStub) AddBooking(_ context.Context, req *models.AddBookingRequest) (*domain.Booking, error) {
	m.got = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Booking{
		ID:              "b-1",
		ClientName:      req.ClientName,
		ProviderID:      req.ProviderID,
		ProviderName:    req.ProviderName,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: 60,
		Price:           req.Price,
		Status:          domain.StatusScheduled,
		PaymentStatus:   domain.PaymentPending,
		CreatedAt:       time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC),
		Source:          req.Source,
	}, nil
}

type brokenDirectory struct{}

func (brokenDirectory) GetProvider(context.Context, string) (*domain.Provider, error) {
	return nil, errors.New("connection refused")
}

func newUseCase(manager BookingManager) *UseCase {
	directory := specialistservice.NewDirectory(nil, []domain.Provider{
		{ID: "anna-petrova", Name: "Анна Петрова", Active: true, Price: 3500},
		{ID: "olga-ivanova", Name: "Ольга Иванова", Active: false, Price: 3000},
	}, logger.NewNop())
	return NewUseCase(manager, directory, logger.NewNop())
}

func validRequest() *Request {
	return &Request{
		Source:      domain.SourceOnline,
		ClientName:  "Мария",
		ClientPhone: "8 918 108-97-71",
		ProviderID:  "anna-petrova",
		Date:        "2025-09-01",
		Time:        "10:00",
		Notes:       ptr.Ptr("первая сессия"),
	}
}

func TestExecute_Success(t *testing.T) {
	manager := &managerStub{}
	uc := newUseCase(manager)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "b-1", resp.ID)
	assert.Equal(t, "Анна Петрова", resp.ProviderName)
	assert.Equal(t, 3500.0, resp.Price)
	assert.Equal(t, "pending", resp.PaymentStatus)

	require.NotNil(t, manager.got)
	assert.Equal(t, "первая сессия", manager.got.Notes)
	assert.Equal(t, domain.SourceOnline, manager.got.Source)
}

func TestExecute_PriceOverride(t *testing.T) {
	manager := &managerStub{}
	uc := newUseCase(manager)

	req := validRequest()
	req.Source = domain.SourceManager
	req.Price = ptr.Ptr(0.0)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, resp.Price)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "no source", mutate: func(r *Request) { r.Source = "" }},
		{name: "no name", mutate: func(r *Request) { r.ClientName = " " }},
		{name: "bad provider", mutate: func(r *Request) { r.ProviderID = "../etc" }},
		{name: "no date", mutate: func(r *Request) { r.Date = "" }},
		{name: "bad time", mutate: func(r *Request) { r.Time = "10-00" }},
		{name: "online without phone", mutate: func(r *Request) { r.ClientPhone = "" }},
		{name: "short phone", mutate: func(r *Request) { r.ClientPhone = "12345" }},
		{name: "negative price", mutate: func(r *Request) { r.Price = ptr.Ptr(-10.0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := &managerStub{}
			req := validRequest()
			tt.mutate(req)

			_, err := newUseCase(manager).Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, manager.got)
		})
	}
}

func TestExecute_ProviderErrors(t *testing.T) {
	ctx := context.Background()

	req := validRequest()
	req.ProviderID = "nobody"
	_, err := newUseCase(&managerStub{}).Execute(ctx, req)
	assert.ErrorIs(t, err, ErrProviderNotFound)

	req = validRequest()
	req.ProviderID = "olga-ivanova"
	_, err = newUseCase(&managerStub{}).Execute(ctx, req)
	assert.ErrorIs(t, err, ErrProviderInactive)

	uc := NewUseCase(&managerStub{}, brokenDirectory{}, logger.NewNop())
	_, err = uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_ManagerErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "already booked", err: bookingService.ErrSlotAlreadyBooked, want: ErrSlotAlreadyBooked},
		{name: "not open", err: bookingService.ErrSlotUnavailable, want: ErrSlotNotAvailable},
		{name: "past slot", err: bookingService.ErrInvalidInput, want: ErrInvalidInput},
		{name: "ledger", err: bookingService.ErrLedgerWriteFailure, want: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newUseCase(&managerStub{err: tt.err}).Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
