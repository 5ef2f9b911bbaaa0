package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/internal/infra/storage/kv"
	scheduleRepo "github.com/m04kA/PsyBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/PsyBookingService/internal/integrations/specialistservice"
	"github.com/m04kA/PsyBookingService/internal/service/availability"
	scheduleService "github.com/m04kA/PsyBookingService/internal/service/schedule"
	"github.com/m04kA/PsyBookingService/pkg/logger"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

type fixedTime time.Time

func (f fixedTime) Now() time.Time { return time.Time(f) }

func setup(t *testing.T, now time.Time) (*UseCase, *scheduleService.Service) {
	t.Helper()

	calendar := scheduleService.NewService(
		scheduleRepo.NewRepository(kv.NewMemoryStore()),
		scheduleService.DefaultTemplate(),
		logger.NewNop(),
	)
	directory := specialistservice.NewDirectory(nil, []domain.Provider{
		{ID: "anna-petrova", Name: "Анна Петрова", Active: true, Price: 3500},
		{ID: "igor-smirnov", Name: "Игорь Смирнов", Active: true, Price: 4000},
		{ID: "olga-ivanova", Name: "Ольга Иванова", Active: false, Price: 3000},
	}, logger.NewNop())

	uc := NewUseCase(availability.NewService(calendar), directory, time.UTC, logger.NewNop()).
		WithTimeProvider(fixedTime(now))
	return uc, calendar
}

func openHours(t *testing.T, calendar *scheduleService.Service, providerID string, date types.DateString, start, end int) {
	t.Helper()
	policy, err := scheduleService.WorkingHoursOnly(start, end)
	require.NoError(t, err)
	_, err = calendar.BulkSet(context.Background(), providerID, date, policy)
	require.NoError(t, err)
}

func TestExecute_UnionOfActiveProviders(t *testing.T) {
	ctx := context.Background()
	uc, calendar := setup(t, time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC))
	date := types.DateString("2025-09-01")

	openHours(t, calendar, "anna-petrova", date, 9, 11)
	openHours(t, calendar, "igor-smirnov", date, 10, 12)
	openHours(t, calendar, "olga-ivanova", date, 15, 16)
	require.NoError(t, calendar.MarkBooked(ctx, "igor-smirnov", date, "11:00"))

	resp, err := uc.Execute(ctx, &Request{Date: date, Time: "10:00"})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, resp.Slots)
	require.Len(t, resp.Providers, 2)
	assert.Equal(t, "anna-petrova", resp.Providers[0].ID)
	assert.Equal(t, 4000.0, resp.Providers[1].Price)
}

func TestExecute_TodayHidesStartedSlots(t *testing.T) {
	ctx := context.Background()
	uc, calendar := setup(t, time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC))
	date := types.DateString("2025-09-01")

	openHours(t, calendar, "anna-petrova", date, 9, 13)

	resp, err := uc.Execute(ctx, &Request{Date: date, Time: "10:00"})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"11:00", "12:00"}, resp.Slots)
	assert.Empty(t, resp.Providers)
}

func TestExecute_Errors(t *testing.T) {
	ctx := context.Background()
	uc, _ := setup(t, time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC))

	_, err := uc.Execute(ctx, &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{Date: "2025-13-01"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{Date: "2025-09-01", Time: "9am"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{Date: "2025-08-31"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	resp, err := uc.Execute(ctx, &Request{Date: "2025-09-02"})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}
