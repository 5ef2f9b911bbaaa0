package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PsyBookingService/internal/integrations/specialistservice"
	bookingService "github.com/m04kA/PsyBookingService/internal/service/bookings"
	"github.com/m04kA/PsyBookingService/internal/service/bookings/models"
	"github.com/m04kA/PsyBookingService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	manager   BookingManager
	directory ProviderDirectory
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(manager BookingManager, directory ProviderDirectory, logger Logger) *UseCase {
	return &UseCase{
		manager:   manager,
		directory: directory,
		logger:    logger,
	}
}

// Execute выполняет use case создания бронирования.
// Справочник специалистов опрашивается до захвата слота, сетевых вызовов под блокировкой нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: source=%s, provider=%s, date=%s, time=%s",
		req.Source, req.ProviderID, req.Date, req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем специалиста
	provider, err := uc.directory.GetProvider(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, specialistservice.ErrSpecialistNotFound) {
			uc.logger.Warn("CreateBooking: provider id=%s not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateBooking: failed to get provider id=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 3. Специалист должен принимать записи
	if !provider.Active {
		uc.logger.Warn("CreateBooking: provider id=%s is inactive", req.ProviderID)
		return nil, ErrProviderInactive
	}

	// 4. Цена из справочника, если не указана явно
	price := provider.Price
	if req.Price != nil {
		price = *req.Price
	}

	// 5. Создаем бронирование
	booking, err := uc.manager.AddBooking(ctx, &models.AddBookingRequest{
		Source:          req.Source,
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		ProviderID:      provider.ID,
		ProviderName:    provider.Name,
		Date:            req.Date,
		Time:            req.Time,
		SessionType:     req.SessionType,
		DurationMinutes: req.DurationMinutes,
		Price:           price,
		PaymentStatus:   req.PaymentStatus,
		Notes:           ptr.Value(req.Notes),
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingService.ErrSlotAlreadyBooked):
			uc.logger.Warn("CreateBooking: slot %s %s of provider %s is already booked", req.Date, req.Time, req.ProviderID)
			return nil, ErrSlotAlreadyBooked
		case errors.Is(err, bookingService.ErrSlotUnavailable):
			uc.logger.Warn("CreateBooking: slot %s %s of provider %s is not open", req.Date, req.Time, req.ProviderID)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, bookingService.ErrInvalidInput):
			uc.logger.Warn("CreateBooking: booking rejected: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", booking.ID)

	return &Response{
		ID:              booking.ID,
		ClientName:      booking.ClientName,
		ProviderID:      booking.ProviderID,
		ProviderName:    booking.ProviderName,
		Date:            booking.Date,
		Time:            booking.Time,
		DurationMinutes: booking.DurationMinutes,
		Price:           booking.Price,
		Status:          string(booking.Status),
		PaymentStatus:   string(booking.PaymentStatus),
		Source:          string(booking.Source),
		CreatedAt:       booking.CreatedAt,
	}, nil
}
