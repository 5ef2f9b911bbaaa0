package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/PsyBookingService/internal/api/handlers"
	"github.com/m04kA/PsyBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/PsyBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные данные бронирования"
	msgSlotNotAvailable   = "специалист не принимает в это время"
	msgSlotAlreadyBooked  = "это время уже занято, выберите другое"
	msgProviderNotFound   = "специалист не найден"
	msgProviderInactive   = "специалист сейчас не принимает записи"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase BookingCreator
	logger  Logger
}

func NewHandler(useCase BookingCreator, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Специалист записывает клиентов только к себе
	user, authenticated := middleware.GetUser(r.Context())
	if authenticated && user.Role == middleware.RoleProvider && user.ID != req.ProviderID {
		h.logger.Warn("POST /bookings - Provider %s tried to book for %s", user.ID, req.ProviderID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(sourceFor(user, authenticated))
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /bookings - Slot already booked: provider_id=%s, date=%s, time=%s", req.ProviderID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotAlreadyBooked)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: provider_id=%s, date=%s, time=%s", req.ProviderID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrProviderNotFound):
			h.logger.Warn("POST /bookings - Provider not found: provider_id=%s", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, createBooking.ErrProviderInactive):
			h.logger.Warn("POST /bookings - Provider inactive: provider_id=%s", req.ProviderID)
			handlers.RespondConflict(w, msgProviderInactive)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: provider_id=%s, error=%v", req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, provider_id=%s, source=%s",
		result.ID, result.ProviderID, result.Source)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
