package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PsyBookingService/internal/api/handlers"
	"github.com/m04kA/PsyBookingService/internal/api/middleware"
	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/internal/service/bookings"
	"github.com/m04kA/PsyBookingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус бронирования"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgSlotTaken          = "слот уже занят другим бронированием"
	msgSlotUnavailable    = "слот закрыт специалистом"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
// Статус cancelled удаляет бронирование и освобождает слот
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	status := domain.BookingStatus(req.Status)
	if !status.IsValid() {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid status: %q", req.Status)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	user, _ := middleware.GetUser(r.Context())

	booking, err := h.service.Get(r.Context(), bookingID)
	if err != nil {
		h.respondServiceError(w, bookingID, err)
		return
	}

	if !user.CanManageProvider(booking.ProviderID) {
		h.logger.Warn("PATCH /bookings/{id}/status - Access denied: booking_id=%s, user_id=%s", bookingID, user.ID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), bookingID, status)
	if err != nil {
		h.respondServiceError(w, bookingID, err)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status updated: booking_id=%s, status=%s", bookingID, status)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(updated))
}

func (h *Handler) respondServiceError(w http.ResponseWriter, bookingID string, err error) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%s", bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, bookings.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidStatus)

	case errors.Is(err, bookings.ErrSlotAlreadyBooked):
		h.logger.Warn("PATCH /bookings/{id}/status - Slot taken, cannot reactivate: booking_id=%s", bookingID)
		handlers.RespondConflict(w, msgSlotTaken)

	case errors.Is(err, bookings.ErrSlotUnavailable):
		h.logger.Warn("PATCH /bookings/{id}/status - Slot closed, cannot reactivate: booking_id=%s", bookingID)
		handlers.RespondConflict(w, msgSlotUnavailable)

	default:
		h.logger.Error("PATCH /bookings/{id}/status - Failed to update status: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
