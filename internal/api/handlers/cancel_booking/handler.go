package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PsyBookingService/internal/api/handlers"
	"github.com/m04kA/PsyBookingService/internal/api/middleware"
	"github.com/m04kA/PsyBookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
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

// Handle DELETE /api/v1/bookings/{bookingId}
// Удаляет запись из журнала и освобождает слот
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	if bookingID == "" {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	user, _ := middleware.GetUser(r.Context())

	booking, err := h.service.Get(r.Context(), bookingID)
	if err != nil {
		h.respondServiceError(w, bookingID, err)
		return
	}

	if !user.CanManageProvider(booking.ProviderID) {
		h.logger.Warn("DELETE /bookings/{id} - Access denied: booking_id=%s, user_id=%s", bookingID, user.ID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	if _, err := h.service.RemoveBooking(r.Context(), bookingID); err != nil {
		h.respondServiceError(w, bookingID, err)
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking cancelled successfully: booking_id=%s, user_id=%s", bookingID, user.ID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, bookingID string, err error) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("DELETE /bookings/{id} - Booking not found: booking_id=%s", bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, bookings.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidBookingID)

	default:
		h.logger.Error("DELETE /bookings/{id} - Failed to cancel booking: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
