package update_payment_status

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
	msgInvalidPayment     = "некорректный статус оплаты"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
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

// Handle PATCH /api/v1/bookings/{bookingId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	var req UpdatePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	payment := domain.PaymentStatus(req.PaymentStatus)
	if payment == domain.PaymentUnknown || !payment.IsValid() {
		h.logger.Warn("PATCH /bookings/{id}/payment - Invalid payment status: %q", req.PaymentStatus)
		handlers.RespondBadRequest(w, msgInvalidPayment)
		return
	}

	user, _ := middleware.GetUser(r.Context())

	booking, err := h.service.Get(r.Context(), bookingID)
	if err != nil {
		h.respondServiceError(w, bookingID, err)
		return
	}

	if !user.CanManageProvider(booking.ProviderID) {
		h.logger.Warn("PATCH /bookings/{id}/payment - Access denied: booking_id=%s, user_id=%s", bookingID, user.ID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	updated, err := h.service.UpdatePaymentStatus(r.Context(), bookingID, payment)
	if err != nil {
		h.respondServiceError(w, bookingID, err)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/payment - Payment status updated: booking_id=%s, payment=%s", bookingID, payment)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(updated))
}

func (h *Handler) respondServiceError(w http.ResponseWriter, bookingID string, err error) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("PATCH /bookings/{id}/payment - Booking not found: booking_id=%s", bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, bookings.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidPayment)

	default:
		h.logger.Error("PATCH /bookings/{id}/payment - Failed to update payment: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
