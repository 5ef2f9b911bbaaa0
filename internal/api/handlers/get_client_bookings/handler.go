package get_client_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/PsyBookingService/internal/api/handlers"
	"github.com/m04kA/PsyBookingService/internal/service/bookings/models"
	"github.com/m04kA/PsyBookingService/internal/service/clients"
)

const msgInvalidPhone = "некорректный номер телефона"

type Handler struct {
	service ClientService
	logger  Logger
}

func NewHandler(service ClientService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/bookings?phone=
// Все записи клиента из всех журналов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")

	result, err := h.service.BookingsFor(r.Context(), phone)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrInvalidInput):
			h.logger.Warn("GET /clients/bookings - Invalid phone")
			handlers.RespondBadRequest(w, msgInvalidPhone)

		default:
			h.logger.Error("GET /clients/bookings - Failed to get bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/bookings - Bookings retrieved successfully: count=%d", len(result))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBookingList(result))
}
