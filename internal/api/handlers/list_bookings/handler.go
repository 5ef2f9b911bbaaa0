package list_bookings

import (
	"net/http"

	"github.com/m04kA/PsyBookingService/internal/api/handlers"
	"github.com/m04kA/PsyBookingService/internal/api/middleware"
	"github.com/m04kA/PsyBookingService/internal/domain"
	"github.com/m04kA/PsyBookingService/internal/service/bookings/models"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/bookings
// Query params: providerId, date, status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter, err := ParseFilter(query.Get("providerId"), query.Get("date"), query.Get("status"))
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Специалисту доступны только его записи
	user, _ := middleware.GetUser(r.Context())
	if !user.IsManager() {
		if filter.ProviderID != "" && filter.ProviderID != user.ID {
			h.logger.Warn("GET /bookings - Access denied: user_id=%s, provider_id=%s", user.ID, filter.ProviderID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		filter.ProviderID = user.ID
	}

	var list []*domain.Booking
	switch {
	case filter.ProviderID != "":
		list, err = h.service.BookingsForProvider(r.Context(), filter.ProviderID)
	case !filter.Date.IsZero():
		list, err = h.service.BookingsForDate(r.Context(), filter.Date)
	default:
		list, err = h.service.ListAll(r.Context())
	}
	if err != nil {
		h.logger.Error("GET /bookings - Failed to list bookings: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	filtered := make([]*domain.Booking, 0, len(list))
	for _, b := range list {
		if filter.Match(b) {
			filtered = append(filtered, b)
		}
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: user_id=%s, count=%d", user.ID, len(filtered))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBookingList(filtered))
}
