package get_provider_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PsyBookingService/internal/api/handlers"
	"github.com/m04kA/PsyBookingService/internal/service/schedule"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidProvider = "некорректный ID специалиста"
)

type Handler struct {
	calendar SlotCalendar
	logger   Logger
}

func NewHandler(calendar SlotCalendar, logger Logger) *Handler {
	return &Handler{
		calendar: calendar,
		logger:   logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/slots?date=YYYY-MM-DD
// Для даты без сохраненного расписания возвращается шаблон дня со всеми закрытыми слотами
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	date, err := types.NewDateStringFromString(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /providers/{id}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	slots, err := h.calendar.GetSlots(r.Context(), providerID, date)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/slots - Invalid input: provider_id=%s, error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidProvider)

		default:
			h.logger.Error("GET /providers/{id}/slots - Failed to get slots: provider_id=%s, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/slots - Slots retrieved successfully: provider_id=%s, date=%s", providerID, date)
	handlers.RespondJSON(w, http.StatusOK, FromDomainSlots(providerID, date.String(), slots))
}
