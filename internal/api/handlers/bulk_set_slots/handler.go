package bulk_set_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PsyBookingService/internal/api/handlers"
	"github.com/m04kA/PsyBookingService/internal/api/handlers/get_provider_slots"
	"github.com/m04kA/PsyBookingService/internal/api/middleware"
	"github.com/m04kA/PsyBookingService/internal/service/schedule"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPolicy      = "некорректная политика расписания"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgForbidden          = "доступ запрещен"
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

// Handle POST /api/v1/providers/{providerId}/slots/{date}/bulk
// Забронированные слоты политика не меняет
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerID := vars["providerId"]

	user, _ := middleware.GetUser(r.Context())
	if !user.CanManageProvider(providerID) {
		h.logger.Warn("POST /providers/{id}/slots/{date}/bulk - Access denied: provider_id=%s, user_id=%s", providerID, user.ID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	date, err := types.NewDateStringFromString(vars["date"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req BulkSetRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers/{id}/slots/{date}/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	policy, err := req.ToPolicy()
	if err != nil {
		h.logger.Warn("POST /providers/{id}/slots/{date}/bulk - Invalid policy: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPolicy)
		return
	}

	slots, err := h.calendar.BulkSet(r.Context(), providerID, date, policy)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPolicy)

		default:
			h.logger.Error("POST /providers/{id}/slots/{date}/bulk - Failed to apply policy: provider_id=%s, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers/{id}/slots/{date}/bulk - Policy %s applied: provider_id=%s, date=%s", policy.Name, providerID, date)
	handlers.RespondJSON(w, http.StatusOK, get_provider_slots.FromDomainSlots(providerID, date.String(), slots))
}
