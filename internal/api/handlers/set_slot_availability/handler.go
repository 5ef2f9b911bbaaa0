package set_slot_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PsyBookingService/internal/api/handlers"
	"github.com/m04kA/PsyBookingService/internal/api/middleware"
	"github.com/m04kA/PsyBookingService/internal/service/schedule"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlot        = "некорректные дата или время слота"
	msgSlotLocked         = "слот забронирован, закрыть его нельзя"
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

// Handle PUT /api/v1/providers/{providerId}/slots/{date}/{time}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerID := vars["providerId"]

	user, _ := middleware.GetUser(r.Context())
	if !user.CanManageProvider(providerID) {
		h.logger.Warn("PUT /providers/{id}/slots - Access denied: provider_id=%s, user_id=%s", providerID, user.ID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	date, err := types.NewDateStringFromString(vars["date"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}
	slotTime, err := types.NewTimeStringFromString(vars["time"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	var req SetAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.Available == nil {
		h.logger.Warn("PUT /providers/{id}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.calendar.SetAvailability(r.Context(), providerID, date, slotTime, *req.Available); err != nil {
		switch {
		case errors.Is(err, schedule.ErrSlotLocked):
			h.logger.Warn("PUT /providers/{id}/slots - Slot locked: provider_id=%s, date=%s, time=%s", providerID, date, slotTime)
			handlers.RespondConflict(w, msgSlotLocked)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /providers/{id}/slots - Invalid slot: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("PUT /providers/{id}/slots - Failed to set availability: provider_id=%s, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /providers/{id}/slots - Availability updated: provider_id=%s, date=%s, time=%s, available=%t",
		providerID, date, slotTime, *req.Available)
	handlers.RespondJSON(w, http.StatusOK, &SetAvailabilityResponse{
		ProviderID: providerID,
		Date:       date.String(),
		Time:       slotTime.String(),
		Available:  *req.Available,
	})
}
