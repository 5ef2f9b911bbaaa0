package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/PsyBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/PsyBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/PsyBookingService/pkg/types"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime = "некорректный формат времени, ожидается HH:MM"
	msgPastDate    = "дата уже прошла"
)

type Handler struct {
	useCase SlotFinder
	logger  Logger
}

func NewHandler(useCase SlotFinder, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots?date=YYYY-MM-DD[&time=HH:MM]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	timeStr := r.URL.Query().Get("time")

	useCaseReq, err := ToUseCaseRequest(dateStr, timeStr)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid query: date=%s, time=%s, error=%v", dateStr, timeStr, err)
		if types.DateString(dateStr).Validate() != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
		} else {
			handlers.RespondBadRequest(w, msgInvalidTime)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - Past date: %s", dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Slots retrieved successfully: date=%s, count=%d", dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
