package client_lookup

import (
	"errors"
	"net/http"

	"github.com/m04kA/PsyBookingService/internal/api/handlers"
	"github.com/m04kA/PsyBookingService/internal/service/clients"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPhone       = "некорректный номер телефона"
	msgClientNotFound     = "клиент с таким номером не найден"
)

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

// Handle POST /api/v1/clients/lookup
// Вход клиента по телефону: ищет его среди записей всех журналов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /clients/lookup - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	client, err := h.service.Lookup(r.Context(), req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, clients.ErrClientNotFound):
			handlers.RespondNotFound(w, msgClientNotFound)

		default:
			h.logger.Error("POST /clients/lookup - Failed to lookup client: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /clients/lookup - Client found: source=%s", client.Source)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(client))
}
