package get_consistency

import (
	"net/http"

	"github.com/m04kA/PsyBookingService/internal/api/handlers"
	"github.com/m04kA/PsyBookingService/internal/domain"
)

const msgInvalidProvider = "некорректный ID специалиста"

type Handler struct {
	service   BookingService
	providers ProviderIDs
	logger    Logger
}

func NewHandler(service BookingService, providers ProviderIDs, logger Logger) *Handler {
	return &Handler{
		service:   service,
		providers: providers,
		logger:    logger,
	}
}

// Handle GET /api/v1/consistency[?providerId=a&providerId=b]
// Без providerId сверяются все специалисты из конфига
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerIDs := r.URL.Query()["providerId"]
	for _, id := range providerIDs {
		if !domain.IsValidProviderID(id) {
			handlers.RespondBadRequest(w, msgInvalidProvider)
			return
		}
	}
	if len(providerIDs) == 0 {
		providerIDs = h.providers.IDs()
	}

	report, err := h.service.CheckConsistency(r.Context(), providerIDs)
	if err != nil {
		h.logger.Error("GET /consistency - Failed to check consistency: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	if !report.IsConsistent() {
		h.logger.Warn("GET /consistency - Inconsistencies found: %v", report.Counts)
	}
	handlers.RespondJSON(w, http.StatusOK, report)
}
