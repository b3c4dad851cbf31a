package list_price_rules

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
)

const msgInvalidCourtID = "некорректный ID корта"

type Handler struct {
	service PriceRuleService
	logger  Logger
}

func NewHandler(service PriceRuleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/price-rules
// Правила возвращаются в порядке создания: при равном приоритете действует последнее
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := uuid.Parse(mux.Vars(r)["courtId"])
	if err != nil {
		h.logger.Warn("GET /courts/{id}/price-rules - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	result, err := h.service.ListByCourt(r.Context(), courtID)
	if err != nil {
		h.logger.Error("GET /courts/{id}/price-rules - Failed to list rules: court_id=%s, error=%v", courtID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /courts/{id}/price-rules - Rules retrieved successfully: court_id=%s, count=%d",
		courtID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
