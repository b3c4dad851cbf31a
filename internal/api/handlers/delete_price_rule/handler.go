package delete_price_rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/pricerules"
)

const (
	msgInvalidRuleID = "некорректный ID правила"
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "ценовое правило не найдено"
	msgForbidden     = "доступ запрещен"
)

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

// Handle DELETE /api/v1/price-rules/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ruleID, err := strconv.ParseInt(mux.Vars(r)["ruleId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /price-rules/{id} - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), ruleID, userID); err != nil {
		switch {
		case errors.Is(err, pricerules.ErrRuleNotFound), errors.Is(err, pricerules.ErrCourtNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, pricerules.ErrAccessDenied):
			h.logger.Warn("DELETE /price-rules/{id} - Access denied: rule_id=%d, user_id=%d", ruleID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /price-rules/{id} - Failed to delete rule: rule_id=%d, error=%v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /price-rules/{id} - Rule deleted successfully: rule_id=%d, user_id=%d", ruleID, userID)
	handlers.RespondNoContent(w)
}
