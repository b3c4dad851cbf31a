package update_price_rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/pricerules"
	"github.com/m04kA/SMC-CourtBooking/internal/service/pricerules/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/validator"
)

const (
	msgInvalidRuleID      = "некорректный ID правила"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRule        = "некорректное ценовое правило"
	msgNotFound           = "ценовое правило не найдено"
	msgForbidden          = "доступ запрещен"
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

// Handle PUT /api/v1/price-rules/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ruleID, err := strconv.ParseInt(mux.Vars(r)["ruleId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /price-rules/{id} - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /price-rules/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req handlers.PriceRuleInput
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /price-rules/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		handlers.RespondBadRequest(w, validator.FirstError(errs))
		return
	}

	result, err := h.service.Update(r.Context(), ruleID, &models.UpdateRuleRequest{
		UserID:    userID,
		RuleInput: req.ToRuleInput(),
	})
	if err != nil {
		switch {
		case errors.Is(err, pricerules.ErrInvalidInput):
			h.logger.Warn("PUT /price-rules/{id} - Invalid rule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		case errors.Is(err, pricerules.ErrRuleNotFound), errors.Is(err, pricerules.ErrCourtNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, pricerules.ErrAccessDenied):
			h.logger.Warn("PUT /price-rules/{id} - Access denied: rule_id=%d, user_id=%d", ruleID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /price-rules/{id} - Failed to update rule: rule_id=%d, error=%v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /price-rules/{id} - Rule updated successfully: rule_id=%d", ruleID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
