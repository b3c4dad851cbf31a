package create_price_rule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/pricerules"
	"github.com/m04kA/SMC-CourtBooking/internal/service/pricerules/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/validator"
)

const (
	msgInvalidCourtID     = "некорректный ID корта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRule        = "некорректное ценовое правило"
	msgCourtNotFound      = "корт не найден"
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

// Handle POST /api/v1/courts/{courtId}/price-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := uuid.Parse(mux.Vars(r)["courtId"])
	if err != nil {
		h.logger.Warn("POST /courts/{id}/price-rules - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /courts/{id}/price-rules - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req handlers.PriceRuleInput
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /courts/{id}/price-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		h.logger.Warn("POST /courts/{id}/price-rules - Validation failed: %v", errs)
		handlers.RespondBadRequest(w, validator.FirstError(errs))
		return
	}

	result, err := h.service.Create(r.Context(), &models.CreateRuleRequest{
		UserID:    userID,
		CourtID:   courtID,
		RuleInput: req.ToRuleInput(),
	})
	if err != nil {
		switch {
		case errors.Is(err, pricerules.ErrInvalidInput):
			h.logger.Warn("POST /courts/{id}/price-rules - Invalid rule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		case errors.Is(err, pricerules.ErrCourtNotFound):
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, pricerules.ErrAccessDenied):
			h.logger.Warn("POST /courts/{id}/price-rules - Access denied: court_id=%s, user_id=%d", courtID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /courts/{id}/price-rules - Failed to create rule: court_id=%s, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /courts/{id}/price-rules - Rule created successfully: rule_id=%d, court_id=%s",
		result.ID, courtID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
