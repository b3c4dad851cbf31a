package get_slot_prices

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	getSlotPrices "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_slot_prices"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

const (
	msgInvalidCourtID = "некорректный ID корта"
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPastDate       = "нельзя получить слоты на прошедшую дату"
	msgDateTooFar     = "дата слишком далеко в будущем"
	msgCourtNotFound  = "корт не найден"
)

type Handler struct {
	useCase GetSlotPricesUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotPricesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := uuid.Parse(mux.Vars(r)["courtId"])
	if err != nil {
		h.logger.Warn("GET /courts/{id}/slots - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /courts/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := types.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlotPrices.Request{CourtID: courtID, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getSlotPrices.ErrCourtNotFound):
			h.logger.Warn("GET /courts/{id}/slots - Court not found: court_id=%s", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, getSlotPrices.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getSlotPrices.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getSlotPrices.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidCourtID)

		default:
			h.logger.Error("GET /courts/{id}/slots - Failed to get slots: court_id=%s, date=%s, error=%v",
				courtID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /courts/{id}/slots - Slots retrieved successfully: court_id=%s, date=%s, slots_count=%d",
		courtID, date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
