package get_slot_price

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	quoteBooking "github.com/m04kA/SMC-CourtBooking/internal/usecase/quote_booking"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

const (
	msgInvalidCourtID  = "некорректный ID корта"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime     = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInterval = "время начала слота должно быть раньше времени окончания"
	msgCourtNotFound   = "корт не найден"
)

type Handler struct {
	useCase QuoteBookingUseCase
	logger  Logger
}

func NewHandler(useCase QuoteBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/price
// Query params: date (YYYY-MM-DD), from, to (HH:MM) - все обязательны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := uuid.Parse(mux.Vars(r)["courtId"])
	if err != nil {
		h.logger.Warn("GET /courts/{id}/price - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	query := r.URL.Query()

	date, err := types.ParseDate(query.Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	from, err := types.ParseTimeOfDay(query.Get("from"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	to, err := types.ParseTimeOfDay(query.Get("to"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	interval, err := domain.NewSlotInterval(from, to)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidInterval)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &quoteBooking.Request{
		CourtID:   courtID,
		Date:      date,
		Intervals: []domain.SlotInterval{interval},
	})
	if err != nil {
		switch {
		case errors.Is(err, quoteBooking.ErrCourtNotFound):
			handlers.RespondNotFound(w, msgCourtNotFound)

		default:
			h.logger.Error("GET /courts/{id}/price - Failed to resolve price: court_id=%s, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	slot := result.Slots[0]
	response := &SlotPriceResponse{
		CourtID:     courtID.String(),
		Date:        date,
		Start:       slot.Interval.From,
		End:         slot.Interval.To,
		Price:       slot.Price,
		PriceSource: string(slot.Source),
	}
	if slot.RuleID != 0 {
		ruleID := slot.RuleID
		response.RuleID = &ruleID
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
