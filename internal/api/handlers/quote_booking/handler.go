package quote_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	quoteBooking "github.com/m04kA/SMC-CourtBooking/internal/usecase/quote_booking"
	"github.com/m04kA/SMC-CourtBooking/pkg/validator"
)

const (
	msgInvalidCourtID     = "некорректный ID корта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCourtNotFound      = "корт не найден"
	msgEmptySelection     = "выберите хотя бы один слот"
	msgInvalidInterval    = "время начала слота должно быть раньше времени окончания"
	msgOverlap            = "выбранные слоты пересекаются"
	msgTooManySlots       = "выбрано слишком много слотов"
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

// Handle POST /api/v1/courts/{courtId}/quote
// Считает стоимость выбранных слотов без создания бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := uuid.Parse(mux.Vars(r)["courtId"])
	if err != nil {
		h.logger.Warn("POST /courts/{id}/quote - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /courts/{id}/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		handlers.RespondBadRequest(w, validator.FirstError(errs))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(courtID)
	if err != nil {
		h.logger.Warn("POST /courts/{id}/quote - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, quoteBooking.ErrCourtNotFound):
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, quoteBooking.ErrEmptySelection):
			handlers.RespondBadRequest(w, msgEmptySelection)

		case errors.Is(err, quoteBooking.ErrInvalidInterval):
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, quoteBooking.ErrOverlap):
			handlers.RespondBadRequest(w, msgOverlap)

		case errors.Is(err, quoteBooking.ErrTooManySlots):
			handlers.RespondBadRequest(w, msgTooManySlots)

		case errors.Is(err, quoteBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /courts/{id}/quote - Failed to quote: court_id=%s, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /courts/{id}/quote - Quote calculated: court_id=%s, date=%s, slots=%d, total=%s",
		courtID, result.Date, len(result.Slots), result.TotalAmount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
