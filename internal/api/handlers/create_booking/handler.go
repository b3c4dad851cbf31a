package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CourtBooking/pkg/validator"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgCourtNotFound      = "корт не найден"
	msgEmptySelection     = "выберите хотя бы один слот"
	msgInvalidInterval    = "время начала слота должно быть раньше времени окончания"
	msgOverlap            = "выбранные слоты пересекаются"
	msgTooManySlots       = "выбрано слишком много слотов"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgOutsideHours       = "слот выходит за часы работы корта"
	msgSlotInPast         = "слот уже начался"
	msgSlotUnavailable    = "корт закрыт в выбранное время"
	msgSlotTaken          = "выбранный слот уже забронирован"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", errs)
		handlers.RespondBadRequest(w, validator.FirstError(errs))
		return
	}

	// Конвертируем HTTP запрос в модель use case
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrCourtNotFound):
			h.logger.Warn("POST /bookings - Court not found: court_id=%s", req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, createBooking.ErrEmptySelection):
			handlers.RespondBadRequest(w, msgEmptySelection)

		case errors.Is(err, createBooking.ErrInvalidInterval):
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createBooking.ErrOverlap):
			h.logger.Warn("POST /bookings - Overlapping slots: user_id=%d, court_id=%s", userID, req.CourtID)
			handlers.RespondBadRequest(w, msgOverlap)

		case errors.Is(err, createBooking.ErrTooManySlots):
			handlers.RespondBadRequest(w, msgTooManySlots)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, date=%s", userID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrOutsideOpeningHours):
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrSlotInPast):
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Court closed: user_id=%d, court_id=%s", userID, req.CourtID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: user_id=%d, court_id=%s", userID, req.CourtID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, court_id=%s, error=%v",
				userID, req.CourtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, court_id=%s",
		result.Booking.ID, userID, req.CourtID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(result.Booking))
}
