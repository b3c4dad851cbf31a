package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
	updateBooking "github.com/m04kA/SMC-CourtBooking/internal/usecase/update_booking"
	"github.com/m04kA/SMC-CourtBooking/pkg/validator"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgCourtNotFound      = "корт не найден"
	msgForbidden          = "доступ запрещен"
	msgCannotUpdate       = "бронирование нельзя изменить"
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
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		h.logger.Warn("PUT /bookings/{id} - Validation failed: %v", errs)
		handlers.RespondBadRequest(w, validator.FirstError(errs))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, userID)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBooking.ErrCourtNotFound):
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, updateBooking.ErrAccessDenied):
			h.logger.Warn("PUT /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateBooking.ErrCannotUpdate):
			handlers.RespondConflict(w, msgCannotUpdate)

		case errors.Is(err, updateBooking.ErrEmptySelection):
			handlers.RespondBadRequest(w, msgEmptySelection)

		case errors.Is(err, updateBooking.ErrInvalidInterval):
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, updateBooking.ErrOverlap):
			handlers.RespondBadRequest(w, msgOverlap)

		case errors.Is(err, updateBooking.ErrTooManySlots):
			handlers.RespondBadRequest(w, msgTooManySlots)

		case errors.Is(err, updateBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, updateBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, updateBooking.ErrOutsideOpeningHours):
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, updateBooking.ErrSlotInPast):
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, updateBooking.ErrSlotUnavailable):
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, updateBooking.ErrSlotTaken):
			h.logger.Warn("PUT /bookings/{id} - Slot taken: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking updated successfully: booking_id=%d, user_id=%d, total=%s",
		bookingID, userID, result.Booking.TotalAmount)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(result.Booking))
}
