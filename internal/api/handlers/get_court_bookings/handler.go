package get_court_bookings

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings"
)

const (
	msgInvalidCourtID = "некорректный ID корта"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidParams  = "некорректные параметры запроса"
	msgCourtNotFound  = "корт не найден"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/bookings
// Query params: date | start_date, end_date, status, payment_status, include_inactive, sort_by, order (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := uuid.Parse(mux.Vars(r)["courtId"])
	if err != nil {
		h.logger.Warn("GET /courts/{id}/bookings - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /courts/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(courtID, userID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /courts/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит права менеджера
	result, err := h.service.GetCourtBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /courts/{id}/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, bookings.ErrCourtNotFound):
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /courts/{id}/bookings - Access denied: court_id=%s, user_id=%d", courtID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /courts/{id}/bookings - Failed to get bookings: court_id=%s, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /courts/{id}/bookings - Bookings retrieved successfully: court_id=%s, count=%d",
		courtID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
