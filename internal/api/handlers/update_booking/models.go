package update_booking

import (
	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	updateBooking "github.com/m04kA/SMC-CourtBooking/internal/usecase/update_booking"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// UpdateBookingRequest HTTP request model.
// Слоты передаются полным набором: отсутствующие в запросе удаляются из бронирования.
type UpdateBookingRequest struct {
	BookingDate *string                  `json:"booking_date,omitempty" validate:"omitempty,date"`
	TimeSlots   []handlers.TimeSlotInput `json:"time_slots" validate:"dive"`
	Notes       *string                  `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID, userID int64) (*updateBooking.Request, error) {
	intervals, err := handlers.ToSlotIntervals(r.TimeSlots)
	if err != nil {
		return nil, err
	}

	req := &updateBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		Intervals: intervals,
		Notes:     r.Notes,
	}

	if r.BookingDate != nil {
		date, err := types.ParseDate(*r.BookingDate)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}
