package create_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CourtID     string                   `json:"court_id" validate:"required,uuid"`
	BookingDate string                   `json:"booking_date" validate:"required,date"` // "2024-06-03"
	TimeSlots   []handlers.TimeSlotInput `json:"time_slots" validate:"dive"`
	Notes       *string                  `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	courtID, err := uuid.Parse(r.CourtID)
	if err != nil {
		return nil, err
	}

	date, err := types.ParseDate(r.BookingDate)
	if err != nil {
		return nil, err
	}

	intervals, err := handlers.ToSlotIntervals(r.TimeSlots)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:    userID,
		CourtID:   courtID,
		Date:      date,
		Intervals: intervals,
		Notes:     r.Notes,
	}, nil
}
