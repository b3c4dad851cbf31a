package update_booking

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/pricing"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxSlots int) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Date != nil && req.Date.IsZero() {
		return fmt.Errorf("%w: date is empty", ErrInvalidInput)
	}

	if maxSlots > 0 && len(req.Intervals) > maxSlots {
		return fmt.Errorf("%w: at most %d slots per booking", ErrTooManySlots, maxSlots)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что новая дата подходит для бронирования
func validateDate(date, today types.Date, advanceBookingDays int) error {
	if date.Before(today) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	if date.After(today.AddDays(advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateNewSlots проверяет только слоты, которых не было в бронировании.
// Сохранённые слоты уже прошли проверку при создании.
func validateNewSlots(court *domain.Court, booking *domain.Booking, previous []domain.BookingSlot, now time.Time) error {
	kept := make(map[domain.SlotInterval]struct{}, len(previous))
	for _, s := range previous {
		kept[s.Interval] = struct{}{}
	}

	today := types.DateOf(now)
	current := types.TimeOfDayOf(now)

	for _, slot := range booking.Slots {
		if _, ok := kept[slot.Interval]; ok {
			continue
		}

		if !court.WithinOpeningHours(slot.Interval) {
			return fmt.Errorf("%w: %s", ErrOutsideOpeningHours, slot.Interval)
		}

		if booking.Date == today && !slot.Interval.From.After(current) {
			return fmt.Errorf("%w: %s", ErrSlotInPast, slot.Interval)
		}

		if window, closed := court.UnavailableAt(booking.Date, slot.Interval); closed {
			return fmt.Errorf("%w: %s (%s)", ErrSlotUnavailable, slot.Interval, window.Reason)
		}
	}

	return nil
}

// mapPricingError переводит ошибки агрегатора в ошибки usecase
func mapPricingError(err error) error {
	switch {
	case errors.Is(err, pricing.ErrEmptySelection):
		return ErrEmptySelection
	case errors.Is(err, pricing.ErrInvalidInterval):
		return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	case errors.Is(err, pricing.ErrOverlap):
		return fmt.Errorf("%w: %v", ErrOverlap, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
