package get_slot_prices

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/pricing"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// generateGrid генерирует все слоты дня от открытия до закрытия с шагом slotDuration.
// Для сегодняшней даты уже начавшиеся слоты отбрасываются.
func generateGrid(openFrom, openTo types.TimeOfDay, slotDuration int, date types.Date, now time.Time) []domain.SlotInterval {
	grid := make([]domain.SlotInterval, 0)

	today := types.DateOf(now)
	current := types.TimeOfDayOf(now)

	for start := openFrom.Minutes(); start+slotDuration <= openTo.Minutes(); start += slotDuration {
		from, err := types.TimeOfDayFromMinutes(start)
		if err != nil {
			break
		}
		to, err := types.TimeOfDayFromMinutes(start + slotDuration)
		if err != nil {
			break
		}

		if date == today && !from.After(current) {
			continue
		}

		grid = append(grid, domain.SlotInterval{From: from, To: to})
	}

	return grid
}

// priceGrid назначает цену каждому слоту и отмечает занятые и закрытые
func priceGrid(court *domain.Court, date types.Date, grid []domain.SlotInterval, bookings []*domain.Booking) []Slot {
	result := make([]Slot, len(grid))

	for i, interval := range grid {
		resolution := pricing.Resolve(court, date, interval)
		slot := Slot{
			Interval:  interval,
			Price:     resolution.Price,
			Source:    resolution.Source,
			Available: true,
		}

		if window, closed := court.UnavailableAt(date, interval); closed {
			slot.Available = false
			slot.Reason = window.Reason
			if slot.Reason == "" {
				slot.Reason = ReasonClosed
			}
		} else if _, _, taken := domain.FindConflict(bookings, []domain.SlotInterval{interval}); taken {
			slot.Available = false
			slot.Reason = ReasonBooked
		}

		result[i] = slot
	}

	return result
}
