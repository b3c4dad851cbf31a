package pricing

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// BuildBooking prices every selected interval on date and returns an unsaved
// booking with sorted slots and their exact total.
func BuildBooking(court *domain.Court, date types.Date, intervals []domain.SlotInterval) (*domain.Booking, error) {
	return RebuildBooking(court, date, intervals, nil)
}

// RebuildBooking is BuildBooking for an edited booking: intervals already
// present in previous keep their snapshot price, new ones are resolved.
// previous must belong to the same date; pass nil when the date changed.
func RebuildBooking(court *domain.Court, date types.Date, intervals []domain.SlotInterval, previous []domain.BookingSlot) (*domain.Booking, error) {
	sorted, err := NormalizeSelection(intervals)
	if err != nil {
		return nil, err
	}

	snapshot := make(map[domain.SlotInterval]types.Money, len(previous))
	for _, s := range previous {
		snapshot[s.Interval] = s.Price
	}

	slots := make([]domain.BookingSlot, 0, len(sorted))
	for _, interval := range sorted {
		price, ok := snapshot[interval]
		if !ok {
			price = ResolvePrice(court, date, interval)
		}
		slots = append(slots, domain.BookingSlot{Interval: interval, Price: price})
	}

	booking := &domain.Booking{
		CourtID: court.ID,
		Date:    date,
		Slots:   slots,
	}
	booking.Recalculate()

	return booking, nil
}

// NormalizeSelection validates a selection and returns a sorted copy.
// Errors are reported before any price is resolved.
func NormalizeSelection(intervals []domain.SlotInterval) ([]domain.SlotInterval, error) {
	if len(intervals) == 0 {
		return nil, ErrEmptySelection
	}

	for _, interval := range intervals {
		if err := interval.Validate(); err != nil {
			return nil, err
		}
	}

	sorted := make([]domain.SlotInterval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].From.Equal(sorted[j].From) {
			return sorted[i].To.Before(sorted[j].To)
		}
		return sorted[i].From.Before(sorted[j].From)
	})

	// After sorting by From, any overlap shows up between neighbours.
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Overlaps(sorted[i]) {
			return nil, fmt.Errorf("%w: %s and %s", ErrOverlap, sorted[i-1], sorted[i])
		}
	}

	return sorted, nil
}
