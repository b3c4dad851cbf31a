package domain

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Court is the pricing snapshot of a court: venue data plus local price rules.
type Court struct {
	ID        uuid.UUID
	Name      string
	BasePrice types.Money

	// Opening hours; a nil OpenFrom means the venue did not publish them.
	OpenFrom            *types.TimeOfDay
	OpenTo              *types.TimeOfDay
	SlotDurationMinutes int

	Unavailability []UnavailableWindow
	ManagerIDs     []int64

	// Rules in creation order; later entries win ties during resolution.
	Rules []PriceRule
}

// UnavailableWindow is a venue-declared closure of a court.
type UnavailableWindow struct {
	Date     types.Date
	Interval SlotInterval
	Reason   string
}

// IsManager reports whether userID may administer the court.
func (c *Court) IsManager(userID int64) bool {
	for _, id := range c.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasOpeningHours reports whether the venue published opening hours.
func (c *Court) HasOpeningHours() bool {
	return c.OpenFrom != nil && c.OpenTo != nil && c.OpenFrom.Before(*c.OpenTo)
}

// WithinOpeningHours reports whether interval fits into opening hours.
// Courts without published hours accept any interval.
func (c *Court) WithinOpeningHours(interval SlotInterval) bool {
	if !c.HasOpeningHours() {
		return true
	}
	return SlotInterval{From: *c.OpenFrom, To: *c.OpenTo}.Contains(interval)
}

// UnavailableAt returns the closure window covering interval on date, if any.
func (c *Court) UnavailableAt(date types.Date, interval SlotInterval) (*UnavailableWindow, bool) {
	for i := range c.Unavailability {
		w := &c.Unavailability[i]
		if w.Date == date && w.Interval.Overlaps(interval) {
			return w, true
		}
	}
	return nil, false
}
