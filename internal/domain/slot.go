package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// SlotInterval is a half-open wall-clock range [From, To) within a single day.
type SlotInterval struct {
	From types.TimeOfDay
	To   types.TimeOfDay
}

// NewSlotInterval returns an interval, rejecting From >= To.
func NewSlotInterval(from, to types.TimeOfDay) (SlotInterval, error) {
	interval := SlotInterval{From: from, To: to}
	if err := interval.Validate(); err != nil {
		return SlotInterval{}, err
	}
	return interval, nil
}

// ParseSlotInterval parses a pair of "HH:MM" strings.
func ParseSlotInterval(from, to string) (SlotInterval, error) {
	f, err := types.ParseTimeOfDay(from)
	if err != nil {
		return SlotInterval{}, fmt.Errorf("%w: from: %v", ErrInvalidInterval, err)
	}
	t, err := types.ParseTimeOfDay(to)
	if err != nil {
		return SlotInterval{}, fmt.Errorf("%w: to: %v", ErrInvalidInterval, err)
	}
	return NewSlotInterval(f, t)
}

// Validate checks From < To.
func (i SlotInterval) Validate() error {
	if !i.From.Before(i.To) {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, i)
	}
	return nil
}

// Equal reports whether both bounds match by value.
func (i SlotInterval) Equal(other SlotInterval) bool {
	return i.From.Equal(other.From) && i.To.Equal(other.To)
}

// Overlaps reports whether the two half-open intervals share any instant.
// Touching intervals (18:00-19:00 and 19:00-20:00) do not overlap.
func (i SlotInterval) Overlaps(other SlotInterval) bool {
	return i.From.Before(other.To) && other.From.Before(i.To)
}

// Contains reports whether other lies entirely within i.
func (i SlotInterval) Contains(other SlotInterval) bool {
	return !other.From.Before(i.From) && !other.To.After(i.To)
}

func (i SlotInterval) DurationMinutes() int {
	return i.To.Minutes() - i.From.Minutes()
}

func (i SlotInterval) String() string {
	return i.From.String() + "-" + i.To.String()
}

// IntervalsEqual compares two intervals by their bounds.
func IntervalsEqual(a, b SlotInterval) bool {
	return a.Equal(b)
}

// WeekdayOf returns the day of week of a calendar date.
func WeekdayOf(d types.Date) time.Weekday {
	return d.Weekday()
}

var weekdayCodes = map[time.Weekday]string{
	time.Monday:    "mon",
	time.Tuesday:   "tue",
	time.Wednesday: "wed",
	time.Thursday:  "thu",
	time.Friday:    "fri",
	time.Saturday:  "sat",
	time.Sunday:    "sun",
}

// WeekdayCode returns the short lowercase code ("mon".."sun") used on the wire.
func WeekdayCode(w time.Weekday) string {
	return weekdayCodes[w]
}

// ParseWeekday accepts short codes ("mon") and full English names ("Monday"), case-insensitive.
func ParseWeekday(s string) (time.Weekday, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for day, code := range weekdayCodes {
		if v == code || v == strings.ToLower(day.String()) {
			return day, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}
