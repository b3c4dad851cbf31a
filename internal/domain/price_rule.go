package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// RuleType distinguishes recurring weekday rules from date-specific overrides.
type RuleType string

const (
	RuleTypeRecurring RuleType = "recurring"
	RuleTypeDate      RuleType = "date"
)

func (t RuleType) IsValid() bool {
	return t == RuleTypeRecurring || t == RuleTypeDate
}

// PriceRule overrides a court's base price for one exact slot interval.
// A recurring rule applies on the listed weekdays, a date rule on the listed dates.
type PriceRule struct {
	ID       int64
	CourtID  uuid.UUID
	Type     RuleType
	Days     []time.Weekday // recurring only
	Dates    []types.Date   // date only
	Interval SlotInterval
	Price    types.Money

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *PriceRule) IsRecurring() bool {
	return r.Type == RuleTypeRecurring
}

func (r *PriceRule) IsDateSpecific() bool {
	return r.Type == RuleTypeDate
}

// Matches reports whether the rule applies to interval on date.
// The interval has to match exactly; partial overlap never applies.
func (r *PriceRule) Matches(date types.Date, interval SlotInterval) bool {
	if !IntervalsEqual(r.Interval, interval) {
		return false
	}

	switch r.Type {
	case RuleTypeDate:
		for _, d := range r.Dates {
			if d == date {
				return true
			}
		}
	case RuleTypeRecurring:
		weekday := WeekdayOf(date)
		for _, d := range r.Days {
			if d == weekday {
				return true
			}
		}
	}
	return false
}

// Validate checks the rule is usable by the resolver.
func (r *PriceRule) Validate() error {
	if !r.Type.IsValid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidRule, r.Type)
	}
	if err := r.Interval.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	if r.Price.IsNegative() {
		return fmt.Errorf("%w: negative price %s", ErrInvalidRule, r.Price)
	}

	switch r.Type {
	case RuleTypeRecurring:
		if len(r.Days) == 0 {
			return fmt.Errorf("%w: recurring rule without days", ErrInvalidRule)
		}
		if len(r.Dates) > 0 {
			return fmt.Errorf("%w: recurring rule must not list dates", ErrInvalidRule)
		}
		for _, d := range r.Days {
			if d < time.Sunday || d > time.Saturday {
				return fmt.Errorf("%w: weekday %d out of range", ErrInvalidRule, d)
			}
		}
	case RuleTypeDate:
		if len(r.Dates) == 0 {
			return fmt.Errorf("%w: date rule without dates", ErrInvalidRule)
		}
		if len(r.Days) > 0 {
			return fmt.Errorf("%w: date rule must not list days", ErrInvalidRule)
		}
	}

	return nil
}
