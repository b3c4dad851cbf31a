// Package pricing prices court slots and aggregates them into bookings.
//
// Precedence for a slot on a date: a matching date-specific rule, then a
// matching recurring rule, then the court's base price. Inside a tier the
// rule created last wins. A rule applies only to its exact interval.
package pricing

import (
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Source tells which tier produced a price.
type Source string

const (
	SourceBase      Source = "base"
	SourceRecurring Source = "recurring"
	SourceDate      Source = "date"
)

// Resolution is a resolved price together with the rule that produced it.
type Resolution struct {
	Price  types.Money
	Source Source
	// RuleID is zero for SourceBase.
	RuleID int64
}

// ResolvePrice returns the effective price of interval on date.
func ResolvePrice(court *domain.Court, date types.Date, interval domain.SlotInterval) types.Money {
	return Resolve(court, date, interval).Price
}

// Resolve is ResolvePrice that also reports where the price came from.
func Resolve(court *domain.Court, date types.Date, interval domain.SlotInterval) Resolution {
	var recurring, dated *domain.PriceRule

	// Rules are in creation order, so the last match of a tier wins.
	for i := range court.Rules {
		rule := &court.Rules[i]
		if !rule.Matches(date, interval) {
			continue
		}
		switch rule.Type {
		case domain.RuleTypeDate:
			dated = rule
		case domain.RuleTypeRecurring:
			recurring = rule
		}
	}

	switch {
	case dated != nil:
		return Resolution{Price: dated.Price, Source: SourceDate, RuleID: dated.ID}
	case recurring != nil:
		return Resolution{Price: recurring.Price, Source: SourceRecurring, RuleID: recurring.ID}
	default:
		return Resolution{Price: court.BasePrice, Source: SourceBase}
	}
}
