package domain

import "errors"

var (
	// ErrInvalidInterval is returned for a slot whose start is not before its end.
	ErrInvalidInterval = errors.New("domain: invalid slot interval")

	// ErrInvalidRule is returned when a price rule is malformed.
	ErrInvalidRule = errors.New("domain: invalid price rule")

	// ErrInvalidWeekday is returned for an unknown weekday code.
	ErrInvalidWeekday = errors.New("domain: invalid weekday")
)
