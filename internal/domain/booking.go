package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending            BookingStatus = "pending"
	StatusConfirmed          BookingStatus = "confirmed"
	StatusInProgress         BookingStatus = "in_progress"
	StatusCompleted          BookingStatus = "completed"
	StatusCancelledByUser    BookingStatus = "cancelled_by_user"
	StatusCancelledByCompany BookingStatus = "cancelled_by_company"
	StatusNoShow             BookingStatus = "no_show"
)

func (s BookingStatus) IsActive() bool {
	return s != StatusCancelledByUser &&
		s != StatusCancelledByCompany &&
		s != StatusNoShow
}

// IsValid reports whether s is a known booking status.
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCancelledByUser, StatusCancelledByCompany, StatusNoShow:
		return true
	}
	return false
}

// PaymentStatus is informational only; payments are handled elsewhere.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCompleted PaymentStatus = "completed"
	PaymentRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentCompleted, PaymentRefunded:
		return true
	}
	return false
}

// BookingSlot is one priced interval of a booking. Price is a snapshot taken
// when the slot was added and is not re-resolved later.
type BookingSlot struct {
	Interval SlotInterval
	Price    types.Money
}

// Booking represents a court booking made of one or more slots on one date.
type Booking struct {
	ID      int64
	UserID  int64
	CourtID uuid.UUID
	Date    types.Date

	// Sorted ascending by Interval.From, pairwise non-overlapping.
	Slots       []BookingSlot
	TotalAmount types.Money
	StartTime   types.TimeOfDay
	EndTime     types.TimeOfDay

	Status        BookingStatus
	PaymentStatus PaymentStatus
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Recalculate sorts the slots and recomputes TotalAmount, StartTime and EndTime.
func (b *Booking) Recalculate() {
	sort.SliceStable(b.Slots, func(i, j int) bool {
		return b.Slots[i].Interval.From.Before(b.Slots[j].Interval.From)
	})

	var total types.Money
	for _, s := range b.Slots {
		total += s.Price
	}
	b.TotalAmount = total

	if len(b.Slots) == 0 {
		b.StartTime, b.EndTime = types.TimeOfDay{}, types.TimeOfDay{}
		return
	}
	b.StartTime = b.Slots[0].Interval.From
	b.EndTime = b.Slots[len(b.Slots)-1].Interval.To
}

// Intervals returns the slot intervals in booking order.
func (b *Booking) Intervals() []SlotInterval {
	out := make([]SlotInterval, len(b.Slots))
	for i, s := range b.Slots {
		out[i] = s.Interval
	}
	return out
}

// DurationMinutes is the sum of slot durations; gaps between slots are not counted.
func (b *Booking) DurationMinutes() int {
	total := 0
	for _, s := range b.Slots {
		total += s.Interval.DurationMinutes()
	}
	return total
}

// OverlapsInterval reports whether any slot of the booking overlaps interval.
func (b *Booking) OverlapsInterval(interval SlotInterval) bool {
	for _, s := range b.Slots {
		if s.Interval.Overlaps(interval) {
			return true
		}
	}
	return false
}

// IsActive returns true if the booking is in an active state
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// IsReactivatedBy reports whether moving to next turns an inactive booking
// back into an active one. Its slots must then be checked for conflicts again.
func (b *Booking) IsReactivatedBy(next BookingStatus) bool {
	return !b.IsActive() && next.IsActive()
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeUpdated returns true if the booking can be updated
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByUser || b.Status == StatusCancelledByCompany
}

// IsCompleted returns true if the booking is completed or was a no-show
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted || b.Status == StatusNoShow
}

// CourtBookingsFilter фильтр для получения бронирований корта
type CourtBookingsFilter struct {
	CourtID          uuid.UUID      // Обязательный параметр
	StartDate        *types.Date    // Начало периода (опционально)
	EndDate          *types.Date    // Конец периода (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	PaymentStatus    *PaymentStatus // Фильтр по статусу оплаты (опционально)
	IncludeInactive  bool           // Включать ли неактивные бронирования (отмененные, no-show)
	ExcludeBookingID *int64         // Исключить бронирование (при редактировании)
	SortBy           BookingSortField
	SortDesc         bool
}

// IsSingleDate reports whether the filter selects exactly one date.
func (f CourtBookingsFilter) IsSingleDate() bool {
	return f.StartDate != nil && f.EndDate != nil && *f.StartDate == *f.EndDate
}

// BookingSortField поле сортировки списка бронирований (админ-панель)
type BookingSortField string

const (
	SortByBookingDate BookingSortField = "booking_date"
	SortByTotalAmount BookingSortField = "total_amount"
	SortByCreatedAt   BookingSortField = "created_at"
)

func (f BookingSortField) IsValid() bool {
	return f == "" || f == SortByBookingDate || f == SortByTotalAmount || f == SortByCreatedAt
}

// FindConflict returns the first active booking that overlaps one of intervals,
// together with the requested interval it collides with.
func FindConflict(bookings []*Booking, intervals []SlotInterval) (*Booking, SlotInterval, bool) {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		for _, interval := range intervals {
			if b.OverlapsInterval(interval) {
				return b, interval, true
			}
		}
	}
	return nil, SlotInterval{}, false
}
