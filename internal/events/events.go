// Package events describes booking events published to the message broker.
package events

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Routing keys of the bookings exchange.
const (
	BookingCreated       = "booking.created"
	BookingUpdated       = "booking.updated"
	BookingCancelled     = "booking.cancelled"
	BookingStatusChanged = "booking.status_changed"
)

// Publisher is satisfied by mq.Publisher and mq.NopPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// BookingPayload is the message body shared by all booking events.
func BookingPayload(b *domain.Booking) map[string]any {
	slots := make([]map[string]any, 0, len(b.Slots))
	for _, s := range b.Slots {
		slots = append(slots, map[string]any{
			"start": s.Interval.From,
			"end":   s.Interval.To,
			"price": s.Price,
		})
	}

	return map[string]any{
		"booking_id":     b.ID,
		"user_id":        b.UserID,
		"court_id":       b.CourtID,
		"booking_date":   b.Date,
		"start_time":     b.StartTime,
		"end_time":       b.EndTime,
		"total_amount":   b.TotalAmount,
		"status":         b.Status,
		"payment_status": b.PaymentStatus,
		"time_slots":     slots,
	}
}
