package events

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

func TestBookingPayload(t *testing.T) {
	interval, err := domain.ParseSlotInterval("18:00", "19:00")
	require.NoError(t, err)

	b := &domain.Booking{
		ID:      7,
		UserID:  42,
		CourtID: uuid.MustParse("6f1c1c1e-8a4b-4a55-9d1b-0f3e7f9c2a10"),
		Date:    types.NewDate(2024, 6, 3),
		Slots:   []domain.BookingSlot{{Interval: interval, Price: types.MoneyFromMajor(700)}},
		Status:  domain.StatusConfirmed,
	}
	b.Recalculate()

	data, err := json.Marshal(BookingPayload(b))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "2024-06-03", decoded["booking_date"])
	assert.Equal(t, "18:00", decoded["start_time"])
	assert.Equal(t, "19:00", decoded["end_time"])
	assert.Equal(t, 700.0, decoded["total_amount"])
	assert.Equal(t, "confirmed", decoded["status"])

	slots := decoded["time_slots"].([]any)
	require.Len(t, slots, 1)
	assert.Equal(t, "18:00", slots[0].(map[string]any)["start"])
}
