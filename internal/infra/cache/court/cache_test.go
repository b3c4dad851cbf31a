package court

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

func TestKey(t *testing.T) {
	id := uuid.MustParse("6f1c1a4e-8f59-4d8e-9a9e-0b0f3c7a2d11")
	assert.Equal(t, "court:6f1c1a4e-8f59-4d8e-9a9e-0b0f3c7a2d11", Key("", id))
	assert.Equal(t, "court-booking:court:6f1c1a4e-8f59-4d8e-9a9e-0b0f3c7a2d11", Key("court-booking", id))
}

func TestEncodeDecode(t *testing.T) {
	open, _ := types.ParseTimeOfDay("08:00")
	closeAt, _ := types.ParseTimeOfDay("22:00")
	date, _ := types.ParseDate("2024-06-03")
	window, err := domain.ParseSlotInterval("12:00", "14:00")
	require.NoError(t, err)

	court := &domain.Court{
		ID:                  uuid.New(),
		Name:                "Корт 1",
		BasePrice:           types.Money(50050),
		OpenFrom:            &open,
		OpenTo:              &closeAt,
		SlotDurationMinutes: 60,
		ManagerIDs:          []int64{7},
		Unavailability:      []domain.UnavailableWindow{{Date: date, Interval: window, Reason: "турнир"}},
		Rules:               []domain.PriceRule{{ID: 1}},
	}

	data, err := encode(court)
	require.NoError(t, err)

	got, err := decode(data)
	require.NoError(t, err)

	assert.Equal(t, court.ID, got.ID)
	assert.Equal(t, court.BasePrice, got.BasePrice)
	assert.Equal(t, court.Unavailability, got.Unavailability)
	assert.Equal(t, *court.OpenFrom, *got.OpenFrom)
	assert.Empty(t, got.Rules, "rules are never cached")
}

func TestDecode_Garbage(t *testing.T) {
	_, err := decode([]byte("{"))
	assert.ErrorIs(t, err, ErrEncode)
}
