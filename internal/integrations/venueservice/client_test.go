package venueservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

var courtID = uuid.MustParse("6f1c1a4e-8f59-4d8e-9a9e-0b0f3c7a2d11")

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second, logger.NewNop())
}

func TestGetCourt_OK(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/courts/"+courtID.String(), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "` + courtID.String() + `",
			"name": "Корт 1",
			"price_per_hour": "500.00",
			"open_from": "08:00",
			"open_to": "23:00",
			"slot_duration_minutes": 60,
			"manager_ids": [7, 9],
			"unavailability_slots": [
				{"date": "2024-06-03", "from": "12:00", "to": "14:00", "reason": "турнир"},
				{"date": "bad", "from": "12:00", "to": "14:00"}
			]
		}`))
	})

	court, err := client.GetCourt(context.Background(), courtID)
	require.NoError(t, err)

	assert.Equal(t, courtID, court.ID)
	assert.Equal(t, types.MoneyFromMajor(500), court.BasePrice)
	require.True(t, court.HasOpeningHours())
	assert.Equal(t, "08:00", court.OpenFrom.String())
	assert.Equal(t, 60, court.SlotDurationMinutes)
	assert.True(t, court.IsManager(9))
	require.Len(t, court.Unavailability, 1)
	assert.Equal(t, "турнир", court.Unavailability[0].Reason)
	assert.Empty(t, court.Rules)
}

func TestGetCourt_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetCourt(context.Background(), courtID)
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestGetCourt_UnexpectedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetCourt(context.Background(), courtID)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetCourt_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, logger.NewNop())

	_, err := client.GetCourt(context.Background(), courtID)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCourt_BasePriceNormalization(t *testing.T) {
	tests := []struct {
		name    string
		perHour string
		def     string
		want    types.Money
		wantErr bool
	}{
		{name: "number", perHour: `700`, want: types.MoneyFromMajor(700)},
		{name: "string", perHour: `"650.50"`, want: types.Money(65050)},
		{name: "fallback on null", perHour: `null`, def: `400`, want: types.MoneyFromMajor(400)},
		{name: "fallback on empty string", perHour: `""`, def: `"450"`, want: types.MoneyFromMajor(450)},
		{name: "fallback on zero", perHour: `0`, def: `300`, want: types.MoneyFromMajor(300)},
		{name: "both missing", want: 0},
		{name: "garbage", perHour: `"abc"`, wantErr: true},
		{name: "negative", def: `-10`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Court{ID: courtID.String(), PricePerHour: []byte(tt.perHour), DefaultPrice: []byte(tt.def)}
			court, _, err := c.ToDomain()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, court.BasePrice)
		})
	}
}

func TestCourt_InvalidOpeningHours(t *testing.T) {
	c := &Court{ID: courtID.String(), OpenFrom: "22:00", OpenTo: "08:00"}
	_, _, err := c.ToDomain()
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestCourt_ClosesAtMidnight(t *testing.T) {
	tests := []struct {
		name     string
		openFrom string
		openTo   string
		midnight bool
		wantTo   string
	}{
		{name: "00:00", openFrom: "06:00", openTo: "00:00", midnight: true, wantTo: "23:59"},
		{name: "24:00", openFrom: "06:00", openTo: "24:00", midnight: true, wantTo: "23:59"},
		{name: "with seconds", openFrom: "06:00:00", openTo: "00:00:00", midnight: true, wantTo: "23:59"},
		{name: "regular", openFrom: "06:00", openTo: "23:00", wantTo: "23:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Court{ID: courtID.String(), OpenFrom: tt.openFrom, OpenTo: tt.openTo}
			assert.Equal(t, tt.midnight, c.ClosesAtMidnight())

			court, _, err := c.ToDomain()
			require.NoError(t, err)
			require.True(t, court.HasOpeningHours())
			assert.Equal(t, tt.wantTo, court.OpenTo.String())
		})
	}

	// Круглосуточный корт "00:00"-"00:00" не трактуется как закрытие в полночь
	c := &Court{ID: courtID.String(), OpenFrom: "00:00", OpenTo: "00:00"}
	assert.False(t, c.ClosesAtMidnight())
	_, _, err := c.ToDomain()
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
