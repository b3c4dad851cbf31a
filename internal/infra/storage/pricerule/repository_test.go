package pricerule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

func TestDaysRoundTrip(t *testing.T) {
	days := []time.Weekday{time.Monday, time.Sunday}
	codes := encodeDays(days)
	assert.Equal(t, []string{"mon", "sun"}, codes)

	decoded, err := decodeDays(codes)
	require.NoError(t, err)
	assert.Equal(t, days, decoded)

	_, err = decodeDays([]string{"xyz"})
	assert.Error(t, err)
}

func TestDatesRoundTrip(t *testing.T) {
	d, _ := types.ParseDate("2024-06-03")
	values := encodeDates([]types.Date{d})
	assert.Equal(t, []string{"2024-06-03"}, values)

	decoded, err := decodeDates(values)
	require.NoError(t, err)
	assert.Equal(t, []types.Date{d}, decoded)

	empty, err := decodeDates(nil)
	require.NoError(t, err)
	assert.Nil(t, empty)
}
