package get_court_bookings

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var courtID = uuid.MustParse("6f1c2b8e-3a4d-4c5e-9f60-7a8b9c0d1e2f")

func TestToServiceRequest(t *testing.T) {
	t.Run("single date wins over range", func(t *testing.T) {
		req, err := ToServiceRequest(courtID, 5, url.Values{
			"date":       {"2024-06-03"},
			"start_date": {"2024-06-01"},
		})
		require.NoError(t, err)
		require.NotNil(t, req.StartDate)
		require.NotNil(t, req.EndDate)
		assert.Equal(t, "2024-06-03", req.StartDate.String())
		assert.Equal(t, "2024-06-03", req.EndDate.String())
	})

	t.Run("filters and sorting", func(t *testing.T) {
		req, err := ToServiceRequest(courtID, 5, url.Values{
			"start_date":       {"2024-06-01"},
			"end_date":         {"2024-06-30"},
			"status":           {"confirmed"},
			"payment_status":   {"paid"},
			"include_inactive": {"true"},
			"sort_by":          {"total_amount"},
			"order":            {"desc"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), req.UserID)
		assert.Equal(t, courtID, req.CourtID)
		assert.Equal(t, "2024-06-01", req.StartDate.String())
		assert.Equal(t, "2024-06-30", req.EndDate.String())
		assert.Equal(t, "confirmed", *req.Status)
		assert.Equal(t, "paid", *req.PaymentStatus)
		assert.True(t, req.IncludeInactive)
		assert.Equal(t, "total_amount", req.SortBy)
		assert.True(t, req.SortDesc)
	})

	t.Run("defaults", func(t *testing.T) {
		req, err := ToServiceRequest(courtID, 5, url.Values{})
		require.NoError(t, err)
		assert.Nil(t, req.StartDate)
		assert.Nil(t, req.Status)
		assert.False(t, req.IncludeInactive)
		assert.False(t, req.SortDesc)
	})

	for name, query := range map[string]url.Values{
		"bad date":             {"date": {"03.06.2024"}},
		"bad start date":       {"start_date": {"x"}},
		"bad include_inactive": {"include_inactive": {"maybe"}},
		"bad order":            {"order": {"sideways"}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ToServiceRequest(courtID, 5, query)
			assert.Error(t, err)
		})
	}
}
