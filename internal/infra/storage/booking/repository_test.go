package booking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

var courtID = uuid.MustParse("6f1c1a4e-8f59-4d8e-9a9e-0b0f3c7a2d11")

func TestApplyFilter_DefaultExcludesInactive(t *testing.T) {
	query, args, err := applyFilter(psqlbuilder.Select("id").From(bookingsTable), domain.CourtBookingsFilter{
		CourtID: courtID,
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id FROM bookings WHERE court_id = $1 AND status NOT IN ($2,$3,$4) ORDER BY booking_date DESC, start_time DESC",
		query)
	assert.Equal(t, []interface{}{courtID, "cancelled_by_user", "cancelled_by_company", "no_show"}, args)
}

func TestApplyFilter_SingleDateExcludingBooking(t *testing.T) {
	date, _ := types.ParseDate("2024-06-03")
	exclude := int64(42)

	query, args, err := applyFilter(psqlbuilder.Select("id").From(bookingsTable), domain.CourtBookingsFilter{
		CourtID:          courtID,
		StartDate:        &date,
		EndDate:          &date,
		ExcludeBookingID: &exclude,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "booking_date >= $2 AND booking_date <= $3")
	assert.Contains(t, query, "id <> $7")
	assert.Contains(t, query, "ORDER BY start_time ASC")
	assert.Equal(t, exclude, args[len(args)-1])
}

func TestApplyFilter_AdminSorting(t *testing.T) {
	status := domain.StatusConfirmed
	payment := domain.PaymentPaid

	query, _, err := applyFilter(psqlbuilder.Select("id").From(bookingsTable), domain.CourtBookingsFilter{
		CourtID:       courtID,
		Status:        &status,
		PaymentStatus: &payment,
		SortBy:        domain.SortByTotalAmount,
		SortDesc:      true,
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id FROM bookings WHERE court_id = $1 AND status = $2 AND payment_status = $3 ORDER BY total_amount DESC, id DESC",
		query)
}
