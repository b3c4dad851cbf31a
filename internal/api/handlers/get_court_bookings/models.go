package get_court_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задаёт один день и имеет приоритет над start_date/end_date.
func ToServiceRequest(courtID uuid.UUID, userID int64, query url.Values) (*models.GetCourtBookingsRequest, error) {
	req := &models.GetCourtBookingsRequest{
		UserID:  userID,
		CourtID: courtID,
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := types.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		if s := query.Get("start_date"); s != "" {
			date, err := types.ParseDate(s)
			if err != nil {
				return nil, fmt.Errorf("invalid start_date: %w", err)
			}
			req.StartDate = &date
		}
		if s := query.Get("end_date"); s != "" {
			date, err := types.ParseDate(s)
			if err != nil {
				return nil, fmt.Errorf("invalid end_date: %w", err)
			}
			req.EndDate = &date
		}
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if paymentStatus := query.Get("payment_status"); paymentStatus != "" {
		req.PaymentStatus = &paymentStatus
	}

	if s := query.Get("include_inactive"); s != "" {
		includeInactive, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid include_inactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	req.SortBy = query.Get("sort_by")
	switch order := query.Get("order"); order {
	case "", "asc":
	case "desc":
		req.SortDesc = true
	default:
		return nil, fmt.Errorf("invalid order value: %q", order)
	}

	return req, nil
}
