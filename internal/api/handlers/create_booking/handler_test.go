package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

var courtID = uuid.MustParse("6f1c2b8e-3a4d-4c5e-9f60-7a8b9c0d1e2f")

type fakeUseCase struct {
	got *createBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}

	booking := &domain.Booking{
		ID:            7,
		UserID:        req.UserID,
		CourtID:       req.CourtID,
		Date:          req.Date,
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPending,
	}
	for _, interval := range req.Intervals {
		booking.Slots = append(booking.Slots, domain.BookingSlot{Interval: interval, Price: types.MoneyFromMajor(500)})
	}
	booking.Recalculate()

	return &createBooking.Response{Booking: booking}, nil
}

func newRequest(t *testing.T, body string, userID int64) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	return req
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.NewNop())

	body := `{"court_id":"` + courtID.String() + `","booking_date":"2024-06-03",
		"time_slots":[{"start":"19:00","end":"20:00"},{"start":"18:00","end":"19:00"}]}`
	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(t, body, 42))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(42), uc.got.UserID)
	assert.Equal(t, courtID, uc.got.CourtID)
	assert.Len(t, uc.got.Intervals, 2)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-06-03", resp["booking_date"])
	assert.Equal(t, "18:00", resp["start_time"])
	assert.Equal(t, "20:00", resp["end_time"])
	assert.Equal(t, float64(1000), resp["total_amount"])
	assert.Len(t, resp["time_slots"], 2)
}

func TestHandle_Errors(t *testing.T) {
	validBody := `{"court_id":"` + courtID.String() + `","booking_date":"2024-06-03","time_slots":[{"start":"18:00","end":"19:00"}]}`

	tests := []struct {
		name       string
		body       string
		userID     int64
		ucErr      error
		wantStatus int
		wantMsg    string
	}{
		{name: "missing user", body: validBody, wantStatus: http.StatusUnauthorized, wantMsg: msgMissingUserID},
		{name: "broken json", body: `{`, userID: 1, wantStatus: http.StatusBadRequest, wantMsg: msgInvalidRequestBody},
		{name: "bad time format", body: `{"court_id":"` + courtID.String() + `","booking_date":"2024-06-03","time_slots":[{"start":"18","end":"19:00"}]}`,
			userID: 1, wantStatus: http.StatusBadRequest},
		{name: "overlap", body: validBody, userID: 1, ucErr: createBooking.ErrOverlap, wantStatus: http.StatusBadRequest, wantMsg: msgOverlap},
		{name: "empty selection", body: validBody, userID: 1, ucErr: createBooking.ErrEmptySelection, wantStatus: http.StatusBadRequest, wantMsg: msgEmptySelection},
		{name: "court not found", body: validBody, userID: 1, ucErr: createBooking.ErrCourtNotFound, wantStatus: http.StatusNotFound, wantMsg: msgCourtNotFound},
		{name: "slot taken", body: validBody, userID: 1, ucErr: createBooking.ErrSlotTaken, wantStatus: http.StatusConflict, wantMsg: msgSlotTaken},
		{name: "internal", body: validBody, userID: 1, ucErr: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.ucErr}, logger.NewNop())
			rec := httptest.NewRecorder()

			h.Handle(rec, newRequest(t, tt.body, tt.userID))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.Contains(t, rec.Body.String(), tt.wantMsg)
			}
		})
	}
}
