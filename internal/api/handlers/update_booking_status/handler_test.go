package update_booking_status

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
)

type fakeService struct {
	got *models.UpdateStatusRequest
	err error
}

func (f *fakeService) UpdateStatus(_ context.Context, _ int64, req *models.UpdateStatusRequest) error {
	f.got = req
	return f.err
}

func (f *fakeService) GetByID(_ context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	resp := &models.BookingResponse{ID: id, UserID: userID, Status: "pending", PaymentStatus: "pending"}
	if f.got != nil && f.got.Status != nil {
		resp.Status = *f.got.Status
	}
	return resp, nil
}

func serve(h *Handler, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+id+"/status", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": id})
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_ReturnsUpdatedBooking(t *testing.T) {
	svc := &fakeService{}

	rec := serve(NewHandler(svc, logger.NewNop()), "3", `{"status":"completed"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(7), svc.got.UserID)
	assert.Contains(t, rec.Body.String(), `"status":"completed"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad id", id: "x", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "bad body", id: "1", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "invalid status", id: "1", body: `{"status":"lost"}`, err: bookings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", id: "1", body: `{}`, err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "not a manager", id: "1", body: `{}`, err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{
			name:       "reactivated slots taken",
			id:         "1",
			body:       `{"status":"confirmed"}`,
			err:        fmt.Errorf("%w: 18:00-19:00", bookings.ErrSlotTaken),
			wantStatus: http.StatusConflict,
		},
		{name: "internal", id: "1", body: `{}`, err: bookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeService{err: tt.err}, logger.NewNop()), tt.id, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
