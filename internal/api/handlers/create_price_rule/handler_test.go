package create_price_rule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/pricerules"
	"github.com/m04kA/SMC-CourtBooking/internal/service/pricerules/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

var courtID = uuid.MustParse("6f1c2b8e-3a4d-4c5e-9f60-7a8b9c0d1e2f")

type fakeService struct {
	got *models.CreateRuleRequest
	err error
}

func (f *fakeService) Create(_ context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.RuleResponse{ID: 11, CourtID: req.CourtID.String(), ConditionType: req.ConditionType,
		SlotFrom: req.SlotFrom, SlotTo: req.SlotTo, Price: req.Price}, nil
}

func serve(h *Handler, body string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/courts/x/price-rules", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"courtId": courtID.String()})
	if userID != 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_AcceptsBothSlotSpellings(t *testing.T) {
	bodies := map[string]string{
		"camelCase":  `{"condition_type":"recurring","days":["mon"],"slotFrom":"18:00","slotTo":"19:00","price":700}`,
		"snake_case": `{"condition_type":"recurring","days":["mon"],"slot_from":"18:00","slot_to":"19:00","price":"700.00"}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			svc := &fakeService{}
			rec := serve(NewHandler(svc, logger.NewNop()), body, 9)

			require.Equal(t, http.StatusCreated, rec.Code)
			require.NotNil(t, svc.got)
			assert.Equal(t, int64(9), svc.got.UserID)
			assert.Equal(t, courtID, svc.got.CourtID)
			assert.Equal(t, "18:00", svc.got.SlotFrom)
			assert.Equal(t, "19:00", svc.got.SlotTo)
			assert.Equal(t, types.MoneyFromMajor(700), svc.got.Price)
		})
	}
}

func TestHandle_Errors(t *testing.T) {
	valid := `{"condition_type":"date","dates":["2024-06-03"],"slotFrom":"18:00","slotTo":"19:00","price":900}`

	tests := []struct {
		name       string
		body       string
		userID     int64
		svcErr     error
		wantStatus int
	}{
		{name: "missing user", body: valid, wantStatus: http.StatusUnauthorized},
		{name: "unknown condition type", body: `{"condition_type":"weekly","slotFrom":"18:00","slotTo":"19:00","price":1}`, userID: 1, wantStatus: http.StatusBadRequest},
		{name: "bad date", body: `{"condition_type":"date","dates":["03.06.2024"],"slotFrom":"18:00","slotTo":"19:00","price":1}`, userID: 1, wantStatus: http.StatusBadRequest},
		{name: "negative price", body: `{"condition_type":"date","dates":["2024-06-03"],"slotFrom":"18:00","slotTo":"19:00","price":-1}`, userID: 1, wantStatus: http.StatusBadRequest},
		{name: "invalid rule", body: valid, userID: 1, svcErr: pricerules.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not a manager", body: valid, userID: 1, svcErr: pricerules.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "court not found", body: valid, userID: 1, svcErr: pricerules.ErrCourtNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeService{err: tt.svcErr}, logger.NewNop()), tt.body, tt.userID)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
