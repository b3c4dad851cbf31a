package bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/events"
	bookingRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/ptr"
	"github.com/m04kA/SMC-CourtBooking/pkg/txmanager"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

const (
	ownerID    = int64(42)
	managerID  = int64(7)
	strangerID = int64(999)
)

type fakeBookingRepo struct {
	bookings      map[int64]*domain.Booking
	filter        domain.CourtBookingsFilter
	cancelStatus  domain.BookingStatus
	cancelReason  string
	status        *domain.BookingStatus
	paymentStatus *domain.PaymentStatus
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByCourtWithFilter(_ context.Context, filter domain.CourtBookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.CourtID != filter.CourtID {
			continue
		}
		if filter.ExcludeBookingID != nil && b.ID == *filter.ExcludeBookingID {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	f.status = &status
	return nil
}

func (f *fakeBookingRepo) UpdatePaymentStatus(_ context.Context, _ int64, status domain.PaymentStatus) error {
	f.paymentStatus = &status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64, status domain.BookingStatus, reason string) error {
	f.cancelStatus = status
	f.cancelReason = reason
	return nil
}

type fakeCourts struct{ court *domain.Court }

func (f *fakeCourts) GetCourt(context.Context, uuid.UUID) (*domain.Court, error) {
	return f.court, nil
}

type fakeTx struct {
	calls           int
	serializable    int
	serializableErr error
}

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.serializable++
	if f.serializableErr != nil {
		return f.serializableErr
	}
	return fn(ctx)
}

type fakePublisher struct{ keys []string }

func (f *fakePublisher) PublishJSON(_ context.Context, key string, _ any) error {
	f.keys = append(f.keys, key)
	return nil
}

type nopMetrics struct{}

func (nopMetrics) RecordBooking(string, int64) {}

type fixture struct {
	svc       *Service
	repo      *fakeBookingRepo
	tx        *fakeTx
	publisher *fakePublisher
	court     *domain.Court
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	court := &domain.Court{ID: uuid.New(), ManagerIDs: []int64{managerID}}
	interval, err := domain.ParseSlotInterval("18:00", "19:00")
	require.NoError(t, err)

	booking := &domain.Booking{
		ID:            1,
		UserID:        ownerID,
		CourtID:       court.ID,
		Date:          types.NewDate(2024, time.June, 3),
		Slots:         []domain.BookingSlot{{Interval: interval, Price: types.MoneyFromMajor(700)}},
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPending,
	}
	booking.Recalculate()

	f := &fixture{
		repo:      &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: booking}},
		tx:        &fakeTx{},
		publisher: &fakePublisher{},
		court:     court,
	}
	f.svc = NewService(f.repo, &fakeCourts{court: court}, f.tx, f.publisher, nopMetrics{}, logger.NewNop())
	return f
}

func TestGetByID_Access(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.GetByID(ctx, 1, ownerID)
	require.NoError(t, err)
	assert.Equal(t, types.MoneyFromMajor(700), resp.TotalAmount)

	_, err = f.svc.GetByID(ctx, 1, managerID)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(ctx, 1, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(ctx, 2, ownerID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingResponse_WireShape(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.GetByID(context.Background(), 1, ownerID)
	require.NoError(t, err)

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "2024-06-03", decoded["booking_date"])
	assert.Equal(t, "18:00", decoded["start_time"])
	assert.Equal(t, "19:00", decoded["end_time"])
	assert.Equal(t, 700.0, decoded["total_amount"])

	slots := decoded["time_slots"].([]any)
	require.Len(t, slots, 1)
	assert.Equal(t, map[string]any{"start": "18:00", "end": "19:00", "price": 700.0}, slots[0])
}

func TestGetUserBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{RequesterID: ownerID, UserID: ownerID})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	_, err = f.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{RequesterID: strangerID, UserID: ownerID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{
		RequesterID: ownerID, UserID: ownerID, Status: ptr.Ptr("lost"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCourtBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	day := types.NewDate(2024, time.June, 3)

	resp, err := f.svc.GetCourtBookings(ctx, &models.GetCourtBookingsRequest{
		UserID:        managerID,
		CourtID:       f.court.ID,
		StartDate:     &day,
		EndDate:       &day,
		PaymentStatus: ptr.Ptr("pending"),
		SortBy:        "total_amount",
		SortDesc:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, domain.SortByTotalAmount, f.repo.filter.SortBy)
	assert.True(t, f.repo.filter.SortDesc)
	require.NotNil(t, f.repo.filter.PaymentStatus)
	assert.Equal(t, domain.PaymentPending, *f.repo.filter.PaymentStatus)

	_, err = f.svc.GetCourtBookings(ctx, &models.GetCourtBookingsRequest{UserID: ownerID, CourtID: f.court.ID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetCourtBookings(ctx, &models.GetCourtBookingsRequest{
		UserID: managerID, CourtID: f.court.ID, SortBy: "user_id",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	earlier := day.AddDays(-1)
	_, err = f.svc.GetCourtBookings(ctx, &models.GetCourtBookingsRequest{
		UserID: managerID, CourtID: f.court.ID, StartDate: &day, EndDate: &earlier,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			UserID: ownerID, CancellationReason: "заболел",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelledByUser, f.repo.cancelStatus)
		assert.Equal(t, "заболел", f.repo.cancelReason)
		assert.Equal(t, []string{events.BookingCancelled}, f.publisher.keys)
	})

	t.Run("manager", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: managerID}))
		assert.Equal(t, domain.StatusCancelledByCompany, f.repo.cancelStatus)
	})

	t.Run("stranger", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: strangerID})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, f.publisher.keys)
	})

	t.Run("already completed", func(t *testing.T) {
		f := newFixture(t)
		f.repo.bookings[1].Status = domain.StatusCompleted
		err := f.svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: ownerID})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{
		UserID:        managerID,
		Status:        ptr.Ptr("completed"),
		PaymentStatus: ptr.Ptr("paid"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, *f.repo.status)
	assert.Equal(t, domain.PaymentPaid, *f.repo.paymentStatus)
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []string{events.BookingStatusChanged}, f.publisher.keys)

	err = f.svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{UserID: ownerID, Status: ptr.Ptr("completed")})
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = f.svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{UserID: managerID, PaymentStatus: ptr.Ptr("stolen")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = f.svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{UserID: managerID})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_Reactivation(t *testing.T) {
	ctx := context.Background()
	confirm := func() *models.UpdateStatusRequest {
		return &models.UpdateStatusRequest{UserID: managerID, Status: ptr.Ptr("confirmed")}
	}

	// newCancelled отменяет бронирование фикстуры и отдает его слоты другому клиенту
	newCancelled := func(t *testing.T, rebooked bool) *fixture {
		f := newFixture(t)
		cancelled := f.repo.bookings[1]
		cancelled.Status = domain.StatusCancelledByUser
		if rebooked {
			f.repo.bookings[2] = &domain.Booking{
				ID:      2,
				UserID:  strangerID,
				CourtID: f.court.ID,
				Date:    cancelled.Date,
				Slots:   cancelled.Slots,
				Status:  domain.StatusConfirmed,
			}
		}
		return f
	}

	t.Run("slots rebooked by another user", func(t *testing.T) {
		f := newCancelled(t, true)

		err := f.svc.UpdateStatus(ctx, 1, confirm())
		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.Nil(t, f.repo.status)
		assert.Equal(t, 1, f.tx.serializable)
		assert.Empty(t, f.publisher.keys)
		require.NotNil(t, f.repo.filter.ExcludeBookingID)
		assert.Equal(t, int64(1), *f.repo.filter.ExcludeBookingID)
		assert.Equal(t, domain.StatusCancelledByUser, f.repo.bookings[1].Status)
	})

	t.Run("slots still free", func(t *testing.T) {
		f := newCancelled(t, false)

		require.NoError(t, f.svc.UpdateStatus(ctx, 1, confirm()))
		require.NotNil(t, f.repo.status)
		assert.Equal(t, domain.StatusConfirmed, *f.repo.status)
		assert.Equal(t, 1, f.tx.serializable)
		assert.Equal(t, 0, f.tx.calls)
	})

	t.Run("concurrent transaction wins", func(t *testing.T) {
		f := newCancelled(t, false)
		f.tx.serializableErr = fmt.Errorf("%w: could not serialize access", txmanager.ErrSerializationFailure)

		err := f.svc.UpdateStatus(ctx, 1, confirm())
		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.NotErrorIs(t, err, ErrInternal)
	})

	t.Run("inactive to inactive skips slot check", func(t *testing.T) {
		f := newCancelled(t, true)

		err := f.svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{UserID: managerID, Status: ptr.Ptr("no_show")})
		require.NoError(t, err)
		assert.Equal(t, 0, f.tx.serializable)
		assert.Equal(t, 1, f.tx.calls)
	})
}
