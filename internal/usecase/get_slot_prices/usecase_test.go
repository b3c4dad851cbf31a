package get_slot_prices

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/pricing"
	"github.com/m04kA/SMC-CourtBooking/internal/service/courts"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

type fakeBookingRepo struct{ bookings []*domain.Booking }

func (f *fakeBookingRepo) GetByCourtWithFilter(context.Context, domain.CourtBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeCourts struct {
	court *domain.Court
	err   error
}

func (f *fakeCourts) GetSnapshot(context.Context, uuid.UUID) (*domain.Court, error) {
	return f.court, f.err
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func tod(h, m int) types.TimeOfDay { return types.TimeOfDay{Hour: h, Minute: m} }

func slot(t *testing.T, from, to string) domain.SlotInterval {
	t.Helper()
	i, err := domain.ParseSlotInterval(from, to)
	require.NoError(t, err)
	return i
}

func newUseCase(court *domain.Court, bookings []*domain.Booking, now time.Time) *UseCase {
	uc := NewUseCase(&fakeBookingRepo{bookings: bookings}, &fakeCourts{court: court}, Settings{
		AdvanceBookingDays:         30,
		DefaultSlotDurationMinutes: 60,
		DefaultOpenFrom:            tod(8, 0),
		DefaultOpenTo:              tod(12, 0),
		Location:                   time.UTC,
	}, logger.NewNop())
	uc.timeProvider = fixedClock{t: now}
	return uc
}

func TestExecute_PricedGrid(t *testing.T) {
	open, closeAt := tod(17, 0), tod(21, 0)
	court := &domain.Court{
		ID:                  uuid.New(),
		BasePrice:           types.MoneyFromMajor(500),
		OpenFrom:            &open,
		OpenTo:              &closeAt,
		SlotDurationMinutes: 60,
		Rules: []domain.PriceRule{{
			ID:       1,
			Type:     domain.RuleTypeRecurring,
			Days:     []time.Weekday{time.Monday},
			Interval: slot(t, "18:00", "19:00"),
			Price:    types.MoneyFromMajor(700),
		}},
		Unavailability: []domain.UnavailableWindow{{
			Date:     types.NewDate(2024, time.June, 3),
			Interval: slot(t, "20:00", "21:00"),
			Reason:   "турнир",
		}},
	}
	booked := &domain.Booking{
		ID:     9,
		Status: domain.StatusConfirmed,
		Slots:  []domain.BookingSlot{{Interval: slot(t, "19:00", "20:00")}},
	}

	uc := newUseCase(court, []*domain.Booking{booked}, time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC))
	resp, err := uc.Execute(context.Background(), &Request{CourtID: court.ID, Date: types.NewDate(2024, time.June, 3)})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	assert.Equal(t, 60, resp.SlotDurationMinutes)

	assert.Equal(t, "17:00-18:00", resp.Slots[0].Interval.String())
	assert.Equal(t, types.MoneyFromMajor(500), resp.Slots[0].Price)
	assert.True(t, resp.Slots[0].Available)

	assert.Equal(t, types.MoneyFromMajor(700), resp.Slots[1].Price)
	assert.Equal(t, pricing.SourceRecurring, resp.Slots[1].Source)

	assert.False(t, resp.Slots[2].Available)
	assert.Equal(t, ReasonBooked, resp.Slots[2].Reason)

	assert.False(t, resp.Slots[3].Available)
	assert.Equal(t, "турнир", resp.Slots[3].Reason)
}

func TestExecute_DefaultsAndToday(t *testing.T) {
	court := &domain.Court{ID: uuid.New(), BasePrice: types.MoneyFromMajor(300)}

	// Сегодня 09:30: слоты 08:00 и 09:00 уже начались
	uc := newUseCase(court, nil, time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC))
	resp, err := uc.Execute(context.Background(), &Request{CourtID: court.ID, Date: types.NewDate(2024, time.June, 1)})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "10:00-11:00", resp.Slots[0].Interval.String())
	assert.Equal(t, "11:00-12:00", resp.Slots[1].Interval.String())
}

func TestExecute_Errors(t *testing.T) {
	court := &domain.Court{ID: uuid.New()}
	now := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

	_, err := newUseCase(court, nil, now).Execute(context.Background(),
		&Request{CourtID: court.ID, Date: types.NewDate(2024, time.May, 31)})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = newUseCase(court, nil, now).Execute(context.Background(),
		&Request{CourtID: court.ID, Date: types.NewDate(2024, time.August, 1)})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)

	uc := NewUseCase(&fakeBookingRepo{}, &fakeCourts{err: courts.ErrCourtNotFound}, Settings{}, logger.NewNop())
	uc.timeProvider = fixedClock{t: now}
	_, err = uc.Execute(context.Background(), &Request{CourtID: court.ID, Date: types.NewDate(2024, time.June, 2)})
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestGenerateGrid_UnevenClose(t *testing.T) {
	grid := generateGrid(tod(8, 0), tod(10, 30), 60, types.NewDate(2024, time.June, 3),
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, grid, 2)
	assert.Equal(t, "09:00-10:00", grid[1].String())
}
