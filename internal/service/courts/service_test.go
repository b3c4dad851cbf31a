package courts

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/venueservice"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

type fakeVenue struct {
	court *domain.Court
	err   error
}

func (f *fakeVenue) GetCourt(context.Context, uuid.UUID) (*domain.Court, error) {
	return f.court, f.err
}

type fakeRules struct {
	rules []domain.PriceRule
	err   error
}

func (f *fakeRules) ListByCourt(context.Context, uuid.UUID) ([]domain.PriceRule, error) {
	return f.rules, f.err
}

func TestGetSnapshot_AttachesRulesToCopy(t *testing.T) {
	court := &domain.Court{ID: uuid.New(), BasePrice: types.MoneyFromMajor(500)}
	rules := []domain.PriceRule{{ID: 1}, {ID: 2}}
	svc := NewService(&fakeVenue{court: court}, &fakeRules{rules: rules}, logger.NewNop())

	snapshot, err := svc.GetSnapshot(context.Background(), court.ID)
	require.NoError(t, err)
	assert.Equal(t, rules, snapshot.Rules)
	assert.Equal(t, court.BasePrice, snapshot.BasePrice)
	assert.Nil(t, court.Rules, "cached court must stay untouched")
}

func TestGetSnapshot_Errors(t *testing.T) {
	id := uuid.New()

	_, err := NewService(&fakeVenue{err: venueservice.ErrCourtNotFound}, &fakeRules{}, logger.NewNop()).
		GetSnapshot(context.Background(), id)
	assert.ErrorIs(t, err, ErrCourtNotFound)
	assert.True(t, IsNotFound(err))

	_, err = NewService(&fakeVenue{err: venueservice.ErrInternal}, &fakeRules{}, logger.NewNop()).
		GetSnapshot(context.Background(), id)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = NewService(&fakeVenue{court: &domain.Court{ID: id}}, &fakeRules{err: errors.New("db down")}, logger.NewNop()).
		GetSnapshot(context.Background(), id)
	assert.ErrorIs(t, err, ErrInternal)
}
