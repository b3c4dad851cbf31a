package venueservice

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// CourtSource источник кортов (Client)
type CourtSource interface {
	GetCourt(ctx context.Context, courtID uuid.UUID) (*domain.Court, error)
}

// CourtCache кэш кортов (infra/cache/court.Cache)
type CourtCache interface {
	Get(ctx context.Context, courtID uuid.UUID) (*domain.Court, error)
	Set(ctx context.Context, court *domain.Court) error
}

// CachedClient read-through обёртка над клиентом VenueService.
// Ошибки кэша только логируются, запрос уходит в VenueService.
type CachedClient struct {
	source CourtSource
	cache  CourtCache
	isMiss func(error) bool
	log    Logger
}

// NewCachedClient создает клиента с кэшем. isMiss распознает промах кэша,
// чтобы не логировать его как ошибку.
func NewCachedClient(source CourtSource, cache CourtCache, isMiss func(error) bool, log Logger) *CachedClient {
	return &CachedClient{source: source, cache: cache, isMiss: isMiss, log: log}
}

func (c *CachedClient) GetCourt(ctx context.Context, courtID uuid.UUID) (*domain.Court, error) {
	court, err := c.cache.Get(ctx, courtID)
	if err == nil {
		return court, nil
	}
	if !c.isMiss(err) {
		c.log.Warn("GetCourt: court=%s, cache read failed, falling back to venue service: %v", courtID, err)
	}

	court, err = c.source.GetCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, court); err != nil {
		c.log.Warn("GetCourt: court=%s, cache write failed: %v", courtID, err)
	}

	return court, nil
}

// IsNotFound сообщает, что корт не существует
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCourtNotFound)
}
