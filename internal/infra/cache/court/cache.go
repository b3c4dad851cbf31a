package court

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Cache кэш снимков кортов из VenueService в Redis
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewCache создает кэш. prefix отделяет ключи сервиса в общем Redis.
func NewCache(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

// NewClient создает клиента Redis
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Get возвращает корт из кэша или ErrCacheMiss
func (c *Cache) Get(ctx context.Context, courtID uuid.UUID) (*domain.Court, error) {
	val, err := c.client.Get(ctx, c.key(courtID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - court=%s: %v", ErrCache, courtID, err)
	}

	return decode(val)
}

// Set сохраняет корт на время TTL
func (c *Cache) Set(ctx context.Context, court *domain.Court) error {
	data, err := encode(court)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, c.key(court.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - court=%s: %v", ErrCache, court.ID, err)
	}
	return nil
}

// Invalidate удаляет корт из кэша
func (c *Cache) Invalidate(ctx context.Context, courtID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(courtID)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - court=%s: %v", ErrCache, courtID, err)
	}
	return nil
}

func (c *Cache) key(courtID uuid.UUID) string {
	return Key(c.prefix, courtID)
}

// Key ключ корта: "{prefix}:court:{id}" или "court:{id}" без префикса
func Key(prefix string, courtID uuid.UUID) string {
	if prefix == "" {
		return "court:" + courtID.String()
	}
	return prefix + ":court:" + courtID.String()
}

func encode(court *domain.Court) ([]byte, error) {
	data, err := json.Marshal(toEntry(court))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return data, nil
}

func decode(data []byte) (*domain.Court, error) {
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return e.toDomain(), nil
}
