package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/literllyHimm/Cinewave/pkg/config"
	pkgerrors "github.com/literllyHimm/Cinewave/pkg/errors"
	"github.com/literllyHimm/Cinewave/pkg/redis"
)

type cache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(deviceID string) string
	PurchaseCacheKey(userID string) string
}

// Store mirrors each device's cart as a JSON blob in the cache, expiring
// after the configured idle TTL.
type Store struct {
	cache cache
	ttl   time.Duration
}

// NewStore builds a cache-backed cart store.
func NewStore(cache cache, cfg config.CartConfig) (*Store, error) {
	if cache == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cache is required")
	}
	return &Store{cache: cache, ttl: cfg.TTL}, nil
}

// Load returns the device cart, empty when none is stored.
func (s *Store) Load(ctx context.Context, deviceID string) (Cart, error) {
	raw, err := s.cache.Get(ctx, s.cache.CartKey(deviceID))
	if err != nil {
		if redis.IsNotFound(err) {
			return Cart{}, nil
		}
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		// A corrupt mirror is dropped rather than wedging the device.
		return Cart{}, nil
	}
	return c, nil
}

// Save overwrites the device cart and refreshes its TTL.
func (s *Store) Save(ctx context.Context, deviceID string, c Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.cache.Set(ctx, s.cache.CartKey(deviceID), raw, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

// Clear drops the device cart.
func (s *Store) Clear(ctx context.Context, deviceID string) error {
	if err := s.cache.Del(ctx, s.cache.CartKey(deviceID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}
