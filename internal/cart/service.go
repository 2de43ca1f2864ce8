package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/literllyHimm/Cinewave/internal/catalog"
	"github.com/literllyHimm/Cinewave/internal/users"
	"github.com/literllyHimm/Cinewave/pkg/config"
	pkgerrors "github.com/literllyHimm/Cinewave/pkg/errors"
	"github.com/literllyHimm/Cinewave/pkg/logger"
	"github.com/literllyHimm/Cinewave/pkg/redis"
)

type cartStore interface {
	Load(ctx context.Context, deviceID string) (Cart, error)
	Save(ctx context.Context, deviceID string, c Cart) error
	Clear(ctx context.Context, deviceID string) error
}

type purchaseStore interface {
	Purchases(ctx context.Context, uid string) ([]users.PurchaseRecord, error)
	AppendPurchases(ctx context.Context, uid string, records []users.PurchaseRecord) error
}

// CheckoutResult reports what a checkout actually bought. Items already in
// the purchase history are skipped rather than double-charged.
type CheckoutResult struct {
	Purchased []users.PurchaseRecord `json:"purchased"`
	Skipped   []int64                `json:"skipped"`
}

// Service exposes the cart operations.
type Service interface {
	Items(ctx context.Context, deviceID string) (Cart, error)
	Add(ctx context.Context, deviceID string, mediaType catalog.MediaType, item catalog.Item) error
	Remove(ctx context.Context, deviceID string, itemID int64) error
	Clear(ctx context.Context, deviceID string) error
	Checkout(ctx context.Context, uid, deviceID string) (CheckoutResult, error)
}

type service struct {
	store     cartStore
	purchases purchaseStore
	cache     cache
	cacheTTL  time.Duration
	logg      *logger.Logger
	now       func() time.Time
}

// ServiceParams groups the cart service dependencies.
type ServiceParams struct {
	Store     cartStore
	Purchases purchaseStore
	Cache     cache
	Config    config.CartConfig
	Logger    *logger.Logger
}

// NewService builds the cart service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart store is required")
	}
	if params.Purchases == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchase store is required")
	}
	if params.Cache == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cache is required")
	}
	return &service{
		store:     params.Store,
		purchases: params.Purchases,
		cache:     params.Cache,
		cacheTTL:  params.Config.PurchaseCacheTTL,
		logg:      params.Logger,
		now:       time.Now,
	}, nil
}

// Items returns the device cart.
func (s *service) Items(ctx context.Context, deviceID string) (Cart, error) {
	if deviceID == "" {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "device id is required")
	}
	return s.store.Load(ctx, deviceID)
}

// Add puts an item in the cart. Adding an item that is already there is
// rejected so the UI can surface it instead of silently growing the cart.
func (s *service) Add(ctx context.Context, deviceID string, mediaType catalog.MediaType, item catalog.Item) error {
	if deviceID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "device id is required")
	}
	if item.ID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}

	c, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return err
	}
	if c.Contains(item.ID) {
		return pkgerrors.New(pkgerrors.CodeConflict, "item is already in the cart")
	}
	c.Lines = append(c.Lines, Line{
		ItemID:    item.ID,
		MediaType: catalog.ResolveMediaType(mediaType, item),
		Item:      item,
	})
	return s.store.Save(ctx, deviceID, c)
}

// Remove drops an item from the cart. Removing an absent item succeeds.
func (s *service) Remove(ctx context.Context, deviceID string, itemID int64) error {
	if deviceID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "device id is required")
	}
	c, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return err
	}
	kept := c.Lines[:0]
	removed := false
	for _, line := range c.Lines {
		if line.ItemID == itemID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return nil
	}
	c.Lines = kept
	if len(c.Lines) == 0 {
		return s.store.Clear(ctx, deviceID)
	}
	return s.store.Save(ctx, deviceID, c)
}

// Clear empties the device cart.
func (s *service) Clear(ctx context.Context, deviceID string) error {
	if deviceID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "device id is required")
	}
	return s.store.Clear(ctx, deviceID)
}

// Checkout moves the cart's not-yet-owned items into the purchase history,
// then empties the cart. Items the user already owns are excluded from the
// write; a cart made up entirely of owned items leaves everything
// untouched.
func (s *service) Checkout(ctx context.Context, uid, deviceID string) (CheckoutResult, error) {
	if uid == "" {
		return CheckoutResult{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "you must sign in to check out")
	}
	if deviceID == "" {
		return CheckoutResult{}, pkgerrors.New(pkgerrors.CodeValidation, "device id is required")
	}

	c, err := s.store.Load(ctx, deviceID)
	if err != nil {
		return CheckoutResult{}, err
	}
	if len(c.Lines) == 0 {
		return CheckoutResult{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	owned, err := s.ownedIDs(ctx, uid)
	if err != nil {
		return CheckoutResult{}, err
	}

	now := s.now().UTC()
	result := CheckoutResult{}
	for _, line := range c.Lines {
		if owned[line.ItemID] {
			result.Skipped = append(result.Skipped, line.ItemID)
			continue
		}
		result.Purchased = append(result.Purchased, users.PurchaseRecord{
			ItemID:      line.ItemID,
			Title:       line.Item.DisplayTitle(),
			Poster:      line.Item.PosterPath,
			PurchasedAt: now,
		})
	}
	if len(result.Purchased) == 0 {
		return CheckoutResult{}, pkgerrors.New(pkgerrors.CodeStateConflict, "everything in the cart is already purchased")
	}

	if err := s.purchases.AppendPurchases(ctx, uid, result.Purchased); err != nil {
		return CheckoutResult{}, err
	}
	if err := s.store.Clear(ctx, deviceID); err != nil {
		return CheckoutResult{}, err
	}

	for _, rec := range result.Purchased {
		owned[rec.ItemID] = true
	}
	s.cacheOwned(ctx, uid, owned)
	return result, nil
}

// ownedIDs loads the purchased-item id set, reading the cache first and
// falling back to the profile document.
func (s *service) ownedIDs(ctx context.Context, uid string) (map[int64]bool, error) {
	raw, err := s.cache.Get(ctx, s.cache.PurchaseCacheKey(uid))
	if err == nil {
		var ids []int64
		if jsonErr := json.Unmarshal([]byte(raw), &ids); jsonErr == nil {
			owned := make(map[int64]bool, len(ids))
			for _, id := range ids {
				owned[id] = true
			}
			return owned, nil
		}
	} else if !redis.IsNotFound(err) && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "purchase cache read failed")
	}

	records, err := s.purchases.Purchases(ctx, uid)
	if err != nil {
		return nil, err
	}
	owned := make(map[int64]bool, len(records))
	for _, rec := range records {
		owned[rec.ItemID] = true
	}
	s.cacheOwned(ctx, uid, owned)
	return owned, nil
}

// cacheOwned is best effort. A failed cache write only costs the next
// checkout a profile read.
func (s *service) cacheOwned(ctx context.Context, uid string, owned map[int64]bool) {
	ids := make([]int64, 0, len(owned))
	for id := range owned {
		ids = append(ids, id)
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.PurchaseCacheKey(uid), raw, s.cacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "purchase cache write failed")
	}
}
