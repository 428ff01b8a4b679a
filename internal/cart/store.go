// Package cart persists per-user carts in redis. The cart is the only
// mutable shared state in the checkout flow; every mutation goes through a
// read-modify-write on the user's key.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"plant-kart/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// cartTTL keeps abandoned carts around long enough to come back to.
const cartTTL = 30 * 24 * time.Hour

// Store defines cart persistence operations. A missing cart reads as an
// empty one; absence is not an error.
type Store interface {
	// Get retrieves the user's cart, or an empty cart if none exists.
	Get(ctx context.Context, uid string) (*model.Cart, error)

	// AddItem adds a line item, merging quantities for repeated products.
	AddItem(ctx context.Context, uid string, item model.CartItem) (*model.Cart, error)

	// SetQuantity updates a line item's quantity; zero removes the item.
	SetQuantity(ctx context.Context, uid, productID string, quantity int) (*model.Cart, error)

	// RemoveItems drops the given products from the cart. Unknown ids are
	// ignored.
	RemoveItems(ctx context.Context, uid string, productIDs ...string) (*model.Cart, error)

	// Clear deletes the cart entirely.
	Clear(ctx context.Context, uid string) error
}

// redisStore implements Store on a redis client.
type redisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisStore creates a redis-backed cart store.
func NewRedisStore(client *redis.Client, logger zerolog.Logger) Store {
	return &redisStore{
		client: client,
		logger: logger.With().Str("component", "cart-store").Logger(),
	}
}

// Get retrieves the user's cart, or an empty cart if none exists.
func (s *redisStore) Get(ctx context.Context, uid string) (*model.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(uid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &model.Cart{UID: uid}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	var cart model.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	cart.UID = uid

	return &cart, nil
}

// AddItem adds a line item, merging quantities for repeated products.
func (s *redisStore) AddItem(ctx context.Context, uid string, item model.CartItem) (*model.Cart, error) {
	return s.mutate(ctx, uid, func(cart *model.Cart) error {
		return cart.AddItem(item)
	})
}

// SetQuantity updates a line item's quantity; zero removes the item.
func (s *redisStore) SetQuantity(ctx context.Context, uid, productID string, quantity int) (*model.Cart, error) {
	return s.mutate(ctx, uid, func(cart *model.Cart) error {
		return cart.SetQuantity(productID, quantity)
	})
}

// RemoveItems drops the given products from the cart.
func (s *redisStore) RemoveItems(ctx context.Context, uid string, productIDs ...string) (*model.Cart, error) {
	return s.mutate(ctx, uid, func(cart *model.Cart) error {
		cart.RemoveItems(productIDs...)
		return nil
	})
}

// Clear deletes the cart entirely.
func (s *redisStore) Clear(ctx context.Context, uid string) error {
	if err := s.client.Del(ctx, cartKey(uid)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	s.logger.Debug().Str("uid", uid).Msg("cart cleared")
	return nil
}

// mutate applies fn to the current cart and writes the result back.
func (s *redisStore) mutate(ctx context.Context, uid string, fn func(*model.Cart) error) (*model.Cart, error) {
	cart, err := s.Get(ctx, uid)
	if err != nil {
		return nil, err
	}

	if err := fn(cart); err != nil {
		return nil, err
	}
	cart.UpdatedAt = time.Now()

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// save writes the cart under the user's key with a refreshed TTL.
func (s *redisStore) save(ctx context.Context, cart *model.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(cart.UID), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.Debug().
		Str("uid", cart.UID).
		Int("item_count", len(cart.Items)).
		Msg("cart saved")

	return nil
}

func cartKey(uid string) string {
	return fmt.Sprintf("cart:%s", uid)
}
