package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/velvetshop/storefront/internal/orders"
	"github.com/velvetshop/storefront/internal/redisx"
)

var (
	ErrAlreadyInCart = errors.New("item already in cart")
	ErrNotInCart     = errors.New("item not in cart")
	ErrInvalidQty    = errors.New("quantity must be at least 1")
)

// CartStore holds one cart per session in Redis, as a JSON snapshot. Writes
// are read-modify-write; the single submit path per session makes that safe
// enough, the backend stays the source of truth for stock.
type CartStore struct{ RDB *redis.Client }

func (s *CartStore) key(sessionID string) string {
	return fmt.Sprintf(redisx.KeyCart, sessionID)
}

func (s *CartStore) Get(ctx context.Context, sessionID string) ([]orders.Item, error) {
	raw, err := s.RDB.Get(ctx, s.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []orders.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

// Add puts an item in the cart. At most one entry may exist per
// (product, variant) pair; adding a duplicate is refused.
func (s *CartStore) Add(ctx context.Context, sessionID string, item orders.Item) error {
	items, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	items, err = addItem(items, item)
	if err != nil {
		return err
	}
	return s.save(ctx, sessionID, items)
}

func (s *CartStore) SetQty(ctx context.Context, sessionID, productID, variant string, qty int) error {
	items, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	items, err = setItemQty(items, productID, variant, qty)
	if err != nil {
		return err
	}
	return s.save(ctx, sessionID, items)
}

func (s *CartStore) Remove(ctx context.Context, sessionID, productID, variant string) error {
	items, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	items, err = removeItem(items, productID, variant)
	if err != nil {
		return err
	}
	return s.save(ctx, sessionID, items)
}

func addItem(items []orders.Item, item orders.Item) ([]orders.Item, error) {
	if item.Qty < 1 {
		return nil, ErrInvalidQty
	}
	for _, it := range items {
		if it.ProductID == item.ProductID && it.Variant == item.Variant {
			return nil, ErrAlreadyInCart
		}
	}
	return append(items, item), nil
}

func setItemQty(items []orders.Item, productID, variant string, qty int) ([]orders.Item, error) {
	if qty < 1 {
		return nil, ErrInvalidQty
	}
	for i := range items {
		if items[i].ProductID == productID && items[i].Variant == variant {
			items[i].Qty = qty
			return items, nil
		}
	}
	return nil, ErrNotInCart
}

func removeItem(items []orders.Item, productID, variant string) ([]orders.Item, error) {
	for i := range items {
		if items[i].ProductID == productID && items[i].Variant == variant {
			return append(items[:i], items[i+1:]...), nil
		}
	}
	return nil, ErrNotInCart
}

func (s *CartStore) Clear(ctx context.Context, sessionID string) error {
	return s.RDB.Del(ctx, s.key(sessionID)).Err()
}

func (s *CartStore) save(ctx context.Context, sessionID string, items []orders.Item) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.RDB.Set(ctx, s.key(sessionID), b, redisx.TTLCart).Err()
}
