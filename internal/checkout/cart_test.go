package checkout

import (
	"errors"
	"testing"

	"github.com/velvetshop/storefront/internal/orders"
)

func TestAddItem(t *testing.T) {
	var items []orders.Item

	items, err := addItem(items, orders.Item{ProductID: "p1", Variant: "red", Qty: 2, PriceCents: 1000})
	if err != nil {
		t.Fatal(err)
	}

	// same product, different variant: allowed
	items, err = addItem(items, orders.Item{ProductID: "p1", Variant: "blue", Qty: 1, PriceCents: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}

	// same (product, variant) pair: refused
	if _, err := addItem(items, orders.Item{ProductID: "p1", Variant: "red", Qty: 1}); !errors.Is(err, ErrAlreadyInCart) {
		t.Fatalf("want ErrAlreadyInCart, got %v", err)
	}

	if _, err := addItem(items, orders.Item{ProductID: "p2", Qty: 0}); !errors.Is(err, ErrInvalidQty) {
		t.Fatalf("want ErrInvalidQty, got %v", err)
	}
}

func TestSetItemQty(t *testing.T) {
	items := []orders.Item{{ProductID: "p1", Variant: "red", Qty: 1, PriceCents: 1000}}

	items, err := setItemQty(items, "p1", "red", 3)
	if err != nil {
		t.Fatal(err)
	}
	if items[0].Qty != 3 {
		t.Errorf("qty = %d, want 3", items[0].Qty)
	}

	if _, err := setItemQty(items, "p1", "red", 0); !errors.Is(err, ErrInvalidQty) {
		t.Fatalf("want ErrInvalidQty, got %v", err)
	}
	if _, err := setItemQty(items, "p1", "blue", 2); !errors.Is(err, ErrNotInCart) {
		t.Fatalf("want ErrNotInCart, got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	items := []orders.Item{
		{ProductID: "p1", Variant: "red", Qty: 1},
		{ProductID: "p2", Qty: 2},
	}

	items, err := removeItem(items, "p1", "red")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ProductID != "p2" {
		t.Fatalf("items = %v, want only p2", items)
	}

	if _, err := removeItem(items, "p1", "red"); !errors.Is(err, ErrNotInCart) {
		t.Fatalf("want ErrNotInCart, got %v", err)
	}
}
