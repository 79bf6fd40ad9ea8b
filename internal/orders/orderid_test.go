package orders

import (
	"regexp"
	"strings"
	"testing"
)

var orderIDPattern = regexp.MustCompile(`^VS-[0-9A-Z]+-[0-9A-F]{6}$`)

func TestNewOrderID(t *testing.T) {
	id := NewOrderID()
	if !orderIDPattern.MatchString(id) {
		t.Fatalf("id %q does not match %s", id, orderIDPattern)
	}
	if !strings.HasPrefix(id, "VS-") {
		t.Errorf("id %q missing prefix", id)
	}
}

func TestNewOrderIDFresh(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := NewOrderID()
		if seen[id] {
			t.Fatalf("duplicate id %q after %d draws", id, i)
		}
		seen[id] = true
	}
}

func TestSubtotal(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  int
	}{
		{"empty", nil, 0},
		{"single line", []Item{{ProductID: "p1", Variant: "red", Qty: 2, PriceCents: 1000}}, 2000},
		{"mixed lines", []Item{
			{ProductID: "p1", Qty: 1, PriceCents: 1999},
			{ProductID: "p2", Qty: 3, PriceCents: 500},
		}, 3499},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Subtotal(tt.items); got != tt.want {
				t.Errorf("Subtotal = %d, want %d", got, tt.want)
			}
		})
	}
}
