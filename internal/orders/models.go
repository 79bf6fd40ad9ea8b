package orders

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Item is one cart line: at most one per (product, variant) pair.
type Item struct {
	ProductID  string `json:"product_id"`
	Variant    string `json:"variant,omitempty"`
	Qty        int    `json:"qty"`
	PriceCents int    `json:"price_cents"`
}

// Order is the immutable record of a completed checkout submission. The
// delivery fields are copied from the session's checkout details at submit
// time.
type Order struct {
	OrderID       string    `json:"order_id"`
	Firstname     string    `json:"firstname"`
	Lastname      string    `json:"lastname"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	Email         string    `json:"email"`
	Zipcode       string    `json:"zipcode,omitempty"`
	Phone         string    `json:"phone"`
	PaymentType   string    `json:"payment_type"`
	Items         []Item    `json:"checkout_items"`
	TotalCents    int       `json:"total_cents"`
	Status        Status    `json:"status"`
	PaymentStatus Status    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Subtotal is the cart total in cents, derived from quantity and unit price.
func Subtotal(items []Item) int {
	total := 0
	for _, it := range items {
		total += it.Qty * it.PriceCents
	}
	return total
}
