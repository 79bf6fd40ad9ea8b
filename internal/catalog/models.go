package catalog

import "time"

type Product struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	CategorySlug string     `json:"category_slug,omitempty"`
	Gender       string     `json:"gender"`
	Quantity     int        `json:"quantity"`
	SKU          string     `json:"sku,omitempty"`
	PriceCents   int        `json:"price_cents"`
	DeliveryInfo string     `json:"delivery_info,omitempty"`
	Color        string     `json:"color,omitempty"`
	Variants     []string   `json:"variants"`
	Images       []string   `json:"images"`
	Status       Status     `json:"status"`
	ScheduleDate *time.Time `json:"schedule_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Genders enumerates the allowed gender options offered by the product form.
var Genders = []string{"male", "female", "both"}
