package catalog

import (
	"errors"
	"testing"
)

func validDraft() *Draft {
	return &Draft{
		Name:        "Linen Shirt",
		Description: "A breathable summer shirt",
		Category:    "Shirts",
		Gender:      "male",
		Quantity:    10,
		PriceCents:  1999,
		Variants:    []string{"S", "M"},
		Images:      []string{"https://cdn.example.com/shirt-1.jpg"},
	}
}

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Draft)
		wantField string
	}{
		{"short name", func(d *Draft) { d.Name = "x" }, "Name"},
		{"short description", func(d *Draft) { d.Description = "y" }, "Description"},
		{"negative quantity", func(d *Draft) { d.Quantity = -1 }, "Quantity"},
		{"negative price", func(d *Draft) { d.PriceCents = -5 }, "PriceCents"},
		{"bad gender", func(d *Draft) { d.Gender = "other" }, "Gender"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(d)
			err := d.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("want *ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestDraftValidateImages(t *testing.T) {
	d := validDraft()
	d.Images = nil
	if err := d.Validate(); !errors.Is(err, ErrNoImages) {
		t.Fatalf("want ErrNoImages, got %v", err)
	}

	// field schema failures win over the image rule
	d = validDraft()
	d.Name = "x"
	d.Images = nil
	var verr *ValidationError
	if err := d.Validate(); !errors.As(err, &verr) {
		t.Fatalf("want field error first, got %v", err)
	}
}

func TestDraftValidateOK(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
	}{
		{"full draft", func(d *Draft) {}},
		{"zero quantity", func(d *Draft) { d.Quantity = 0 }},
		{"zero price", func(d *Draft) { d.PriceCents = 0 }},
		{"empty gender", func(d *Draft) { d.Gender = "" }},
		{"no sku, no variants", func(d *Draft) { d.SKU = ""; d.Variants = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(d)
			if err := d.Validate(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Mens Wear", "mens-wear"},
		{"  Shoes  ", "shoes"},
		{"Tops & Tees", "tops-tees"},
		{"Head_Gear", "head-gear"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
