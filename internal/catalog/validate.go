package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Draft is the product form payload submitted from the back office, for both
// the create and the edit path.
type Draft struct {
	Name         string     `json:"name" validate:"min=2"`
	Description  string     `json:"description" validate:"min=2"`
	Category     string     `json:"category"`
	Gender       string     `json:"gender" validate:"omitempty,oneof=male female both"`
	Quantity     int        `json:"quantity" validate:"gte=0"`
	SKU          string     `json:"sku"`
	PriceCents   int        `json:"price_cents" validate:"gte=0"`
	DeliveryInfo string     `json:"delivery_info"`
	Color        string     `json:"color"`
	Variants     []string   `json:"variants"`
	Images       []string   `json:"images"`
	ScheduleDate *time.Time `json:"schedule_date,omitempty"`
}

var ErrNoImages = errors.New("upload at least one image")

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var fieldMessages = map[string]string{
	"Name":        "minimum of 2 characters",
	"Description": "minimum of 2 characters",
	"Gender":      "please pick a valid gender",
	"Quantity":    "please add a valid quantity",
	"PriceCents":  "please add a valid price",
}

// Validate runs the field schema first, then the image requirement, and
// reports the first failure. A draft that fails here must not be persisted.
func (d *Draft) Validate() error {
	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0].Field()
			msg, ok := fieldMessages[f]
			if !ok {
				msg = "invalid value"
			}
			return &ValidationError{Field: f, Message: msg}
		}
		return err
	}
	if len(d.Images) == 0 {
		return ErrNoImages
	}
	return nil
}
