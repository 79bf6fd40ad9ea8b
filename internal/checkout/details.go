package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/velvetshop/storefront/internal/redisx"
)

// PaymentTypes enumerates the offered payment options. Stripe is accepted as
// a selection but its card flow is not wired yet.
var PaymentTypes = []string{"Cash on Delivery", "Stripe"}

var ErrBadPaymentType = errors.New("unknown payment type")

// Details is the in-progress delivery/payment form for one session, distinct
// from any persisted order. Every field except zipcode is required before an
// order may be submitted.
type Details struct {
	Firstname   string `json:"firstname" redis:"firstname"`
	Lastname    string `json:"lastname" redis:"lastname"`
	Address     string `json:"address" redis:"address"`
	City        string `json:"city" redis:"city"`
	Email       string `json:"email" redis:"email"`
	Zipcode     string `json:"zipcode" redis:"zipcode"`
	Phone       string `json:"phone" redis:"phone"`
	PaymentType string `json:"payment_type" redis:"payment_type"`
}

// MissingField reports the first required field that is empty, in the order
// the submission flow checks them. Zipcode is optional.
func (d Details) MissingField() string {
	checks := []struct{ name, val string }{
		{"firstname", d.Firstname},
		{"lastname", d.Lastname},
		{"address", d.Address},
		{"city", d.City},
		{"email", d.Email},
		{"payment_type", d.PaymentType},
		{"phone", d.Phone},
	}
	for _, c := range checks {
		if c.val == "" {
			return c.name
		}
	}
	return ""
}

// DetailsStore keeps the checkout form per session as a Redis hash, mutated
// field-wise as the user types.
type DetailsStore struct{ RDB *redis.Client }

func (s *DetailsStore) key(sessionID string) string {
	return fmt.Sprintf(redisx.KeyCheckout, sessionID)
}

func (s *DetailsStore) Get(ctx context.Context, sessionID string) (Details, error) {
	var d Details
	err := s.RDB.HGetAll(ctx, s.key(sessionID)).Scan(&d)
	return d, err
}

// Update writes the non-empty fields of patch. Payment type is validated
// against the offered options.
func (s *DetailsStore) Update(ctx context.Context, sessionID string, patch Details) error {
	if patch.PaymentType != "" && !validPaymentType(patch.PaymentType) {
		return ErrBadPaymentType
	}
	fields := map[string]string{
		"firstname":    patch.Firstname,
		"lastname":     patch.Lastname,
		"address":      patch.Address,
		"city":         patch.City,
		"email":        patch.Email,
		"zipcode":      patch.Zipcode,
		"phone":        patch.Phone,
		"payment_type": patch.PaymentType,
	}
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		if v != "" {
			args = append(args, k, v)
		}
	}
	if len(args) == 0 {
		return nil
	}
	key := s.key(sessionID)
	if err := s.RDB.HSet(ctx, key, args...).Err(); err != nil {
		return err
	}
	return s.RDB.Expire(ctx, key, redisx.TTLCheckout).Err()
}

func (s *DetailsStore) Clear(ctx context.Context, sessionID string) error {
	return s.RDB.Del(ctx, s.key(sessionID)).Err()
}

func validPaymentType(t string) bool {
	for _, p := range PaymentTypes {
		if p == t {
			return true
		}
	}
	return false
}
