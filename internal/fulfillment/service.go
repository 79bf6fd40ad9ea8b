package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/velvetshop/storefront/internal/kafka"
	"github.com/velvetshop/storefront/internal/orders"
	"github.com/velvetshop/storefront/internal/redisx"
)

// Service consumes order.placed and keeps catalog quantities in line with
// what was sold.
type Service struct {
	Repo        *StockRepo
	Redis       *redis.Client
	ServiceName string
}

// HandleOrderPlaced runs as the consumer handler for the order.placed topic.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderPlaced {
		return nil
	}

	// dedup by event id so redeliveries do not deduct twice
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	seen, _ := redisx.Exists(ctx, s.Redis, dkey)
	if seen {
		return nil
	}

	p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
	if err != nil {
		return err
	}

	short, err := s.Repo.DeductAll(ctx, p.Items)
	if err != nil {
		return err
	}
	for _, sh := range short {
		log.Printf("fulfillment: order %s product %s short: required=%d available=%d",
			p.OrderID, sh.ProductID, sh.Required, sh.Available)
	}

	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	return nil
}
