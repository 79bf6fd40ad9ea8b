package fulfillment

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/velvetshop/storefront/internal/catalog"
	kafkax "github.com/velvetshop/storefront/internal/kafka"
	"github.com/velvetshop/storefront/internal/orders"
)

// Promoter flips scheduled products to active once their schedule date has
// elapsed and announces each one on product.published.
type Promoter struct {
	Catalog     *catalog.Repo
	Producer    *kafkax.Producer
	ServiceName string
	Interval    time.Duration
}

func (p *Promoter) Run(ctx context.Context) {
	if p.Interval <= 0 {
		p.Interval = time.Minute
	}
	t := time.NewTicker(p.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if err := p.tick(ctx, now); err != nil {
				log.Printf("promoter: %v", err)
			}
		}
	}
}

func (p *Promoter) tick(ctx context.Context, now time.Time) error {
	due, err := p.Catalog.PromoteDue(ctx, now)
	if err != nil {
		return err
	}
	for _, prod := range due {
		log.Printf("promoter: product %s (%s) is now live", prod.ID, prod.Name)
		ev := orders.Envelope{
			EventID:       uuid.NewString(),
			EventType:     orders.EventProductPublished,
			EventVersion:  1,
			OccurredAt:    now.UTC(),
			Producer:      p.ServiceName,
			CorrelationID: prod.ID,
		}
		ev.Payload = kafkax.MustMarshal(orders.ProductPublishedPayload{
			ProductID: prod.ID,
			Name:      prod.Name,
		})
		p.Producer.Publish(orders.PartitionKey(prod.ID), kafkax.MustMarshal(ev),
			kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventProductPublished)},
			kafkago.Header{Key: "x-event-version", Value: []byte("1")},
		)
	}
	return nil
}
