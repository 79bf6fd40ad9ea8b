package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/velvetshop/storefront/internal/kafka"
	"github.com/velvetshop/storefront/internal/orders"
)

var (
	ErrIncompleteDetails = errors.New("please fill the delivery information")
	ErrEmptyCart         = errors.New("your cart is empty")
	ErrSubmitInFlight    = errors.New("an order submission is already in progress")
)

type CartReader interface {
	Get(ctx context.Context, sessionID string) ([]orders.Item, error)
}

type DetailsReader interface {
	Get(ctx context.Context, sessionID string) (Details, error)
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, o *orders.Order) error
}

type Locker interface {
	Acquire(ctx context.Context, sessionID string) (bool, error)
	Release(ctx context.Context, sessionID string) error
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Service runs the order submission flow: precondition checks, a per-session
// lock, one order id, one persistence call, one event.
type Service struct {
	Carts    CartReader
	Details  DetailsReader
	Orders   OrderCreator
	Lock     Locker
	Producer Publisher
	Service  string
	NewID    func() string
	Now      func() time.Time
}

func NewService(carts CartReader, details DetailsReader, repo OrderCreator, lock Locker, producer Publisher, service string) *Service {
	return &Service{
		Carts: carts, Details: details, Orders: repo, Lock: lock,
		Producer: producer, Service: service,
		NewID: orders.NewOrderID, Now: time.Now,
	}
}

// Submit validates the session's checkout state and places the order. The
// preconditions run in a fixed sequence before any external effect: complete
// delivery details first, then a non-empty cart. On success the caller gets
// the generated order id for the confirmation; on failure the cart and
// details are left untouched so the user may retry.
func (s *Service) Submit(ctx context.Context, sessionID, traceID string) (*orders.Order, error) {
	d, err := s.Details.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load checkout details: %w", err)
	}
	if f := d.MissingField(); f != "" {
		return nil, fmt.Errorf("%w (%s)", ErrIncompleteDetails, f)
	}

	items, err := s.Carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	ok, err := s.Lock.Acquire(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("submit lock: %w", err)
	}
	if !ok {
		return nil, ErrSubmitInFlight
	}
	defer func() {
		if err := s.Lock.Release(ctx, sessionID); err != nil {
			log.Printf("checkout: release lock %s: %v", sessionID, err)
		}
	}()

	order := &orders.Order{
		OrderID:       s.NewID(),
		Firstname:     d.Firstname,
		Lastname:      d.Lastname,
		Address:       d.Address,
		City:          d.City,
		Email:         d.Email,
		Zipcode:       d.Zipcode,
		Phone:         d.Phone,
		PaymentType:   d.PaymentType,
		Items:         items,
		TotalCents:    orders.Subtotal(items),
		Status:        orders.StatusPending,
		PaymentStatus: orders.StatusPending,
		CreatedAt:     s.Now().UTC(),
	}

	if err := s.Orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// The confirmation does not wait on the event: publish failures are
	// logged inside the producer and never undo a persisted order.
	s.publishPlaced(order, traceID)

	return order, nil
}

func (s *Service) publishPlaced(o *orders.Order, traceID string) {
	if s.Producer == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    s.Now().UTC(),
		Producer:      s.Service,
		TraceID:       traceID,
		CorrelationID: o.OrderID,
	}
	ev.Payload = kafkax.MustMarshal(orders.OrderPlacedPayload{
		OrderID:    o.OrderID,
		Firstname:  o.Firstname,
		Lastname:   o.Lastname,
		Email:      o.Email,
		Items:      o.Items,
		TotalCents: o.TotalCents,
	})
	s.Producer.Publish(orders.PartitionKey(o.OrderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
