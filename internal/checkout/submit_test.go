package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/velvetshop/storefront/internal/orders"
)

type fakeCarts struct {
	items []orders.Item
	err   error
}

func (f *fakeCarts) Get(context.Context, string) ([]orders.Item, error) {
	return f.items, f.err
}

type fakeDetails struct {
	d   Details
	err error
}

func (f *fakeDetails) Get(context.Context, string) (Details, error) {
	return f.d, f.err
}

type fakeOrders struct {
	created []*orders.Order
	err     error
}

func (f *fakeOrders) CreateOrder(_ context.Context, o *orders.Order) error {
	if f.err != nil {
		return f.err
	}
	cp := *o
	f.created = append(f.created, &cp)
	return nil
}

type fakeLock struct {
	deny     bool
	acquired int
	released int
}

func (f *fakeLock) Acquire(context.Context, string) (bool, error) {
	f.acquired++
	return !f.deny, nil
}

func (f *fakeLock) Release(context.Context, string) error {
	f.released++
	return nil
}

type fakePublisher struct {
	values [][]byte
}

func (f *fakePublisher) Publish(_, value []byte, _ ...kafkago.Header) {
	f.values = append(f.values, value)
}

func testSubmitService(carts *fakeCarts, details *fakeDetails, repo *fakeOrders, lock *fakeLock, pub *fakePublisher) *Service {
	s := NewService(carts, details, repo, lock, pub, "storefront-test")
	n := 0
	s.NewID = func() string { n++; return "VS-TEST-00000" + string(rune('0'+n)) }
	s.Now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func oneItemCart() *fakeCarts {
	return &fakeCarts{items: []orders.Item{{ProductID: "p1", Variant: "red", Qty: 2, PriceCents: 1000}}}
}

func TestSubmitHappyPath(t *testing.T) {
	carts := oneItemCart()
	repo := &fakeOrders{}
	lock := &fakeLock{}
	pub := &fakePublisher{}
	svc := testSubmitService(carts, &fakeDetails{d: filledDetails()}, repo, lock, pub)

	order, err := svc.Submit(context.Background(), "s1", "trace-1")
	if err != nil {
		t.Fatal(err)
	}
	if order.OrderID != "VS-TEST-000001" {
		t.Errorf("order id = %q", order.OrderID)
	}
	if len(repo.created) != 1 {
		t.Fatalf("persistence invoked %d times, want exactly once", len(repo.created))
	}

	got := repo.created[0]
	if got.TotalCents != 2000 {
		t.Errorf("subtotal = %d cents, want 2000", got.TotalCents)
	}
	if len(got.Items) != 1 || got.Items[0].ProductID != "p1" || got.Items[0].Variant != "red" || got.Items[0].Qty != 2 {
		t.Errorf("payload items = %v, want the full cart snapshot", got.Items)
	}
	if got.Firstname != "Ada" || got.PaymentType != "Cash on Delivery" {
		t.Errorf("checkout fields not copied: %+v", got)
	}
	if got.Status != orders.StatusPending || got.PaymentStatus != orders.StatusPending {
		t.Errorf("new order must start pending, got %q/%q", got.Status, got.PaymentStatus)
	}

	if lock.acquired != 1 || lock.released != 1 {
		t.Errorf("lock acquired=%d released=%d, want 1/1", lock.acquired, lock.released)
	}

	if len(pub.values) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.values))
	}
	var env orders.Envelope
	if err := json.Unmarshal(pub.values[0], &env); err != nil {
		t.Fatal(err)
	}
	if env.EventType != orders.EventOrderPlaced || env.CorrelationID != order.OrderID {
		t.Errorf("envelope = %+v", env)
	}
	if env.TraceID != "trace-1" {
		t.Errorf("trace id = %q", env.TraceID)
	}
}

func TestSubmitIncompleteDetails(t *testing.T) {
	fields := []func(*Details){
		func(d *Details) { d.Firstname = "" },
		func(d *Details) { d.Lastname = "" },
		func(d *Details) { d.Address = "" },
		func(d *Details) { d.City = "" },
		func(d *Details) { d.Email = "" },
		func(d *Details) { d.PaymentType = "" },
		func(d *Details) { d.Phone = "" },
	}
	for _, mutate := range fields {
		d := filledDetails()
		mutate(&d)

		repo := &fakeOrders{}
		lock := &fakeLock{}
		svc := testSubmitService(oneItemCart(), &fakeDetails{d: d}, repo, lock, &fakePublisher{})

		_, err := svc.Submit(context.Background(), "s1", "")
		if !errors.Is(err, ErrIncompleteDetails) {
			t.Fatalf("want ErrIncompleteDetails, got %v", err)
		}
		if len(repo.created) != 0 {
			t.Fatal("order creation invoked despite missing details")
		}
		if lock.acquired != 0 {
			t.Fatal("lock taken before precondition checks")
		}
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	repo := &fakeOrders{}
	svc := testSubmitService(&fakeCarts{}, &fakeDetails{d: filledDetails()}, repo, &fakeLock{}, &fakePublisher{})

	_, err := svc.Submit(context.Background(), "s1", "")
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("order creation invoked despite empty cart")
	}
}

func TestSubmitInFlight(t *testing.T) {
	repo := &fakeOrders{}
	lock := &fakeLock{deny: true}
	svc := testSubmitService(oneItemCart(), &fakeDetails{d: filledDetails()}, repo, lock, &fakePublisher{})

	_, err := svc.Submit(context.Background(), "s1", "")
	if !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("want ErrSubmitInFlight, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("order creation invoked while locked")
	}
}

func TestSubmitPersistenceFailure(t *testing.T) {
	carts := oneItemCart()
	repo := &fakeOrders{err: errors.New("backend rejected")}
	lock := &fakeLock{}
	pub := &fakePublisher{}
	svc := testSubmitService(carts, &fakeDetails{d: filledDetails()}, repo, lock, pub)

	_, err := svc.Submit(context.Background(), "s1", "")
	if err == nil {
		t.Fatal("want error")
	}
	if len(pub.values) != 0 {
		t.Error("event published for a failed order")
	}
	if lock.released != 1 {
		t.Errorf("lock released %d times, want 1 so the user can retry", lock.released)
	}
	// the cart snapshot is untouched for the retry
	if len(carts.items) != 1 || carts.items[0].ProductID != "p1" {
		t.Errorf("cart changed on failure: %v", carts.items)
	}
}

func TestSubmitGeneratesFreshID(t *testing.T) {
	repo := &fakeOrders{}
	svc := testSubmitService(oneItemCart(), &fakeDetails{d: filledDetails()}, repo, &fakeLock{}, &fakePublisher{})

	o1, err := svc.Submit(context.Background(), "s1", "")
	if err != nil {
		t.Fatal(err)
	}
	o2, err := svc.Submit(context.Background(), "s1", "")
	if err != nil {
		t.Fatal(err)
	}
	if o1.OrderID == o2.OrderID {
		t.Errorf("both submissions got %q", o1.OrderID)
	}
}
