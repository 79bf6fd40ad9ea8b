package catalog

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	products  map[string]*Product
	created   []*Product
	updated   []*Product
	slugs     map[string]string
	createErr error
	updateErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: map[string]*Product{},
		slugs:    map[string]string{"Shirts": "shirts"},
	}
}

func (f *fakeStore) CreateProduct(_ context.Context, p *Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	if p.ID == "" {
		p.ID = "p1"
	}
	cp := *p
	f.created = append(f.created, &cp)
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateProduct(_ context.Context, p *Product) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	cp := *p
	f.updated = append(f.updated, &cp)
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeStore) GetProduct(_ context.Context, id string) (*Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) CategorySlug(_ context.Context, name string) (string, error) {
	return f.slugs[name], nil
}

func testService(store *fakeStore, now time.Time) *Service {
	s := NewService(store)
	s.Now = func() time.Time { return now }
	return s
}

func TestCreateResolvesStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name       string
		schedule   *time.Time
		wantStatus Status
	}{
		{"no schedule goes live", nil, StatusActive},
		{"future schedule", &future, StatusScheduled},
		{"elapsed schedule goes live", &past, StatusActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			svc := testService(store, now)

			d := validDraft()
			d.ScheduleDate = tt.schedule
			p, err := svc.Create(context.Background(), d)
			if err != nil {
				t.Fatal(err)
			}
			if p.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", p.Status, tt.wantStatus)
			}
			if tt.wantStatus == StatusScheduled {
				if p.ScheduleDate == nil || !p.ScheduleDate.Equal(future) {
					t.Errorf("schedule date = %v, want %v", p.ScheduleDate, future)
				}
			} else if p.ScheduleDate != nil {
				t.Errorf("schedule date should be cleared, got %v", p.ScheduleDate)
			}
			if len(store.created) != 1 {
				t.Fatalf("created %d products, want 1", len(store.created))
			}
			if store.created[0].CategorySlug != "shirts" {
				t.Errorf("slug = %q, want resolved %q", store.created[0].CategorySlug, "shirts")
			}
		})
	}
}

func TestCreateValidationBlocksPersistence(t *testing.T) {
	store := newFakeStore()
	svc := testService(store, time.Now())

	d := validDraft()
	d.Name = "x"
	if _, err := svc.Create(context.Background(), d); err == nil {
		t.Fatal("want validation error")
	}

	d = validDraft()
	d.Images = nil
	if _, err := svc.Create(context.Background(), d); !errors.Is(err, ErrNoImages) {
		t.Fatalf("want ErrNoImages, got %v", err)
	}

	if len(store.created) != 0 {
		t.Fatalf("persistence invoked %d times despite validation failure", len(store.created))
	}
}

func TestCreateDraftRefusesPendingSchedule(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	svc := testService(store, now)

	future := now.Add(time.Hour)
	d := validDraft()
	d.ScheduleDate = &future
	if _, err := svc.CreateDraft(context.Background(), d); !errors.Is(err, ErrSchedulePending) {
		t.Fatalf("want ErrSchedulePending, got %v", err)
	}
	if len(store.created) != 0 {
		t.Fatal("draft with pending schedule was persisted")
	}

	// an elapsed date no longer blocks the draft action
	past := now.Add(-time.Hour)
	d = validDraft()
	d.ScheduleDate = &past
	p, err := svc.CreateDraft(context.Background(), d)
	if err != nil {
		t.Fatal(err)
	}
	if p.Status != StatusDraft || p.ScheduleDate != nil {
		t.Errorf("got status=%q schedule=%v, want clean draft", p.Status, p.ScheduleDate)
	}
}

func TestEditScheduledStaysScheduled(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(72 * time.Hour)
	store := newFakeStore()
	store.products["p9"] = &Product{ID: "p9", Status: StatusScheduled, ScheduleDate: &future}
	svc := testService(store, now)

	p, err := svc.Edit(context.Background(), "p9", validDraft())
	if err != nil {
		t.Fatal(err)
	}
	if p.Status != StatusScheduled {
		t.Errorf("status = %q, want scheduled", p.Status)
	}
	if p.ScheduleDate == nil || !p.ScheduleDate.Equal(future) {
		t.Errorf("schedule date = %v, want %v retained", p.ScheduleDate, future)
	}
}

func TestEditActiveSubmitsActive(t *testing.T) {
	store := newFakeStore()
	store.products["p2"] = &Product{ID: "p2", Status: StatusActive}
	svc := testService(store, time.Now())

	p, err := svc.Edit(context.Background(), "p2", validDraft())
	if err != nil {
		t.Fatal(err)
	}
	if p.Status != StatusActive || p.ScheduleDate != nil {
		t.Errorf("got status=%q schedule=%v, want active with no date", p.Status, p.ScheduleDate)
	}
}

func TestEditRoundTripKeepsVariantsAndColor(t *testing.T) {
	store := newFakeStore()
	store.products["p3"] = &Product{ID: "p3", Status: StatusActive}
	svc := testService(store, time.Now())

	d := validDraft()
	d.Variants = []string{"S", "M"}
	d.Color = "red"
	if _, err := svc.Edit(context.Background(), "p3", d); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetProduct(context.Background(), "p3")
	if err != nil {
		t.Fatal(err)
	}
	if got.Color != "red" {
		t.Errorf("color = %q, want %q", got.Color, "red")
	}
	if len(got.Variants) != 2 || got.Variants[0] != "S" || got.Variants[1] != "M" {
		t.Errorf("variants = %v, want [S M]", got.Variants)
	}
}

func TestGoLive(t *testing.T) {
	store := newFakeStore()
	store.products["d1"] = &Product{ID: "d1", Status: StatusDraft}
	store.products["a1"] = &Product{ID: "a1", Status: StatusActive}
	svc := testService(store, time.Now())

	p, err := svc.GoLive(context.Background(), "d1")
	if err != nil {
		t.Fatal(err)
	}
	if p.Status != StatusActive {
		t.Errorf("status = %q, want active", p.Status)
	}

	if _, err := svc.GoLive(context.Background(), "a1"); !errors.Is(err, ErrNotDraft) {
		t.Fatalf("want ErrNotDraft, got %v", err)
	}
	if _, err := svc.GoLive(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCreateStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("db down")
	svc := testService(store, time.Now())

	if _, err := svc.Create(context.Background(), validDraft()); err == nil {
		t.Fatal("want error from store")
	}
}
