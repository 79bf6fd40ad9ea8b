package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

var (
	ErrSchedulePending = errors.New("clear the schedule date before saving a draft")
	ErrNotDraft        = errors.New("only a draft can go live")
	ErrNotFound        = errors.New("product not found")
)

// Store is the persistence surface the publication flow needs.
type Store interface {
	CreateProduct(ctx context.Context, p *Product) error
	UpdateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id string) (*Product, error)
	CategorySlug(ctx context.Context, name string) (string, error)
}

// Service owns the product publication lifecycle: draft, scheduled and live
// states, with the validation gate in front of every persisted transition.
type Service struct {
	Store Store
	Now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{Store: store, Now: time.Now}
}

// Create persists a new product from a submitted draft. A schedule date
// strictly in the future makes it scheduled, otherwise it goes live at once.
func (s *Service) Create(ctx context.Context, d *Draft) (*Product, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	status, schedule := ResolveSubmit(d.ScheduleDate, s.Now())
	p := s.assemble(ctx, d)
	p.Status = status
	p.ScheduleDate = schedule
	if err := s.Store.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// CreateDraft saves a new product as a draft. The create form disables the
// draft action while a future schedule date is selected, so a request that
// still carries one is refused.
func (s *Service) CreateDraft(ctx context.Context, d *Draft) (*Product, error) {
	if d.ScheduleDate != nil && d.ScheduleDate.After(s.Now()) {
		return nil, ErrSchedulePending
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	p := s.assemble(ctx, d)
	p.Status = StatusDraft
	p.ScheduleDate = nil
	if err := s.Store.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("create draft: %w", err)
	}
	return p, nil
}

// Edit persists changes to an existing product. The edit form has no
// schedule picker: a product persisted as scheduled with a still-future date
// re-submits as scheduled, everything else submits as active.
func (s *Service) Edit(ctx context.Context, id string, d *Draft) (*Product, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.Store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	status, schedule := ResolveEditSubmit(existing.Status, existing.ScheduleDate, s.Now())
	p := s.assemble(ctx, d)
	p.ID = existing.ID
	p.Status = status
	p.ScheduleDate = schedule
	if err := s.Store.UpdateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("edit product: %w", err)
	}
	return p, nil
}

// EditDraft moves an existing product back to draft, clearing any schedule.
func (s *Service) EditDraft(ctx context.Context, id string, d *Draft) (*Product, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.Store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p := s.assemble(ctx, d)
	p.ID = existing.ID
	p.Status = StatusDraft
	p.ScheduleDate = nil
	if err := s.Store.UpdateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return p, nil
}

// GoLive publishes a persisted draft immediately, without re-running the
// form submission.
func (s *Service) GoLive(ctx context.Context, id string) (*Product, error) {
	p, err := s.Store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusDraft {
		return nil, ErrNotDraft
	}
	p.Status = StatusActive
	p.ScheduleDate = nil
	if err := s.Store.UpdateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("go live: %w", err)
	}
	return p, nil
}

// assemble copies form fields into a Product and resolves the category slug
// by name. An unknown category is not fatal, the slug is just left empty.
func (s *Service) assemble(ctx context.Context, d *Draft) *Product {
	p := &Product{
		Name:         d.Name,
		Description:  d.Description,
		Category:     d.Category,
		Gender:       d.Gender,
		Quantity:     d.Quantity,
		SKU:          d.SKU,
		PriceCents:   d.PriceCents,
		DeliveryInfo: d.DeliveryInfo,
		Color:        d.Color,
		Variants:     d.Variants,
		Images:       d.Images,
	}
	if d.Category != "" {
		slug, err := s.Store.CategorySlug(ctx, d.Category)
		if err != nil {
			log.Printf("catalog: slug lookup %q: %v", d.Category, err)
		} else {
			p.CategorySlug = slug
		}
	}
	return p
}
