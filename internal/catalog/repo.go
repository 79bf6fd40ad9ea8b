package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) CreateProduct(ctx context.Context, p *Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO products(id, name, description, category, category_slug, gender,
		                     quantity, sku, price_cents, delivery_info, color,
		                     variants, images, status, schedule_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`, p.ID, p.Name, p.Description, p.Category, p.CategorySlug, p.Gender,
		p.Quantity, p.SKU, p.PriceCents, p.DeliveryInfo, p.Color,
		p.Variants, p.Images, string(p.Status), p.ScheduleDate)
	return err
}

func (r *Repo) UpdateProduct(ctx context.Context, p *Product) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE products
		SET name=$2, description=$3, category=$4, category_slug=$5, gender=$6,
		    quantity=$7, sku=$8, price_cents=$9, delivery_info=$10, color=$11,
		    variants=$12, images=$13, status=$14, schedule_date=$15, updated_at=now()
		WHERE id=$1
	`, p.ID, p.Name, p.Description, p.Category, p.CategorySlug, p.Gender,
		p.Quantity, p.SKU, p.PriceCents, p.DeliveryInfo, p.Color,
		p.Variants, p.Images, string(p.Status), p.ScheduleDate)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const productCols = `id, name, description, category, category_slug, gender,
       quantity, sku, price_cents, delivery_info, color,
       variants, images, status, schedule_date, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	var status string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.CategorySlug, &p.Gender,
		&p.Quantity, &p.SKU, &p.PriceCents, &p.DeliveryInfo, &p.Color,
		&p.Variants, &p.Images, &status, &p.ScheduleDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Status = Status(status)
	return &p, nil
}

func (r *Repo) GetProduct(ctx context.Context, id string) (*Product, error) {
	p, err := scanProduct(r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// ListProducts returns the back-office view when all is true, otherwise only
// purchasable (active) products for the storefront grid.
func (r *Repo) ListProducts(ctx context.Context, all bool) ([]Product, error) {
	q := `SELECT ` + productCols + ` FROM products WHERE status='active' ORDER BY created_at DESC`
	if all {
		q = `SELECT ` + productCols + ` FROM products ORDER BY created_at DESC`
	}
	rows, err := r.DB.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *Repo) CategorySlug(ctx context.Context, name string) (string, error) {
	var slug string
	err := r.DB.QueryRow(ctx, `SELECT slug FROM categories WHERE name=$1`, name).Scan(&slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return slug, err
}

func (r *Repo) CreateCategory(ctx context.Context, name string) (*Category, error) {
	c := &Category{ID: uuid.NewString(), Name: name, Slug: Slugify(name)}
	_, err := r.DB.Exec(ctx, `INSERT INTO categories(id, name, slug) VALUES ($1,$2,$3)`,
		c.ID, c.Name, c.Slug)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name, slug FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// PromoteDue flips scheduled products whose schedule date has elapsed to
// active and returns them, so the caller can announce each one.
func (r *Repo) PromoteDue(ctx context.Context, now time.Time) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `
		UPDATE products
		SET status='active', schedule_date=NULL, updated_at=now()
		WHERE status='scheduled' AND schedule_date <= $1
		RETURNING id, name, schedule_date
	`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.ScheduleDate); err != nil {
			return nil, err
		}
		p.Status = StatusActive
		out = append(out, p)
	}
	return out, rows.Err()
}
