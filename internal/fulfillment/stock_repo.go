package fulfillment

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velvetshop/storefront/internal/orders"
)

type Shortfall struct {
	ProductID string `json:"product_id"`
	Required  int    `json:"required"`
	Available int    `json:"available"`
}

type StockRepo struct{ DB *pgxpool.Pool }

// DeductAll subtracts ordered quantities from product stock, row-locking
// each product. Stock never goes negative: a short line deducts what is
// available and is reported back as a shortfall. One transaction covers the
// whole order so a re-delivered event either applies fully or not at all.
func (r *StockRepo) DeductAll(ctx context.Context, items []orders.Item) ([]Shortfall, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var short []Shortfall
	for _, it := range items {
		var stock int
		if err := tx.QueryRow(ctx, `SELECT quantity FROM products WHERE id=$1 FOR UPDATE`, it.ProductID).Scan(&stock); err != nil {
			return nil, err
		}
		deduct := it.Qty
		if stock < it.Qty {
			short = append(short, Shortfall{ProductID: it.ProductID, Required: it.Qty, Available: stock})
			deduct = stock
		}
		if deduct == 0 {
			continue
		}
		if _, err := tx.Exec(ctx, `UPDATE products SET quantity = quantity - $2, updated_at=now() WHERE id=$1`,
			it.ProductID, deduct); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return short, nil
}
