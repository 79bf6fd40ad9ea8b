package orders

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("order not found")

type Repo struct{ DB *pgxpool.Pool }

// CreateOrder persists the order and its items in one transaction. The
// generated order id is the primary key; the caller writes it exactly once.
func (r *Repo) CreateOrder(ctx context.Context, o *Order) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders(order_id, firstname, lastname, address, city, email,
		                   zipcode, phone, payment_type, total_cents, status, payment_status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`, o.OrderID, o.Firstname, o.Lastname, o.Address, o.City, o.Email,
		o.Zipcode, o.Phone, o.PaymentType, o.TotalCents, string(o.Status), string(o.PaymentStatus))
	if err != nil {
		return err
	}

	for _, it := range o.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, variant, qty, price_cents)
			VALUES ($1,$2,$3,$4,$5)`,
			o.OrderID, it.ProductID, it.Variant, it.Qty, it.PriceCents,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *Repo) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	var status, payStatus string
	err := r.DB.QueryRow(ctx, `
		SELECT order_id, firstname, lastname, address, city, email, zipcode, phone,
		       payment_type, total_cents, status, payment_status, created_at
		FROM orders WHERE order_id=$1
	`, orderID).Scan(&o.OrderID, &o.Firstname, &o.Lastname, &o.Address, &o.City, &o.Email,
		&o.Zipcode, &o.Phone, &o.PaymentType, &o.TotalCents, &status, &payStatus, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.Status = Status(status)
	o.PaymentStatus = Status(payStatus)

	rows, err := r.DB.Query(ctx, `
		SELECT product_id, variant, qty, price_cents
		FROM order_items WHERE order_id=$1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Variant, &it.Qty, &it.PriceCents); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	return &o, rows.Err()
}

// OrderRow is one line of the back-office orders table.
type OrderRow struct {
	OrderID       string    `json:"order_id"`
	Firstname     string    `json:"firstname"`
	Lastname      string    `json:"lastname"`
	NoOfProducts  int       `json:"no_of_products"`
	Status        Status    `json:"status"`
	PaymentStatus Status    `json:"payment_status"`
	TotalCents    int       `json:"total_cents"`
	CreatedAt     time.Time `json:"created_at"`
}

func (r *Repo) ListOrders(ctx context.Context) ([]OrderRow, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT o.order_id, o.firstname, o.lastname, COUNT(i.product_id),
		       o.status, o.payment_status, o.total_cents, o.created_at
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.order_id
		GROUP BY o.order_id
		ORDER BY o.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderRow
	for rows.Next() {
		var row OrderRow
		var status, payStatus string
		if err := rows.Scan(&row.OrderID, &row.Firstname, &row.Lastname, &row.NoOfProducts,
			&status, &payStatus, &row.TotalCents, &row.CreatedAt); err != nil {
			return nil, err
		}
		row.Status = Status(status)
		row.PaymentStatus = Status(payStatus)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	ct, err := r.DB.Exec(ctx, `UPDATE orders SET status=$2 WHERE order_id=$1`, orderID, string(status))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
