package order

import (
	"context"
	"errors"
	"io"
	"log"

	"storelib/internal/db"
	"storelib/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const (
	orderColumns    = `id::text, customer_id::text, ordered_at, complete, transaction_id`
	historyColumns  = `id::text, customer_id::text, order_id::text, status, added_at`
	checkoutColumns = `id::text, customer_id::text, order_id::text, phone, total_amount_cents, address, city, state, zipcode, added_at`
)

// Place writes the order, its first history entry and the checkout snapshot in one transaction.
func (r *postgresRepo) Place(ctx context.Context, in PlaceInput) (*Placed, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var out Placed
	err = scanOrder(tx.QueryRow(ctx, `
INSERT INTO orders (customer_id, transaction_id)
VALUES ($1, $2)
RETURNING `+orderColumns, in.CustomerID, in.TransactionID), &out.Order)
	if err != nil {
		r.logger.Printf("order repo: insert order customer_id=%s error=%v", in.CustomerID, err)
		return nil, db.MapError(err)
	}

	err = scanHistory(tx.QueryRow(ctx, `
INSERT INTO order_history (customer_id, order_id, status)
VALUES ($1, $2, $3)
RETURNING `+historyColumns, in.CustomerID, out.Order.ID, in.Status), &out.History)
	if err != nil {
		return nil, db.MapError(err)
	}

	err = scanCheckout(tx.QueryRow(ctx, `
INSERT INTO checkout_details (customer_id, order_id, phone, total_amount_cents, address, city, state, zipcode)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING `+checkoutColumns,
		in.CustomerID, out.Order.ID, in.Phone, in.TotalAmountCents, in.Address, in.City, in.State, in.Zipcode,
	), &out.Checkout)
	if err != nil {
		return nil, db.MapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: placed id=%s customer_id=%s total_cents=%d", out.Order.ID, in.CustomerID, in.TotalAmountCents)
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	if err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id), &o); err != nil {
		return nil, db.MapError(err)
	}
	return &o, nil
}

func (r *postgresRepo) AppendHistory(ctx context.Context, orderID, customerID, status string) (*domain.OrderHistory, error) {
	var h domain.OrderHistory
	err := scanHistory(r.pool.QueryRow(ctx, `
INSERT INTO order_history (customer_id, order_id, status)
VALUES ($1, $2, $3)
RETURNING `+historyColumns, customerID, orderID, status), &h)
	if err != nil {
		return nil, db.MapError(err)
	}
	r.logger.Printf("order repo: history order_id=%s status=%s", orderID, status)
	return &h, nil
}

func (r *postgresRepo) ListHistory(ctx context.Context, orderID string) ([]domain.OrderHistory, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+historyColumns+`
FROM order_history
WHERE order_id = $1
ORDER BY added_at ASC, id ASC
`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OrderHistory
	for rows.Next() {
		var h domain.OrderHistory
		if err := scanHistory(rows, &h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Complete flips the order to complete and appends a completed history entry in one
// transaction. An order that is already complete yields ErrConflict.
func (r *postgresRepo) Complete(ctx context.Context, orderID string) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var o domain.Order
	err = scanOrder(tx.QueryRow(ctx, `
UPDATE orders
SET complete = true
WHERE id = $1 AND NOT complete
RETURNING `+orderColumns, orderID), &o)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, orderID).Scan(&exists); err != nil {
			return nil, db.MapError(err)
		}
		if !exists {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrConflict
	}
	if err != nil {
		r.logger.Printf("order repo: complete id=%s error=%v", orderID, err)
		return nil, db.MapError(err)
	}

	if o.CustomerID != nil {
		_, err = tx.Exec(ctx, `
INSERT INTO order_history (customer_id, order_id, status)
VALUES ($1, $2, $3)
`, *o.CustomerID, o.ID, domain.OrderStatusCompleted)
		if err != nil {
			r.logger.Printf("order repo: complete history id=%s error=%v", orderID, err)
			return nil, db.MapError(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: completed id=%s", o.ID)
	return &o, nil
}

func (r *postgresRepo) GetCheckout(ctx context.Context, orderID string) (*domain.CheckoutDetail, error) {
	var c domain.CheckoutDetail
	err := scanCheckout(r.pool.QueryRow(ctx, `
SELECT `+checkoutColumns+`
FROM checkout_details
WHERE order_id = $1
ORDER BY added_at DESC
LIMIT 1
`, orderID), &c)
	if err != nil {
		return nil, db.MapError(err)
	}
	return &c, nil
}

func scanOrder(row pgx.Row, o *domain.Order) error {
	return row.Scan(&o.ID, &o.CustomerID, &o.OrderedAt, &o.Complete, &o.TransactionID)
}

func scanHistory(row pgx.Row, h *domain.OrderHistory) error {
	return row.Scan(&h.ID, &h.CustomerID, &h.OrderID, &h.Status, &h.AddedAt)
}

func scanCheckout(row pgx.Row, c *domain.CheckoutDetail) error {
	return row.Scan(&c.ID, &c.CustomerID, &c.OrderID, &c.Phone, &c.TotalAmountCents, &c.Address, &c.City, &c.State, &c.Zipcode, &c.AddedAt)
}
