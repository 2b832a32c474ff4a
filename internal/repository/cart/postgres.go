package cart

import (
	"context"
	"errors"

	"storelib/internal/db"
	"storelib/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const cartColumns = `id::text, customer_id::text, total_price_cents, total_taxes_cents, shipping_costs_cents, created_at`

func (r *postgresRepo) Create(ctx context.Context, customerID string) (*domain.Cart, error) {
	const q = `
INSERT INTO carts (customer_id)
VALUES ($1)
RETURNING ` + cartColumns
	var cart domain.Cart
	if err := scanCart(r.pool.QueryRow(ctx, q, customerID), &cart); err != nil {
		return nil, db.MapError(err)
	}
	return &cart, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Cart, error) {
	const cartQuery = `SELECT ` + cartColumns + ` FROM carts WHERE id = $1`
	var cart domain.Cart
	if err := scanCart(r.pool.QueryRow(ctx, cartQuery, id), &cart); err != nil {
		return nil, db.MapError(err)
	}

	const itemsQuery = `
SELECT ci.id::text, ci.cart_id::text, ci.product_id::text, ci.quantity, ci.added_at,
       p.id::text, p.name, p.description, p.price_cents, p.category_id::text, p.image, p.created_at
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.added_at ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		var p domain.Product
		if err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.Quantity,
			&item.AddedAt,
			&p.ID,
			&p.Name,
			&p.Description,
			&p.PriceCents,
			&p.CategoryID,
			&p.Image,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		item.Product = &p
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Cart, error) {
	const q = `SELECT ` + cartColumns + ` FROM carts WHERE customer_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Cart
	for rows.Next() {
		var c domain.Cart
		if err := scanCart(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AddItem adds quantity to the cart's line for the product, creating the line if needed.
func (r *postgresRepo) AddItem(ctx context.Context, cartID, productID string, quantity int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var itemID string
	err = tx.QueryRow(ctx, `
SELECT id::text
FROM cart_items
WHERE cart_id = $1 AND product_id = $2
FOR UPDATE
`, cartID, productID).Scan(&itemID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if err == nil {
		if _, err := tx.Exec(ctx, `
UPDATE cart_items
SET quantity = quantity + $1
WHERE id = $2
`, quantity, itemID); err != nil {
			return err
		}
	} else {
		if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
`, cartID, productID, quantity); err != nil {
			return db.MapError(err)
		}
	}

	if err := refreshCartTotal(ctx, tx, cartID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ChangeItemQuantity sets the line quantity; zero removes the line.
func (r *postgresRepo) ChangeItemQuantity(ctx context.Context, cartID, itemID string, quantity int) error {
	if quantity == 0 {
		return r.RemoveItem(ctx, cartID, itemID)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
UPDATE cart_items
SET quantity = $1
WHERE id = $2 AND cart_id = $3
`, quantity, itemID, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := refreshCartTotal(ctx, tx, cartID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) RemoveItem(ctx context.Context, cartID, itemID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
DELETE FROM cart_items
WHERE id = $1 AND cart_id = $2
`, itemID, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := refreshCartTotal(ctx, tx, cartID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) SetCharges(ctx context.Context, cartID string, taxesCents, shippingCents int64) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE carts
SET total_taxes_cents = $1, shipping_costs_cents = $2
WHERE id = $3
`, taxesCents, shippingCents, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCart(row pgx.Row, cart *domain.Cart) error {
	return row.Scan(
		&cart.ID,
		&cart.CustomerID,
		&cart.TotalPriceCents,
		&cart.TotalTaxesCents,
		&cart.ShippingCostsCents,
		&cart.CreatedAt,
	)
}

// refreshCartTotal stores the sum of live product price times quantity on the cart row.
func refreshCartTotal(ctx context.Context, tx pgx.Tx, cartID string) error {
	_, err := tx.Exec(ctx, `
UPDATE carts
SET total_price_cents = COALESCE((
	SELECT SUM(p.price_cents * ci.quantity)
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id
	WHERE ci.cart_id = $1
), 0)
WHERE id = $1
`, cartID)
	return err
}
