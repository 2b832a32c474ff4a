package product

import (
	"context"
	"fmt"
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

const productColumns = `id::text, name, description, price_cents, category_id::text, image, created_at`

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE ($1 = '' OR category_id = NULLIF($1, '')::uuid)
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, f.CategoryID)
	if err != nil {
		r.logger.Printf("product repo: list category_id=%s error=%v", f.CategoryID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.CategoryID, &p.Image, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows category_id=%s error=%v", f.CategoryID, err)
		return nil, err
	}
	r.logger.Printf("product repo: list category_id=%s count=%d", f.CategoryID, len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.CategoryID, &p.Image, &p.CreatedAt)
	if err != nil {
		mapped := db.MapError(err)
		r.logger.Printf("product repo: get id=%s error=%v", id, mapped)
		return nil, mapped
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, price_cents, category_id, image)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, created_at
`
	res := p
	err := r.pool.QueryRow(ctx, q, p.Name, p.Description, p.PriceCents, p.CategoryID, p.Image).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: create name=%s error=%v", p.Name, err)
		return nil, db.MapError(err)
	}
	r.logger.Printf("product repo: created id=%s name=%s", res.ID, res.Name)
	return &res, nil
}

// Upsert inserts the product or, when its id already exists, overwrites the stored fields.
func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, description, price_cents, category_id, image)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    category_id = EXCLUDED.category_id,
    image = EXCLUDED.image
RETURNING id::text, created_at
`
	res := p
	err := r.pool.QueryRow(ctx, q, p.ID, p.Name, p.Description, p.PriceCents, p.CategoryID, p.Image).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert name=%s error=%v", p.Name, err)
		return nil, db.MapError(err)
	}
	if p.ID != "" && res.ID != p.ID {
		return nil, fmt.Errorf("product repo: id mismatch name=%s existing_id=%s import_id=%s", p.Name, res.ID, p.ID)
	}
	r.logger.Printf("product repo: upserted id=%s name=%s", res.ID, res.Name)
	return &res, nil
}

// Delete removes the product and, through the foreign key, every cart item holding it.
// Carts that held the product get their stored total recomputed in the same transaction.
func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `SELECT DISTINCT cart_id::text FROM cart_items WHERE product_id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return db.MapError(err)
	}
	cartIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return err
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return db.MapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if len(cartIDs) > 0 {
		_, err = tx.Exec(ctx, `
UPDATE carts c
SET total_price_cents = COALESCE((
	SELECT SUM(p.price_cents * ci.quantity)
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id
	WHERE ci.cart_id = c.id
), 0)
WHERE c.id = ANY($1::text[]::uuid[])
`, cartIDs)
		if err != nil {
			r.logger.Printf("product repo: refresh carts id=%s error=%v", id, err)
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Printf("product repo: deleted id=%s carts_refreshed=%d", id, len(cartIDs))
	return nil
}
