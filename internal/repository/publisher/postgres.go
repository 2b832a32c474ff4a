package publisher

import (
	"context"

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

func (r *postgresRepo) Create(ctx context.Context, p domain.Publisher) (*domain.Publisher, error) {
	return scanPublisher(r.pool.QueryRow(ctx, `
INSERT INTO publishers (name, website)
VALUES ($1, $2)
RETURNING id::text, name, website, created_at
`, p.Name, p.Website))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Publisher, error) {
	return scanPublisher(r.pool.QueryRow(ctx, `SELECT id::text, name, website, created_at FROM publishers WHERE id = $1`, id))
}

func (r *postgresRepo) GetByName(ctx context.Context, name string) (*domain.Publisher, error) {
	return scanPublisher(r.pool.QueryRow(ctx, `
SELECT id::text, name, website, created_at
FROM publishers
WHERE lower(name) = lower($1)
ORDER BY created_at ASC
LIMIT 1
`, name))
}

func scanPublisher(row pgx.Row) (*domain.Publisher, error) {
	var p domain.Publisher
	if err := row.Scan(&p.ID, &p.Name, &p.Website, &p.CreatedAt); err != nil {
		return nil, db.MapError(err)
	}
	return &p, nil
}
