package author

import (
	"context"
	"strings"

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

func (r *postgresRepo) Create(ctx context.Context, a domain.Author) (*domain.Author, error) {
	return scanAuthor(r.pool.QueryRow(ctx, `
INSERT INTO authors (name, email)
VALUES ($1, $2)
RETURNING id::text, name, email, created_at
`, a.Name, strings.ToLower(a.Email)))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Author, error) {
	return scanAuthor(r.pool.QueryRow(ctx, `SELECT id::text, name, email, created_at FROM authors WHERE id = $1`, id))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Author, error) {
	return scanAuthor(r.pool.QueryRow(ctx, `SELECT id::text, name, email, created_at FROM authors WHERE email = lower($1)`, email))
}

// Delete removes the author together with their books and those books' reviews.
func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanAuthor(row pgx.Row) (*domain.Author, error) {
	var a domain.Author
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.CreatedAt); err != nil {
		return nil, db.MapError(err)
	}
	return &a, nil
}
