package member

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

const memberColumns = `id::text, user_id, name, email, phone, created_at`

func (r *postgresRepo) Create(ctx context.Context, m domain.LibraryMember) (*domain.LibraryMember, error) {
	return scanMember(r.pool.QueryRow(ctx, `
INSERT INTO library_members (user_id, name, email, phone)
VALUES ($1, $2, $3, $4)
RETURNING `+memberColumns, m.UserID, m.Name, strings.ToLower(m.Email), m.Phone))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.LibraryMember, error) {
	return scanMember(r.pool.QueryRow(ctx, `SELECT `+memberColumns+` FROM library_members WHERE id = $1`, id))
}

// Delete removes the member; their borrow records stay with the member cleared.
func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM library_members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanMember(row pgx.Row) (*domain.LibraryMember, error) {
	var m domain.LibraryMember
	if err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Email, &m.Phone, &m.CreatedAt); err != nil {
		return nil, db.MapError(err)
	}
	return &m, nil
}
