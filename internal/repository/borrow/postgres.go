package borrow

import (
	"context"
	"errors"
	"time"

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

const recordColumns = `id::text, member_id::text, book_id::text, borrow_date, return_date, is_returned`

func (r *postgresRepo) Create(ctx context.Context, memberID, bookID string, borrowedAt time.Time) (*domain.BorrowRecord, error) {
	return scanRecord(r.pool.QueryRow(ctx, `
INSERT INTO borrow_records (member_id, book_id, borrow_date)
VALUES ($1, $2, $3)
RETURNING `+recordColumns, memberID, bookID, borrowedAt))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.BorrowRecord, error) {
	return scanRecord(r.pool.QueryRow(ctx, `SELECT `+recordColumns+` FROM borrow_records WHERE id = $1`, id))
}

func (r *postgresRepo) ListByMember(ctx context.Context, memberID string) ([]domain.BorrowRecord, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+recordColumns+`
FROM borrow_records
WHERE member_id = $1
ORDER BY borrow_date DESC
`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BorrowRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// MarkReturned sets the return date on a record that is still out. A record that is
// already returned yields ErrConflict.
func (r *postgresRepo) MarkReturned(ctx context.Context, id string, returnedAt time.Time) (*domain.BorrowRecord, error) {
	rec, err := scanRecord(r.pool.QueryRow(ctx, `
UPDATE borrow_records
SET return_date = $2, is_returned = true
WHERE id = $1 AND NOT is_returned
RETURNING `+recordColumns, id, returnedAt))
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, domain.ErrConflict
}

func scanRecord(row pgx.Row) (*domain.BorrowRecord, error) {
	var rec domain.BorrowRecord
	if err := row.Scan(&rec.ID, &rec.MemberID, &rec.BookID, &rec.BorrowDate, &rec.ReturnDate, &rec.IsReturned); err != nil {
		return nil, db.MapError(err)
	}
	return &rec, nil
}
