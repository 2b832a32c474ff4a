package book

import (
	"context"
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
	bookColumns   = `id::text, title, price_cents, cover_image, author_id::text, publisher_id::text, created_at`
	reviewColumns = `id::text, book_id::text, reviewer, content, rating, created_at`
)

func (r *postgresRepo) Create(ctx context.Context, b domain.Book) (*domain.Book, error) {
	var out domain.Book
	err := scanBook(r.pool.QueryRow(ctx, `
INSERT INTO books (title, price_cents, cover_image, author_id, publisher_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING `+bookColumns, b.Title, b.PriceCents, b.CoverImage, b.AuthorID, b.PublisherID), &out)
	if err != nil {
		r.logger.Printf("book repo: create title=%q error=%v", b.Title, err)
		return nil, db.MapError(err)
	}
	r.logger.Printf("book repo: created id=%s author_id=%s", out.ID, out.AuthorID)
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	var out domain.Book
	if err := scanBook(r.pool.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id), &out); err != nil {
		return nil, db.MapError(err)
	}
	return &out, nil
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]domain.Book, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+bookColumns+`
FROM books
WHERE ($1 = '' OR author_id = NULLIF($1, '')::uuid)
ORDER BY title ASC
`, f.AuthorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Delete removes the book and its reviews; borrow records keep existing with no book.
func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("book repo: deleted id=%s", id)
	return nil
}

func (r *postgresRepo) AddReview(ctx context.Context, rv domain.Review) (*domain.Review, error) {
	var out domain.Review
	err := scanReview(r.pool.QueryRow(ctx, `
INSERT INTO reviews (book_id, reviewer, content, rating)
VALUES ($1, $2, $3, $4)
RETURNING `+reviewColumns, rv.BookID, rv.Reviewer, rv.Content, rv.Rating), &out)
	if err != nil {
		return nil, db.MapError(err)
	}
	return &out, nil
}

func (r *postgresRepo) ListReviews(ctx context.Context, bookID string) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+reviewColumns+`
FROM reviews
WHERE book_id = $1
ORDER BY created_at DESC
`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := scanReview(rows, &rv); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func scanBook(row pgx.Row, b *domain.Book) error {
	return row.Scan(&b.ID, &b.Title, &b.PriceCents, &b.CoverImage, &b.AuthorID, &b.PublisherID, &b.CreatedAt)
}

func scanReview(row pgx.Row, rv *domain.Review) error {
	return row.Scan(&rv.ID, &rv.BookID, &rv.Reviewer, &rv.Content, &rv.Rating, &rv.CreatedAt)
}
