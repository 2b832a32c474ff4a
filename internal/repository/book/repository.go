package book

import (
	"context"

	"storelib/internal/domain"
)

// ListFilter narrows book listings. Empty fields match everything.
type ListFilter struct {
	AuthorID string
}

type Repository interface {
	Create(ctx context.Context, b domain.Book) (*domain.Book, error)
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context, f ListFilter) ([]domain.Book, error)
	Delete(ctx context.Context, id string) error
	AddReview(ctx context.Context, rv domain.Review) (*domain.Review, error)
	ListReviews(ctx context.Context, bookID string) ([]domain.Review, error)
}
