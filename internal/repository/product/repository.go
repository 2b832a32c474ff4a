package product

import (
	"context"

	"storelib/internal/domain"
)

// ListFilter narrows product listings. Empty fields match everything.
type ListFilter struct {
	CategoryID string
}

type Repository interface {
	List(ctx context.Context, f ListFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
