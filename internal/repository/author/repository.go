package author

import (
	"context"

	"storelib/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, a domain.Author) (*domain.Author, error)
	GetByID(ctx context.Context, id string) (*domain.Author, error)
	GetByEmail(ctx context.Context, email string) (*domain.Author, error)
	Delete(ctx context.Context, id string) error
}
