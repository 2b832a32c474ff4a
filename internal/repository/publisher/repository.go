package publisher

import (
	"context"

	"storelib/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, p domain.Publisher) (*domain.Publisher, error)
	GetByID(ctx context.Context, id string) (*domain.Publisher, error)
	GetByName(ctx context.Context, name string) (*domain.Publisher, error)
}
