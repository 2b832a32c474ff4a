package member

import (
	"context"

	"storelib/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, m domain.LibraryMember) (*domain.LibraryMember, error)
	GetByID(ctx context.Context, id string) (*domain.LibraryMember, error)
	Delete(ctx context.Context, id string) error
}
