package borrow

import (
	"context"
	"time"

	"storelib/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, memberID, bookID string, borrowedAt time.Time) (*domain.BorrowRecord, error)
	GetByID(ctx context.Context, id string) (*domain.BorrowRecord, error)
	ListByMember(ctx context.Context, memberID string) ([]domain.BorrowRecord, error)
	MarkReturned(ctx context.Context, id string, returnedAt time.Time) (*domain.BorrowRecord, error)
}
