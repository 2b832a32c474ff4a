package cart

import (
	"context"

	"storelib/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, customerID string) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID string, quantity int) error
	ChangeItemQuantity(ctx context.Context, cartID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, cartID, itemID string) error
	SetCharges(ctx context.Context, cartID string, taxesCents, shippingCents int64) error
}
