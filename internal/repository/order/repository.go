package order

import (
	"context"

	"storelib/internal/domain"
)

// PlaceInput carries everything written by a checkout.
type PlaceInput struct {
	CustomerID       string
	TransactionID    string
	Status           string
	Phone            *string
	TotalAmountCents int64
	Address          string
	City             string
	State            string
	Zipcode          string
}

// Placed is the result of a checkout: the order, its first history entry and the snapshot.
type Placed struct {
	Order    domain.Order
	History  domain.OrderHistory
	Checkout domain.CheckoutDetail
}

type Repository interface {
	Place(ctx context.Context, in PlaceInput) (*Placed, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	AppendHistory(ctx context.Context, orderID, customerID, status string) (*domain.OrderHistory, error)
	ListHistory(ctx context.Context, orderID string) ([]domain.OrderHistory, error)
	Complete(ctx context.Context, orderID string) (*domain.Order, error)
	GetCheckout(ctx context.Context, orderID string) (*domain.CheckoutDetail, error)
}
