package checkout

import (
	"context"
	"strings"

	"storelib/internal/domain"
	orderrepo "storelib/internal/repository/order"

	"github.com/google/uuid"
)

const maxPhoneLen = 10

type Service struct {
	carts  cartRepo
	orders orderRepo
	newID  func() string
}

type cartRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
}

type orderRepo interface {
	Place(ctx context.Context, in orderrepo.PlaceInput) (*orderrepo.Placed, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	AppendHistory(ctx context.Context, orderID, customerID, status string) (*domain.OrderHistory, error)
	ListHistory(ctx context.Context, orderID string) ([]domain.OrderHistory, error)
	Complete(ctx context.Context, orderID string) (*domain.Order, error)
	GetCheckout(ctx context.Context, orderID string) (*domain.CheckoutDetail, error)
}

func New(carts cartRepo, orders orderRepo) *Service {
	return &Service{carts: carts, orders: orders, newID: uuid.NewString}
}

type Input struct {
	CartID        string  `json:"cartId"`
	TransactionID string  `json:"transactionId"`
	Phone         *string `json:"phone,omitempty"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Zipcode       string  `json:"zipcode"`
}

// Result is what a successful checkout produced.
type Result struct {
	Order    domain.Order          `json:"order"`
	History  domain.OrderHistory   `json:"history"`
	Checkout domain.CheckoutDetail `json:"checkout"`
	Summary  domain.CartSummary    `json:"summary"`
}

// Checkout turns a cart into an order. The checkout snapshot records the cart's grand total.
func (s *Service) Checkout(ctx context.Context, in Input) (*Result, error) {
	in.CartID = strings.TrimSpace(in.CartID)
	if in.CartID == "" {
		return nil, domain.Invalid("cartId required")
	}
	for _, f := range []struct{ name, value string }{
		{"address", in.Address},
		{"city", in.City},
		{"state", in.State},
		{"zipcode", in.Zipcode},
	} {
		if strings.TrimSpace(f.value) == "" {
			return nil, domain.Invalid("%s required", f.name)
		}
	}
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		if len(phone) > maxPhoneLen {
			return nil, domain.Invalid("phone longer than %d characters", maxPhoneLen)
		}
		in.Phone = &phone
	}

	cart, err := s.carts.GetByID(ctx, in.CartID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.Invalid("cart %s is empty", cart.ID)
	}
	summary, err := cart.Summary()
	if err != nil {
		return nil, err
	}

	txID := strings.TrimSpace(in.TransactionID)
	if txID == "" {
		txID = s.newID()
	}

	placed, err := s.orders.Place(ctx, orderrepo.PlaceInput{
		CustomerID:       cart.CustomerID,
		TransactionID:    txID,
		Status:           domain.OrderStatusPlaced,
		Phone:            in.Phone,
		TotalAmountCents: summary.GrandTotalCents,
		Address:          strings.TrimSpace(in.Address),
		City:             strings.TrimSpace(in.City),
		State:            strings.TrimSpace(in.State),
		Zipcode:          strings.TrimSpace(in.Zipcode),
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Order:    placed.Order,
		History:  placed.History,
		Checkout: placed.Checkout,
		Summary:  summary,
	}, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// CheckoutDetail returns the shipping snapshot captured when the order was placed.
func (s *Service) CheckoutDetail(ctx context.Context, orderID string) (*domain.CheckoutDetail, error) {
	return s.orders.GetCheckout(ctx, orderID)
}

// History returns the order's status entries, oldest first.
func (s *Service) History(ctx context.Context, orderID string) ([]domain.OrderHistory, error) {
	if _, err := s.orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.orders.ListHistory(ctx, orderID)
}

func (s *Service) AppendStatus(ctx context.Context, orderID, status string) (*domain.OrderHistory, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, domain.Invalid("status required")
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID == nil {
		return nil, domain.ErrConflict
	}
	return s.orders.AppendHistory(ctx, order.ID, *order.CustomerID, status)
}

// Complete marks the order complete and records a completed entry atomically.
// Completing twice is a conflict.
func (s *Service) Complete(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orders.Complete(ctx, orderID)
}
