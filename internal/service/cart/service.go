package cart

import (
	"context"
	"errors"
	"strings"

	"storelib/internal/domain"
)

type Service struct {
	repo        cartRepo
	productRepo productRepo
}

type cartRepo interface {
	Create(ctx context.Context, customerID string) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID string, quantity int) error
	ChangeItemQuantity(ctx context.Context, cartID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, cartID, itemID string) error
	SetCharges(ctx context.Context, cartID string, taxesCents, shippingCents int64) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartRepo, productRepo productRepo) *Service {
	return &Service{repo: repo, productRepo: productRepo}
}

type CreateInput struct {
	CustomerID string `json:"customerId"`
}

type UpdateInput struct {
	Actions []UpdateAction `json:"actions"`
}

// UpdateAction is one cart mutation. Fields not used by the action are ignored.
type UpdateAction struct {
	Action             string `json:"action"`
	ProductID          string `json:"productId,omitempty"`
	ItemID             string `json:"itemId,omitempty"`
	Quantity           int    `json:"quantity,omitempty"`
	TotalTaxesCents    int64  `json:"totalTaxesCents,omitempty"`
	ShippingCostsCents int64  `json:"shippingCostsCents,omitempty"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Cart, error) {
	customerID := strings.TrimSpace(in.CustomerID)
	if customerID == "" {
		return nil, domain.Invalid("customerId required")
	}
	return s.repo.Create(ctx, customerID)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Cart, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListForCustomer(ctx context.Context, customerID string) ([]domain.Cart, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// Summary loads the cart with its items and computes totals from current product prices.
func (s *Service) Summary(ctx context.Context, id string) (*domain.CartSummary, error) {
	cart, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	summary, err := cart.Summary()
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Update applies the actions in order and returns the reloaded cart.
// Actions applied before a failing one stay applied.
func (s *Service) Update(ctx context.Context, cartID string, in UpdateInput) (*domain.Cart, error) {
	if len(in.Actions) == 0 {
		return nil, domain.Invalid("actions required")
	}
	if _, err := s.repo.GetByID(ctx, cartID); err != nil {
		return nil, err
	}

	for _, action := range in.Actions {
		if err := s.apply(ctx, cartID, action); err != nil {
			return nil, err
		}
	}

	return s.repo.GetByID(ctx, cartID)
}

func (s *Service) apply(ctx context.Context, cartID string, action UpdateAction) error {
	switch strings.ToLower(strings.TrimSpace(action.Action)) {
	case "additem":
		return s.AddItem(ctx, cartID, action.ProductID, action.Quantity)
	case "changeitemquantity":
		return s.ChangeQuantity(ctx, cartID, action.ItemID, action.Quantity)
	case "removeitem":
		return s.RemoveItem(ctx, cartID, action.ItemID)
	case "setcharges":
		return s.SetCharges(ctx, cartID, action.TotalTaxesCents, action.ShippingCostsCents)
	default:
		return domain.Invalid("unsupported action %q", action.Action)
	}
}

func (s *Service) AddItem(ctx context.Context, cartID, productID string, quantity int) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return domain.Invalid("productId required")
	}
	if quantity <= 0 {
		return domain.Invalid("quantity must be positive")
	}
	if s.productRepo == nil {
		return errors.New("product repository unavailable")
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invalid("product %s not found", productID)
		}
		return err
	}
	return s.repo.AddItem(ctx, cartID, productID, quantity)
}

// ChangeQuantity sets an item's quantity. Zero removes the item.
func (s *Service) ChangeQuantity(ctx context.Context, cartID, itemID string, quantity int) error {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return domain.Invalid("itemId required")
	}
	if quantity < 0 {
		return domain.Invalid("quantity must not be negative")
	}
	return s.repo.ChangeItemQuantity(ctx, cartID, itemID, quantity)
}

func (s *Service) RemoveItem(ctx context.Context, cartID, itemID string) error {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return domain.Invalid("itemId required")
	}
	return s.repo.RemoveItem(ctx, cartID, itemID)
}

func (s *Service) SetCharges(ctx context.Context, cartID string, taxesCents, shippingCents int64) error {
	if taxesCents < 0 || shippingCents < 0 {
		return domain.Invalid("taxes and shipping must not be negative")
	}
	return s.repo.SetCharges(ctx, cartID, taxesCents, shippingCents)
}
