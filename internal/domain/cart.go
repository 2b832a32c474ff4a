package domain

import (
	"fmt"
	"time"
)

type Cart struct {
	ID                 string     `json:"id"`
	CustomerID         string     `json:"customerId"`
	TotalPriceCents    int64      `json:"totalPriceCents"`
	TotalTaxesCents    int64      `json:"totalTaxesCents"`
	ShippingCostsCents int64      `json:"shippingCostsCents"`
	CreatedAt          time.Time  `json:"createdAt"`
	Items              []CartItem `json:"items,omitempty"`
}

type CartItem struct {
	ID        string    `json:"id"`
	CartID    string    `json:"cartId"`
	ProductID string    `json:"productId"`
	Product   *Product  `json:"product,omitempty"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// CartSummary is the derived view of a cart's money fields.
type CartSummary struct {
	TotalPriceCents    int64 `json:"totalPriceCents"`
	TotalTaxesCents    int64 `json:"totalTaxesCents"`
	ShippingCostsCents int64 `json:"shippingCostsCents"`
	GrandTotalCents    int64 `json:"grandTotalCents"`
}

// Total returns product price times quantity. The product must be loaded.
func (i CartItem) Total() (int64, error) {
	if i.Product == nil {
		return 0, fmt.Errorf("cart item %s product %s: %w", i.ID, i.ProductID, ErrMissingRelation)
	}
	return i.Product.PriceCents * int64(i.Quantity), nil
}

// Summarize sums the line totals of items and adds the cart's taxes and shipping.
// Quantities are taken as stored; negative values are not rejected here.
func Summarize(cart Cart, items []CartItem) (CartSummary, error) {
	var itemTotal int64
	for _, item := range items {
		total, err := item.Total()
		if err != nil {
			return CartSummary{}, err
		}
		itemTotal += total
	}
	return CartSummary{
		TotalPriceCents:    itemTotal,
		TotalTaxesCents:    cart.TotalTaxesCents,
		ShippingCostsCents: cart.ShippingCostsCents,
		GrandTotalCents:    itemTotal + cart.TotalTaxesCents + cart.ShippingCostsCents,
	}, nil
}

// Summary is Summarize over the cart's own loaded items.
func (c Cart) Summary() (CartSummary, error) {
	return Summarize(c, c.Items)
}
