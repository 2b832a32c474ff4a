package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(price int64, qty int) CartItem {
	return CartItem{Product: &Product{PriceCents: price}, Quantity: qty}
}

func TestCartItemTotal(t *testing.T) {
	cases := []struct {
		name  string
		price int64
		qty   int
		want  int64
	}{
		{"single", 1999, 1, 1999},
		{"several", 1299, 3, 3897},
		{"zero quantity", 1999, 0, 0},
		{"negative quantity passes through", 500, -2, -1000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := item(tc.price, tc.qty).Total()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCartItemTotal_MissingProduct(t *testing.T) {
	_, err := CartItem{ID: "line", ProductID: "gone", Quantity: 1}.Total()
	assert.ErrorIs(t, err, ErrMissingRelation)
}

func TestSummarize(t *testing.T) {
	cart := Cart{TotalTaxesCents: 250, ShippingCostsCents: 499}
	items := []CartItem{item(1999, 2), item(1299, 1), item(100, 0)}

	got, err := Summarize(cart, items)
	require.NoError(t, err)
	assert.Equal(t, CartSummary{
		TotalPriceCents:    1999*2 + 1299,
		TotalTaxesCents:    250,
		ShippingCostsCents: 499,
		GrandTotalCents:    1999*2 + 1299 + 250 + 499,
	}, got)
}

func TestSummarize_EmptyCart(t *testing.T) {
	got, err := Summarize(Cart{TotalTaxesCents: 10, ShippingCostsCents: 20}, nil)
	require.NoError(t, err)
	assert.Zero(t, got.TotalPriceCents)
	assert.Equal(t, int64(30), got.GrandTotalCents)
}

func TestSummarize_StopsOnMissingProduct(t *testing.T) {
	_, err := Summarize(Cart{}, []CartItem{item(100, 1), {ID: "stale", Quantity: 1}})
	assert.ErrorIs(t, err, ErrMissingRelation)
}

func TestCartSummaryUsesLoadedItems(t *testing.T) {
	cart := Cart{ShippingCostsCents: 5, Items: []CartItem{item(10, 3)}}
	got, err := cart.Summary()
	require.NoError(t, err)
	assert.Equal(t, int64(30), got.TotalPriceCents)
	assert.Equal(t, int64(35), got.GrandTotalCents)
}
