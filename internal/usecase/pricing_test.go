package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront-checkout/internal/domain"
)

var testPricing = PricingRules{
	FreeShippingThreshold: 50,
	FlatShippingFee:       9.99,
	TaxRate:               0.08,
}

func items(prices ...float64) []domain.LineItem {
	out := make([]domain.LineItem, len(prices))
	for i, p := range prices {
		out[i] = domain.LineItem{ProductID: "p", ProductPrice: p, ProductQuantity: 1}
	}
	return out
}

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name     string
		items    []domain.LineItem
		subtotal float64
		shipping float64
		tax      float64
		total    float64
	}{
		{
			name:     "empty cart",
			items:    nil,
			subtotal: 0,
			shipping: 9.99,
			tax:      0,
			total:    9.99,
		},
		{
			name:     "at threshold still pays shipping",
			items:    items(50),
			subtotal: 50,
			shipping: 9.99,
			tax:      4,
			total:    63.99,
		},
		{
			name:     "just above threshold ships free",
			items:    items(50.01),
			subtotal: 50.01,
			shipping: 0,
			tax:      4.0008,
			total:    54.0108,
		},
		{
			name:     "free shipping order",
			items:    items(60),
			subtotal: 60,
			shipping: 0,
			tax:      4.8,
			total:    64.8,
		},
		{
			name:     "paid shipping order",
			items:    items(40),
			subtotal: 40,
			shipping: 9.99,
			tax:      3.2,
			total:    53.19,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotals(tt.items, testPricing)
			assert.InDelta(t, tt.subtotal, got.Subtotal, 1e-9)
			assert.InDelta(t, tt.shipping, got.Shipping, 1e-9)
			assert.InDelta(t, tt.tax, got.Tax, 1e-9)
			assert.InDelta(t, tt.total, got.Total, 1e-9)
		})
	}
}

func TestCalculateTotalsQuantities(t *testing.T) {
	cart := []domain.LineItem{
		{ProductID: "a", ProductPrice: 10, ProductQuantity: 3},
		{ProductID: "b", ProductPrice: 12.5, ProductQuantity: 2},
	}
	got := CalculateTotals(cart, testPricing)
	assert.InDelta(t, 55, got.Subtotal, 1e-9)
	assert.InDelta(t, 0, got.Shipping, 1e-9)
}
