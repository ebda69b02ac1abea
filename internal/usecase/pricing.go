package usecase

import "storefront-checkout/internal/domain"

// PricingRules are the flat checkout pricing constants. They come from
// configuration, not business data.
type PricingRules struct {
	FreeShippingThreshold float64 // shipping is free strictly above this subtotal
	FlatShippingFee       float64
	TaxRate               float64
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// CalculateTotals computes the order totals from the session's line items.
func CalculateTotals(items []domain.LineItem, rules PricingRules) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.ProductPrice * float64(item.ProductQuantity)
	}

	shipping := rules.FlatShippingFee
	if subtotal > rules.FreeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * rules.TaxRate

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}
