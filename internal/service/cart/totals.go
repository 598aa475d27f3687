package cart

import "storefront-platform/internal/domain"

// RecomputeTotals is the single place cart aggregates are calculated. Every
// mutation path runs through it so the invariant
//
//	total == subtotal + tax + shipping - discount
//
// holds for any cart this package hands out. Passing a nil code clears any
// applied discount.
func RecomputeTotals(cart domain.Cart, code *domain.DiscountCode) domain.Cart {
	var subtotal int64
	for _, item := range cart.Items {
		subtotal += item.TotalCents
	}
	cart.SubtotalCents = subtotal

	if code == nil {
		cart.DiscountCents = 0
		cart.DiscountCode = ""
	} else {
		cart.DiscountCents = discountAmount(*code, subtotal)
		cart.DiscountCode = code.Code
	}

	cart.TotalCents = cart.SubtotalCents + cart.TaxCents + cart.ShippingCents - cart.DiscountCents
	return cart
}

func discountAmount(code domain.DiscountCode, subtotalCents int64) int64 {
	var amount int64
	switch code.Type {
	case domain.DiscountTypePercentage:
		amount = subtotalCents * code.Value / 100
	case domain.DiscountTypeFixed:
		amount = code.Value
	}
	if amount > subtotalCents {
		amount = subtotalCents
	}
	if amount < 0 {
		amount = 0
	}
	return amount
}
