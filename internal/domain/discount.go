package domain

import "time"

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// DiscountCode is a store-scoped code. Value is percentage points for
// percentage codes and cents for fixed codes.
type DiscountCode struct {
	ID               string     `json:"id"`
	StoreID          string     `json:"-"`
	Code             string     `json:"code"`
	Type             string     `json:"type"`
	Value            int64      `json:"value"`
	MinSubtotalCents int64      `json:"minSubtotalCents,omitempty"`
	StartsAt         *time.Time `json:"startsAt,omitempty"`
	EndsAt           *time.Time `json:"endsAt,omitempty"`
	Active           bool       `json:"active"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// ValidAt reports whether the code can be applied at the given instant to a
// cart with the given subtotal.
func (d DiscountCode) ValidAt(now time.Time, subtotalCents int64) bool {
	if !d.Active {
		return false
	}
	if d.StartsAt != nil && now.Before(*d.StartsAt) {
		return false
	}
	if d.EndsAt != nil && now.After(*d.EndsAt) {
		return false
	}
	return subtotalCents >= d.MinSubtotalCents
}
