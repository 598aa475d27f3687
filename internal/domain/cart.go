package domain

import "time"

const (
	CartStateActive  = "active"
	CartStateOrdered = "ordered"
)

// Checkout steps form a strictly linear wizard.
const (
	CheckoutStepShipping = "shipping"
	CheckoutStepPayment  = "payment"
	CheckoutStepReview   = "review"
)

// CartItem holds a denormalized snapshot of the product at the moment it was
// added. Later product edits do not touch existing items.
type CartItem struct {
	ID             string            `json:"id"`
	CartID         string            `json:"cartId"`
	ProductID      string            `json:"productId"`
	ProductName    string            `json:"productName"`
	ProductSKU     string            `json:"productSku,omitempty"`
	ProductImage   string            `json:"productImage,omitempty"`
	Variations     map[string]string `json:"variations,omitempty"`
	Quantity       int               `json:"quantity"`
	UnitPriceCents int64             `json:"unitPriceCents"`
	TotalCents     int64             `json:"totalCents"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// Cart is scoped to a (store, session) pair. The session id is minted by the
// client or by the session middleware and has no expiry.
type Cart struct {
	ID             string     `json:"id"`
	StoreID        string     `json:"-"`
	SessionID      string     `json:"-"`
	CustomerID     *string    `json:"customerId,omitempty"`
	Items          []CartItem `json:"items"`
	SubtotalCents  int64      `json:"subtotalCents"`
	DiscountCents  int64      `json:"discountCents"`
	TaxCents       int64      `json:"taxCents"`
	ShippingCents  int64      `json:"shippingCents"`
	TotalCents     int64      `json:"totalCents"`
	Currency       string     `json:"currency"`
	DiscountCode   string     `json:"discountCode,omitempty"`
	State          string     `json:"state"`
	CheckoutStep   string     `json:"checkoutStep,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// ItemCount is the total quantity across all items.
func (c Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}
