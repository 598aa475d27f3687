package domain

import "time"

// OrderAddress is the shipping or billing address captured at checkout.
type OrderAddress struct {
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	StreetName string `json:"streetName,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// Order is an immutable snapshot of a cart at checkout completion. No
// fulfillment lifecycle is modeled here.
type Order struct {
	ID              string       `json:"id"`
	StoreID         string       `json:"-"`
	Number          string       `json:"number"`
	SessionID       string       `json:"-"`
	CustomerID      *string      `json:"customerId,omitempty"`
	Email           string       `json:"email"`
	Items           []CartItem   `json:"items"`
	SubtotalCents   int64        `json:"subtotalCents"`
	DiscountCents   int64        `json:"discountCents"`
	TaxCents        int64        `json:"taxCents"`
	ShippingCents   int64        `json:"shippingCents"`
	TotalCents      int64        `json:"totalCents"`
	Currency        string       `json:"currency"`
	DiscountCode    string       `json:"discountCode,omitempty"`
	ShippingAddress OrderAddress `json:"shippingAddress"`
	BillingAddress  OrderAddress `json:"billingAddress"`
	CreatedAt       time.Time    `json:"createdAt"`
}
