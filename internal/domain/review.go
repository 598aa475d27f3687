package domain

import "time"

const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// Review is product-scoped and moderated. Only approved reviews are served
// on the storefront.
type Review struct {
	ID         string    `json:"id"`
	StoreID    string    `json:"-"`
	ProductID  string    `json:"productId"`
	CustomerID *string   `json:"customerId,omitempty"`
	Author     string    `json:"author"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title,omitempty"`
	Body       string    `json:"body,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}
