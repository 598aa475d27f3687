package domain

import "time"

const (
	StoreStatusActive    = "active"
	StoreStatusPending   = "pending"
	StoreStatusSuspended = "suspended"
)

// StoreSettings holds presentational and behavioural settings persisted as JSONB.
type StoreSettings struct {
	PrimaryColor   string          `json:"primaryColor,omitempty"`
	SecondaryColor string          `json:"secondaryColor,omitempty"`
	FontFamily     string          `json:"fontFamily,omitempty"`
	SEOTitle       string          `json:"seoTitle,omitempty"`
	SEODescription string          `json:"seoDescription,omitempty"`
	SEOKeywords    []string        `json:"seoKeywords,omitempty"`
	Currency       string          `json:"currency"`
	Languages      []string        `json:"languages,omitempty"`
	Features       map[string]bool `json:"features,omitempty"`
}

// Store is the tenant entity. Every catalog, cart, customer and order row
// hangs off one store.
type Store struct {
	ID        string        `json:"id"`
	Slug      string        `json:"slug"`
	Name      string        `json:"name"`
	OwnerID   string        `json:"ownerId,omitempty"`
	Settings  StoreSettings `json:"settings"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Currency returns the store currency, defaulting to USD for stores created
// before settings carried one.
func (s Store) Currency() string {
	if s.Settings.Currency == "" {
		return "USD"
	}
	return s.Settings.Currency
}
