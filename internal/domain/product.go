package domain

import "time"

const (
	ProductStatusActive   = "active"
	ProductStatusDraft    = "draft"
	ProductStatusArchived = "archived"
)

type ProductImage struct {
	URL      string `json:"url"`
	Alt      string `json:"alt,omitempty"`
	Position int    `json:"position"`
	Main     bool   `json:"main"`
}

// VariationOption is a selectable value within a variation group. The price
// delta is added to the product price when the option is selected.
type VariationOption struct {
	Name            string `json:"name"`
	PriceDeltaCents int64  `json:"priceDeltaCents,omitempty"`
}

// VariationGroup is a named option group (e.g. "Size"). A cart item must
// carry a selection for every group declared on its product.
type VariationGroup struct {
	Name    string            `json:"name"`
	Options []VariationOption `json:"options"`
}

type ProductSEO struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

type Product struct {
	ID                string            `json:"id"`
	StoreID           string            `json:"-"`
	Name              string            `json:"name"`
	Slug              string            `json:"slug"`
	SKU               string            `json:"sku,omitempty"`
	Description       string            `json:"description,omitempty"`
	PriceCents        int64             `json:"priceCents"`
	SalePriceCents    *int64            `json:"salePriceCents,omitempty"`
	Images            []ProductImage    `json:"images,omitempty"`
	Categories        []string          `json:"categories,omitempty"`
	Variations        []VariationGroup  `json:"variations,omitempty"`
	TrackQuantity     bool              `json:"trackQuantity"`
	Quantity          int               `json:"quantity"`
	LowStockThreshold int               `json:"lowStockThreshold,omitempty"`
	CustomFields      map[string]string `json:"customFields,omitempty"`
	SEO               ProductSEO        `json:"seo"`
	Status            string            `json:"status"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// EffectivePriceCents is the sale price when set, otherwise the base price.
func (p Product) EffectivePriceCents() int64 {
	if p.SalePriceCents != nil && *p.SalePriceCents > 0 {
		return *p.SalePriceCents
	}
	return p.PriceCents
}

// MainImageURL returns the image flagged as main, falling back to the first.
func (p Product) MainImageURL() string {
	for _, img := range p.Images {
		if img.Main {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}
