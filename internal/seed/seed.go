package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-platform/internal/domain"
	storesvc "storefront-platform/internal/service/store"
)

type productSeed struct {
	Slug        string
	SKU         string
	Name        string
	Description string
	PriceCents  int64
	Categories  []string
	Variations  []domain.VariationGroup
}

// Apply inserts demo data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	storeID, err := ensureStore(ctx, pool, "demo-store")
	if err != nil {
		return fmt.Errorf("ensure store: %w", err)
	}

	products := []productSeed{
		{
			Slug:        "demo-shirt",
			SKU:         "SKU-DEMO-TSHIRT",
			Name:        "Demo T-Shirt",
			Description: "Soft cotton tee for demo purposes",
			PriceCents:  1999,
			Categories:  []string{"Apparel"},
			Variations: []domain.VariationGroup{
				{Name: "Size", Options: []domain.VariationOption{
					{Name: "S"}, {Name: "M"}, {Name: "L"},
					{Name: "XL", PriceDeltaCents: 200},
				}},
			},
		},
		{
			Slug:        "demo-mug",
			SKU:         "SKU-DEMO-MUG",
			Name:        "Demo Mug",
			Description: "Ceramic mug with demo logo",
			PriceCents:  1299,
			Categories:  []string{"Kitchen"},
		},
		{
			Slug:        "demo-poster",
			SKU:         "SKU-DEMO-POSTER",
			Name:        "Demo Poster",
			Description: "A3 wall poster",
			PriceCents:  899,
			Categories:  []string{"Decor"},
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, storeID, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
	}

	if err := ensureDiscount(ctx, pool, storeID); err != nil {
		return fmt.Errorf("ensure discount: %w", err)
	}

	return nil
}

func ensureStore(ctx context.Context, pool *pgxpool.Pool, slug string) (string, error) {
	store := storesvc.DefaultStore(slug)
	settingsJSON, err := json.Marshal(store.Settings)
	if err != nil {
		return "", err
	}

	const q = `
INSERT INTO stores (slug, name, settings, status)
VALUES ($1, $2, $3, $4)
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, store.Slug, store.Name, settingsJSON, store.Status).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, storeID string, p productSeed) error {
	categoriesJSON, err := json.Marshal(p.Categories)
	if err != nil {
		return err
	}
	variations := p.Variations
	if variations == nil {
		variations = []domain.VariationGroup{}
	}
	variationsJSON, err := json.Marshal(variations)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO products (store_id, slug, sku, name, description, price_cents, categories, variations, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'active')
ON CONFLICT (store_id, slug) DO UPDATE
SET sku = EXCLUDED.sku,
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    categories = EXCLUDED.categories,
    variations = EXCLUDED.variations
`
	_, err = pool.Exec(ctx, q, storeID, p.Slug, p.SKU, p.Name, p.Description, p.PriceCents, categoriesJSON, variationsJSON)
	return err
}

func ensureDiscount(ctx context.Context, pool *pgxpool.Pool, storeID string) error {
	const q = `
INSERT INTO discount_codes (store_id, code, type, value, active)
VALUES ($1, 'WELCOME10', 'percentage', 10, true)
ON CONFLICT (store_id, upper(code)) DO NOTHING
`
	_, err := pool.Exec(ctx, q, storeID)
	return err
}
