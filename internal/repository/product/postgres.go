package product

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"storefront-platform/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `
id::text, store_id::text, name, slug, COALESCE(sku, ''), COALESCE(description, ''),
price_cents, sale_price_cents, images, categories, variations,
track_quantity, quantity, low_stock_threshold, custom_fields, seo, status, created_at`

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE store_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		r.logger.Printf("product repo: list store_id=%s error=%v", storeID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Printf("product repo: list store_id=%s count=%d", storeID, len(result))
	return result, nil
}

func (r *postgresRepo) GetBySlug(ctx context.Context, storeID, slug string) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE store_id = $1 AND slug = $2`
	return r.get(ctx, q, storeID, slug)
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id string) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE store_id = $1 AND id = $2`
	return r.get(ctx, q, storeID, id)
}

func (r *postgresRepo) get(ctx context.Context, q, storeID, arg string) (*domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, q, storeID, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get store_id=%s arg=%s error=%v", storeID, arg, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	imagesJSON, err := json.Marshal(product.Images)
	if err != nil {
		return nil, err
	}
	categoriesJSON, err := json.Marshal(product.Categories)
	if err != nil {
		return nil, err
	}
	variationsJSON, err := json.Marshal(product.Variations)
	if err != nil {
		return nil, err
	}
	customJSON, err := json.Marshal(product.CustomFields)
	if err != nil {
		return nil, err
	}
	seoJSON, err := json.Marshal(product.SEO)
	if err != nil {
		return nil, err
	}

	const q = `
INSERT INTO products (
    id, store_id, name, slug, sku, description, price_cents, sale_price_cents,
    images, categories, variations, track_quantity, quantity, low_stock_threshold,
    custom_fields, seo, status
) VALUES (
    COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8,
    $9, $10, $11, $12, $13, $14, $15, $16, $17
)
ON CONFLICT (store_id, slug) DO UPDATE SET
    name = EXCLUDED.name,
    sku = EXCLUDED.sku,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    sale_price_cents = EXCLUDED.sale_price_cents,
    images = EXCLUDED.images,
    categories = EXCLUDED.categories,
    variations = EXCLUDED.variations,
    track_quantity = EXCLUDED.track_quantity,
    quantity = EXCLUDED.quantity,
    low_stock_threshold = EXCLUDED.low_stock_threshold,
    custom_fields = EXCLUDED.custom_fields,
    seo = EXCLUDED.seo,
    status = EXCLUDED.status
RETURNING ` + productColumns
	out, err := scanProduct(r.pool.QueryRow(ctx, q,
		product.ID,
		product.StoreID,
		product.Name,
		product.Slug,
		product.SKU,
		product.Description,
		product.PriceCents,
		product.SalePriceCents,
		imagesJSON,
		categoriesJSON,
		variationsJSON,
		product.TrackQuantity,
		product.Quantity,
		product.LowStockThreshold,
		customJSON,
		seoJSON,
		product.Status,
	))
	if err != nil {
		r.logger.Printf("product repo: upsert slug=%s store_id=%s error=%v", product.Slug, product.StoreID, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted slug=%s store_id=%s id=%s", out.Slug, out.StoreID, out.ID)
	return out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, storeID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE store_id = $1 AND id = $2`, storeID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var imagesJSON, categoriesJSON, variationsJSON, customJSON, seoJSON []byte
	err := row.Scan(
		&p.ID,
		&p.StoreID,
		&p.Name,
		&p.Slug,
		&p.SKU,
		&p.Description,
		&p.PriceCents,
		&p.SalePriceCents,
		&imagesJSON,
		&categoriesJSON,
		&variationsJSON,
		&p.TrackQuantity,
		&p.Quantity,
		&p.LowStockThreshold,
		&customJSON,
		&seoJSON,
		&p.Status,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	for _, pair := range []struct {
		raw []byte
		dst interface{}
	}{
		{imagesJSON, &p.Images},
		{categoriesJSON, &p.Categories},
		{variationsJSON, &p.Variations},
		{customJSON, &p.CustomFields},
		{seoJSON, &p.SEO},
	} {
		if len(pair.raw) > 0 {
			if err := json.Unmarshal(pair.raw, pair.dst); err != nil {
				return nil, err
			}
		}
	}
	return &p, nil
}
