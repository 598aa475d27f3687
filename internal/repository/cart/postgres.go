package cart

import (
	"context"
	"encoding/json"
	"errors"

	"storefront-platform/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const cartColumns = `
id::text, store_id::text, session_id, customer_id::text,
subtotal_cents, discount_cents, tax_cents, shipping_cents, total_cents,
currency, COALESCE(discount_code, ''), state, COALESCE(checkout_step, ''), created_at`

func (r *postgresRepo) Create(ctx context.Context, storeID, sessionID, currency string) (*domain.Cart, error) {
	const q = `
INSERT INTO carts (store_id, session_id, currency, state)
VALUES ($1, $2, $3, 'active')
RETURNING ` + cartColumns
	return r.fetchOne(ctx, q, storeID, sessionID, currency)
}

func (r *postgresRepo) GetActiveBySession(ctx context.Context, storeID, sessionID string) (*domain.Cart, error) {
	const q = `
SELECT ` + cartColumns + `
FROM carts
WHERE store_id = $1 AND session_id = $2 AND state = 'active'
ORDER BY created_at DESC
LIMIT 1
`
	return r.fetchOne(ctx, q, storeID, sessionID)
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id string) (*domain.Cart, error) {
	const q = `SELECT ` + cartColumns + ` FROM carts WHERE store_id = $1 AND id = $2`
	return r.fetchOne(ctx, q, storeID, id)
}

func (r *postgresRepo) InsertItem(ctx context.Context, item domain.CartItem) error {
	variationsJSON, err := json.Marshal(item.Variations)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO cart_items (cart_id, product_id, product_name, product_sku, product_image, variations, quantity, unit_price_cents, total_cents)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9)
`
	_, err = r.pool.Exec(ctx, q,
		item.CartID,
		item.ProductID,
		item.ProductName,
		item.ProductSKU,
		item.ProductImage,
		variationsJSON,
		item.Quantity,
		item.UnitPriceCents,
		item.TotalCents,
	)
	return err
}

func (r *postgresRepo) UpdateItemQuantity(ctx context.Context, cartID, itemID string, quantity int, totalCents int64) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE cart_items
SET quantity = $1, total_cents = $2
WHERE id = $3 AND cart_id = $4
`, quantity, totalCents, itemID, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteItem(ctx context.Context, cartID, itemID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM cart_items
WHERE id = $1 AND cart_id = $2
`, itemID, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SaveTotals(ctx context.Context, cart *domain.Cart) error {
	_, err := r.pool.Exec(ctx, `
UPDATE carts
SET subtotal_cents = $1,
    discount_cents = $2,
    tax_cents = $3,
    shipping_cents = $4,
    total_cents = $5,
    discount_code = NULLIF($6, '')
WHERE id = $7
`, cart.SubtotalCents, cart.DiscountCents, cart.TaxCents, cart.ShippingCents, cart.TotalCents, cart.DiscountCode, cart.ID)
	return err
}

func (r *postgresRepo) SetCheckoutStep(ctx context.Context, cartID, step string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE carts SET checkout_step = NULLIF($1, '') WHERE id = $2`, step, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetState(ctx context.Context, cartID, state string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE carts SET state = $1 WHERE id = $2`, state, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) AssignCustomer(ctx context.Context, cartID, customerID string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE carts SET customer_id = $1 WHERE id = $2`, customerID, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) fetchOne(ctx context.Context, q string, args ...interface{}) (*domain.Cart, error) {
	var cart domain.Cart
	var customerID *string
	err := r.pool.QueryRow(ctx, q, args...).Scan(
		&cart.ID,
		&cart.StoreID,
		&cart.SessionID,
		&customerID,
		&cart.SubtotalCents,
		&cart.DiscountCents,
		&cart.TaxCents,
		&cart.ShippingCents,
		&cart.TotalCents,
		&cart.Currency,
		&cart.DiscountCode,
		&cart.State,
		&cart.CheckoutStep,
		&cart.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	cart.CustomerID = customerID

	const itemsQuery = `
SELECT id::text, cart_id::text, product_id::text, product_name, COALESCE(product_sku, ''), COALESCE(product_image, ''),
       variations, quantity, unit_price_cents, total_cents, created_at
FROM cart_items
WHERE cart_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		var variationsJSON []byte
		if err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.ProductName,
			&item.ProductSKU,
			&item.ProductImage,
			&variationsJSON,
			&item.Quantity,
			&item.UnitPriceCents,
			&item.TotalCents,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(variationsJSON) > 0 {
			if err := json.Unmarshal(variationsJSON, &item.Variations); err != nil {
				return nil, err
			}
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &cart, nil
}
