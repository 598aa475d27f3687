package order

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"storefront-platform/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const orderColumns = `
id::text, store_id::text, number, session_id, customer_id::text, email, items,
subtotal_cents, discount_cents, tax_cents, shipping_cents, total_cents,
currency, COALESCE(discount_code, ''), shipping_address, billing_address, created_at`

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return nil, err
	}
	shipJSON, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return nil, err
	}
	billJSON, err := json.Marshal(o.BillingAddress)
	if err != nil {
		return nil, err
	}

	const q = `
INSERT INTO orders (
    store_id, number, session_id, customer_id, email, items,
    subtotal_cents, discount_cents, tax_cents, shipping_cents, total_cents,
    currency, discount_code, shipping_address, billing_address
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''), $14, $15)
RETURNING ` + orderColumns
	out, err := r.scanOrder(r.pool.QueryRow(ctx, q,
		o.StoreID,
		o.Number,
		o.SessionID,
		o.CustomerID,
		o.Email,
		itemsJSON,
		o.SubtotalCents,
		o.DiscountCents,
		o.TaxCents,
		o.ShippingCents,
		o.TotalCents,
		o.Currency,
		o.DiscountCode,
		shipJSON,
		billJSON,
	))
	if err != nil {
		r.logger.Printf("order repo: create store_id=%s number=%s error=%v", o.StoreID, o.Number, err)
		return nil, err
	}
	r.logger.Printf("order repo: created store_id=%s number=%s total_cents=%d", out.StoreID, out.Number, out.TotalCents)
	return out, nil
}

func (r *postgresRepo) GetByNumber(ctx context.Context, storeID, number string) (*domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE store_id = $1 AND number = $2`
	return r.scanOrder(r.pool.QueryRow(ctx, q, storeID, number))
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE store_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	return result, rows.Err()
}

func (r *postgresRepo) scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var customerID *string
	var itemsJSON, shipJSON, billJSON []byte
	err := row.Scan(
		&o.ID,
		&o.StoreID,
		&o.Number,
		&o.SessionID,
		&customerID,
		&o.Email,
		&itemsJSON,
		&o.SubtotalCents,
		&o.DiscountCents,
		&o.TaxCents,
		&o.ShippingCents,
		&o.TotalCents,
		&o.Currency,
		&o.DiscountCode,
		&shipJSON,
		&billJSON,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	o.CustomerID = customerID
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, err
		}
	}
	if len(shipJSON) > 0 {
		if err := json.Unmarshal(shipJSON, &o.ShippingAddress); err != nil {
			return nil, err
		}
	}
	if len(billJSON) > 0 {
		if err := json.Unmarshal(billJSON, &o.BillingAddress); err != nil {
			return nil, err
		}
	}
	return &o, nil
}
