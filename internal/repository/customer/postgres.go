package customer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"

	"storefront-platform/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	addrJSON, err := json.Marshal(c.Addresses)
	if err != nil {
		return nil, err
	}

	const q = `
INSERT INTO customers (store_id, email, password_hash, first_name, last_name, addresses)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text, store_id::text, email, password_hash, COALESCE(first_name, ''), COALESCE(last_name, ''), addresses, created_at
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q,
		c.StoreID,
		strings.ToLower(c.Email),
		c.PasswordHash,
		c.FirstName,
		c.LastName,
		addrJSON,
	))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, storeID, email string) (*domain.Customer, error) {
	const q = `
SELECT id::text, store_id::text, email, password_hash, COALESCE(first_name, ''), COALESCE(last_name, ''), addresses, created_at
FROM customers
WHERE store_id = $1 AND lower(email) = lower($2)
LIMIT 1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, storeID, email))
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id string) (*domain.Customer, error) {
	const q = `
SELECT id::text, store_id::text, email, password_hash, COALESCE(first_name, ''), COALESCE(last_name, ''), addresses, created_at
FROM customers
WHERE store_id = $1 AND id = $2
LIMIT 1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, storeID, id))
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	var addrJSON []byte
	err := row.Scan(
		&c.ID,
		&c.StoreID,
		&c.Email,
		&c.PasswordHash,
		&c.FirstName,
		&c.LastName,
		&addrJSON,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("customer repo: scan error=%v", err)
		return nil, err
	}
	if len(addrJSON) > 0 {
		if err := json.Unmarshal(addrJSON, &c.Addresses); err != nil {
			r.logger.Printf("customer repo: decode addresses id=%s err=%v", c.ID, err)
			return nil, err
		}
	}
	return &c, nil
}
