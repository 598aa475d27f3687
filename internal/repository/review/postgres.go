package review

import (
	"context"
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

const reviewColumns = `id::text, store_id::text, product_id::text, customer_id::text, author, rating, COALESCE(title, ''), COALESCE(body, ''), status, created_at`

func (r *postgresRepo) Create(ctx context.Context, rv domain.Review) (*domain.Review, error) {
	const q = `
INSERT INTO reviews (store_id, product_id, customer_id, author, rating, title, body, status)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8)
RETURNING ` + reviewColumns
	return scanReview(r.pool.QueryRow(ctx, q,
		rv.StoreID,
		rv.ProductID,
		rv.CustomerID,
		rv.Author,
		rv.Rating,
		rv.Title,
		rv.Body,
		rv.Status,
	))
}

func (r *postgresRepo) ListByProduct(ctx context.Context, storeID, productID, status string) ([]domain.Review, error) {
	q := `SELECT ` + reviewColumns + `
FROM reviews
WHERE store_id = $1 AND product_id = $2 AND ($3 = '' OR status = $3)
ORDER BY created_at DESC`
	return r.list(ctx, q, storeID, productID, status)
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string) ([]domain.Review, error) {
	q := `SELECT ` + reviewColumns + ` FROM reviews WHERE store_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, q, storeID)
}

func (r *postgresRepo) SetStatus(ctx context.Context, storeID, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE reviews SET status = $1 WHERE store_id = $2 AND id = $3`, status, storeID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rv)
	}
	return result, rows.Err()
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	var customerID *string
	err := row.Scan(
		&rv.ID,
		&rv.StoreID,
		&rv.ProductID,
		&customerID,
		&rv.Author,
		&rv.Rating,
		&rv.Title,
		&rv.Body,
		&rv.Status,
		&rv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	rv.CustomerID = customerID
	return &rv, nil
}
