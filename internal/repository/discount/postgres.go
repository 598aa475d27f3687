package discount

import (
	"context"
	"errors"
	"strings"

	"storefront-platform/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const discountColumns = `id::text, store_id::text, code, type, value, min_subtotal_cents, starts_at, ends_at, active, created_at`

func (r *postgresRepo) GetByCode(ctx context.Context, storeID, code string) (*domain.DiscountCode, error) {
	q := `SELECT ` + discountColumns + ` FROM discount_codes WHERE store_id = $1 AND upper(code) = upper($2)`
	return scanDiscount(r.pool.QueryRow(ctx, q, storeID, code))
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string) ([]domain.DiscountCode, error) {
	q := `SELECT ` + discountColumns + ` FROM discount_codes WHERE store_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DiscountCode
	for rows.Next() {
		dc, err := scanDiscount(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *dc)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Create(ctx context.Context, dc domain.DiscountCode) (*domain.DiscountCode, error) {
	const q = `
INSERT INTO discount_codes (store_id, code, type, value, min_subtotal_cents, starts_at, ends_at, active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + discountColumns
	out, err := scanDiscount(r.pool.QueryRow(ctx, q,
		dc.StoreID,
		strings.ToUpper(dc.Code),
		dc.Type,
		dc.Value,
		dc.MinSubtotalCents,
		dc.StartsAt,
		dc.EndsAt,
		dc.Active,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, storeID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM discount_codes WHERE store_id = $1 AND id = $2`, storeID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanDiscount(row pgx.Row) (*domain.DiscountCode, error) {
	var dc domain.DiscountCode
	err := row.Scan(
		&dc.ID,
		&dc.StoreID,
		&dc.Code,
		&dc.Type,
		&dc.Value,
		&dc.MinSubtotalCents,
		&dc.StartsAt,
		&dc.EndsAt,
		&dc.Active,
		&dc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &dc, nil
}
