package store

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

const storeColumns = `id::text, slug, name, COALESCE(owner_id::text, ''), settings, status, created_at`

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	q := `SELECT ` + storeColumns + ` FROM stores WHERE slug = $1`
	return r.scanStore(r.pool.QueryRow(ctx, q, strings.ToLower(slug)))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	q := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`
	return r.scanStore(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) Create(ctx context.Context, store domain.Store) (*domain.Store, error) {
	settingsJSON, err := json.Marshal(store.Settings)
	if err != nil {
		return nil, err
	}
	const q = `
INSERT INTO stores (slug, name, owner_id, settings, status)
VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5)
RETURNING ` + storeColumns
	out, err := r.scanStore(r.pool.QueryRow(ctx, q,
		strings.ToLower(store.Slug),
		store.Name,
		store.OwnerID,
		settingsJSON,
		store.Status,
	))
	if err != nil {
		r.logger.Printf("store repo: create slug=%s error=%v", store.Slug, err)
		return nil, err
	}
	r.logger.Printf("store repo: created slug=%s id=%s", out.Slug, out.ID)
	return out, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Store, error) {
	q := `SELECT ` + storeColumns + ` FROM stores ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Store
	for rows.Next() {
		s, err := r.scanStoreRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE stores SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanStore(row pgx.Row) (*domain.Store, error) {
	s, err := r.scanStoreRow(row)
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
	return s, nil
}

func (r *postgresRepo) scanStoreRow(row pgx.Row) (*domain.Store, error) {
	var s domain.Store
	var settingsJSON []byte
	if err := row.Scan(&s.ID, &s.Slug, &s.Name, &s.OwnerID, &settingsJSON, &s.Status, &s.CreatedAt); err != nil {
		return nil, err
	}
	if len(settingsJSON) > 0 {
		if err := json.Unmarshal(settingsJSON, &s.Settings); err != nil {
			r.logger.Printf("store repo: decode settings id=%s err=%v", s.ID, err)
			return nil, err
		}
	}
	return &s, nil
}
