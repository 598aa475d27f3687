package store

import (
	"context"

	"storefront-platform/internal/domain"
)

type Repository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Store, error)
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	Create(ctx context.Context, store domain.Store) (*domain.Store, error)
	List(ctx context.Context) ([]domain.Store, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
