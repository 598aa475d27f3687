package order

import (
	"context"

	"storefront-platform/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByNumber(ctx context.Context, storeID, number string) (*domain.Order, error)
	ListByStore(ctx context.Context, storeID string) ([]domain.Order, error)
}
