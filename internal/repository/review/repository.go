package review

import (
	"context"

	"storefront-platform/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, rv domain.Review) (*domain.Review, error)
	ListByProduct(ctx context.Context, storeID, productID, status string) ([]domain.Review, error)
	ListByStore(ctx context.Context, storeID string) ([]domain.Review, error)
	SetStatus(ctx context.Context, storeID, id, status string) error
}
