package discount

import (
	"context"

	"storefront-platform/internal/domain"
)

type Repository interface {
	GetByCode(ctx context.Context, storeID, code string) (*domain.DiscountCode, error)
	ListByStore(ctx context.Context, storeID string) ([]domain.DiscountCode, error)
	Create(ctx context.Context, dc domain.DiscountCode) (*domain.DiscountCode, error)
	Delete(ctx context.Context, storeID, id string) error
}
