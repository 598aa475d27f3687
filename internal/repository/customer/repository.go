package customer

import (
	"context"

	"storefront-platform/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetByEmail(ctx context.Context, storeID, email string) (*domain.Customer, error)
	GetByID(ctx context.Context, storeID, id string) (*domain.Customer, error)
}
