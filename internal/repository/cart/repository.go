package cart

import (
	"context"

	"storefront-platform/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, storeID, sessionID, currency string) (*domain.Cart, error)
	GetActiveBySession(ctx context.Context, storeID, sessionID string) (*domain.Cart, error)
	GetByID(ctx context.Context, storeID, id string) (*domain.Cart, error)
	InsertItem(ctx context.Context, item domain.CartItem) error
	UpdateItemQuantity(ctx context.Context, cartID, itemID string, quantity int, totalCents int64) error
	DeleteItem(ctx context.Context, cartID, itemID string) error
	SaveTotals(ctx context.Context, cart *domain.Cart) error
	SetCheckoutStep(ctx context.Context, cartID, step string) error
	SetState(ctx context.Context, cartID, state string) error
	AssignCustomer(ctx context.Context, cartID, customerID string) error
}
