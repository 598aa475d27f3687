package token

import (
	"context"
	"time"
)

// Token is an opaque customer access token persisted with a TTL.
type Token struct {
	Token      string
	StoreID    string
	CustomerID string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

type Repository interface {
	Create(ctx context.Context, token Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
}
