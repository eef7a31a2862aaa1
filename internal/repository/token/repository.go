package token

import (
	"context"
	"time"
)

// Token is an opaque access credential bound to a user.
type Token struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

type Repository interface {
	Create(ctx context.Context, t Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
}
