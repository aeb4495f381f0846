package ports

import (
	"context"
	"time"
)

// TokenVerifier validates bearer tokens and returns the user ID they bind.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// TokenRevoker tracks revoked token IDs until their natural expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
