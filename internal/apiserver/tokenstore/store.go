package tokenstore

import (
	"context"
	"errors"
)

var (
	// ErrTokenNotFound is returned for unknown or revoked tokens
	ErrTokenNotFound = errors.New("token not found")
	// ErrTokenExpired is returned when a token exists but is past its expiry
	ErrTokenExpired = errors.New("token has expired")
)

// Token records a bearer token issued at login so it can be looked up
// and revoked before its JWT expiry.
type Token struct {
	AccessToken string `json:"access_token"`
	UserID      uint   `json:"user_id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	TenantCode  string `json:"tenant_code"`
	ExpiresAt   int64  `json:"expires_at"`
	CreatedAt   int64  `json:"created_at"`
}

// Store tracks issued tokens
type Store interface {
	Save(ctx context.Context, token *Token) error
	Get(ctx context.Context, accessToken string) (*Token, error)
	Delete(ctx context.Context, accessToken string) error
}
