package tokenstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	tok := &Token{AccessToken: "t1", UserID: 1, Email: "admin@crm.com", Role: "superadmin", ExpiresAt: time.Now().Add(time.Hour).Unix()}
	assert.NoError(t, s.Save(ctx, tok))

	got, err := s.Get(ctx, "t1")
	assert.NoError(t, err)
	assert.Equal(t, uint(1), got.UserID)
	assert.NotZero(t, got.CreatedAt)

	assert.NoError(t, s.Delete(ctx, "t1"))
	_, err = s.Get(ctx, "t1")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	tok := &Token{AccessToken: "t2", ExpiresAt: time.Now().Add(-time.Second).Unix()}
	assert.NoError(t, s.Save(ctx, tok))

	_, err := s.Get(ctx, "t2")
	assert.ErrorIs(t, err, ErrTokenExpired)

	// Expired tokens are purged on read
	_, err = s.Get(ctx, "t2")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestMemoryStoreDeleteAbsent(t *testing.T) {
	s := NewMemoryStore()
	assert.NoError(t, s.Delete(context.Background(), "absent"))
}
