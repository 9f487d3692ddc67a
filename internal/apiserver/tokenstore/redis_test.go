package tokenstore

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/crmdeck/crmdeck/internal/common/config"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	s, err := NewRedisStore(&config.RedisStoreConfig{Addr: mr.Addr()})
	if err != nil {
		mr.Close()
		t.Fatalf("failed to create RedisStore: %v", err)
	}
	return s, mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	s, mr := newTestRedisStore(t)
	defer mr.Close()

	ctx := context.Background()
	tok := &Token{AccessToken: "t1", UserID: 7, TenantCode: "walmart", ExpiresAt: time.Now().Add(time.Hour).Unix()}
	assert.NoError(t, s.Save(ctx, tok))

	got, err := s.Get(ctx, "t1")
	assert.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, "walmart", got.TenantCode)

	assert.NoError(t, s.Delete(ctx, "t1"))
	_, err = s.Get(ctx, "t1")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestRedisStoreExpiredToken(t *testing.T) {
	s, mr := newTestRedisStore(t)
	defer mr.Close()

	ctx := context.Background()
	// Expired claim but still present in redis
	tok := &Token{AccessToken: "t2", ExpiresAt: time.Now().Add(-time.Minute).Unix()}
	assert.NoError(t, s.Save(ctx, tok))

	_, err := s.Get(ctx, "t2")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestFactorySelectsImplementation(t *testing.T) {
	lg := zap.NewNop()

	mem, err := NewStore(lg, &config.TokenStoreConfig{Type: "memory"})
	assert.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, mem)

	def, err := NewStore(lg, &config.TokenStoreConfig{})
	assert.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, def)

	_, err = NewStore(lg, &config.TokenStoreConfig{Type: "etcd"})
	assert.Error(t, err)

	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()
	rs, err := NewStore(lg, &config.TokenStoreConfig{Type: "redis", Redis: config.RedisStoreConfig{Addr: mr.Addr()}})
	assert.NoError(t, err)
	assert.IsType(t, &RedisStore{}, rs)
}
