package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/crmdeck/crmdeck/internal/common/config"
)

// RedisStore implements Store on top of Redis so revocation survives
// apiserver restarts and is shared across replicas.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed token store
func NewRedisStore(cfg *config.RedisStoreConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "crmdeck:token:"
	}
	ttl := cfg.TTL.Std()
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &RedisStore{client: client, prefix: prefix, ttl: ttl}, nil
}

func (s *RedisStore) key(accessToken string) string {
	return s.prefix + accessToken
}

func (s *RedisStore) Save(ctx context.Context, token *Token) error {
	if token.CreatedAt == 0 {
		token.CreatedAt = time.Now().Unix()
	}

	data, err := json.Marshal(token)
	if err != nil {
		return err
	}

	ttl := s.ttl
	if token.ExpiresAt > 0 {
		until := time.Until(time.Unix(token.ExpiresAt, 0))
		if until > 0 && until < ttl {
			ttl = until
		}
	}

	return s.client.Set(ctx, s.key(token.AccessToken), data, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, accessToken string) (*Token, error) {
	data, err := s.client.Get(ctx, s.key(accessToken)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, err
	}
	if token.ExpiresAt > 0 && token.ExpiresAt < time.Now().Unix() {
		_ = s.Delete(ctx, accessToken)
		return nil, ErrTokenExpired
	}
	return &token, nil
}

func (s *RedisStore) Delete(ctx context.Context, accessToken string) error {
	return s.client.Del(ctx, s.key(accessToken)).Err()
}
