package tokenstore

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/crmdeck/crmdeck/internal/common/config"
)

// NewStore creates a token store based on configuration
func NewStore(logger *zap.Logger, cfg *config.TokenStoreConfig) (Store, error) {
	logger.Info("initializing token store", zap.String("type", cfg.Type))
	switch cfg.Type {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(&cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported token store type: %s", cfg.Type)
	}
}
