package database

import (
	"fmt"

	"github.com/crmdeck/crmdeck/internal/common/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgres creates a PostgreSQL-backed database
func NewPostgres(cfg *config.DatabaseConfig) (Database, error) {
	gormDB, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return newStore(gormDB)
}
