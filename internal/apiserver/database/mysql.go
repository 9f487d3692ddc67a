package database

import (
	"fmt"

	"github.com/crmdeck/crmdeck/internal/common/config"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL creates a MySQL-backed database
func NewMySQL(cfg *config.DatabaseConfig) (Database, error) {
	gormDB, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return newStore(gormDB)
}
