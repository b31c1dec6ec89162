package database

import (
	"fmt"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/lshigami/kioku/config"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDatabase opens the embedded SQLite database and enforces the
// single-writer discipline: one underlying connection, so every store
// operation is serialized behind the pool's own lock.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	if err := os.MkdirAll(cfg.Database.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(cfg.Database.Path()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	// SQLite does not support multiple writers. Capping the pool at one
	// connection also makes the pragma below stick for the process lifetime.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	log.Info().Str("path", cfg.Database.Path()).Msg("Database opened")
	return db, nil
}
