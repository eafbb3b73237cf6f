package database

import (
	"fmt"
	"strings"

	"attio-sync/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm driver from the connection string. Postgres URLs
// and keyword DSNs go to the pgx-backed driver, anything else is a SQLite
// path (an optional sqlite:// prefix is stripped).
func Dialector(dsn string) gorm.Dialector {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"), strings.Contains(dsn, "host="):
		return postgres.Open(dsn)
	default:
		return sqlite.Open(strings.TrimPrefix(dsn, "sqlite://"))
	}
}

func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database url is empty")
	}

	db, err := gorm.Open(Dialector(dsn), &gorm.Config{
		Logger:                   logger.Default.LogMode(logger.Warn),
		DisableNestedTransaction: true,
		TranslateError:           true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the companies and fast_tracks tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Company{}, &models.FastTrack{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
