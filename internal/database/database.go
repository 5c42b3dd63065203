package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shopworks/storefront/internal/config"
	"github.com/shopworks/storefront/internal/model"
)

// Connect opens the relational store and runs migrations. A Postgres DSN in
// DATABASE_URL wins; otherwise the local SQLite file is used, matching how
// the application runs in development and in tests.
func Connect(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.DatabaseURL != "" {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the four storefront tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Customer{}, &model.Product{}, &model.CartLine{}, &model.Order{},
	)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
