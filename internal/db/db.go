package db

import (
	"errors"
	"log"
	"os"
	"time"

	"pickem-live/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres using DATABASE_URL and applies pool settings.
func Open(cfg config.Config) (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeSeconds) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTimeSeconds) * time.Second)
	return conn, nil
}

// Migrate runs GORM auto-migrations for the core tables.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("db connection is nil")
	}
	if err := conn.AutoMigrate(
		&Game{},
		&Round{},
		&Option{},
		&Alias{},
		&Vote{},
		&AliasScore{},
		&Event{},
	); err != nil {
		return err
	}
	// Partial unique index: at most one OPEN round per game. GORM tags
	// cannot express the WHERE clause, so it is created directly.
	if err := conn.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_rounds_game_open ON rounds (game_id) WHERE status = 'OPEN'`,
	).Error; err != nil {
		return err
	}
	log.Println("database migration complete")
	return nil
}
