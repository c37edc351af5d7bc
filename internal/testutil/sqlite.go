// Package testutil opens throwaway sqlite databases for integration tests.
package testutil

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/Toston-App/lake-sub000/config"
	"github.com/Toston-App/lake-sub000/internal/infrastructure"
	"github.com/Toston-App/lake-sub000/internal/logger"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func SilenceLogs() {
	logger.SetLogger(zerolog.New(io.Discard))
}

// NewSQLite returns a migrated sqlite database living in the test's temp dir.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()
	SilenceLogs()

	cfg := &config.Config{
		App: config.AppConfig{Name: "lake-ledger-test", Environment: "test"},
		Database: config.DatabaseConfig{
			Driver: config.DriverSQLite,
			DSN:    filepath.Join(t.TempDir(), "ledger.db"),
			DBName: "ledger",
		},
	}

	db, err := infrastructure.NewDb(cfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := infrastructure.RunMigrations(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
