package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Toston-App/lake-sub000/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_CONN_MAX_LIFETIME_MINUTES", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.Driver != config.DriverPostgres {
		t.Fatalf("expected postgres driver, got %s", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		t.Fatalf("expected dsn to be built from parts")
	}
	if cfg.Database.ConnMaxLifetime != 5*time.Minute {
		t.Fatalf("expected 5m lifetime, got %s", cfg.Database.ConnMaxLifetime)
	}
	if cfg.Ledger.ReconcileConcurrency != 4 {
		t.Fatalf("expected reconcile concurrency 4, got %d", cfg.Ledger.ReconcileConcurrency)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown driver", key: "DB_DRIVER", val: "mysql"},
		{name: "zero pool", key: "DB_MAX_OPEN_CONNS", val: "0"},
		{name: "zero concurrency", key: "LEDGER_RECONCILE_CONCURRENCY", val: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := config.Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}

func TestLoadFileOverlaysToml(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "")

	path := filepath.Join(t.TempDir(), "ledger.toml")
	content := `
[database]
driver = "sqlite"
dsn = "file::memory:"

[scheduler]
reconcile_spec = "@every 1h"
reconcile_fix = true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.Driver != config.DriverSQLite {
		t.Fatalf("expected sqlite driver, got %s", cfg.Database.Driver)
	}
	if cfg.Database.DSN != "file::memory:" {
		t.Fatalf("unexpected dsn %s", cfg.Database.DSN)
	}
	if cfg.Scheduler.ReconcileSpec != "@every 1h" || !cfg.Scheduler.ReconcileFix {
		t.Fatalf("scheduler overlay not applied: %+v", cfg.Scheduler)
	}
	if cfg.Server.Port == "" {
		t.Fatalf("expected env defaults to survive overlay")
	}
}
