package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App       AppConfig       `toml:"app"`
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	AMQP      AMQPConfig      `toml:"amqp"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Ledger    LedgerConfig    `toml:"ledger"`
}

type AppConfig struct {
	Name        string `toml:"name"`
	Environment string `toml:"environment"`
	LogLevel    string `toml:"log_level"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type DatabaseConfig struct {
	Driver          string        `toml:"driver"`
	DSN             string        `toml:"dsn"`
	Host            string        `toml:"host"`
	Port            int           `toml:"port"`
	User            string        `toml:"user"`
	Password        string        `toml:"password"`
	DBName          string        `toml:"dbname"`
	SSLMode         string        `toml:"sslmode"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"-"`
	LifetimeMinutes int           `toml:"conn_max_lifetime_minutes"`
}

type AMQPConfig struct {
	URL         string `toml:"url"`
	Exchange    string `toml:"exchange"`
	IngestQueue string `toml:"ingest_queue"`
	Prefetch    int    `toml:"prefetch"`
}

func (c AMQPConfig) Enabled() bool {
	return c.URL != ""
}

type SchedulerConfig struct {
	Enabled       bool   `toml:"enabled"`
	ReconcileSpec string `toml:"reconcile_spec"`
	GoalSweepSpec string `toml:"goal_sweep_spec"`
	ReconcileFix  bool   `toml:"reconcile_fix"`
}

type LedgerConfig struct {
	ReconcileConcurrency int `toml:"reconcile_concurrency"`
	RateLimitPerMinute   int `toml:"rate_limit_per_minute"`
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "lake-ledger"),
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", DriverPostgres),
			DSN:             os.Getenv("DB_DSN"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        os.Getenv("DB_PASSWORD"),
			DBName:          getEnv("DB_NAME", "lake"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			LifetimeMinutes: getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		},
		AMQP: AMQPConfig{
			URL:         os.Getenv("AMQP_URL"),
			Exchange:    getEnv("AMQP_EXCHANGE", "ledger.events"),
			IngestQueue: getEnv("AMQP_INGEST_QUEUE", "ledger.ingest"),
			Prefetch:    getEnvInt("AMQP_PREFETCH", 10),
		},
		Scheduler: SchedulerConfig{
			Enabled:       getEnvBool("SCHEDULER_ENABLED", true),
			ReconcileSpec: getEnv("SCHEDULER_RECONCILE_SPEC", "@daily"),
			GoalSweepSpec: getEnv("SCHEDULER_GOAL_SWEEP_SPEC", "@hourly"),
			ReconcileFix:  getEnvBool("SCHEDULER_RECONCILE_FIX", false),
		},
		Ledger: LedgerConfig{
			ReconcileConcurrency: getEnvInt("LEDGER_RECONCILE_CONCURRENCY", 4),
			RateLimitPerMinute:   getEnvInt("LEDGER_RATE_LIMIT_PER_MINUTE", 100),
		},
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the environment configuration and overlays the TOML file at path.
func LoadFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("lendo arquivo de configuração %s: %w", path, err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) finalize() error {
	if c.Database.DSN == "" && c.Database.Driver == DriverPostgres {
		c.Database.DSN = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
			c.Database.Host, c.Database.User, c.Database.Password, c.Database.DBName, c.Database.Port, c.Database.SSLMode,
		)
	}
	if c.Database.DSN == "" && c.Database.Driver == DriverSQLite {
		c.Database.DSN = c.Database.DBName + ".db"
	}
	c.Database.ConnMaxLifetime = time.Duration(c.Database.LifetimeMinutes) * time.Minute
	return c.Validate()
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER inválido: %q", c.Database.Driver)
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS deve ser positivo")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("DB_MAX_IDLE_CONNS não pode ser negativo")
	}
	if c.Ledger.ReconcileConcurrency <= 0 {
		return fmt.Errorf("LEDGER_RECONCILE_CONCURRENCY deve ser positivo")
	}
	if c.Ledger.RateLimitPerMinute <= 0 {
		return fmt.Errorf("LEDGER_RATE_LIMIT_PER_MINUTE deve ser positivo")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT é obrigatório")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
