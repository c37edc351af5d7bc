package infrastructure

import (
	"fmt"

	"github.com/Toston-App/lake-sub000/config"
	"github.com/Toston-App/lake-sub000/internal/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func NewDb(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.Database)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		logger.Error().
			Err(err).
			Str("driver", cfg.Database.Driver).
			Str("host", cfg.Database.Host).
			Int("port", cfg.Database.Port).
			Str("database", cfg.Database.DBName).
			Msg("Falha ao conectar ao banco de dados")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error().Err(err).Msg("Falha ao obter instância do banco de dados")
		return nil, err
	}

	if cfg.Database.Driver == config.DriverSQLite {
		// sqlite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	logger.Info().
		Str("driver", cfg.Database.Driver).
		Str("database", cfg.Database.DBName).
		Msg("Conexão com banco de dados estabelecida com sucesso")

	return db, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("driver de banco de dados não suportado: %s", cfg.Driver)
	}
}

// RunMigrations creates or updates every ledger table.
func RunMigrations(db *gorm.DB) error {
	logger.Info().Msg("Executando migrations...")

	entities := []interface{}{
		&userDB{},
		&accountDB{},
		&categoryDB{},
		&subcategoryDB{},
		&placeDB{},
		&goalDB{},
		&expenseDB{},
		&incomeDB{},
		&transferDB{},
	}

	for _, entity := range entities {
		if err := db.AutoMigrate(entity); err != nil {
			logger.Error().
				Err(err).
				Str("entity", fmt.Sprintf("%T", entity)).
				Msg("Erro ao migrar entidade")
			return err
		}
	}

	logger.Info().Msg("Migrations executadas com sucesso!")
	return nil
}
