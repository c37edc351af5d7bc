package cmd

import (
	"os"

	"github.com/Toston-App/lake-sub000/config"
	"github.com/Toston-App/lake-sub000/internal/infrastructure"
	"github.com/Toston-App/lake-sub000/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:          "ledgerctl",
	Short:        "Ferramentas de operação do ledger",
	Long:         "Migrações, reconciliação de agregados e geração de dados de teste para o ledger.",
	SilenceUsage: true,
}

// Execute is the entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Arquivo TOML sobreposto às variáveis de ambiente")
}

// bootstrap loads configuration and opens the database shared by every subcommand.
func bootstrap() (*config.Config, *gorm.DB, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadFile(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg)

	db, err := infrastructure.NewDb(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func closeDb(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
