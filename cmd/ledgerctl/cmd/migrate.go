package cmd

import (
	"fmt"

	"github.com/Toston-App/lake-sub000/internal/infrastructure"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica as migrações do banco de dados",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, _ []string) error {
	_, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeDb(db)

	if err := infrastructure.RunMigrations(db); err != nil {
		return err
	}
	fmt.Println("Migrações aplicadas")
	return nil
}
