package cmd

import (
	"fmt"

	"github.com/Toston-App/lake-sub000/internal/domain/reconcile"
	"github.com/Toston-App/lake-sub000/internal/infrastructure"
	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/spf13/cobra"
)

var (
	flagReconcileUser string
	flagReconcileFix  bool
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compara os agregados armazenados com os recalculados a partir das transações",
	RunE:  runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVarP(&flagReconcileUser, "user", "u", "", "Reconciliar apenas este usuário (ULID)")
	reconcileCmd.Flags().BoolVar(&flagReconcileFix, "fix", false, "Gravar os valores recalculados")
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeDb(db)

	repos := infrastructure.NewRepositories(db)
	svc := reconcile.NewService(repos.Reconcile, repos.Transactor, cfg.Ledger.ReconcileConcurrency)

	var reports []*reconcile.Report
	if flagReconcileUser != "" {
		userID, err := pkg.ParseULID(flagReconcileUser)
		if err != nil {
			return fmt.Errorf("--user inválido: %w", err)
		}
		report, err := svc.Reconcile(cmd.Context(), userID, flagReconcileFix)
		if err != nil {
			return err
		}
		reports = append(reports, report)
	} else {
		reports, err = svc.ReconcileAll(cmd.Context(), flagReconcileFix)
		if err != nil {
			return err
		}
	}

	drifted := 0
	for _, r := range reports {
		if r.Clean() {
			continue
		}
		drifted++
		fmt.Printf("usuário %s: %d divergência(s)\n", r.UserId, len(r.Drifts))
		for _, d := range r.Drifts {
			fmt.Printf("  %-12s %s %-16s armazenado=%s esperado=%s\n",
				d.Entity, d.Id, d.Field, d.Stored.StringFixed(2), d.Expected.StringFixed(2))
		}
	}
	fmt.Printf("%d usuário(s) verificados, %d com divergências\n", len(reports), drifted)
	return nil
}
