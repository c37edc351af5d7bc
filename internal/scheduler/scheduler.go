package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Toston-App/lake-sub000/config"
	"github.com/Toston-App/lake-sub000/internal/domain/reconcile"
	"github.com/Toston-App/lake-sub000/internal/logger"

	"github.com/robfig/cron/v3"
)

type Reconciler interface {
	ReconcileAll(ctx context.Context, fix bool) ([]*reconcile.Report, error)
}

type GoalSweeper interface {
	SweepOverdue(ctx context.Context) (int64, error)
}

// Scheduler runs the periodic aggregate reconciliation and the overdue goal sweep.
type Scheduler struct {
	cron       *cron.Cron
	reconciler Reconciler
	goals      GoalSweeper
	fix        bool
	timeout    time.Duration
}

func New(cfg config.SchedulerConfig, reconciler Reconciler, goals GoalSweeper) (*Scheduler, error) {
	s := &Scheduler{
		cron:       cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		reconciler: reconciler,
		goals:      goals,
		fix:        cfg.ReconcileFix,
		timeout:    30 * time.Minute,
	}

	// an empty cron expression disables the job
	if cfg.ReconcileSpec != "" {
		if _, err := s.cron.AddFunc(cfg.ReconcileSpec, s.runReconcile); err != nil {
			return nil, fmt.Errorf("agendando reconciliação: %w", err)
		}
	}
	if cfg.GoalSweepSpec != "" {
		if _, err := s.cron.AddFunc(cfg.GoalSweepSpec, s.runGoalSweep); err != nil {
			return nil, fmt.Errorf("agendando varredura de metas: %w", err)
		}
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info().Int("jobs", len(s.cron.Entries())).Msg("Agendador iniciado")
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		logger.Info().Msg("Agendador encerrado")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) runReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	reports, err := s.reconciler.ReconcileAll(ctx, s.fix)
	if err != nil {
		logger.Error().Err(err).Msg("Erro na reconciliação agendada")
		return
	}

	drifted := 0
	for _, r := range reports {
		if !r.Clean() {
			drifted++
		}
	}
	logger.Info().
		Int("users", len(reports)).
		Int("drifted", drifted).
		Bool("fix", s.fix).
		Dur("elapsed", time.Since(start)).
		Msg("Reconciliação agendada concluída")
}

func (s *Scheduler) runGoalSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.goals.SweepOverdue(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Erro ao marcar metas vencidas")
		return
	}
	logger.Info().Int64("goals", n).Msg("Metas vencidas atualizadas")
}
