package fx

import (
	"context"

	"github.com/Toston-App/lake-sub000/config"
	"github.com/Toston-App/lake-sub000/internal/domain/goal"
	"github.com/Toston-App/lake-sub000/internal/domain/reconcile"
	"github.com/Toston-App/lake-sub000/internal/logger"
	"github.com/Toston-App/lake-sub000/internal/scheduler"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Invoke(
		startScheduler,
	),
)

func startScheduler(lc fx.Lifecycle, cfg *config.Config, reconciler *reconcile.Service, goals *goal.Service) error {
	if !cfg.Scheduler.Enabled {
		logger.Info().Msg("Agendador desabilitado (SCHEDULER_ENABLED=false)")
		return nil
	}

	s, err := scheduler.New(cfg.Scheduler, reconciler, goals)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
	return nil
}
