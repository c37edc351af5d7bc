package fx

import (
	"context"
	"errors"

	"github.com/Toston-App/lake-sub000/internal/amqp"
	"github.com/Toston-App/lake-sub000/internal/domain/ledger"
	"github.com/Toston-App/lake-sub000/internal/logger"
	"github.com/Toston-App/lake-sub000/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		newIngestWorker,
	),
	fx.Invoke(
		startIngestConsumer,
	),
)

func newIngestWorker(engine *ledger.Engine) *worker.IngestWorker {
	return worker.NewIngestWorker(engine)
}

func startIngestConsumer(lc fx.Lifecycle, shutdowner fx.Shutdowner, client *amqp.Client, w *worker.IngestWorker) error {
	if client == nil {
		return errors.New("AMQP_URL é obrigatório para o worker de ingestão")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				if err := client.ConsumeWithRetry(ctx, w.Handle); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error().Err(err).Msg("Consumo de mensagens encerrado com erro")
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
	return nil
}
