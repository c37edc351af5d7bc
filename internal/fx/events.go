package fx

import (
	"context"

	"github.com/Toston-App/lake-sub000/config"
	"github.com/Toston-App/lake-sub000/internal/amqp"
	"github.com/Toston-App/lake-sub000/internal/domain/ledger"
	"github.com/Toston-App/lake-sub000/internal/logger"

	"go.uber.org/fx"
)

// EventsModule connects to the broker when AMQP_URL is set.
var EventsModule = fx.Module("events",
	fx.Provide(
		newAMQPClient,
		newPublisher,
	),
)

// newAMQPClient returns nil when AMQP is disabled.
func newAMQPClient(lc fx.Lifecycle, cfg *config.Config) (*amqp.Client, error) {
	if !cfg.AMQP.Enabled() {
		logger.Info().Msg("AMQP desabilitado (AMQP_URL vazio), eventos do ledger não serão publicados")
		return nil, nil
	}

	client, err := amqp.NewClient(cfg.AMQP)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("exchange", cfg.AMQP.Exchange).
		Str("queue", cfg.AMQP.IngestQueue).
		Msg("Conectado ao broker AMQP")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func newPublisher(client *amqp.Client) ledger.Publisher {
	if client == nil {
		return nil
	}
	return client
}
