package ledger

import (
	"context"
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/transaction"
	"github.com/Toston-App/lake-sub000/internal/logger"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type Event struct {
	Action        Action           `json:"action"`
	Kind          transaction.Kind `json:"kind"`
	TransactionId ulid.ULID        `json:"transaction_id"`
	UserId        ulid.ULID        `json:"user_id"`
	Amount        decimal.Decimal  `json:"amount"`
	Date          time.Time        `json:"date"`
	OccurredAt    time.Time        `json:"occurred_at"`
}

func (ev Event) RoutingKey() string {
	return "ledger." + string(ev.Kind) + "." + string(ev.Action)
}

func (e *Engine) event(action Action, kind transaction.Kind, id, userID ulid.ULID, amount decimal.Decimal, date time.Time) Event {
	return Event{
		Action:        action,
		Kind:          kind,
		TransactionId: id,
		UserId:        userID,
		Amount:        amount,
		Date:          date,
		OccurredAt:    e.now().UTC(),
	}
}

// publish runs after commit; a failure is logged and never undoes the mutation.
func (e *Engine) publish(ctx context.Context, events ...Event) {
	for _, ev := range events {
		logger.Info().
			Str("action", string(ev.Action)).
			Str("kind", string(ev.Kind)).
			Str("transaction_id", ev.TransactionId.String()).
			Str("user_id", ev.UserId.String()).
			Str("amount", ev.Amount.StringFixed(2)).
			Msg("ledger_mutation")

		if e.Publisher == nil {
			continue
		}
		if err := e.Publisher.Publish(ctx, ev.RoutingKey(), ev); err != nil {
			logger.Error().
				Err(err).
				Str("routing_key", ev.RoutingKey()).
				Str("transaction_id", ev.TransactionId.String()).
				Msg("Falha ao publicar evento do ledger")
		}
	}
}
