package transaction

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	UpdateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, id, userID ulid.ULID) error
	GetExpense(ctx context.Context, id, userID ulid.ULID) (*Expense, error)

	CreateIncome(ctx context.Context, i *Income) error
	UpdateIncome(ctx context.Context, i *Income) error
	DeleteIncome(ctx context.Context, id, userID ulid.ULID) error
	GetIncome(ctx context.Context, id, userID ulid.ULID) (*Income, error)

	CreateTransfer(ctx context.Context, t *Transfer) error
	UpdateTransfer(ctx context.Context, t *Transfer) error
	DeleteTransfer(ctx context.Context, id, userID ulid.ULID) error
	GetTransfer(ctx context.Context, id, userID ulid.ULID) (*Transfer, error)
}
