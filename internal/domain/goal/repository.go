package goal

import (
	"context"
	"time"

	"github.com/Toston-App/lake-sub000/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type GoalFilters struct {
	Status *GoalStatus
}

type Repository interface {
	Create(ctx context.Context, goal *Goal) error
	Update(ctx context.Context, goal *Goal) error
	// Delete removes the goal and unlinks every transaction pointing at it.
	Delete(ctx context.Context, id, userID ulid.ULID) error
	GetByIDAndUser(ctx context.Context, id, userID ulid.ULID) (*Goal, error)
	Exists(ctx context.Context, id, userID ulid.ULID) (bool, error)
	GetByUserID(ctx context.Context, userID ulid.ULID, filters *GoalFilters, page query.Page) (*query.Result[*Goal], error)
	// ApplyDelta locks the goal row, moves the current amount and refreshes the status.
	ApplyDelta(ctx context.Context, id, userID ulid.ULID, delta decimal.Decimal, now time.Time) (*Goal, bool, error)
	// Recalculate sets the current amount to linked transfers minus linked expenses.
	Recalculate(ctx context.Context, id, userID ulid.ULID, now time.Time) (*Goal, bool, error)
	// MarkOverdue flags active goals whose deadline is before the given day.
	MarkOverdue(ctx context.Context, today time.Time) (int64, error)
}
