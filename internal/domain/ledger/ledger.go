// Package ledger keeps account, category, subcategory, user and goal aggregates
// consistent with the expenses, incomes and transfers that move them.
//
// Every mutation runs inside a single database transaction: aggregates are
// updated under row locks in the fixed order account, category, subcategory,
// user, goal and the transaction row is written last. Any error rolls back the
// whole mutation.
package ledger

import (
	"context"
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/account"
	"github.com/Toston-App/lake-sub000/internal/domain/category"
	"github.com/Toston-App/lake-sub000/internal/domain/goal"
	"github.com/Toston-App/lake-sub000/internal/domain/shared"
	"github.com/Toston-App/lake-sub000/internal/domain/transaction"
	"github.com/Toston-App/lake-sub000/internal/domain/user"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/logger"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type AccountStore interface {
	ApplyDelta(ctx context.Context, accountID, userID ulid.ULID, d account.Delta) (*account.Account, bool, error)
	Lock(ctx context.Context, userID ulid.ULID, ids ...ulid.ULID) (map[ulid.ULID]*account.Account, error)
}

type CategoryStore interface {
	ApplyDelta(ctx context.Context, categoryID, userID ulid.ULID, amount decimal.Decimal) (*category.Category, bool, error)
	ApplySubcategoryDelta(ctx context.Context, subcategoryID, userID ulid.ULID, amount decimal.Decimal, cascade bool) (*category.Subcategory, bool, error)
}

type UserStore interface {
	Exists(ctx context.Context, id ulid.ULID) (bool, error)
	ApplyDelta(ctx context.Context, id ulid.ULID, d user.Delta) (*user.User, bool, error)
}

type GoalStore interface {
	Exists(ctx context.Context, id, userID ulid.ULID) (bool, error)
	ApplyDelta(ctx context.Context, id, userID ulid.ULID, delta decimal.Decimal, now time.Time) (*goal.Goal, bool, error)
	Recalculate(ctx context.Context, id, userID ulid.ULID, now time.Time) (*goal.Goal, bool, error)
}

type PlaceStore interface {
	Exists(ctx context.Context, placeID, userID ulid.ULID) (bool, error)
}

type Engine struct {
	Transactor   shared.Transactor
	Transactions transaction.Repository
	Accounts     AccountStore
	Categories   CategoryStore
	Users        UserStore
	Goals        GoalStore
	Places       PlaceStore
	Publisher    Publisher
	Now          func() time.Time
}

func NewEngine(
	transactor shared.Transactor,
	transactions transaction.Repository,
	accounts AccountStore,
	categories CategoryStore,
	users UserStore,
	goals GoalStore,
	places PlaceStore,
	publisher Publisher,
) *Engine {
	return &Engine{
		Transactor:   transactor,
		Transactions: transactions,
		Accounts:     accounts,
		Categories:   categories,
		Users:        users,
		Goals:        goals,
		Places:       places,
		Publisher:    publisher,
		Now:          time.Now,
	}
}

// Reference is an optional reference that did not resolve for the owner and was nulled.
type Reference struct {
	Field string    `json:"field"`
	Id    ulid.ULID `json:"id"`
}

type Result[T any] struct {
	Transaction       T           `json:"transaction"`
	DroppedReferences []Reference `json:"droppedReferences"`
}

func newResult[T any](tx T, dropped []Reference) *Result[T] {
	if dropped == nil {
		dropped = make([]Reference, 0)
	}
	return &Result[T]{Transaction: tx, DroppedReferences: dropped}
}

const (
	FieldAccount     = "account_id"
	FieldCategory    = "category_id"
	FieldSubcategory = "subcategory_id"
	FieldPlace       = "place_id"
	FieldGoal        = "goal_id"
	FieldFromAccount = "from_acc"
	FieldToAccount   = "to_acc"
)

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Engine) ensureUser(ctx context.Context, userID ulid.ULID) error {
	ok, err := e.Users.Exists(ctx, userID)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	if !ok {
		return appErrors.ErrUserNotFound
	}
	return nil
}

func (e *Engine) moveUser(ctx context.Context, userID ulid.ULID, d user.Delta) error {
	if d.IsZero() {
		return nil
	}
	_, found, err := e.Users.ApplyDelta(ctx, userID, d)
	if err != nil {
		return storeError(err)
	}
	if !found {
		return appErrors.ErrUserNotFound
	}
	return nil
}

// resolvePlace keeps the place only when it belongs to the owner.
func (e *Engine) resolvePlace(ctx context.Context, userID ulid.ULID, old, next *ulid.ULID, dropped *[]Reference) (*ulid.ULID, error) {
	if next == nil || sameRef(old, next) {
		return next, nil
	}
	ok, err := e.Places.Exists(ctx, *next, userID)
	if err != nil {
		return nil, storeError(err)
	}
	if !ok {
		*dropped = append(*dropped, Reference{Field: FieldPlace, Id: *next})
		return nil, nil
	}
	return next, nil
}

// resolveGoal keeps the goal only when it belongs to the owner.
func (e *Engine) resolveGoal(ctx context.Context, userID ulid.ULID, old, next *ulid.ULID, dropped *[]Reference) (*ulid.ULID, error) {
	if next == nil || sameRef(old, next) {
		return next, nil
	}
	ok, err := e.Goals.Exists(ctx, *next, userID)
	if err != nil {
		return nil, storeError(err)
	}
	if !ok {
		*dropped = append(*dropped, Reference{Field: FieldGoal, Id: *next})
		return nil, nil
	}
	return next, nil
}

// recalculateGoals rebuilds every distinct goal from the transactions still linked to it.
func (e *Engine) recalculateGoals(ctx context.Context, userID ulid.ULID, ids ...*ulid.ULID) error {
	seen := make(map[ulid.ULID]struct{}, len(ids))
	for _, id := range ids {
		if id == nil {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		if _, _, err := e.Goals.Recalculate(ctx, *id, userID, e.now()); err != nil {
			return storeError(err)
		}
	}
	return nil
}

func storeError(err error) error {
	if appErrors.IsAppError(err) {
		return err
	}
	return appErrors.NewDatabaseError(err)
}

// amountScale matches the decimal(15,2) columns.
const amountScale = 2

func validateAmountDate(amount decimal.Decimal, date time.Time) error {
	if !amount.IsPositive() {
		return appErrors.NewValidationError("amount", "deve ser maior que zero")
	}
	if !amount.Equal(amount.Round(amountScale)) {
		return appErrors.NewValidationError("amount", "deve ter no máximo 2 casas decimais")
	}
	if date.IsZero() {
		return appErrors.NewValidationError("date", "é obrigatório")
	}
	return nil
}

func logDropped(kind transaction.Kind, id ulid.ULID, dropped []Reference) {
	for _, ref := range dropped {
		logger.Warn().
			Str("kind", string(kind)).
			Str("transaction_id", id.String()).
			Str("field", ref.Field).
			Str("reference_id", ref.Id.String()).
			Msg("Referência não encontrada, removida da transação")
	}
}
