package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/account"
	"github.com/Toston-App/lake-sub000/internal/domain/transaction"
	"github.com/Toston-App/lake-sub000/internal/domain/user"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseInput struct {
	Amount        decimal.Decimal
	Date          time.Time
	Description   string
	AccountId     *ulid.ULID
	CategoryId    *ulid.ULID
	SubcategoryId *ulid.ULID
	PlaceId       *ulid.ULID
	GoalId        *ulid.ULID
}

type ExpenseChanges struct {
	Amount        *decimal.Decimal
	Date          *time.Time
	Description   *string
	AccountId     *transaction.RefUpdate
	CategoryId    *transaction.RefUpdate
	SubcategoryId *transaction.RefUpdate
	PlaceId       *transaction.RefUpdate
	GoalId        *transaction.RefUpdate
}

func (e *Engine) CreateExpense(ctx context.Context, userID ulid.ULID, in ExpenseInput) (*Result[*transaction.Expense], error) {
	var (
		res *Result[*transaction.Expense]
		ev  Event
	)
	err := e.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		res, ev, err = e.createExpense(ctx, userID, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	e.publish(ctx, ev)
	return res, nil
}

func (e *Engine) createExpense(ctx context.Context, userID ulid.ULID, in ExpenseInput) (*Result[*transaction.Expense], Event, error) {
	if err := validateAmountDate(in.Amount, in.Date); err != nil {
		return nil, Event{}, err
	}
	if err := e.ensureUser(ctx, userID); err != nil {
		return nil, Event{}, err
	}

	now := e.now()
	exp := &transaction.Expense{
		Id:          pkg.GenerateULIDObject(),
		UserId:      userID,
		Amount:      in.Amount,
		Date:        pkg.TruncateToDay(in.Date),
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var dropped []Reference
	if err := e.moveExpense(ctx, nil, exp, in.AccountId, in.CategoryId, in.SubcategoryId, &dropped); err != nil {
		return nil, Event{}, err
	}

	var err error
	if exp.PlaceId, err = e.resolvePlace(ctx, userID, nil, in.PlaceId, &dropped); err != nil {
		return nil, Event{}, err
	}

	if in.GoalId != nil {
		exp.GoalId, err = moveRef(ctx, e.goalApplier(userID, -1), FieldGoal, nil, decimal.Zero, in.GoalId, exp.Amount, &dropped)
		if err != nil {
			return nil, Event{}, err
		}
	}

	if err := e.Transactions.CreateExpense(ctx, exp); err != nil {
		return nil, Event{}, appErrors.NewDatabaseError(err)
	}

	logDropped(transaction.KindExpense, exp.Id, dropped)
	return newResult(exp, dropped), e.event(ActionCreated, transaction.KindExpense, exp.Id, userID, exp.Amount, exp.Date), nil
}

// moveExpense moves account, category, subcategory and user aggregates from old to next.
// old is nil on create; next carries the amount and receives the surviving references.
func (e *Engine) moveExpense(
	ctx context.Context,
	old *transaction.Expense,
	next *transaction.Expense,
	accountID, categoryID, subcategoryID *ulid.ULID,
	dropped *[]Reference,
) error {
	var (
		oldAccount, oldCategory, oldSubcategory *ulid.ULID
		oldAmount                               = decimal.Zero
	)
	if old != nil {
		oldAccount, oldCategory, oldSubcategory = old.AccountId, old.CategoryId, old.SubcategoryId
		oldAmount = old.Amount
	}

	var err error
	userID := next.UserId

	next.AccountId, err = moveRef(ctx, e.accountApplier(userID, account.ExpenseDelta), FieldAccount,
		oldAccount, oldAmount, accountID, next.Amount, dropped)
	if err != nil {
		return err
	}

	next.CategoryId, err = moveRef(ctx, e.categoryApplier(userID), FieldCategory,
		oldCategory, oldAmount, categoryID, next.Amount, dropped)
	if err != nil {
		return err
	}

	next.SubcategoryId, err = moveRef(ctx, e.subcategoryApplier(userID, false), FieldSubcategory,
		oldSubcategory, oldAmount, subcategoryID, next.Amount, dropped)
	if err != nil {
		return err
	}

	return e.moveUser(ctx, userID, user.OutcomeDelta(next.Amount.Sub(oldAmount)))
}

func (e *Engine) UpdateExpense(ctx context.Context, userID, id ulid.ULID, ch ExpenseChanges) (*Result[*transaction.Expense], error) {
	var (
		res *Result[*transaction.Expense]
		ev  Event
	)
	err := e.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		old, err := e.loadExpense(ctx, id, userID)
		if err != nil {
			return err
		}

		next := *old
		if ch.Amount != nil {
			next.Amount = *ch.Amount
		}
		if ch.Date != nil {
			next.Date = pkg.TruncateToDay(*ch.Date)
		}
		if ch.Description != nil {
			next.Description = strings.TrimSpace(*ch.Description)
		}
		if err := validateAmountDate(next.Amount, next.Date); err != nil {
			return err
		}

		accountID := ch.AccountId.Resolve(old.AccountId)
		if err := e.lockAccounts(ctx, userID, old.AccountId, accountID); err != nil {
			return err
		}

		var dropped []Reference
		if err := e.moveExpense(ctx, old, &next,
			accountID,
			ch.CategoryId.Resolve(old.CategoryId),
			ch.SubcategoryId.Resolve(old.SubcategoryId),
			&dropped,
		); err != nil {
			return err
		}

		if next.PlaceId, err = e.resolvePlace(ctx, userID, old.PlaceId, ch.PlaceId.Resolve(old.PlaceId), &dropped); err != nil {
			return err
		}
		if next.GoalId, err = e.resolveGoal(ctx, userID, old.GoalId, ch.GoalId.Resolve(old.GoalId), &dropped); err != nil {
			return err
		}

		next.UpdatedAt = e.now()
		if err := e.Transactions.UpdateExpense(ctx, &next); err != nil {
			return appErrors.NewDatabaseError(err)
		}

		if !sameRef(old.GoalId, next.GoalId) || !old.Amount.Equal(next.Amount) {
			if err := e.recalculateGoals(ctx, userID, old.GoalId, next.GoalId); err != nil {
				return err
			}
		}

		logDropped(transaction.KindExpense, next.Id, dropped)
		res = newResult(&next, dropped)
		ev = e.event(ActionUpdated, transaction.KindExpense, next.Id, userID, next.Amount, next.Date)
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.publish(ctx, ev)
	return res, nil
}

func (e *Engine) DeleteExpense(ctx context.Context, userID, id ulid.ULID) error {
	var ev Event
	err := e.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		ev, err = e.deleteExpense(ctx, userID, id)
		return err
	})
	if err != nil {
		return err
	}
	e.publish(ctx, ev)
	return nil
}

func (e *Engine) deleteExpense(ctx context.Context, userID, id ulid.ULID) (Event, error) {
	old, err := e.loadExpense(ctx, id, userID)
	if err != nil {
		return Event{}, err
	}

	gone := &transaction.Expense{Id: old.Id, UserId: userID, Amount: decimal.Zero}
	var dropped []Reference
	if err := e.moveExpense(ctx, old, gone, nil, nil, nil, &dropped); err != nil {
		return Event{}, err
	}

	if err := e.Transactions.DeleteExpense(ctx, id, userID); err != nil {
		return Event{}, appErrors.NewDatabaseError(err)
	}

	if err := e.recalculateGoals(ctx, userID, old.GoalId); err != nil {
		return Event{}, err
	}

	return e.event(ActionDeleted, transaction.KindExpense, old.Id, userID, old.Amount, old.Date), nil
}

func (e *Engine) loadExpense(ctx context.Context, id, userID ulid.ULID) (*transaction.Expense, error) {
	exp, err := e.Transactions.GetExpense(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrTransactionNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return exp, nil
}
