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

type IncomeInput struct {
	Amount        decimal.Decimal
	Date          time.Time
	Description   string
	AccountId     *ulid.ULID
	SubcategoryId *ulid.ULID
	PlaceId       *ulid.ULID
}

type IncomeChanges struct {
	Amount        *decimal.Decimal
	Date          *time.Time
	Description   *string
	AccountId     *transaction.RefUpdate
	SubcategoryId *transaction.RefUpdate
	PlaceId       *transaction.RefUpdate
}

func (e *Engine) CreateIncome(ctx context.Context, userID ulid.ULID, in IncomeInput) (*Result[*transaction.Income], error) {
	var (
		res *Result[*transaction.Income]
		ev  Event
	)
	err := e.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		res, ev, err = e.createIncome(ctx, userID, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	e.publish(ctx, ev)
	return res, nil
}

func (e *Engine) createIncome(ctx context.Context, userID ulid.ULID, in IncomeInput) (*Result[*transaction.Income], Event, error) {
	if err := validateAmountDate(in.Amount, in.Date); err != nil {
		return nil, Event{}, err
	}
	if err := e.ensureUser(ctx, userID); err != nil {
		return nil, Event{}, err
	}

	now := e.now()
	inc := &transaction.Income{
		Id:          pkg.GenerateULIDObject(),
		UserId:      userID,
		Amount:      in.Amount,
		Date:        pkg.TruncateToDay(in.Date),
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var dropped []Reference
	if err := e.moveIncome(ctx, nil, inc, in.AccountId, in.SubcategoryId, &dropped); err != nil {
		return nil, Event{}, err
	}

	var err error
	if inc.PlaceId, err = e.resolvePlace(ctx, userID, nil, in.PlaceId, &dropped); err != nil {
		return nil, Event{}, err
	}

	if err := e.Transactions.CreateIncome(ctx, inc); err != nil {
		return nil, Event{}, appErrors.NewDatabaseError(err)
	}

	logDropped(transaction.KindIncome, inc.Id, dropped)
	return newResult(inc, dropped), e.event(ActionCreated, transaction.KindIncome, inc.Id, userID, inc.Amount, inc.Date), nil
}

// moveIncome moves account, subcategory (cascading to its category) and user aggregates.
func (e *Engine) moveIncome(
	ctx context.Context,
	old *transaction.Income,
	next *transaction.Income,
	accountID, subcategoryID *ulid.ULID,
	dropped *[]Reference,
) error {
	var (
		oldAccount, oldSubcategory *ulid.ULID
		oldAmount                  = decimal.Zero
	)
	if old != nil {
		oldAccount, oldSubcategory = old.AccountId, old.SubcategoryId
		oldAmount = old.Amount
	}

	var err error
	userID := next.UserId

	next.AccountId, err = moveRef(ctx, e.accountApplier(userID, account.IncomeDelta), FieldAccount,
		oldAccount, oldAmount, accountID, next.Amount, dropped)
	if err != nil {
		return err
	}

	next.SubcategoryId, err = moveRef(ctx, e.subcategoryApplier(userID, true), FieldSubcategory,
		oldSubcategory, oldAmount, subcategoryID, next.Amount, dropped)
	if err != nil {
		return err
	}

	return e.moveUser(ctx, userID, user.IncomeDelta(next.Amount.Sub(oldAmount)))
}

func (e *Engine) UpdateIncome(ctx context.Context, userID, id ulid.ULID, ch IncomeChanges) (*Result[*transaction.Income], error) {
	var (
		res *Result[*transaction.Income]
		ev  Event
	)
	err := e.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		old, err := e.loadIncome(ctx, id, userID)
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
		if err := e.moveIncome(ctx, old, &next,
			accountID,
			ch.SubcategoryId.Resolve(old.SubcategoryId),
			&dropped,
		); err != nil {
			return err
		}

		if next.PlaceId, err = e.resolvePlace(ctx, userID, old.PlaceId, ch.PlaceId.Resolve(old.PlaceId), &dropped); err != nil {
			return err
		}

		next.UpdatedAt = e.now()
		if err := e.Transactions.UpdateIncome(ctx, &next); err != nil {
			return appErrors.NewDatabaseError(err)
		}

		logDropped(transaction.KindIncome, next.Id, dropped)
		res = newResult(&next, dropped)
		ev = e.event(ActionUpdated, transaction.KindIncome, next.Id, userID, next.Amount, next.Date)
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.publish(ctx, ev)
	return res, nil
}

func (e *Engine) DeleteIncome(ctx context.Context, userID, id ulid.ULID) error {
	var ev Event
	err := e.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		ev, err = e.deleteIncome(ctx, userID, id)
		return err
	})
	if err != nil {
		return err
	}
	e.publish(ctx, ev)
	return nil
}

func (e *Engine) deleteIncome(ctx context.Context, userID, id ulid.ULID) (Event, error) {
	old, err := e.loadIncome(ctx, id, userID)
	if err != nil {
		return Event{}, err
	}

	gone := &transaction.Income{Id: old.Id, UserId: userID, Amount: decimal.Zero}
	var dropped []Reference
	if err := e.moveIncome(ctx, old, gone, nil, nil, &dropped); err != nil {
		return Event{}, err
	}

	if err := e.Transactions.DeleteIncome(ctx, id, userID); err != nil {
		return Event{}, appErrors.NewDatabaseError(err)
	}

	return e.event(ActionDeleted, transaction.KindIncome, old.Id, userID, old.Amount, old.Date), nil
}

func (e *Engine) loadIncome(ctx context.Context, id, userID ulid.ULID) (*transaction.Income, error) {
	inc, err := e.Transactions.GetIncome(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrTransactionNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return inc, nil
}
