package ledger

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/account"
	"github.com/Toston-App/lake-sub000/internal/domain/transaction"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransferInput struct {
	Amount        decimal.Decimal
	Date          time.Time
	Description   string
	FromAccountId ulid.ULID
	ToAccountId   ulid.ULID
	GoalId        *ulid.ULID
}

type TransferChanges struct {
	Amount        *decimal.Decimal
	Date          *time.Time
	Description   *string
	FromAccountId *ulid.ULID
	ToAccountId   *ulid.ULID
	GoalId        *transaction.RefUpdate
}

func (e *Engine) CreateTransfer(ctx context.Context, userID ulid.ULID, in TransferInput) (*Result[*transaction.Transfer], error) {
	var (
		res *Result[*transaction.Transfer]
		ev  Event
	)
	err := e.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		res, ev, err = e.createTransfer(ctx, userID, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	e.publish(ctx, ev)
	return res, nil
}

func (e *Engine) createTransfer(ctx context.Context, userID ulid.ULID, in TransferInput) (*Result[*transaction.Transfer], Event, error) {
	if err := validateTransfer(in.Amount, in.Date, in.FromAccountId, in.ToAccountId); err != nil {
		return nil, Event{}, err
	}
	if err := e.ensureUser(ctx, userID); err != nil {
		return nil, Event{}, err
	}
	if err := e.lockEndpoints(ctx, userID, in.FromAccountId, in.ToAccountId); err != nil {
		return nil, Event{}, err
	}

	now := e.now()
	tr := &transaction.Transfer{
		Id:            pkg.GenerateULIDObject(),
		UserId:        userID,
		Amount:        in.Amount,
		Date:          pkg.TruncateToDay(in.Date),
		Description:   strings.TrimSpace(in.Description),
		FromAccountId: in.FromAccountId,
		ToAccountId:   in.ToAccountId,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := e.moveTransfer(ctx, nil, tr); err != nil {
		return nil, Event{}, err
	}

	var dropped []Reference
	if in.GoalId != nil {
		var err error
		tr.GoalId, err = moveRef(ctx, e.goalApplier(userID, 1), FieldGoal, nil, decimal.Zero, in.GoalId, tr.Amount, &dropped)
		if err != nil {
			return nil, Event{}, err
		}
	}

	if err := e.Transactions.CreateTransfer(ctx, tr); err != nil {
		return nil, Event{}, appErrors.NewDatabaseError(err)
	}

	logDropped(transaction.KindTransfer, tr.Id, dropped)
	return newResult(tr, dropped), e.event(ActionCreated, transaction.KindTransfer, tr.Id, userID, tr.Amount, tr.Date), nil
}

// moveTransfer moves the transfers-out total of the source and the transfers-in total of
// the destination. Both endpoints of next must already be locked and resolved.
func (e *Engine) moveTransfer(ctx context.Context, old, next *transaction.Transfer) error {
	var (
		oldFrom, oldTo *ulid.ULID
		oldAmount      = decimal.Zero
	)
	if old != nil {
		oldFrom, oldTo = &old.FromAccountId, &old.ToAccountId
		oldAmount = old.Amount
	}

	var (
		newFrom, newTo *ulid.ULID
		newAmount      = decimal.Zero
	)
	if next != nil {
		newFrom, newTo = &next.FromAccountId, &next.ToAccountId
		newAmount = next.Amount
	}

	userID := ownerOf(old, next)

	kept, dropped, err := move(ctx, e.accountApplier(userID, account.TransferOutDelta), oldFrom, oldAmount, newFrom, newAmount)
	if err != nil {
		return err
	}
	if dropped || (newFrom != nil && kept == nil) {
		return appErrors.NewRequiredReferenceError(FieldFromAccount, *newFrom)
	}

	kept, dropped, err = move(ctx, e.accountApplier(userID, account.TransferInDelta), oldTo, oldAmount, newTo, newAmount)
	if err != nil {
		return err
	}
	if dropped || (newTo != nil && kept == nil) {
		return appErrors.NewRequiredReferenceError(FieldToAccount, *newTo)
	}
	return nil
}

func (e *Engine) UpdateTransfer(ctx context.Context, userID, id ulid.ULID, ch TransferChanges) (*Result[*transaction.Transfer], error) {
	var (
		res *Result[*transaction.Transfer]
		ev  Event
	)
	err := e.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		old, err := e.loadTransfer(ctx, id, userID)
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
		if ch.FromAccountId != nil {
			next.FromAccountId = *ch.FromAccountId
		}
		if ch.ToAccountId != nil {
			next.ToAccountId = *ch.ToAccountId
		}
		if err := validateTransfer(next.Amount, next.Date, next.FromAccountId, next.ToAccountId); err != nil {
			return err
		}

		if err := e.lockEndpoints(ctx, userID, next.FromAccountId, next.ToAccountId, old.FromAccountId, old.ToAccountId); err != nil {
			return err
		}

		if err := e.moveTransfer(ctx, old, &next); err != nil {
			return err
		}

		var dropped []Reference
		if next.GoalId, err = e.resolveGoal(ctx, userID, old.GoalId, ch.GoalId.Resolve(old.GoalId), &dropped); err != nil {
			return err
		}

		next.UpdatedAt = e.now()
		if err := e.Transactions.UpdateTransfer(ctx, &next); err != nil {
			return appErrors.NewDatabaseError(err)
		}

		if !sameRef(old.GoalId, next.GoalId) || !old.Amount.Equal(next.Amount) {
			if err := e.recalculateGoals(ctx, userID, old.GoalId, next.GoalId); err != nil {
				return err
			}
		}

		logDropped(transaction.KindTransfer, next.Id, dropped)
		res = newResult(&next, dropped)
		ev = e.event(ActionUpdated, transaction.KindTransfer, next.Id, userID, next.Amount, next.Date)
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.publish(ctx, ev)
	return res, nil
}

func (e *Engine) DeleteTransfer(ctx context.Context, userID, id ulid.ULID) error {
	var ev Event
	err := e.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		ev, err = e.deleteTransfer(ctx, userID, id)
		return err
	})
	if err != nil {
		return err
	}
	e.publish(ctx, ev)
	return nil
}

func (e *Engine) deleteTransfer(ctx context.Context, userID, id ulid.ULID) (Event, error) {
	old, err := e.loadTransfer(ctx, id, userID)
	if err != nil {
		return Event{}, err
	}

	if _, err := e.Accounts.Lock(ctx, userID, sortedIDs(old.FromAccountId, old.ToAccountId)...); err != nil {
		return Event{}, storeError(err)
	}
	if err := e.moveTransfer(ctx, old, nil); err != nil {
		return Event{}, err
	}

	if err := e.Transactions.DeleteTransfer(ctx, id, userID); err != nil {
		return Event{}, appErrors.NewDatabaseError(err)
	}

	if err := e.recalculateGoals(ctx, userID, old.GoalId); err != nil {
		return Event{}, err
	}

	return e.event(ActionDeleted, transaction.KindTransfer, old.Id, userID, old.Amount, old.Date), nil
}

// lockEndpoints locks every given account in id order and requires the first two,
// the source and destination, to exist for the owner.
func (e *Engine) lockEndpoints(ctx context.Context, userID, from, to ulid.ULID, extra ...ulid.ULID) error {
	ids := append([]ulid.ULID{from, to}, extra...)
	locked, err := e.Accounts.Lock(ctx, userID, sortedIDs(ids...)...)
	if err != nil {
		return storeError(err)
	}
	if _, ok := locked[from]; !ok {
		return appErrors.NewRequiredReferenceError(FieldFromAccount, from)
	}
	if _, ok := locked[to]; !ok {
		return appErrors.NewRequiredReferenceError(FieldToAccount, to)
	}
	return nil
}

func (e *Engine) loadTransfer(ctx context.Context, id, userID ulid.ULID) (*transaction.Transfer, error) {
	tr, err := e.Transactions.GetTransfer(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrTransactionNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return tr, nil
}

func validateTransfer(amount decimal.Decimal, date time.Time, from, to ulid.ULID) error {
	if err := validateAmountDate(amount, date); err != nil {
		return err
	}
	if pkg.IsEmptyULID(from) {
		return appErrors.NewValidationError(FieldFromAccount, "é obrigatório")
	}
	if pkg.IsEmptyULID(to) {
		return appErrors.NewValidationError(FieldToAccount, "é obrigatório")
	}
	if from == to {
		return appErrors.NewValidationError(FieldToAccount, "deve ser diferente da conta de origem")
	}
	return nil
}

// lockAccounts locks the given accounts in id order before any aggregate moves.
func (e *Engine) lockAccounts(ctx context.Context, userID ulid.ULID, ids ...*ulid.ULID) error {
	present := make([]ulid.ULID, 0, len(ids))
	for _, id := range ids {
		if id != nil {
			present = append(present, *id)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if _, err := e.Accounts.Lock(ctx, userID, sortedIDs(present...)...); err != nil {
		return storeError(err)
	}
	return nil
}

// sortedIDs returns the distinct ids in ascending order so concurrent writers lock in the same order.
func sortedIDs(ids ...ulid.ULID) []ulid.ULID {
	seen := make(map[ulid.ULID]struct{}, len(ids))
	out := make([]ulid.ULID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}

func ownerOf(old, next *transaction.Transfer) ulid.ULID {
	if next != nil {
		return next.UserId
	}
	return old.UserId
}
