package ledger

import (
	"context"

	"github.com/Toston-App/lake-sub000/internal/domain/account"
	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// applyFunc adds amount to one aggregate and reports whether the target exists for the owner.
type applyFunc func(ctx context.Context, id ulid.ULID, amount decimal.Decimal) (bool, error)

// move shifts one aggregate contribution from (oldRef, oldAmount) to (newRef, newAmount).
// A nil oldRef means there was no contribution; a nil newRef means there is none afterwards.
// Reverting against a target that no longer exists is a no-op. When the new target does
// not exist the returned reference is nil and dropped is true.
func move(
	ctx context.Context,
	apply applyFunc,
	oldRef *ulid.ULID,
	oldAmount decimal.Decimal,
	newRef *ulid.ULID,
	newAmount decimal.Decimal,
) (kept *ulid.ULID, dropped bool, err error) {
	if sameRef(oldRef, newRef) && oldAmount.Equal(newAmount) {
		return newRef, false, nil
	}

	if oldRef != nil {
		if _, err := apply(ctx, *oldRef, oldAmount.Neg()); err != nil {
			return nil, false, storeError(err)
		}
	}

	if newRef == nil {
		return nil, false, nil
	}

	found, err := apply(ctx, *newRef, newAmount)
	if err != nil {
		return nil, false, storeError(err)
	}
	if !found {
		return nil, true, nil
	}
	return newRef, false, nil
}

// moveRef runs move and records a dropped reference under field.
func moveRef(
	ctx context.Context,
	apply applyFunc,
	field string,
	oldRef *ulid.ULID,
	oldAmount decimal.Decimal,
	newRef *ulid.ULID,
	newAmount decimal.Decimal,
	dropped *[]Reference,
) (*ulid.ULID, error) {
	kept, lost, err := move(ctx, apply, oldRef, oldAmount, newRef, newAmount)
	if err != nil {
		return nil, err
	}
	if lost {
		*dropped = append(*dropped, Reference{Field: field, Id: *newRef})
	}
	return kept, nil
}

func (e *Engine) accountApplier(userID ulid.ULID, delta func(decimal.Decimal) account.Delta) applyFunc {
	return func(ctx context.Context, id ulid.ULID, amount decimal.Decimal) (bool, error) {
		_, found, err := e.Accounts.ApplyDelta(ctx, id, userID, delta(amount))
		return found, err
	}
}

func (e *Engine) categoryApplier(userID ulid.ULID) applyFunc {
	return func(ctx context.Context, id ulid.ULID, amount decimal.Decimal) (bool, error) {
		_, found, err := e.Categories.ApplyDelta(ctx, id, userID, amount)
		return found, err
	}
}

func (e *Engine) subcategoryApplier(userID ulid.ULID, cascade bool) applyFunc {
	return func(ctx context.Context, id ulid.ULID, amount decimal.Decimal) (bool, error) {
		_, found, err := e.Categories.ApplySubcategoryDelta(ctx, id, userID, amount, cascade)
		return found, err
	}
}

// goalApplier advances the goal by amount times sign: transfers add, expenses subtract.
func (e *Engine) goalApplier(userID ulid.ULID, sign int64) applyFunc {
	return func(ctx context.Context, id ulid.ULID, amount decimal.Decimal) (bool, error) {
		_, found, err := e.Goals.ApplyDelta(ctx, id, userID, amount.Mul(decimal.NewFromInt(sign)), e.now())
		return found, err
	}
}

func sameRef(a, b *ulid.ULID) bool {
	return pkg.SameULID(a, b)
}
