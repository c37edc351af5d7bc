package ledger

import (
	"context"
	"fmt"

	"github.com/Toston-App/lake-sub000/internal/domain/transaction"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"

	"github.com/oklog/ulid/v2"
)

// BulkCreateExpenses applies CreateExpense to every input inside one transaction.
// The first failing item aborts the whole batch.
func (e *Engine) BulkCreateExpenses(ctx context.Context, userID ulid.ULID, inputs []ExpenseInput) ([]*Result[*transaction.Expense], error) {
	results := make([]*Result[*transaction.Expense], 0, len(inputs))
	events := make([]Event, 0, len(inputs))

	err := e.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for i, in := range inputs {
			res, ev, err := e.createExpense(ctx, userID, in)
			if err != nil {
				return bulkItemError(i, err)
			}
			results = append(results, res)
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.publish(ctx, events...)
	return results, nil
}

func (e *Engine) BulkCreateIncomes(ctx context.Context, userID ulid.ULID, inputs []IncomeInput) ([]*Result[*transaction.Income], error) {
	results := make([]*Result[*transaction.Income], 0, len(inputs))
	events := make([]Event, 0, len(inputs))

	err := e.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for i, in := range inputs {
			res, ev, err := e.createIncome(ctx, userID, in)
			if err != nil {
				return bulkItemError(i, err)
			}
			results = append(results, res)
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.publish(ctx, events...)
	return results, nil
}

func (e *Engine) BulkCreateTransfers(ctx context.Context, userID ulid.ULID, inputs []TransferInput) ([]*Result[*transaction.Transfer], error) {
	results := make([]*Result[*transaction.Transfer], 0, len(inputs))
	events := make([]Event, 0, len(inputs))

	err := e.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for i, in := range inputs {
			res, ev, err := e.createTransfer(ctx, userID, in)
			if err != nil {
				return bulkItemError(i, err)
			}
			results = append(results, res)
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.publish(ctx, events...)
	return results, nil
}

// BulkDelete removes every id of the given kind inside one transaction.
func (e *Engine) BulkDelete(ctx context.Context, userID ulid.ULID, kind transaction.Kind, ids []ulid.ULID) error {
	var remove func(context.Context, ulid.ULID, ulid.ULID) (Event, error)
	switch kind {
	case transaction.KindExpense:
		remove = e.deleteExpense
	case transaction.KindIncome:
		remove = e.deleteIncome
	case transaction.KindTransfer:
		remove = e.deleteTransfer
	default:
		return appErrors.NewValidationError("type", fmt.Sprintf("tipo de transação inválido: %s", kind))
	}

	events := make([]Event, 0, len(ids))
	err := e.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for i, id := range ids {
			ev, err := remove(ctx, userID, id)
			if err != nil {
				return bulkItemError(i, err)
			}
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		return err
	}
	e.publish(ctx, events...)
	return nil
}

func bulkItemError(index int, err error) error {
	appErr := appErrors.FromError(err)
	return appErr.WithDetails(mergeDetails(appErr.Details, map[string]interface{}{"index": index}))
}

func mergeDetails(base, extra map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
