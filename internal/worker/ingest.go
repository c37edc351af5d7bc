package worker

import (
	"context"
	"fmt"

	"github.com/Toston-App/lake-sub000/internal/amqp"
	"github.com/Toston-App/lake-sub000/internal/domain/ledger"
	"github.com/Toston-App/lake-sub000/internal/domain/transaction"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/logger"
	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Ledger interface {
	CreateExpense(ctx context.Context, userID ulid.ULID, in ledger.ExpenseInput) (*ledger.Result[*transaction.Expense], error)
	CreateIncome(ctx context.Context, userID ulid.ULID, in ledger.IncomeInput) (*ledger.Result[*transaction.Income], error)
	CreateTransfer(ctx context.Context, userID ulid.ULID, in ledger.TransferInput) (*ledger.Result[*transaction.Transfer], error)
}

// IngestWorker turns queued import messages into ledger mutations.
type IngestWorker struct {
	Ledger Ledger
}

func NewIngestWorker(l Ledger) *IngestWorker {
	return &IngestWorker{Ledger: l}
}

// Handle applies msg. Malformed messages and client errors are permanent;
// database failures are returned as-is so the message is redelivered.
func (w *IngestWorker) Handle(ctx context.Context, msg *amqp.IngestMessage) error {
	userID, err := pkg.ParseULID(msg.UserId)
	if err != nil {
		return amqp.Permanent(appErrors.NewValidationError("user_id", err.Error()))
	}
	date, err := pkg.ParseDate(msg.Date)
	if err != nil {
		return amqp.Permanent(appErrors.NewValidationError("date", "deve estar no formato AAAA-MM-DD"))
	}

	var (
		id      ulid.ULID
		dropped []ledger.Reference
	)
	switch msg.Kind {
	case transaction.KindExpense:
		in, err := expenseInput(msg)
		if err != nil {
			return amqp.Permanent(err)
		}
		in.Date = date
		res, err := w.Ledger.CreateExpense(ctx, userID, in)
		if err != nil {
			return classify(err)
		}
		id, dropped = res.Transaction.Id, res.DroppedReferences

	case transaction.KindIncome:
		in, err := incomeInput(msg)
		if err != nil {
			return amqp.Permanent(err)
		}
		in.Date = date
		res, err := w.Ledger.CreateIncome(ctx, userID, in)
		if err != nil {
			return classify(err)
		}
		id, dropped = res.Transaction.Id, res.DroppedReferences

	case transaction.KindTransfer:
		in, err := transferInput(msg)
		if err != nil {
			return amqp.Permanent(err)
		}
		in.Date = date
		res, err := w.Ledger.CreateTransfer(ctx, userID, in)
		if err != nil {
			return classify(err)
		}
		id, dropped = res.Transaction.Id, res.DroppedReferences

	default:
		return amqp.Permanent(appErrors.NewValidationError("type", fmt.Sprintf("tipo de transação inválido: %s", msg.Kind)))
	}

	logger.Info().
		Str("message_id", msg.MessageId).
		Str("kind", string(msg.Kind)).
		Str("transaction_id", id.String()).
		Int("dropped_references", len(dropped)).
		Msg("Transação importada")
	return nil
}

func expenseInput(msg *amqp.IngestMessage) (ledger.ExpenseInput, error) {
	refs, err := parseRefs(map[string]*string{
		ledger.FieldAccount:     msg.AccountId,
		ledger.FieldCategory:    msg.CategoryId,
		ledger.FieldSubcategory: msg.SubcategoryId,
		ledger.FieldPlace:       msg.PlaceId,
		ledger.FieldGoal:        msg.GoalId,
	})
	if err != nil {
		return ledger.ExpenseInput{}, err
	}
	return ledger.ExpenseInput{
		Amount:        msg.Amount,
		Description:   msg.Description,
		AccountId:     refs[ledger.FieldAccount],
		CategoryId:    refs[ledger.FieldCategory],
		SubcategoryId: refs[ledger.FieldSubcategory],
		PlaceId:       refs[ledger.FieldPlace],
		GoalId:        refs[ledger.FieldGoal],
	}, nil
}

func incomeInput(msg *amqp.IngestMessage) (ledger.IncomeInput, error) {
	refs, err := parseRefs(map[string]*string{
		ledger.FieldAccount:     msg.AccountId,
		ledger.FieldSubcategory: msg.SubcategoryId,
		ledger.FieldPlace:       msg.PlaceId,
	})
	if err != nil {
		return ledger.IncomeInput{}, err
	}
	return ledger.IncomeInput{
		Amount:        msg.Amount,
		Description:   msg.Description,
		AccountId:     refs[ledger.FieldAccount],
		SubcategoryId: refs[ledger.FieldSubcategory],
		PlaceId:       refs[ledger.FieldPlace],
	}, nil
}

func transferInput(msg *amqp.IngestMessage) (ledger.TransferInput, error) {
	refs, err := parseRefs(map[string]*string{
		ledger.FieldFromAccount: msg.FromAcc,
		ledger.FieldToAccount:   msg.ToAcc,
		ledger.FieldGoal:        msg.GoalId,
	})
	if err != nil {
		return ledger.TransferInput{}, err
	}
	in := ledger.TransferInput{
		Amount:      msg.Amount,
		Description: msg.Description,
		GoalId:      refs[ledger.FieldGoal],
	}
	if from := refs[ledger.FieldFromAccount]; from != nil {
		in.FromAccountId = *from
	}
	if to := refs[ledger.FieldToAccount]; to != nil {
		in.ToAccountId = *to
	}
	return in, nil
}

func parseRefs(raw map[string]*string) (map[string]*ulid.ULID, error) {
	out := make(map[string]*ulid.ULID, len(raw))
	for field, value := range raw {
		id, err := pkg.ParseULIDPtr(value)
		if err != nil {
			return nil, appErrors.NewValidationError(field, err.Error())
		}
		out[field] = id
	}
	return out, nil
}

func classify(err error) error {
	if appErr, ok := appErrors.AsAppError(err); ok && appErr.StatusCode < 500 {
		return amqp.Permanent(err)
	}
	return err
}
