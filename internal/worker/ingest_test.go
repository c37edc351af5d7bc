package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/Toston-App/lake-sub000/internal/amqp"
	"github.com/Toston-App/lake-sub000/internal/domain/ledger"
	"github.com/Toston-App/lake-sub000/internal/domain/transaction"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type fakeLedger struct {
	createExpenseFn  func(ctx context.Context, userID ulid.ULID, in ledger.ExpenseInput) (*ledger.Result[*transaction.Expense], error)
	createIncomeFn   func(ctx context.Context, userID ulid.ULID, in ledger.IncomeInput) (*ledger.Result[*transaction.Income], error)
	createTransferFn func(ctx context.Context, userID ulid.ULID, in ledger.TransferInput) (*ledger.Result[*transaction.Transfer], error)
}

func (f *fakeLedger) CreateExpense(ctx context.Context, userID ulid.ULID, in ledger.ExpenseInput) (*ledger.Result[*transaction.Expense], error) {
	return f.createExpenseFn(ctx, userID, in)
}

func (f *fakeLedger) CreateIncome(ctx context.Context, userID ulid.ULID, in ledger.IncomeInput) (*ledger.Result[*transaction.Income], error) {
	return f.createIncomeFn(ctx, userID, in)
}

func (f *fakeLedger) CreateTransfer(ctx context.Context, userID ulid.ULID, in ledger.TransferInput) (*ledger.Result[*transaction.Transfer], error) {
	return f.createTransferFn(ctx, userID, in)
}

func strPtr(s string) *string { return &s }

func TestHandleExpense(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	accountID := pkg.GenerateULIDObject()

	var got ledger.ExpenseInput
	w := NewIngestWorker(&fakeLedger{
		createExpenseFn: func(_ context.Context, uid ulid.ULID, in ledger.ExpenseInput) (*ledger.Result[*transaction.Expense], error) {
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			got = in
			return &ledger.Result[*transaction.Expense]{Transaction: &transaction.Expense{Id: pkg.GenerateULIDObject()}}, nil
		},
	})

	err := w.Handle(context.Background(), &amqp.IngestMessage{
		MessageId:   "m1",
		UserId:      userID.String(),
		Kind:        transaction.KindExpense,
		Amount:      decimal.RequireFromString("42.10"),
		Date:        "2024-05-03",
		Description: "mercado",
		AccountId:   strPtr(accountID.String()),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AccountId == nil || *got.AccountId != accountID {
		t.Fatalf("expected account to be forwarded, got %+v", got.AccountId)
	}
	if got.CategoryId != nil || got.PlaceId != nil {
		t.Fatalf("expected absent references to stay nil")
	}
	if got.Date.Format(pkg.DateLayout) != "2024-05-03" || !got.Amount.Equal(decimal.RequireFromString("42.1")) {
		t.Fatalf("unexpected input %+v", got)
	}
}

func TestHandleTransferEndpoints(t *testing.T) {
	from, to := pkg.GenerateULIDObject(), pkg.GenerateULIDObject()

	var got ledger.TransferInput
	w := NewIngestWorker(&fakeLedger{
		createTransferFn: func(_ context.Context, _ ulid.ULID, in ledger.TransferInput) (*ledger.Result[*transaction.Transfer], error) {
			got = in
			return &ledger.Result[*transaction.Transfer]{Transaction: &transaction.Transfer{Id: pkg.GenerateULIDObject()}}, nil
		},
	})

	err := w.Handle(context.Background(), &amqp.IngestMessage{
		UserId:  pkg.GenerateULID(),
		Kind:    transaction.KindTransfer,
		Amount:  decimal.NewFromInt(10),
		Date:    "2024-05-01",
		FromAcc: strPtr(from.String()),
		ToAcc:   strPtr(to.String()),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FromAccountId != from || got.ToAccountId != to {
		t.Fatalf("unexpected endpoints %+v", got)
	}
}

func TestHandleErrorClassification(t *testing.T) {
	userID := pkg.GenerateULID()
	dbErr := appErrors.NewDatabaseError(errors.New("connection reset"))

	tests := []struct {
		name      string
		msg       *amqp.IngestMessage
		ledgerErr error
		permanent bool
	}{
		{
			name:      "invalid user id",
			msg:       &amqp.IngestMessage{UserId: "nope", Kind: transaction.KindIncome, Date: "2024-05-01"},
			permanent: true,
		},
		{
			name:      "invalid date",
			msg:       &amqp.IngestMessage{UserId: userID, Kind: transaction.KindIncome, Date: "05/01/2024"},
			permanent: true,
		},
		{
			name:      "unknown kind",
			msg:       &amqp.IngestMessage{UserId: userID, Kind: "refund", Date: "2024-05-01"},
			permanent: true,
		},
		{
			name:      "invalid reference",
			msg:       &amqp.IngestMessage{UserId: userID, Kind: transaction.KindIncome, Date: "2024-05-01", PlaceId: strPtr("bad")},
			permanent: true,
		},
		{
			name:      "ledger validation error",
			msg:       &amqp.IngestMessage{UserId: userID, Kind: transaction.KindIncome, Date: "2024-05-01"},
			ledgerErr: appErrors.NewValidationError("amount", "deve ser maior que zero"),
			permanent: true,
		},
		{
			name:      "database error is retried",
			msg:       &amqp.IngestMessage{UserId: userID, Kind: transaction.KindIncome, Date: "2024-05-01"},
			ledgerErr: dbErr,
			permanent: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewIngestWorker(&fakeLedger{
				createIncomeFn: func(context.Context, ulid.ULID, ledger.IncomeInput) (*ledger.Result[*transaction.Income], error) {
					if tt.ledgerErr != nil {
						return nil, tt.ledgerErr
					}
					return &ledger.Result[*transaction.Income]{Transaction: &transaction.Income{}}, nil
				},
			})

			err := w.Handle(context.Background(), tt.msg)
			if err == nil {
				t.Fatal("expected error")
			}
			if amqp.IsPermanent(err) != tt.permanent {
				t.Fatalf("permanent = %v, want %v (%v)", amqp.IsPermanent(err), tt.permanent, err)
			}
		})
	}
}
