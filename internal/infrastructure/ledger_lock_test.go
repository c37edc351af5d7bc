package infrastructure_test

import (
	"context"
	"strings"
	"testing"

	"github.com/Toston-App/lake-sub000/internal/domain/account"
	"github.com/Toston-App/lake-sub000/internal/domain/ledger"
	"github.com/Toston-App/lake-sub000/internal/domain/transaction"

	"github.com/oklog/ulid/v2"
)

// lockRecorder records account lock and delta calls in the order the engine makes them.
type lockRecorder struct {
	ledger.AccountStore
	calls []string
}

func (r *lockRecorder) Lock(ctx context.Context, userID ulid.ULID, ids ...ulid.ULID) (map[ulid.ULID]*account.Account, error) {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	r.calls = append(r.calls, "lock "+strings.Join(parts, ","))
	return r.AccountStore.Lock(ctx, userID, ids...)
}

func (r *lockRecorder) ApplyDelta(ctx context.Context, accountID, userID ulid.ULID, d account.Delta) (*account.Account, bool, error) {
	r.calls = append(r.calls, "apply "+accountID.String())
	return r.AccountStore.ApplyDelta(ctx, accountID, userID, d)
}

func TestUpdateLocksOldAndNewAccountsInIdOrder(t *testing.T) {
	f := newFixture(t)
	owner := f.user()
	lo := f.account(owner, 100)
	hi := f.account(owner, 100)
	if lo.Compare(hi) > 0 {
		lo, hi = hi, lo
	}

	exp, err := f.engine.CreateExpense(f.ctx, owner, ledger.ExpenseInput{Amount: dec(10), Date: day(1), AccountId: ref(hi)})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}
	inc, err := f.engine.CreateIncome(f.ctx, owner, ledger.IncomeInput{Amount: dec(10), Date: day(1), AccountId: ref(hi)})
	if err != nil {
		t.Fatalf("create income: %v", err)
	}

	rec := &lockRecorder{AccountStore: f.engine.Accounts}
	f.engine.Accounts = rec
	wantFirst := "lock " + lo.String() + "," + hi.String()

	tests := []struct {
		name   string
		update func() error
	}{
		{"expense", func() error {
			_, err := f.engine.UpdateExpense(f.ctx, owner, exp.Transaction.Id, ledger.ExpenseChanges{AccountId: transaction.SetRef(lo)})
			return err
		}},
		{"income", func() error {
			_, err := f.engine.UpdateIncome(f.ctx, owner, inc.Transaction.Id, ledger.IncomeChanges{AccountId: transaction.SetRef(lo)})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec.calls = nil
			if err := tt.update(); err != nil {
				t.Fatalf("update: %v", err)
			}
			if len(rec.calls) == 0 || rec.calls[0] != wantFirst {
				t.Fatalf("expected %q before any delta, got %v", wantFirst, rec.calls)
			}
		})
	}

	assertAmount(t, "hi current_balance", f.getAccount(hi, owner).CurrentBalance, 100)
	assertAmount(t, "lo current_balance", f.getAccount(lo, owner).CurrentBalance, 100)
}
