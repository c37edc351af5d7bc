package user_test

import (
	"testing"

	"github.com/Toston-App/lake-sub000/internal/domain/user"

	"github.com/shopspring/decimal"
)

func TestApplyKeepsTotalInSync(t *testing.T) {
	u := &user.User{}

	u.Apply(user.IncomeDelta(decimal.NewFromInt(500)))
	u.Apply(user.OutcomeDelta(decimal.NewFromInt(120)))

	if !u.BalanceTotal.Equal(decimal.NewFromInt(380)) {
		t.Fatalf("expected total 380, got %s", u.BalanceTotal)
	}

	u.Apply(user.OutcomeDelta(decimal.NewFromInt(120)).Negate())
	u.Apply(user.IncomeDelta(decimal.NewFromInt(500)).Negate())

	if !u.BalanceTotal.IsZero() || !u.BalanceIncome.IsZero() || !u.BalanceOutcome.IsZero() {
		t.Fatalf("expected all balances back at zero, got %+v", u)
	}
}
