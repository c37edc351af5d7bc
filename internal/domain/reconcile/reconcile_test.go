package reconcile_test

import (
	"testing"

	"github.com/Toston-App/lake-sub000/internal/domain/reconcile"
	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/shopspring/decimal"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestDiffReportsOnlyDriftedFields(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	accountID := pkg.GenerateULIDObject()
	categoryID := pkg.GenerateULIDObject()
	goalID := pkg.GenerateULIDObject()
	orphan := pkg.GenerateULIDObject()

	stored := reconcile.NewTotals()
	stored.Accounts[accountID] = reconcile.AccountTotals{
		Initial:  dec(1000),
		Current:  dec(800),
		Expenses: dec(200),
	}
	stored.Categories[categoryID] = dec(150)
	stored.Goals[goalID] = dec(0)
	stored.User = reconcile.UserTotals{Outcome: dec(200), Total: dec(-200)}

	expected := reconcile.NewTotals()
	expected.Accounts[accountID] = reconcile.AccountTotals{Expenses: dec(200)}
	expected.Categories[categoryID] = dec(200)
	expected.Categories[orphan] = dec(999)
	expected.User = reconcile.UserTotals{Outcome: dec(200)}

	drifts := reconcile.Diff(userID, stored, expected)
	if len(drifts) != 1 {
		t.Fatalf("expected 1 drift, got %d: %+v", len(drifts), drifts)
	}
	d := drifts[0]
	if d.Entity != reconcile.EntityCategory || d.Id != categoryID {
		t.Fatalf("unexpected drift %+v", d)
	}
	if !d.Stored.Equal(dec(150)) || !d.Expected.Equal(dec(200)) {
		t.Fatalf("unexpected values %+v", d)
	}
}

func TestDiffDetectsBalanceInvariant(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	accountID := pkg.GenerateULIDObject()

	stored := reconcile.NewTotals()
	stored.Accounts[accountID] = reconcile.AccountTotals{
		Initial:      dec(1000),
		Current:      dec(1000),
		TransfersOut: dec(50),
	}
	expected := reconcile.NewTotals()
	expected.Accounts[accountID] = reconcile.AccountTotals{TransfersOut: dec(50)}

	drifts := reconcile.Diff(userID, stored, expected)
	if len(drifts) != 1 || drifts[0].Field != "current_balance" {
		t.Fatalf("expected current_balance drift, got %+v", drifts)
	}
	if !drifts[0].Expected.Equal(dec(950)) {
		t.Fatalf("expected 950, got %s", drifts[0].Expected)
	}
}
