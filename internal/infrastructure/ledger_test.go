package infrastructure_test

import (
	"testing"

	"github.com/Toston-App/lake-sub000/internal/domain/goal"
	"github.com/Toston-App/lake-sub000/internal/domain/ledger"
	"github.com/Toston-App/lake-sub000/internal/domain/transaction"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

func TestExpenseCreateThenDeleteRestoresAggregates(t *testing.T) {
	f := newFixture(t)
	owner := f.user()
	acc := f.account(owner, 1000)
	cat, sub := f.category(owner, "Mercado", false)

	res, err := f.engine.CreateExpense(f.ctx, owner, ledger.ExpenseInput{
		Amount:        dec(100),
		Date:          day(3),
		Description:   "feira",
		AccountId:     ref(acc),
		CategoryId:    ref(cat),
		SubcategoryId: ref(sub),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(res.DroppedReferences) != 0 {
		t.Fatalf("expected no dropped references, got %+v", res.DroppedReferences)
	}

	a := f.getAccount(acc, owner)
	assertAmount(t, "current_balance", a.CurrentBalance, 900)
	assertAmount(t, "total_expenses", a.TotalExpenses, 100)
	assertAmount(t, "category", f.getCategory(cat, owner).Total, 100)
	assertAmount(t, "subcategory", f.getSubcategory(sub, owner).Total, 100)
	u := f.getUser(owner)
	assertAmount(t, "balance_outcome", u.BalanceOutcome, 100)
	assertAmount(t, "balance_total", u.BalanceTotal, -100)

	if err := f.engine.DeleteExpense(f.ctx, owner, res.Transaction.Id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	a = f.getAccount(acc, owner)
	assertAmount(t, "current_balance", a.CurrentBalance, 1000)
	assertAmount(t, "total_expenses", a.TotalExpenses, 0)
	assertAmount(t, "category", f.getCategory(cat, owner).Total, 0)
	assertAmount(t, "subcategory", f.getSubcategory(sub, owner).Total, 0)
	u = f.getUser(owner)
	assertAmount(t, "balance_outcome", u.BalanceOutcome, 0)
	assertAmount(t, "balance_total", u.BalanceTotal, 0)

	if _, err := f.repos.Transactions.GetExpense(f.ctx, res.Transaction.Id, owner); err == nil {
		t.Fatal("expected expense row to be removed")
	}
}

func TestExpenseAmountEditIsReversible(t *testing.T) {
	f := newFixture(t)
	owner := f.user()
	acc := f.account(owner, 500)
	cat, sub := f.category(owner, "Lazer", false)

	res, err := f.engine.CreateExpense(f.ctx, owner, ledger.ExpenseInput{
		Amount: dec(100), Date: day(1), AccountId: ref(acc), CategoryId: ref(cat), SubcategoryId: ref(sub),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	up := dec(150)
	if _, err := f.engine.UpdateExpense(f.ctx, owner, res.Transaction.Id, ledger.ExpenseChanges{Amount: &up}); err != nil {
		t.Fatalf("update to 150: %v", err)
	}
	assertAmount(t, "current_balance after 150", f.getAccount(acc, owner).CurrentBalance, 350)
	assertAmount(t, "user outcome after 150", f.getUser(owner).BalanceOutcome, 150)

	down := dec(100)
	if _, err := f.engine.UpdateExpense(f.ctx, owner, res.Transaction.Id, ledger.ExpenseChanges{Amount: &down}); err != nil {
		t.Fatalf("update to 100: %v", err)
	}

	a := f.getAccount(acc, owner)
	assertAmount(t, "current_balance", a.CurrentBalance, 400)
	assertAmount(t, "total_expenses", a.TotalExpenses, 100)
	assertAmount(t, "category", f.getCategory(cat, owner).Total, 100)
	assertAmount(t, "subcategory", f.getSubcategory(sub, owner).Total, 100)
	assertAmount(t, "balance_outcome", f.getUser(owner).BalanceOutcome, 100)
}

func TestExpenseExpenseTransferScenario(t *testing.T) {
	f := newFixture(t)
	owner := f.user()
	a := f.account(owner, 1000)
	b := f.account(owner, 0)

	exp, err := f.engine.CreateExpense(f.ctx, owner, ledger.ExpenseInput{Amount: dec(200), Date: day(1), AccountId: ref(a)})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}
	acc := f.getAccount(a, owner)
	assertAmount(t, "after expense current_balance", acc.CurrentBalance, 800)
	assertAmount(t, "after expense total_expenses", acc.TotalExpenses, 200)

	if _, err := f.engine.CreateTransfer(f.ctx, owner, ledger.TransferInput{
		Amount: dec(50), Date: day(2), FromAccountId: a, ToAccountId: b,
	}); err != nil {
		t.Fatalf("create transfer: %v", err)
	}
	acc = f.getAccount(a, owner)
	assertAmount(t, "after transfer current_balance", acc.CurrentBalance, 750)
	assertAmount(t, "after transfer total_transfers_out", acc.TotalTransfersOut, 50)
	dest := f.getAccount(b, owner)
	assertAmount(t, "destination current_balance", dest.CurrentBalance, 50)
	assertAmount(t, "destination total_transfers_in", dest.TotalTransfersIn, 50)

	u := f.getUser(owner)
	assertAmount(t, "transfer leaves user income", u.BalanceIncome, 0)
	assertAmount(t, "transfer leaves user outcome", u.BalanceOutcome, 200)

	if err := f.engine.DeleteExpense(f.ctx, owner, exp.Transaction.Id); err != nil {
		t.Fatalf("delete expense: %v", err)
	}
	acc = f.getAccount(a, owner)
	assertAmount(t, "after delete current_balance", acc.CurrentBalance, 950)
	assertAmount(t, "after delete total_expenses", acc.TotalExpenses, 0)
}

func TestTransferWithForeignEndpointChangesNothing(t *testing.T) {
	f := newFixture(t)
	owner := f.user()
	stranger := f.user()
	mine := f.account(owner, 300)
	theirs := f.account(stranger, 300)

	_, err := f.engine.CreateTransfer(f.ctx, owner, ledger.TransferInput{
		Amount: dec(100), Date: day(4), FromAccountId: theirs, ToAccountId: mine,
	})
	if !appErrors.HasCode(err, appErrors.ErrRequiredReferenceMissing.Code) {
		t.Fatalf("expected REQUIRED_REFERENCE_MISSING, got %v", err)
	}

	for _, tc := range []struct {
		name  string
		check func() decimal.Decimal
	}{
		{"own account", func() decimal.Decimal { return f.getAccount(mine, owner).CurrentBalance }},
		{"foreign account", func() decimal.Decimal { return f.getAccount(theirs, stranger).CurrentBalance }},
	} {
		assertAmount(t, tc.name, tc.check(), 300)
	}

	var count int64
	if err := f.db.Table("transfers").Count(&count).Error; err != nil {
		t.Fatalf("count transfers: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no transfer rows, got %d", count)
	}
}

func TestTransferRejectsSameAccount(t *testing.T) {
	f := newFixture(t)
	owner := f.user()
	a := f.account(owner, 100)

	_, err := f.engine.CreateTransfer(f.ctx, owner, ledger.TransferInput{
		Amount: dec(10), Date: day(1), FromAccountId: a, ToAccountId: a,
	})
	if !appErrors.HasCode(err, appErrors.ErrValidation.Code) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestUpdateTransferMovesBothEndpoints(t *testing.T) {
	f := newFixture(t)
	owner := f.user()
	stranger := f.user()
	a := f.account(owner, 100)
	b := f.account(owner, 100)
	c := f.account(owner, 100)
	theirs := f.account(stranger, 100)

	res, err := f.engine.CreateTransfer(f.ctx, owner, ledger.TransferInput{
		Amount: dec(40), Date: day(1), FromAccountId: a, ToAccountId: b,
	})
	if err != nil {
		t.Fatalf("create transfer: %v", err)
	}

	amount := dec(25)
	if _, err := f.engine.UpdateTransfer(f.ctx, owner, res.Transaction.Id, ledger.TransferChanges{
		Amount: &amount, FromAccountId: ref(c), ToAccountId: ref(a),
	}); err != nil {
		t.Fatalf("update transfer: %v", err)
	}

	accA, accB, accC := f.getAccount(a, owner), f.getAccount(b, owner), f.getAccount(c, owner)
	assertAmount(t, "a current_balance", accA.CurrentBalance, 125)
	assertAmount(t, "a total_transfers_out", accA.TotalTransfersOut, 0)
	assertAmount(t, "a total_transfers_in", accA.TotalTransfersIn, 25)
	assertAmount(t, "b current_balance", accB.CurrentBalance, 100)
	assertAmount(t, "b total_transfers_in", accB.TotalTransfersIn, 0)
	assertAmount(t, "c current_balance", accC.CurrentBalance, 75)
	assertAmount(t, "c total_transfers_out", accC.TotalTransfersOut, 25)

	_, err = f.engine.UpdateTransfer(f.ctx, owner, res.Transaction.Id, ledger.TransferChanges{ToAccountId: ref(theirs)})
	if !appErrors.HasCode(err, appErrors.ErrRequiredReferenceMissing.Code) {
		t.Fatalf("expected REQUIRED_REFERENCE_MISSING, got %v", err)
	}

	assertAmount(t, "a unchanged", f.getAccount(a, owner).CurrentBalance, 125)
	assertAmount(t, "c unchanged", f.getAccount(c, owner).CurrentBalance, 75)
	assertAmount(t, "foreign account unchanged", f.getAccount(theirs, stranger).CurrentBalance, 100)

	tr, err := f.repos.Transactions.GetTransfer(f.ctx, res.Transaction.Id, owner)
	if err != nil {
		t.Fatalf("get transfer: %v", err)
	}
	if tr.FromAccountId != c || tr.ToAccountId != a || !tr.Amount.Equal(amount) {
		t.Fatalf("expected stored transfer c->a 25, got %s->%s %s", tr.FromAccountId, tr.ToAccountId, tr.Amount)
	}
}

func TestCreateRejectsInvalidAmountBeforeAnyMutation(t *testing.T) {
	f := newFixture(t)
	owner := f.user()
	a := f.account(owner, 100)

	tests := []struct {
		name   string
		amount decimal.Decimal
	}{
		{"zero", decimal.Zero},
		{"negative", dec(-5)},
		{"sub-cent", decimal.RequireFromString("0.004")},
		{"three decimal places", decimal.RequireFromString("10.125")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.CreateExpense(f.ctx, owner, ledger.ExpenseInput{Amount: tt.amount, Date: day(1), AccountId: ref(a)})
			if !appErrors.HasCode(err, appErrors.ErrValidation.Code) {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
		})
	}
	assertAmount(t, "current_balance", f.getAccount(a, owner).CurrentBalance, 100)
	assertAmount(t, "outcome", f.getUser(owner).BalanceOutcome, 0)
}

func TestUpdateRejectsSubCentAmount(t *testing.T) {
	f := newFixture(t)
	owner := f.user()
	a := f.account(owner, 100)

	res, err := f.engine.CreateIncome(f.ctx, owner, ledger.IncomeInput{Amount: dec(10), Date: day(1), AccountId: ref(a)})
	if err != nil {
		t.Fatalf("create income: %v", err)
	}

	amount := decimal.RequireFromString("10.001")
	_, err = f.engine.UpdateIncome(f.ctx, owner, res.Transaction.Id, ledger.IncomeChanges{Amount: &amount})
	if !appErrors.HasCode(err, appErrors.ErrValidation.Code) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	assertAmount(t, "current_balance", f.getAccount(a, owner).CurrentBalance, 110)
}

func TestCreateExpenseDropsUnresolvedOptionalReferences(t *testing.T) {
	f := newFixture(t)
	owner := f.user()
	stranger := f.user()
	acc := f.account(owner, 100)
	foreignPlace := f.place(stranger, "Padaria")
	missingCategory := pkg.GenerateULIDObject()

	res, err := f.engine.CreateExpense(f.ctx, owner, ledger.ExpenseInput{
		Amount:     dec(40),
		Date:       day(5),
		AccountId:  ref(acc),
		CategoryId: ref(missingCategory),
		PlaceId:    ref(foreignPlace),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(res.DroppedReferences) != 2 {
		t.Fatalf("expected 2 dropped references, got %+v", res.DroppedReferences)
	}
	fields := map[string]bool{}
	for _, r := range res.DroppedReferences {
		fields[r.Field] = true
	}
	if !fields[ledger.FieldCategory] || !fields[ledger.FieldPlace] {
		t.Fatalf("unexpected dropped fields %+v", res.DroppedReferences)
	}

	stored, err := f.repos.Transactions.GetExpense(f.ctx, res.Transaction.Id, owner)
	if err != nil {
		t.Fatalf("get expense: %v", err)
	}
	if stored.CategoryId != nil || stored.PlaceId != nil {
		t.Fatalf("expected dropped references to be nulled, got %+v", stored)
	}
	if stored.AccountId == nil || *stored.AccountId != acc {
		t.Fatalf("expected account to be kept")
	}
	assertAmount(t, "current_balance", f.getAccount(acc, owner).CurrentBalance, 60)
}

func TestUpdateExpenseMovesBetweenAccountsAndClearsCategory(t *testing.T) {
	f := newFixture(t)
	owner := f.user()
	a := f.account(owner, 100)
	b := f.account(owner, 100)
	cat, _ := f.category(owner, "Casa", false)

	res, err := f.engine.CreateExpense(f.ctx, owner, ledger.ExpenseInput{
		Amount: dec(30), Date: day(1), AccountId: ref(a), CategoryId: ref(cat),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.engine.UpdateExpense(f.ctx, owner, res.Transaction.Id, ledger.ExpenseChanges{
		AccountId:  transaction.SetRef(b),
		CategoryId: transaction.ClearRef(),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	assertAmount(t, "old account", f.getAccount(a, owner).CurrentBalance, 100)
	assertAmount(t, "new account", f.getAccount(b, owner).CurrentBalance, 70)
	assertAmount(t, "category", f.getCategory(cat, owner).Total, 0)
	assertAmount(t, "user outcome", f.getUser(owner).BalanceOutcome, 30)
}

func TestIncomeSubcategoryCascadesToCategory(t *testing.T) {
	f := newFixture(t)
	owner := f.user()
	acc := f.account(owner, 0)
	salary, monthly := f.category(owner, "Salário", true)
	extra, bonus := f.category(owner, "Extras", true)

	res, err := f.engine.CreateIncome(f.ctx, owner, ledger.IncomeInput{
		Amount: dec(300), Date: day(10), AccountId: ref(acc), SubcategoryId: ref(monthly),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	assertAmount(t, "subcategory", f.getSubcategory(monthly, owner).Total, 300)
	assertAmount(t, "category", f.getCategory(salary, owner).Total, 300)
	assertAmount(t, "account incomes", f.getAccount(acc, owner).TotalIncomes, 300)
	u := f.getUser(owner)
	assertAmount(t, "balance_income", u.BalanceIncome, 300)
	assertAmount(t, "balance_total", u.BalanceTotal, 300)

	if _, err := f.engine.UpdateIncome(f.ctx, owner, res.Transaction.Id, ledger.IncomeChanges{
		SubcategoryId: transaction.SetRef(bonus),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	assertAmount(t, "old subcategory", f.getSubcategory(monthly, owner).Total, 0)
	assertAmount(t, "old category", f.getCategory(salary, owner).Total, 0)
	assertAmount(t, "new subcategory", f.getSubcategory(bonus, owner).Total, 300)
	assertAmount(t, "new category", f.getCategory(extra, owner).Total, 300)
	assertAmount(t, "balance_income unchanged", f.getUser(owner).BalanceIncome, 300)

	if err := f.engine.DeleteIncome(f.ctx, owner, res.Transaction.Id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertAmount(t, "category after delete", f.getCategory(extra, owner).Total, 0)
	assertAmount(t, "account after delete", f.getAccount(acc, owner).CurrentBalance, 0)
	assertAmount(t, "balance_income after delete", f.getUser(owner).BalanceIncome, 0)
}

func TestGoalFollowsLinkedTransactions(t *testing.T) {
	f := newFixture(t)
	owner := f.user()
	a := f.account(owner, 1000)
	b := f.account(owner, 0)
	g := f.goal(owner, 100)

	tr, err := f.engine.CreateTransfer(f.ctx, owner, ledger.TransferInput{
		Amount: dec(80), Date: day(1), FromAccountId: a, ToAccountId: b, GoalId: ref(g),
	})
	if err != nil {
		t.Fatalf("create transfer: %v", err)
	}
	assertAmount(t, "after transfer", f.getGoal(g, owner).CurrentAmount, 80)

	exp, err := f.engine.CreateExpense(f.ctx, owner, ledger.ExpenseInput{
		Amount: dec(30), Date: day(2), AccountId: ref(b), GoalId: ref(g),
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}
	assertAmount(t, "after expense", f.getGoal(g, owner).CurrentAmount, 50)

	amount := dec(120)
	if _, err := f.engine.UpdateTransfer(f.ctx, owner, tr.Transaction.Id, ledger.TransferChanges{Amount: &amount}); err != nil {
		t.Fatalf("update transfer: %v", err)
	}
	got := f.getGoal(g, owner)
	assertAmount(t, "after recalculation", got.CurrentAmount, 90)
	if got.Status != goal.Active {
		t.Fatalf("expected ACTIVE, got %s", got.Status)
	}

	if err := f.engine.DeleteExpense(f.ctx, owner, exp.Transaction.Id); err != nil {
		t.Fatalf("delete expense: %v", err)
	}
	got = f.getGoal(g, owner)
	assertAmount(t, "after delete", got.CurrentAmount, 120)
	if got.Status != goal.Completed {
		t.Fatalf("expected COMPLETED, got %s", got.Status)
	}
}

func TestBulkCreateIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	owner := f.user()
	acc := f.account(owner, 100)

	_, err := f.engine.BulkCreateExpenses(f.ctx, owner, []ledger.ExpenseInput{
		{Amount: dec(10), Date: day(1), AccountId: ref(acc)},
		{Amount: decimal.Zero, Date: day(2), AccountId: ref(acc)},
	})
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrValidation.Code {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if appErr.Details["index"] != 1 {
		t.Fatalf("expected failing index 1, got %v", appErr.Details["index"])
	}

	assertAmount(t, "current_balance", f.getAccount(acc, owner).CurrentBalance, 100)
	var count int64
	if err := f.db.Table("expenses").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no expenses, got %d", count)
	}
}

func TestBulkDeleteRevertsEveryRow(t *testing.T) {
	f := newFixture(t)
	owner := f.user()
	a := f.account(owner, 100)
	b := f.account(owner, 100)

	results, err := f.engine.BulkCreateTransfers(f.ctx, owner, []ledger.TransferInput{
		{Amount: dec(10), Date: day(1), FromAccountId: a, ToAccountId: b},
		{Amount: dec(15), Date: day(2), FromAccountId: b, ToAccountId: a},
	})
	if err != nil {
		t.Fatalf("bulk create: %v", err)
	}
	assertAmount(t, "a after create", f.getAccount(a, owner).CurrentBalance, 105)

	ids := []ulid.ULID{results[0].Transaction.Id, results[1].Transaction.Id}
	if err := f.engine.BulkDelete(f.ctx, owner, transaction.KindTransfer, ids); err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	assertAmount(t, "a after delete", f.getAccount(a, owner).CurrentBalance, 100)
	assertAmount(t, "b after delete", f.getAccount(b, owner).CurrentBalance, 100)
}

func TestUnknownTransactionIsNotFound(t *testing.T) {
	f := newFixture(t)
	owner := f.user()

	err := f.engine.DeleteIncome(f.ctx, owner, pkg.GenerateULIDObject())
	if !appErrors.HasCode(err, appErrors.ErrTransactionNotFound.Code) {
		t.Fatalf("expected TRANSACTION_NOT_FOUND, got %v", err)
	}
}
