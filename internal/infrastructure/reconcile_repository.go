package infrastructure

import (
	"context"
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/reconcile"
	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReconcileRepository recomputes aggregates with GROUP BY sums over the transaction tables.
type ReconcileRepository struct {
	DB    *gorm.DB
	Goals *GoalRepository
}

var _ reconcile.Repository = (*ReconcileRepository)(nil)

type sumRow struct {
	Id    string
	Total decimal.Decimal
}

func (r *ReconcileRepository) ListUserIDs(ctx context.Context) ([]ulid.ULID, error) {
	var raw []string
	if err := conn(ctx, r.DB).Model(&userDB{}).Order("id").Pluck("id", &raw).Error; err != nil {
		return nil, err
	}
	return parseIDs(raw...)
}

// LockOwner takes the owner's locks in the order ledger mutations use:
// accounts, categories, subcategories, the user and then goals.
func (r *ReconcileRepository) LockOwner(ctx context.Context, userID ulid.ULID) (bool, error) {
	db := conn(ctx, r.DB)
	owner := userID.String()

	if err := forUpdate(db).Where("user_id = ?", owner).Order("id").Find(&[]accountDB{}).Error; err != nil {
		return false, err
	}
	if err := forUpdate(db).Where("user_id = ?", owner).Order("id").Find(&[]categoryDB{}).Error; err != nil {
		return false, err
	}
	if err := forUpdate(db).Where("user_id = ?", owner).Order("id").Find(&[]subcategoryDB{}).Error; err != nil {
		return false, err
	}

	var users []userDB
	if err := forUpdate(db).Where("id = ?", owner).Find(&users).Error; err != nil {
		return false, err
	}
	if len(users) == 0 {
		return false, nil
	}

	if err := forUpdate(db).Where("user_id = ?", owner).Order("id").Find(&[]goalDB{}).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *ReconcileRepository) Stored(ctx context.Context, userID ulid.ULID) (*reconcile.Totals, error) {
	db := conn(ctx, r.DB)
	owner := userID.String()
	totals := reconcile.NewTotals()

	var u userDB
	if err := db.Where("id = ?", owner).Take(&u).Error; err != nil {
		return nil, err
	}
	totals.User = reconcile.UserTotals{Income: u.BalanceIncome, Outcome: u.BalanceOutcome, Total: u.BalanceTotal}

	var accounts []accountDB
	if err := db.Where("user_id = ?", owner).Find(&accounts).Error; err != nil {
		return nil, err
	}
	for _, a := range accounts {
		id, err := pkg.ParseULID(a.Id)
		if err != nil {
			return nil, err
		}
		totals.Accounts[id] = reconcile.AccountTotals{
			Initial:      a.InitialBalance,
			Current:      a.CurrentBalance,
			Expenses:     a.TotalExpenses,
			Incomes:      a.TotalIncomes,
			TransfersIn:  a.TotalTransfersIn,
			TransfersOut: a.TotalTransfersOut,
		}
	}

	for _, src := range []struct {
		model interface{}
		dst   map[ulid.ULID]decimal.Decimal
		col   string
	}{
		{&categoryDB{}, totals.Categories, "total"},
		{&subcategoryDB{}, totals.Subcategories, "total"},
		{&goalDB{}, totals.Goals, "current_amount"},
	} {
		var rows []sumRow
		if err := db.Model(src.model).Select("id, "+src.col+" AS total").Where("user_id = ?", owner).Scan(&rows).Error; err != nil {
			return nil, err
		}
		if err := collect(rows, src.dst); err != nil {
			return nil, err
		}
	}
	return totals, nil
}

func (r *ReconcileRepository) Expected(ctx context.Context, userID ulid.ULID) (*reconcile.Totals, error) {
	db := conn(ctx, r.DB)
	owner := userID.String()
	totals := reconcile.NewTotals()

	group := func(model interface{}, key string, dst map[ulid.ULID]decimal.Decimal) error {
		var rows []sumRow
		err := db.Model(model).
			Select(key+" AS id, COALESCE(SUM(amount), 0) AS total").
			Where("user_id = ? AND "+key+" IS NOT NULL", owner).
			Group(key).
			Scan(&rows).Error
		if err != nil {
			return err
		}
		return collect(rows, dst)
	}

	expenses := make(map[ulid.ULID]decimal.Decimal)
	incomes := make(map[ulid.ULID]decimal.Decimal)
	in := make(map[ulid.ULID]decimal.Decimal)
	out := make(map[ulid.ULID]decimal.Decimal)
	goalIn := make(map[ulid.ULID]decimal.Decimal)
	goalOut := make(map[ulid.ULID]decimal.Decimal)
	incomeCategories := make(map[ulid.ULID]decimal.Decimal)
	incomeSubcategories := make(map[ulid.ULID]decimal.Decimal)

	steps := []struct {
		model interface{}
		key   string
		dst   map[ulid.ULID]decimal.Decimal
	}{
		{&expenseDB{}, "account_id", expenses},
		{&incomeDB{}, "account_id", incomes},
		{&transferDB{}, "to_account_id", in},
		{&transferDB{}, "from_account_id", out},
		{&expenseDB{}, "category_id", totals.Categories},
		{&expenseDB{}, "subcategory_id", totals.Subcategories},
		{&incomeDB{}, "subcategory_id", incomeSubcategories},
		{&transferDB{}, "goal_id", goalIn},
		{&expenseDB{}, "goal_id", goalOut},
	}
	for _, s := range steps {
		if err := group(s.model, s.key, s.dst); err != nil {
			return nil, err
		}
	}

	var cascaded []sumRow
	err := db.Table("incomes i").
		Select("s.category_id AS id, COALESCE(SUM(i.amount), 0) AS total").
		Joins("JOIN subcategories s ON s.id = i.subcategory_id").
		Where("i.user_id = ?", owner).
		Group("s.category_id").
		Scan(&cascaded).Error
	if err != nil {
		return nil, err
	}
	if err := collect(cascaded, incomeCategories); err != nil {
		return nil, err
	}

	merge(totals.Categories, incomeCategories, 1)
	merge(totals.Subcategories, incomeSubcategories, 1)
	merge(totals.Goals, goalIn, 1)
	merge(totals.Goals, goalOut, -1)

	ids := make(map[ulid.ULID]struct{})
	for _, m := range []map[ulid.ULID]decimal.Decimal{expenses, incomes, in, out} {
		for id := range m {
			ids[id] = struct{}{}
		}
	}
	for id := range ids {
		totals.Accounts[id] = reconcile.AccountTotals{
			Expenses:     expenses[id],
			Incomes:      incomes[id],
			TransfersIn:  in[id],
			TransfersOut: out[id],
		}
	}

	income, err := sumAmount(db.Model(&incomeDB{}).Where("user_id = ?", owner))
	if err != nil {
		return nil, err
	}
	outcome, err := sumAmount(db.Model(&expenseDB{}).Where("user_id = ?", owner))
	if err != nil {
		return nil, err
	}
	totals.User = reconcile.UserTotals{Income: income, Outcome: outcome, Total: income.Sub(outcome)}

	return totals, nil
}

func (r *ReconcileRepository) Fix(ctx context.Context, userID ulid.ULID, expected *reconcile.Totals, drifts []reconcile.Drift) error {
	db := conn(ctx, r.DB)
	now := time.Now()
	owner := userID.String()

	seen := make(map[string]struct{}, len(drifts))
	for _, d := range drifts {
		key := d.Entity + ":" + d.Id.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		var err error
		switch d.Entity {
		case reconcile.EntityAccount:
			want := expected.Accounts[d.Id]
			err = db.Model(&accountDB{}).
				Where("id = ? AND user_id = ?", d.Id.String(), owner).
				Updates(map[string]interface{}{
					"total_expenses":      want.Expenses,
					"total_incomes":       want.Incomes,
					"total_transfers_in":  want.TransfersIn,
					"total_transfers_out": want.TransfersOut,
					"current_balance": gorm.Expr("initial_balance + ? - ? + ? - ?",
						want.Incomes, want.Expenses, want.TransfersIn, want.TransfersOut),
					"updated_at": now,
				}).Error
		case reconcile.EntityCategory:
			err = db.Model(&categoryDB{}).
				Where("id = ? AND user_id = ?", d.Id.String(), owner).
				Updates(map[string]interface{}{"total": expected.Categories[d.Id], "updated_at": now}).Error
		case reconcile.EntitySubcategory:
			err = db.Model(&subcategoryDB{}).
				Where("id = ? AND user_id = ?", d.Id.String(), owner).
				Updates(map[string]interface{}{"total": expected.Subcategories[d.Id], "updated_at": now}).Error
		case reconcile.EntityUser:
			err = db.Model(&userDB{}).
				Where("id = ?", owner).
				Updates(map[string]interface{}{
					"balance_income":  expected.User.Income,
					"balance_outcome": expected.User.Outcome,
					"balance_total":   expected.User.Income.Sub(expected.User.Outcome),
					"updated_at":      now,
				}).Error
		case reconcile.EntityGoal:
			_, _, err = r.Goals.Recalculate(ctx, d.Id, userID, now)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func collect(rows []sumRow, dst map[ulid.ULID]decimal.Decimal) error {
	for _, row := range rows {
		id, err := pkg.ParseULID(row.Id)
		if err != nil {
			return err
		}
		dst[id] = row.Total.Round(2)
	}
	return nil
}

func merge(dst, src map[ulid.ULID]decimal.Decimal, sign int64) {
	factor := decimal.NewFromInt(sign)
	for id, v := range src {
		dst[id] = dst[id].Add(v.Mul(factor))
	}
}
