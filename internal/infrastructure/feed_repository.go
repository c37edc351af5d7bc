package infrastructure

import (
	"context"
	"strings"

	"github.com/Toston-App/lake-sub000/internal/domain/account"
	"github.com/Toston-App/lake-sub000/internal/domain/category"
	"github.com/Toston-App/lake-sub000/internal/domain/feed"
	"github.com/Toston-App/lake-sub000/internal/domain/transaction"
	"github.com/Toston-App/lake-sub000/internal/pkg"
	"github.com/Toston-App/lake-sub000/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type FeedRepository struct {
	DB *gorm.DB
}

var _ feed.Repository = (*FeedRepository)(nil)

type feedRow struct {
	Id   string
	Kind string
}

// projection builds the (id, kind, occurred_on) select of one transaction table.
type projection struct {
	sql   strings.Builder
	args  []interface{}
	alias string
}

func newProjection(kind transaction.Kind, table, alias string, userID ulid.ULID) *projection {
	p := &projection{alias: alias}
	p.sql.WriteString("SELECT " + alias + ".id AS id, '" + string(kind) + "' AS kind, " + alias + ".date AS occurred_on FROM " + table + " " + alias)
	p.sql.WriteString(" WHERE " + alias + ".user_id = ?")
	p.args = append(p.args, userID.String())
	return p
}

func (p *projection) where(cond string, args ...interface{}) {
	p.sql.WriteString(" AND " + strings.ReplaceAll(cond, "$.", p.alias+"."))
	p.args = append(p.args, args...)
}

// common applies the filters shared by every kind.
func (p *projection) common(f feed.Filters) {
	if f.StartDate != nil {
		p.where("$.date >= ?", pkg.TruncateToDay(*f.StartDate))
	}
	if f.EndDate != nil {
		p.where("$.date <= ?", pkg.TruncateToDay(*f.EndDate))
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		p.where("LOWER($.description) LIKE ?"+query.LikeEscape, query.ContainsPattern(term))
	}
	if f.Amount != nil {
		switch f.AmountOperator {
		case feed.AmountLess:
			p.where("$.amount < ?", *f.Amount)
		case feed.AmountGreater:
			p.where("$.amount > ?", *f.Amount)
		default:
			p.where("$.amount = ?", *f.Amount)
		}
	}
}

func expenseProjection(userID ulid.ULID, f feed.Filters) *projection {
	p := newProjection(transaction.KindExpense, "expenses", "e", userID)
	p.common(f)
	if len(f.Accounts) > 0 {
		p.where("$.account_id IN ?", pkg.ULIDStrings(f.Accounts))
	}
	if len(f.Categories) > 0 {
		p.where("$.category_id IN ?", pkg.ULIDStrings(f.Categories))
	}
	if len(f.Places) > 0 {
		p.where("$.place_id IN ?", pkg.ULIDStrings(f.Places))
	}
	return p
}

func incomeProjection(userID ulid.ULID, f feed.Filters) *projection {
	p := newProjection(transaction.KindIncome, "incomes", "i", userID)
	p.common(f)
	if len(f.Accounts) > 0 {
		p.where("$.account_id IN ?", pkg.ULIDStrings(f.Accounts))
	}
	if len(f.Categories) > 0 {
		p.where("$.subcategory_id IN (SELECT s.id FROM subcategories s WHERE s.category_id IN ?)", pkg.ULIDStrings(f.Categories))
	}
	if len(f.Places) > 0 {
		p.where("$.place_id IN ?", pkg.ULIDStrings(f.Places))
	}
	return p
}

func transferProjection(userID ulid.ULID, f feed.Filters) *projection {
	p := newProjection(transaction.KindTransfer, "transfers", "t", userID)
	p.common(f)
	if len(f.Accounts) > 0 {
		ids := pkg.ULIDStrings(f.Accounts)
		p.where("($.from_account_id IN ? OR $.to_account_id IN ?)", ids, ids)
	}
	return p
}

func (r *FeedRepository) Identify(ctx context.Context, userID ulid.ULID, f feed.Filters, order feed.Order, page query.Page) ([]feed.Entry, int64, error) {
	builders := map[transaction.Kind]func(ulid.ULID, feed.Filters) *projection{
		transaction.KindExpense:  expenseProjection,
		transaction.KindIncome:   incomeProjection,
		transaction.KindTransfer: transferProjection,
	}

	parts := make([]string, 0, len(transaction.Kinds))
	args := make([]interface{}, 0)
	for _, kind := range transaction.Kinds {
		if !f.Includes(kind) {
			continue
		}
		p := builders[kind](userID, f)
		parts = append(parts, p.sql.String())
		args = append(args, p.args...)
	}
	if len(parts) == 0 {
		return []feed.Entry{}, 0, nil
	}
	union := strings.Join(parts, " UNION ALL ")

	db := conn(ctx, r.DB)

	var total int64
	if err := db.Raw("SELECT COUNT(*) FROM ("+union+") feed", args...).Row().Scan(&total); err != nil {
		return nil, 0, err
	}

	dir := "DESC"
	if order == feed.OrderAsc {
		dir = "ASC"
	}
	page = query.NewPage(page.Number, page.Size)

	var rows []feedRow
	pageArgs := append(append(make([]interface{}, 0, len(args)+2), args...), page.Size, page.Offset())
	err := db.Raw(
		"SELECT id, kind FROM ("+union+") feed ORDER BY occurred_on "+dir+", id "+dir+" LIMIT ? OFFSET ?",
		pageArgs...,
	).Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	entries := make([]feed.Entry, 0, len(rows))
	for _, row := range rows {
		id, err := pkg.ParseULID(row.Id)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, feed.Entry{Id: id, Kind: transaction.Kind(row.Kind)})
	}
	return entries, total, nil
}

func (r *FeedRepository) HydrateExpenses(ctx context.Context, userID ulid.ULID, ids []ulid.ULID) (map[ulid.ULID]*feed.ExpenseItem, error) {
	var rows []expenseDB
	err := conn(ctx, r.DB).
		Preload("Account").
		Preload("Category.Subcategories").
		Preload("Subcategory").
		Preload("Place").
		Where("user_id = ? AND id IN ?", userID.String(), pkg.ULIDStrings(ids)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[ulid.ULID]*feed.ExpenseItem, len(rows))
	for i := range rows {
		row := &rows[i]
		e, err := toDomainExpense(row)
		if err != nil {
			return nil, err
		}
		item := &feed.ExpenseItem{
			Summary: feed.Summary{Id: e.Id, Type: transaction.KindExpense, Amount: e.Amount, Date: e.Date, Description: e.Description},
			GoalId:  e.GoalId,
		}
		if item.Account, err = hydrateAccount(row.Account); err != nil {
			return nil, err
		}
		if item.Category, err = hydrateCategory(row.Category); err != nil {
			return nil, err
		}
		if item.Subcategory, err = hydrateSubcategory(row.Subcategory); err != nil {
			return nil, err
		}
		if row.Place != nil {
			if item.Place, err = toDomainPlace(row.Place); err != nil {
				return nil, err
			}
		}
		out[e.Id] = item
	}
	return out, nil
}

func (r *FeedRepository) HydrateIncomes(ctx context.Context, userID ulid.ULID, ids []ulid.ULID) (map[ulid.ULID]*feed.IncomeItem, error) {
	var rows []incomeDB
	err := conn(ctx, r.DB).
		Preload("Account").
		Preload("Subcategory.Category.Subcategories").
		Preload("Place").
		Where("user_id = ? AND id IN ?", userID.String(), pkg.ULIDStrings(ids)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[ulid.ULID]*feed.IncomeItem, len(rows))
	for i := range rows {
		row := &rows[i]
		inc, err := toDomainIncome(row)
		if err != nil {
			return nil, err
		}
		item := &feed.IncomeItem{
			Summary: feed.Summary{Id: inc.Id, Type: transaction.KindIncome, Amount: inc.Amount, Date: inc.Date, Description: inc.Description},
		}
		if item.Account, err = hydrateAccount(row.Account); err != nil {
			return nil, err
		}
		if row.Subcategory != nil {
			if item.Subcategory, err = hydrateSubcategory(row.Subcategory); err != nil {
				return nil, err
			}
			if item.Category, err = hydrateCategory(row.Subcategory.Category); err != nil {
				return nil, err
			}
		}
		if row.Place != nil {
			if item.Place, err = toDomainPlace(row.Place); err != nil {
				return nil, err
			}
		}
		out[inc.Id] = item
	}
	return out, nil
}

func (r *FeedRepository) HydrateTransfers(ctx context.Context, userID ulid.ULID, ids []ulid.ULID) (map[ulid.ULID]*feed.TransferItem, error) {
	var rows []transferDB
	err := conn(ctx, r.DB).
		Preload("FromAccount").
		Preload("ToAccount").
		Where("user_id = ? AND id IN ?", userID.String(), pkg.ULIDStrings(ids)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[ulid.ULID]*feed.TransferItem, len(rows))
	for i := range rows {
		row := &rows[i]
		tr, err := toDomainTransfer(row)
		if err != nil {
			return nil, err
		}
		item := &feed.TransferItem{
			Summary: feed.Summary{Id: tr.Id, Type: transaction.KindTransfer, Amount: tr.Amount, Date: tr.Date, Description: tr.Description},
			GoalId:  tr.GoalId,
		}
		if item.FromAccount, err = hydrateAccount(row.FromAccount); err != nil {
			return nil, err
		}
		if item.ToAccount, err = hydrateAccount(row.ToAccount); err != nil {
			return nil, err
		}
		out[tr.Id] = item
	}
	return out, nil
}

func hydrateAccount(adb *accountDB) (*account.Account, error) {
	if adb == nil {
		return nil, nil
	}
	return toDomainAccount(adb)
}

func hydrateCategory(cdb *categoryDB) (*category.Category, error) {
	if cdb == nil {
		return nil, nil
	}
	return toDomainCategory(cdb)
}

func hydrateSubcategory(sdb *subcategoryDB) (*category.Subcategory, error) {
	if sdb == nil {
		return nil, nil
	}
	return toDomainSubcategory(sdb)
}
