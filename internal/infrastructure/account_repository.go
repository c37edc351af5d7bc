package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/account"
	"github.com/Toston-App/lake-sub000/internal/pkg"
	"github.com/Toston-App/lake-sub000/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type AccountRepository struct {
	DB *gorm.DB
}

var _ account.Repository = (*AccountRepository)(nil)

func toDomainAccount(adb *accountDB) (*account.Account, error) {
	id, err := pkg.ParseULID(adb.Id)
	if err != nil {
		return nil, err
	}

	userID, err := pkg.ParseULID(adb.UserId)
	if err != nil {
		return nil, err
	}

	return &account.Account{
		Id:                id,
		UserId:            userID,
		Name:              adb.Name,
		Type:              account.AccountType(adb.Type),
		InitialBalance:    adb.InitialBalance,
		CurrentBalance:    adb.CurrentBalance,
		TotalExpenses:     adb.TotalExpenses,
		TotalIncomes:      adb.TotalIncomes,
		TotalTransfersIn:  adb.TotalTransfersIn,
		TotalTransfersOut: adb.TotalTransfersOut,
		CreatedAt:         adb.CreatedAt,
		UpdatedAt:         adb.UpdatedAt,
	}, nil
}

func toDBAccount(a *account.Account) *accountDB {
	return &accountDB{
		Id:                a.Id.String(),
		UserId:            a.UserId.String(),
		Name:              a.Name,
		Type:              string(a.Type),
		InitialBalance:    a.InitialBalance,
		CurrentBalance:    a.CurrentBalance,
		TotalExpenses:     a.TotalExpenses,
		TotalIncomes:      a.TotalIncomes,
		TotalTransfersIn:  a.TotalTransfersIn,
		TotalTransfersOut: a.TotalTransfersOut,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	return conn(ctx, r.DB).Create(toDBAccount(a)).Error
}

// Update writes the editable fields. The current balance is derived in SQL from the
// stored totals, which only move through ApplyDelta and SaveTotals.
func (r *AccountRepository) Update(ctx context.Context, a *account.Account) error {
	return conn(ctx, r.DB).Model(&accountDB{}).
		Where("id = ? AND user_id = ?", a.Id.String(), a.UserId.String()).
		Updates(map[string]interface{}{
			"name":            a.Name,
			"type":            string(a.Type),
			"initial_balance": a.InitialBalance,
			"current_balance": gorm.Expr("? + total_incomes - total_expenses + total_transfers_in - total_transfers_out", a.InitialBalance),
			"updated_at":      a.UpdatedAt,
		}).Error
}

func (r *AccountRepository) Delete(ctx context.Context, accountID, userID ulid.ULID) error {
	return conn(ctx, r.DB).Where("id = ? AND user_id = ?", accountID.String(), userID.String()).Delete(&accountDB{}).Error
}

func (r *AccountRepository) GetById(ctx context.Context, accountID, userID ulid.ULID) (*account.Account, error) {
	var adb accountDB
	err := conn(ctx, r.DB).Where("id = ? AND user_id = ?", accountID.String(), userID.String()).First(&adb).Error
	if err != nil {
		return nil, err
	}
	return toDomainAccount(&adb)
}

func (r *AccountRepository) findByUser(ctx context.Context, userID ulid.ULID) *query.Query[accountDB] {
	return query.New[accountDB](conn(ctx, r.DB), "accounts").
		Context(ctx).
		Where("user_id = ?", userID.String()).
		Order("created_at DESC, id DESC")
}

func (r *AccountRepository) List(ctx context.Context, userID ulid.ULID, search string, page query.Page) (*query.Result[*account.Account], error) {
	q := r.findByUser(ctx, userID).Search("name", search)
	return query.Execute(q, page, toDomainAccount)
}

func (r *AccountRepository) ListByUser(ctx context.Context, userID ulid.ULID) ([]*account.Account, error) {
	return query.ExecuteAll(r.findByUser(ctx, userID), toDomainAccount)
}

func (r *AccountRepository) ApplyDelta(ctx context.Context, accountID, userID ulid.ULID, d account.Delta) (*account.Account, bool, error) {
	db := conn(ctx, r.DB)

	var adb accountDB
	err := forUpdate(db).Where("id = ? AND user_id = ?", accountID.String(), userID.String()).Take(&adb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	a, err := toDomainAccount(&adb)
	if err != nil {
		return nil, false, err
	}
	a.Apply(d)

	if err := r.SaveTotals(ctx, a); err != nil {
		return nil, false, err
	}
	return a, true, nil
}

func (r *AccountRepository) Lock(ctx context.Context, userID ulid.ULID, ids ...ulid.ULID) (map[ulid.ULID]*account.Account, error) {
	out := make(map[ulid.ULID]*account.Account, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []accountDB
	err := forUpdate(conn(ctx, r.DB)).
		Where("user_id = ? AND id IN ?", userID.String(), pkg.ULIDStrings(ids)).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		a, err := toDomainAccount(&rows[i])
		if err != nil {
			return nil, err
		}
		out[a.Id] = a
	}
	return out, nil
}

func (r *AccountRepository) SaveTotals(ctx context.Context, a *account.Account) error {
	a.UpdatedAt = time.Now()
	return conn(ctx, r.DB).Model(&accountDB{}).
		Where("id = ?", a.Id.String()).
		Updates(map[string]interface{}{
			"current_balance":     a.CurrentBalance,
			"total_expenses":      a.TotalExpenses,
			"total_incomes":       a.TotalIncomes,
			"total_transfers_in":  a.TotalTransfersIn,
			"total_transfers_out": a.TotalTransfersOut,
			"updated_at":          a.UpdatedAt,
		}).Error
}
