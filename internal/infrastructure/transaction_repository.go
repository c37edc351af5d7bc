package infrastructure

import (
	"context"

	"github.com/Toston-App/lake-sub000/internal/domain/transaction"
	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionRepository struct {
	DB *gorm.DB
}

var _ transaction.Repository = (*TransactionRepository)(nil)

func toDomainExpense(edb *expenseDB) (*transaction.Expense, error) {
	ids, err := parseIDs(edb.Id, edb.UserId)
	if err != nil {
		return nil, err
	}
	e := &transaction.Expense{
		Id:          ids[0],
		UserId:      ids[1],
		Amount:      edb.Amount,
		Date:        asDay(edb.Date),
		Description: edb.Description,
		CreatedAt:   edb.CreatedAt,
		UpdatedAt:   edb.UpdatedAt,
	}
	for _, ref := range []struct {
		raw *string
		dst **ulid.ULID
	}{
		{edb.AccountId, &e.AccountId},
		{edb.CategoryId, &e.CategoryId},
		{edb.SubcategoryId, &e.SubcategoryId},
		{edb.PlaceId, &e.PlaceId},
		{edb.GoalId, &e.GoalId},
	} {
		if *ref.dst, err = parseRef(ref.raw); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func toDBExpense(e *transaction.Expense) *expenseDB {
	return &expenseDB{
		Id:            e.Id.String(),
		UserId:        e.UserId.String(),
		Amount:        e.Amount,
		Date:          e.Date,
		Description:   e.Description,
		AccountId:     pkg.StringPtr(e.AccountId),
		CategoryId:    pkg.StringPtr(e.CategoryId),
		SubcategoryId: pkg.StringPtr(e.SubcategoryId),
		PlaceId:       pkg.StringPtr(e.PlaceId),
		GoalId:        pkg.StringPtr(e.GoalId),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func toDomainIncome(idb *incomeDB) (*transaction.Income, error) {
	ids, err := parseIDs(idb.Id, idb.UserId)
	if err != nil {
		return nil, err
	}
	i := &transaction.Income{
		Id:          ids[0],
		UserId:      ids[1],
		Amount:      idb.Amount,
		Date:        asDay(idb.Date),
		Description: idb.Description,
		CreatedAt:   idb.CreatedAt,
		UpdatedAt:   idb.UpdatedAt,
	}
	if i.AccountId, err = parseRef(idb.AccountId); err != nil {
		return nil, err
	}
	if i.SubcategoryId, err = parseRef(idb.SubcategoryId); err != nil {
		return nil, err
	}
	if i.PlaceId, err = parseRef(idb.PlaceId); err != nil {
		return nil, err
	}
	return i, nil
}

func toDBIncome(i *transaction.Income) *incomeDB {
	return &incomeDB{
		Id:            i.Id.String(),
		UserId:        i.UserId.String(),
		Amount:        i.Amount,
		Date:          i.Date,
		Description:   i.Description,
		AccountId:     pkg.StringPtr(i.AccountId),
		SubcategoryId: pkg.StringPtr(i.SubcategoryId),
		PlaceId:       pkg.StringPtr(i.PlaceId),
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

func toDomainTransfer(tdb *transferDB) (*transaction.Transfer, error) {
	ids, err := parseIDs(tdb.Id, tdb.UserId, tdb.FromAccountId, tdb.ToAccountId)
	if err != nil {
		return nil, err
	}
	goalID, err := parseRef(tdb.GoalId)
	if err != nil {
		return nil, err
	}
	return &transaction.Transfer{
		Id:            ids[0],
		UserId:        ids[1],
		Amount:        tdb.Amount,
		Date:          asDay(tdb.Date),
		Description:   tdb.Description,
		FromAccountId: ids[2],
		ToAccountId:   ids[3],
		GoalId:        goalID,
		CreatedAt:     tdb.CreatedAt,
		UpdatedAt:     tdb.UpdatedAt,
	}, nil
}

func toDBTransfer(t *transaction.Transfer) *transferDB {
	return &transferDB{
		Id:            t.Id.String(),
		UserId:        t.UserId.String(),
		Amount:        t.Amount,
		Date:          t.Date,
		Description:   t.Description,
		FromAccountId: t.FromAccountId.String(),
		ToAccountId:   t.ToAccountId.String(),
		GoalId:        pkg.StringPtr(t.GoalId),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// save writes every column including nulls and never touches associations.
func save(db *gorm.DB, row interface{}, id, userID ulid.ULID) error {
	return db.Model(row).
		Where("id = ? AND user_id = ?", id.String(), userID.String()).
		Select("*").
		Omit("id", "user_id", "created_at", clause.Associations).
		Updates(row).Error
}

func remove(db *gorm.DB, model interface{}, id, userID ulid.ULID) error {
	result := db.Where("id = ? AND user_id = ?", id.String(), userID.String()).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TransactionRepository) CreateExpense(ctx context.Context, e *transaction.Expense) error {
	return conn(ctx, r.DB).Omit(clause.Associations).Create(toDBExpense(e)).Error
}

func (r *TransactionRepository) UpdateExpense(ctx context.Context, e *transaction.Expense) error {
	return save(conn(ctx, r.DB), toDBExpense(e), e.Id, e.UserId)
}

func (r *TransactionRepository) DeleteExpense(ctx context.Context, id, userID ulid.ULID) error {
	return remove(conn(ctx, r.DB), &expenseDB{}, id, userID)
}

func (r *TransactionRepository) GetExpense(ctx context.Context, id, userID ulid.ULID) (*transaction.Expense, error) {
	var edb expenseDB
	err := forUpdate(conn(ctx, r.DB)).Where("id = ? AND user_id = ?", id.String(), userID.String()).Take(&edb).Error
	if err != nil {
		return nil, err
	}
	return toDomainExpense(&edb)
}

func (r *TransactionRepository) CreateIncome(ctx context.Context, i *transaction.Income) error {
	return conn(ctx, r.DB).Omit(clause.Associations).Create(toDBIncome(i)).Error
}

func (r *TransactionRepository) UpdateIncome(ctx context.Context, i *transaction.Income) error {
	return save(conn(ctx, r.DB), toDBIncome(i), i.Id, i.UserId)
}

func (r *TransactionRepository) DeleteIncome(ctx context.Context, id, userID ulid.ULID) error {
	return remove(conn(ctx, r.DB), &incomeDB{}, id, userID)
}

func (r *TransactionRepository) GetIncome(ctx context.Context, id, userID ulid.ULID) (*transaction.Income, error) {
	var idb incomeDB
	err := forUpdate(conn(ctx, r.DB)).Where("id = ? AND user_id = ?", id.String(), userID.String()).Take(&idb).Error
	if err != nil {
		return nil, err
	}
	return toDomainIncome(&idb)
}

func (r *TransactionRepository) CreateTransfer(ctx context.Context, t *transaction.Transfer) error {
	return conn(ctx, r.DB).Omit(clause.Associations).Create(toDBTransfer(t)).Error
}

func (r *TransactionRepository) UpdateTransfer(ctx context.Context, t *transaction.Transfer) error {
	return save(conn(ctx, r.DB), toDBTransfer(t), t.Id, t.UserId)
}

func (r *TransactionRepository) DeleteTransfer(ctx context.Context, id, userID ulid.ULID) error {
	return remove(conn(ctx, r.DB), &transferDB{}, id, userID)
}

func (r *TransactionRepository) GetTransfer(ctx context.Context, id, userID ulid.ULID) (*transaction.Transfer, error) {
	var tdb transferDB
	err := forUpdate(conn(ctx, r.DB)).Where("id = ? AND user_id = ?", id.String(), userID.String()).Take(&tdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainTransfer(&tdb)
}
