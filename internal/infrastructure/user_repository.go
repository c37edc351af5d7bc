package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/user"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

var _ user.Repository = (*UserRepository)(nil)

func toDomainUser(udb *userDB) (*user.User, error) {
	id, err := pkg.ParseULID(udb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &user.User{
		Id:             id,
		Name:           udb.Name,
		Email:          udb.Email,
		BalanceTotal:   udb.BalanceTotal,
		BalanceIncome:  udb.BalanceIncome,
		BalanceOutcome: udb.BalanceOutcome,
		CreatedAt:      udb.CreatedAt,
		UpdatedAt:      udb.UpdatedAt,
	}, nil
}

func toDBUser(u *user.User) *userDB {
	return &userDB{
		Id:             u.Id.String(),
		Name:           u.Name,
		Email:          u.Email,
		BalanceTotal:   u.BalanceTotal,
		BalanceIncome:  u.BalanceIncome,
		BalanceOutcome: u.BalanceOutcome,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	return conn(ctx, r.DB).Create(toDBUser(u)).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id ulid.ULID) (*user.User, error) {
	var udb userDB
	if err := conn(ctx, r.DB).Where("id = ?", id.String()).First(&udb).Error; err != nil {
		return nil, err
	}
	return toDomainUser(&udb)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var udb userDB
	if err := conn(ctx, r.DB).Where("email = ?", email).First(&udb).Error; err != nil {
		return nil, err
	}
	return toDomainUser(&udb)
}

func (r *UserRepository) Exists(ctx context.Context, id ulid.ULID) (bool, error) {
	var count int64
	err := conn(ctx, r.DB).Model(&userDB{}).Where("id = ?", id.String()).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ListIDs(ctx context.Context) ([]ulid.ULID, error) {
	var raw []string
	if err := conn(ctx, r.DB).Model(&userDB{}).Order("id").Pluck("id", &raw).Error; err != nil {
		return nil, err
	}
	return parseIDs(raw...)
}

func (r *UserRepository) ApplyDelta(ctx context.Context, id ulid.ULID, d user.Delta) (*user.User, bool, error) {
	db := conn(ctx, r.DB)

	var udb userDB
	err := forUpdate(db).Where("id = ?", id.String()).Take(&udb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	u, err := toDomainUser(&udb)
	if err != nil {
		return nil, false, err
	}
	u.Apply(d)

	if err := r.SaveBalances(ctx, u); err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func (r *UserRepository) SaveBalances(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now()
	return conn(ctx, r.DB).Model(&userDB{}).
		Where("id = ?", u.Id.String()).
		Updates(map[string]interface{}{
			"balance_total":   u.BalanceTotal,
			"balance_income":  u.BalanceIncome,
			"balance_outcome": u.BalanceOutcome,
			"updated_at":      u.UpdatedAt,
		}).Error
}
