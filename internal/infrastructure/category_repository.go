package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/category"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

var _ category.Repository = (*CategoryRepository)(nil)

func toDomainCategory(cdb *categoryDB) (*category.Category, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	userID, err := pkg.ParseULID(cdb.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	c := &category.Category{
		Id:        id,
		UserId:    userID,
		Name:      cdb.Name,
		Icon:      cdb.Icon,
		IsIncome:  cdb.IsIncome,
		Total:     cdb.Total,
		CreatedAt: cdb.CreatedAt,
		UpdatedAt: cdb.UpdatedAt,
	}
	for i := range cdb.Subcategories {
		sub, err := toDomainSubcategory(&cdb.Subcategories[i])
		if err != nil {
			return nil, err
		}
		c.Subcategories = append(c.Subcategories, *sub)
	}
	return c, nil
}

// toDBCategory leaves Subcategories empty; they are written through CreateSubcategory.
func toDBCategory(c *category.Category) *categoryDB {
	return &categoryDB{
		Id:        c.Id.String(),
		UserId:    c.UserId.String(),
		Name:      c.Name,
		Icon:      c.Icon,
		IsIncome:  c.IsIncome,
		Total:     c.Total,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toDomainSubcategory(sdb *subcategoryDB) (*category.Subcategory, error) {
	ids, err := parseIDs(sdb.Id, sdb.UserId, sdb.CategoryId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return &category.Subcategory{
		Id:         ids[0],
		UserId:     ids[1],
		CategoryId: ids[2],
		Name:       sdb.Name,
		Total:      sdb.Total,
		CreatedAt:  sdb.CreatedAt,
		UpdatedAt:  sdb.UpdatedAt,
	}, nil
}

func toDBSubcategory(s *category.Subcategory) *subcategoryDB {
	return &subcategoryDB{
		Id:         s.Id.String(),
		UserId:     s.UserId.String(),
		CategoryId: s.CategoryId.String(),
		Name:       s.Name,
		Total:      s.Total,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	return conn(ctx, r.DB).Create(toDBCategory(c)).Error
}

func (r *CategoryRepository) CreateSubcategory(ctx context.Context, s *category.Subcategory) error {
	return conn(ctx, r.DB).Omit("Category").Create(toDBSubcategory(s)).Error
}

// Delete removes the category together with its subcategories.
func (r *CategoryRepository) Delete(ctx context.Context, categoryID, userID ulid.ULID) error {
	db := conn(ctx, r.DB)
	if err := db.Where("category_id = ? AND user_id = ?", categoryID.String(), userID.String()).
		Delete(&subcategoryDB{}).Error; err != nil {
		return err
	}
	return db.Where("id = ? AND user_id = ?", categoryID.String(), userID.String()).Delete(&categoryDB{}).Error
}

func (r *CategoryRepository) GetByID(ctx context.Context, categoryID, userID ulid.ULID) (*category.Category, error) {
	var cdb categoryDB
	err := conn(ctx, r.DB).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Where("id = ? AND user_id = ?", categoryID.String(), userID.String()).
		First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainCategory(&cdb)
}

func (r *CategoryRepository) GetSubcategoryByID(ctx context.Context, subcategoryID, userID ulid.ULID) (*category.Subcategory, error) {
	var sdb subcategoryDB
	err := conn(ctx, r.DB).Where("id = ? AND user_id = ?", subcategoryID.String(), userID.String()).First(&sdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainSubcategory(&sdb)
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID ulid.ULID, isIncome *bool) ([]*category.Category, error) {
	db := conn(ctx, r.DB).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Where("user_id = ?", userID.String())
	if isIncome != nil {
		db = db.Where("is_income = ?", *isIncome)
	}

	var rows []categoryDB
	if err := db.Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*category.Category, 0, len(rows))
	for i := range rows {
		c, err := toDomainCategory(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CategoryRepository) ListSubcategoriesByUser(ctx context.Context, userID ulid.ULID) ([]*category.Subcategory, error) {
	var rows []subcategoryDB
	if err := conn(ctx, r.DB).Where("user_id = ?", userID.String()).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*category.Subcategory, 0, len(rows))
	for i := range rows {
		s, err := toDomainSubcategory(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *CategoryRepository) ApplyDelta(ctx context.Context, categoryID, userID ulid.ULID, amount decimal.Decimal) (*category.Category, bool, error) {
	db := conn(ctx, r.DB)

	var cdb categoryDB
	err := forUpdate(db).Where("id = ? AND user_id = ?", categoryID.String(), userID.String()).Take(&cdb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	c, err := toDomainCategory(&cdb)
	if err != nil {
		return nil, false, err
	}
	c.Apply(amount)

	if err := r.SaveTotal(ctx, c); err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// ApplySubcategoryDelta locks the parent category before the subcategory so every writer
// takes category and subcategory locks in the same order.
func (r *CategoryRepository) ApplySubcategoryDelta(ctx context.Context, subcategoryID, userID ulid.ULID, amount decimal.Decimal, cascade bool) (*category.Subcategory, bool, error) {
	db := conn(ctx, r.DB)

	if cascade {
		var parent subcategoryDB
		err := db.Select("category_id").Where("id = ? AND user_id = ?", subcategoryID.String(), userID.String()).Take(&parent).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		categoryID, err := ulid.Parse(parent.CategoryId)
		if err != nil {
			return nil, false, appErrors.ErrInternalServer.WithError(err)
		}
		if _, _, err := r.ApplyDelta(ctx, categoryID, userID, amount); err != nil {
			return nil, false, err
		}
	}

	var sdb subcategoryDB
	err := forUpdate(db).Where("id = ? AND user_id = ?", subcategoryID.String(), userID.String()).Take(&sdb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	s, err := toDomainSubcategory(&sdb)
	if err != nil {
		return nil, false, err
	}

	s.Apply(amount)
	if err := r.SaveSubcategoryTotal(ctx, s); err != nil {
		return nil, false, err
	}
	return s, true, nil
}

func (r *CategoryRepository) SaveTotal(ctx context.Context, c *category.Category) error {
	c.UpdatedAt = time.Now()
	return conn(ctx, r.DB).Model(&categoryDB{}).
		Where("id = ?", c.Id.String()).
		Updates(map[string]interface{}{"total": c.Total, "updated_at": c.UpdatedAt}).Error
}

func (r *CategoryRepository) SaveSubcategoryTotal(ctx context.Context, s *category.Subcategory) error {
	s.UpdatedAt = time.Now()
	return conn(ctx, r.DB).Model(&subcategoryDB{}).
		Where("id = ?", s.Id.String()).
		Updates(map[string]interface{}{"total": s.Total, "updated_at": s.UpdatedAt}).Error
}
