package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/goal"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GoalRepository struct {
	DB *gorm.DB
}

var _ goal.Repository = (*GoalRepository)(nil)

func toDomainGoal(gdb *goalDB) (*goal.Goal, error) {
	ids, err := parseIDs(gdb.Id, gdb.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	var deadline *time.Time
	if gdb.Deadline != nil {
		d := asDay(*gdb.Deadline)
		deadline = &d
	}

	return &goal.Goal{
		Id:            ids[0],
		UserId:        ids[1],
		Name:          gdb.Name,
		TargetAmount:  gdb.TargetAmount,
		CurrentAmount: gdb.CurrentAmount,
		Deadline:      deadline,
		Status:        goal.GoalStatus(gdb.Status),
		CreatedAt:     gdb.CreatedAt,
		UpdatedAt:     gdb.UpdatedAt,
	}, nil
}

func toDBGoal(g *goal.Goal) *goalDB {
	return &goalDB{
		Id:            g.Id.String(),
		UserId:        g.UserId.String(),
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Deadline:      g.Deadline,
		Status:        string(g.Status),
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

func (r *GoalRepository) Create(ctx context.Context, g *goal.Goal) error {
	return conn(ctx, r.DB).Create(toDBGoal(g)).Error
}

// Update writes the editable fields; the current amount only moves through ApplyDelta and Recalculate.
func (r *GoalRepository) Update(ctx context.Context, g *goal.Goal) error {
	return conn(ctx, r.DB).Model(&goalDB{}).
		Where("id = ? AND user_id = ?", g.Id.String(), g.UserId.String()).
		Updates(map[string]interface{}{
			"name":          g.Name,
			"target_amount": g.TargetAmount,
			"deadline":      g.Deadline,
			"status":        string(g.Status),
			"updated_at":    g.UpdatedAt,
		}).Error
}

func (r *GoalRepository) Delete(ctx context.Context, id, userID ulid.ULID) error {
	return conn(ctx, r.DB).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&expenseDB{}, &transferDB{}} {
			if err := tx.Model(model).
				Where("goal_id = ? AND user_id = ?", id.String(), userID.String()).
				Update("goal_id", nil).Error; err != nil {
				return err
			}
		}
		result := tx.Where("id = ? AND user_id = ?", id.String(), userID.String()).Delete(&goalDB{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GoalRepository) GetByIDAndUser(ctx context.Context, id, userID ulid.ULID) (*goal.Goal, error) {
	var gdb goalDB
	if err := conn(ctx, r.DB).Where("id = ? AND user_id = ?", id.String(), userID.String()).First(&gdb).Error; err != nil {
		return nil, err
	}
	return toDomainGoal(&gdb)
}

func (r *GoalRepository) Exists(ctx context.Context, id, userID ulid.ULID) (bool, error) {
	return query.New[goalDB](conn(ctx, r.DB), "goals").
		Context(ctx).
		Where("id = ? AND user_id = ?", id.String(), userID.String()).
		Exists()
}

func (r *GoalRepository) GetByUserID(ctx context.Context, userID ulid.ULID, filters *goal.GoalFilters, page query.Page) (*query.Result[*goal.Goal], error) {
	q := query.New[goalDB](conn(ctx, r.DB), "goals").
		Context(ctx).
		Where("user_id = ?", userID.String()).
		Order("created_at DESC, id DESC")
	if filters != nil && filters.Status != nil {
		q = q.Where("status = ?", string(*filters.Status))
	}
	return query.Execute(q, page, toDomainGoal)
}

func (r *GoalRepository) lock(db *gorm.DB, id, userID ulid.ULID) (*goal.Goal, bool, error) {
	var gdb goalDB
	err := forUpdate(db).Where("id = ? AND user_id = ?", id.String(), userID.String()).Take(&gdb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	g, err := toDomainGoal(&gdb)
	if err != nil {
		return nil, false, err
	}
	return g, true, nil
}

func (r *GoalRepository) saveProgress(db *gorm.DB, g *goal.Goal, now time.Time) error {
	g.UpdatedAt = now
	return db.Model(&goalDB{}).
		Where("id = ?", g.Id.String()).
		Updates(map[string]interface{}{
			"current_amount": g.CurrentAmount,
			"status":         string(g.Status),
			"updated_at":     g.UpdatedAt,
		}).Error
}

func (r *GoalRepository) ApplyDelta(ctx context.Context, id, userID ulid.ULID, delta decimal.Decimal, now time.Time) (*goal.Goal, bool, error) {
	db := conn(ctx, r.DB)
	g, found, err := r.lock(db, id, userID)
	if err != nil || !found {
		return nil, found, err
	}

	g.Apply(delta, now)
	if err := r.saveProgress(db, g, now); err != nil {
		return nil, false, err
	}
	return g, true, nil
}

func (r *GoalRepository) Recalculate(ctx context.Context, id, userID ulid.ULID, now time.Time) (*goal.Goal, bool, error) {
	db := conn(ctx, r.DB)
	g, found, err := r.lock(db, id, userID)
	if err != nil || !found {
		return nil, found, err
	}

	current, err := r.linkedAmount(db, id, userID)
	if err != nil {
		return nil, false, err
	}

	g.Reset(current, now)
	if err := r.saveProgress(db, g, now); err != nil {
		return nil, false, err
	}
	return g, true, nil
}

// linkedAmount is the sum of linked transfers minus the sum of linked expenses.
func (r *GoalRepository) linkedAmount(db *gorm.DB, id, userID ulid.ULID) (decimal.Decimal, error) {
	transfers, err := sumAmount(db.Model(&transferDB{}).Where("goal_id = ? AND user_id = ?", id.String(), userID.String()))
	if err != nil {
		return decimal.Zero, err
	}
	expenses, err := sumAmount(db.Model(&expenseDB{}).Where("goal_id = ? AND user_id = ?", id.String(), userID.String()))
	if err != nil {
		return decimal.Zero, err
	}
	return transfers.Sub(expenses), nil
}

func (r *GoalRepository) MarkOverdue(ctx context.Context, today time.Time) (int64, error) {
	result := conn(ctx, r.DB).Model(&goalDB{}).
		Where("status = ? AND deadline IS NOT NULL AND deadline < ?", string(goal.Active), today).
		Updates(map[string]interface{}{
			"status":     string(goal.Overdue),
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// sumAmount scans COALESCE(SUM(amount), 0) of the scoped query.
func sumAmount(db *gorm.DB) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := db.Select("COALESCE(SUM(amount), 0)").Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total.Round(2), nil
}
