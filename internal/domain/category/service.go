package category

import (
	"context"
	"errors"
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/shared"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/logger"
	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	Repository Repository
	Transactor shared.Transactor
	shared.BaseService
}

func NewService(repo Repository, transactor shared.Transactor, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository: repo,
		Transactor: transactor,
		BaseService: shared.BaseService{
			UserChecker: userChecker,
		},
	}
}

func (s *Service) Create(ctx context.Context, category *Category) error {
	if err := s.EnsureUserExists(ctx, category.UserId); err != nil {
		return err
	}

	category.Name = shared.NormalizeName(category.Name)
	if category.Name == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}

	now := time.Now()
	category.Id = pkg.GenerateULIDObject()
	category.Total = decimal.Zero
	category.Subcategories = nil
	category.CreatedAt = now
	category.UpdatedAt = now

	if err := s.Repository.Create(ctx, category); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return appErrors.NewConflictError("categoria")
		}
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

func (s *Service) CreateSubcategory(ctx context.Context, sub *Subcategory) error {
	if _, err := s.GetByID(ctx, sub.CategoryId, sub.UserId); err != nil {
		return err
	}

	sub.Name = shared.NormalizeName(sub.Name)
	if sub.Name == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}

	now := time.Now()
	sub.Id = pkg.GenerateULIDObject()
	sub.Total = decimal.Zero
	sub.CreatedAt = now
	sub.UpdatedAt = now

	if err := s.Repository.CreateSubcategory(ctx, sub); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return appErrors.NewConflictError("subcategoria")
		}
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// CreateDefaultCategories inserts the starter set, skipping names the user already has.
func (s *Service) CreateDefaultCategories(ctx context.Context, userID ulid.ULID) error {
	existing, err := s.Repository.ListByUser(ctx, userID, nil)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	names := make(map[string]struct{}, len(existing))
	for _, cat := range existing {
		names[cat.Name] = struct{}{}
	}

	return s.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, cat := range GetDefaultCategoriesForUser(userID) {
			if _, ok := names[cat.Name]; ok {
				continue
			}
			subs := cat.Subcategories
			if err := s.Repository.Create(ctx, cat); err != nil {
				return appErrors.NewDatabaseError(err)
			}
			for i := range subs {
				if err := s.Repository.CreateSubcategory(ctx, &subs[i]); err != nil {
					return appErrors.NewDatabaseError(err)
				}
			}
		}
		logger.Info().Str("user_id", userID.String()).Msg("Categorias padrão criadas")
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, categoryID, userID ulid.ULID) error {
	cat, err := s.GetByID(ctx, categoryID, userID)
	if err != nil {
		return err
	}

	if !cat.Total.IsZero() {
		return appErrors.NewValidationError("category", "Categoria possui movimentações, não pode remover")
	}
	for _, sub := range cat.Subcategories {
		if !sub.Total.IsZero() {
			return appErrors.NewValidationError("category", "Subcategoria possui movimentações, não pode remover")
		}
	}

	if err := s.Repository.Delete(ctx, categoryID, userID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, categoryID, userID ulid.ULID) (*Category, error) {
	category, err := s.Repository.GetByID(ctx, categoryID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return category, nil
}

func (s *Service) List(ctx context.Context, userID ulid.ULID, isIncome *bool) ([]*Category, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	categories, err := s.Repository.ListByUser(ctx, userID, isIncome)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return categories, nil
}
