package place

import (
	"context"
	"errors"
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/shared"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type Service struct {
	Repository Repository
	shared.BaseService
}

func NewService(repo Repository, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository:  repo,
		BaseService: shared.BaseService{UserChecker: userChecker},
	}
}

func (s *Service) Create(ctx context.Context, userID ulid.ULID, name string) (*Place, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	name = shared.NormalizeName(name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}

	now := time.Now()
	p := &Place{
		Id:        pkg.GenerateULIDObject(),
		UserId:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repository.Create(ctx, p); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return nil, appErrors.NewConflictError("local")
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, placeID, userID ulid.ULID) (*Place, error) {
	p, err := s.Repository.GetByID(ctx, placeID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrPlaceNotFound
	}
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, userID ulid.ULID, search string) ([]*Place, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}
	places, err := s.Repository.ListByUser(ctx, userID, search)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return places, nil
}
