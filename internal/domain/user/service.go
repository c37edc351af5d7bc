package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

type CreateUserRequest struct {
	Name  string
	Email string
}

func (s *Service) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, appErrors.NewValidationError("email", "Email inválido")
	}

	existing, err := s.Repository.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.NewDatabaseError(err)
	}
	if existing != nil {
		return nil, appErrors.NewConflictError("Email")
	}

	now := time.Now()
	user := &User{
		Id:             pkg.GenerateULIDObject(),
		Name:           name,
		Email:          email,
		BalanceTotal:   decimal.Zero,
		BalanceIncome:  decimal.Zero,
		BalanceOutcome: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Repository.Create(ctx, user); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id ulid.ULID) (*User, error) {
	user, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrUserNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return user, nil
}

func (s *Service) Exists(ctx context.Context, id ulid.ULID) error {
	ok, err := s.Repository.Exists(ctx, id)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	if !ok {
		return appErrors.ErrUserNotFound
	}
	return nil
}
