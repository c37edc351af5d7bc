package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/shared"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/pkg"
	"github.com/Toston-App/lake-sub000/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	Repository Repository
	shared.BaseService
}

func NewService(repo Repository, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository: repo,
		BaseService: shared.BaseService{
			UserChecker: userChecker,
		},
	}
}

func (s *Service) CreateAccount(ctx context.Context, req *CreateAccountRequest) (*Account, error) {
	if err := s.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	account := &Account{
		Id:                pkg.GenerateULIDObject(),
		UserId:            req.UserId,
		Name:              strings.TrimSpace(req.Name),
		Type:              req.Type,
		InitialBalance:    req.InitialBalance,
		TotalExpenses:     decimal.Zero,
		TotalIncomes:      decimal.Zero,
		TotalTransfersIn:  decimal.Zero,
		TotalTransfersOut: decimal.Zero,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	account.Recompute()

	if err := s.Repository.Create(ctx, account); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return account, nil
}

func (s *Service) UpdateAccount(ctx context.Context, accountID, userID ulid.ULID, req *UpdateAccountRequest) (*Account, error) {
	account, err := s.GetAccountByID(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, appErrors.NewValidationError("name", "nao pode ser vazio")
		}
		account.Name = name
	}

	if req.Type != nil {
		if !req.Type.IsValid() {
			return nil, appErrors.NewValidationError("type", "tipo de conta invalido")
		}
		account.Type = *req.Type
	}

	if req.InitialBalance != nil {
		account.InitialBalance = *req.InitialBalance
		account.Recompute()
	}

	account.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, account); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return account, nil
}

func (s *Service) DeleteAccount(ctx context.Context, accountID, userID ulid.ULID) error {
	account, err := s.GetAccountByID(ctx, accountID, userID)
	if err != nil {
		return err
	}

	if account.HasActivity() {
		return appErrors.NewValidationError("account", "Conta possui movimentações, não pode remover")
	}

	if err := s.Repository.Delete(ctx, accountID, userID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) GetAccountByID(ctx context.Context, accountID, userID ulid.ULID) (*Account, error) {
	account, err := s.Repository.GetById(ctx, accountID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrAccountNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	return account, nil
}

func (s *Service) ListAccounts(ctx context.Context, userID ulid.ULID, search string, page query.Page) (*query.Result[*Account], error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	result, err := s.Repository.List(ctx, userID, search, page)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return result, nil
}

func (s *Service) validateCreateRequest(req *CreateAccountRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}
	if req.Type == "" {
		req.Type = TypeChecking
	}
	if !req.Type.IsValid() {
		return appErrors.NewValidationError("type", "tipo de conta invalido")
	}
	return nil
}

type CreateAccountRequest struct {
	UserId         ulid.ULID
	Name           string
	Type           AccountType
	InitialBalance decimal.Decimal
}

type UpdateAccountRequest struct {
	Name           *string
	Type           *AccountType
	InitialBalance *decimal.Decimal
}
