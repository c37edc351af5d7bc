package goal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/shared"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/logger"
	"github.com/Toston-App/lake-sub000/internal/pkg"
	"github.com/Toston-App/lake-sub000/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	Repository Repository
	shared.BaseService
	Now func() time.Time
}

func NewService(repo Repository, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository:  repo,
		BaseService: shared.BaseService{UserChecker: userChecker},
		Now:         time.Now,
	}
}

type CreateGoalRequest struct {
	UserId   ulid.ULID
	Name     string
	Target   decimal.Decimal
	Deadline *time.Time
}

type UpdateGoalRequest struct {
	Id       ulid.ULID
	UserId   ulid.ULID
	Name     *string
	Target   *decimal.Decimal
	Deadline *time.Time
	// ClearDeadline removes the deadline; Deadline is ignored when set.
	ClearDeadline bool
}

func (s *Service) CreateGoal(ctx context.Context, req *CreateGoalRequest) (*Goal, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	if err := s.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	now := s.Now()
	entity := &Goal{
		Id:            pkg.GenerateULIDObject(),
		UserId:        req.UserId,
		Name:          strings.TrimSpace(req.Name),
		TargetAmount:  req.Target,
		CurrentAmount: decimal.Zero,
		Deadline:      req.Deadline,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	entity.Status = entity.Evaluate(now)

	if err := s.Repository.Create(ctx, entity); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return entity, nil
}

func (s *Service) UpdateGoal(ctx context.Context, req *UpdateGoalRequest) (*Goal, error) {
	current, err := s.GetGoalByID(ctx, req.Id, req.UserId)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, appErrors.NewValidationError("name", "é obrigatório")
		}
		current.Name = name
	}
	if req.Target != nil {
		if !req.Target.IsPositive() {
			return nil, appErrors.NewValidationError("target", "deve ser maior que zero")
		}
		current.TargetAmount = *req.Target
	}
	if req.ClearDeadline {
		current.Deadline = nil
	} else if req.Deadline != nil {
		current.Deadline = req.Deadline
	}

	now := s.Now()
	current.Status = current.Evaluate(now)
	current.UpdatedAt = now

	if err := s.Repository.Update(ctx, current); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return current, nil
}

func (s *Service) DeleteGoal(ctx context.Context, goalID, userID ulid.ULID) error {
	if _, err := s.GetGoalByID(ctx, goalID, userID); err != nil {
		return err
	}
	if err := s.Repository.Delete(ctx, goalID, userID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) GetGoalByID(ctx context.Context, goalID, userID ulid.ULID) (*Goal, error) {
	goal, err := s.Repository.GetByIDAndUser(ctx, goalID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrGoalNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return goal, nil
}

func (s *Service) GetGoalProgress(ctx context.Context, goalID, userID ulid.ULID) (*GoalProgress, error) {
	goal, err := s.GetGoalByID(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	return goal.Progress(), nil
}

func (s *Service) ListGoals(ctx context.Context, userID ulid.ULID, filters *GoalFilters, page query.Page) (*query.Result[*Goal], error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}
	result, err := s.Repository.GetByUserID(ctx, userID, filters, page)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return result, nil
}

// SweepOverdue flags every active goal whose deadline has passed.
func (s *Service) SweepOverdue(ctx context.Context) (int64, error) {
	today := pkg.TruncateToDay(s.Now())
	n, err := s.Repository.MarkOverdue(ctx, today)
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}
	if n > 0 {
		logger.Info().Int64("goals", n).Msg("Metas marcadas como atrasadas")
	}
	return n, nil
}

func validateCreate(req *CreateGoalRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}
	if !req.Target.IsPositive() {
		return appErrors.NewValidationError("target", "deve ser maior que zero")
	}
	return nil
}
