package shared

import (
	"context"

	appErrors "github.com/Toston-App/lake-sub000/internal/errors"

	"github.com/oklog/ulid/v2"
)

type UserCheckerService struct {
	userService UserChecker
}

func NewUserCheckerService(userService UserChecker) *UserCheckerService {
	return &UserCheckerService{userService: userService}
}

func (s *UserCheckerService) EnsureUserExists(ctx context.Context, userID ulid.ULID) error {
	if s == nil || s.userService == nil {
		return appErrors.ErrInternalServer
	}

	if err := s.userService.Exists(ctx, userID); err != nil {
		if appErrors.HasCode(err, appErrors.ErrUserNotFound.Code) {
			return err
		}
		return appErrors.FromError(err)
	}

	return nil
}

type BaseService struct {
	UserChecker *UserCheckerService
}

func (b *BaseService) EnsureUserExists(ctx context.Context, userID ulid.ULID) error {
	if b.UserChecker == nil {
		return appErrors.ErrInternalServer
	}
	return b.UserChecker.EnsureUserExists(ctx, userID)
}
