package routes

import (
	"github.com/Toston-App/lake-sub000/internal/domain/account"
	"github.com/Toston-App/lake-sub000/internal/domain/category"
	"github.com/Toston-App/lake-sub000/internal/domain/feed"
	"github.com/Toston-App/lake-sub000/internal/domain/goal"
	"github.com/Toston-App/lake-sub000/internal/domain/ledger"
	"github.com/Toston-App/lake-sub000/internal/domain/place"
	"github.com/Toston-App/lake-sub000/internal/domain/reconcile"
	"github.com/Toston-App/lake-sub000/internal/domain/user"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/logger"
	"github.com/Toston-App/lake-sub000/internal/middleware"
	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

type Handler struct {
	UserService      *user.Service
	AccountService   *account.Service
	CategoryService  *category.Service
	PlaceService     *place.Service
	GoalService      *goal.Service
	Ledger           *ledger.Engine
	FeedService      *feed.Service
	ReconcileService *reconcile.Service
}

func (h *Handler) GetUserIDFromContext(c *gin.Context) (ulid.ULID, error) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return ulid.ULID{}, appErrors.ErrUnauthorized
	}

	userID, err := pkg.ParseULID(userIDStr.(string))
	if err != nil {
		return ulid.ULID{}, appErrors.ErrUnauthorized.WithError(err)
	}

	return userID, nil
}

func (h *Handler) parseID(c *gin.Context) (ulid.ULID, error) {
	id := c.Param("id")
	if id == "" {
		return ulid.ULID{}, appErrors.NewValidationError("id", "é obrigatório")
	}
	parsed, err := pkg.ParseULID(id)
	if err != nil {
		return ulid.ULID{}, appErrors.NewValidationError("id", "formato inválido")
	}
	return parsed, nil
}

// bindJSON binds the body and reports binding failures as validation errors.
func (h *Handler) bindJSON(c *gin.Context, body interface{}) bool {
	if err := c.ShouldBindJSON(body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return false
	}
	return true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	event := logger.Error()
	if appErr.StatusCode < 500 {
		event = logger.Warn()
	}
	event = event.Str("code", appErr.Code).Str("path", c.FullPath())
	if appErr.Err != nil {
		event = event.Err(appErr.Err)
	}
	event.Msg("request_error")
	payload := gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		payload["details"] = appErr.Details
	}
	c.JSON(appErr.StatusCode, payload)
}
