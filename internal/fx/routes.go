package fx

import (
	"context"
	"time"

	"github.com/Toston-App/lake-sub000/config"
	"github.com/Toston-App/lake-sub000/internal/domain/account"
	"github.com/Toston-App/lake-sub000/internal/domain/category"
	"github.com/Toston-App/lake-sub000/internal/domain/feed"
	"github.com/Toston-App/lake-sub000/internal/domain/goal"
	"github.com/Toston-App/lake-sub000/internal/domain/ledger"
	"github.com/Toston-App/lake-sub000/internal/domain/place"
	"github.com/Toston-App/lake-sub000/internal/domain/reconcile"
	"github.com/Toston-App/lake-sub000/internal/domain/user"
	"github.com/Toston-App/lake-sub000/internal/middleware"
	"github.com/Toston-App/lake-sub000/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule fornece handlers e rate limiters
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newRateLimiter,
	),
)

func newHandler(
	userSvc *user.Service,
	accountSvc *account.Service,
	categorySvc *category.Service,
	placeSvc *place.Service,
	goalSvc *goal.Service,
	engine *ledger.Engine,
	feedSvc *feed.Service,
	reconcileSvc *reconcile.Service,
) *routes.Handler {
	return &routes.Handler{
		UserService:      userSvc,
		AccountService:   accountSvc,
		CategoryService:  categorySvc,
		PlaceService:     placeSvc,
		GoalService:      goalSvc,
		Ledger:           engine,
		FeedService:      feedSvc,
		ReconcileService: reconcileSvc,
	}
}

func newRateLimiter(lc fx.Lifecycle, cfg *config.Config) *middleware.RateLimiter {
	limiter := middleware.NewRateLimiter(cfg.Ledger.RateLimitPerMinute, time.Minute)
	stop := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go limiter.Cleanup(time.Minute, stop)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			return nil
		},
	})
	return limiter
}
