package fx

import (
	"github.com/Toston-App/lake-sub000/config"
	"github.com/Toston-App/lake-sub000/internal/domain/account"
	"github.com/Toston-App/lake-sub000/internal/domain/category"
	"github.com/Toston-App/lake-sub000/internal/domain/feed"
	"github.com/Toston-App/lake-sub000/internal/domain/goal"
	"github.com/Toston-App/lake-sub000/internal/domain/ledger"
	"github.com/Toston-App/lake-sub000/internal/domain/place"
	"github.com/Toston-App/lake-sub000/internal/domain/reconcile"
	"github.com/Toston-App/lake-sub000/internal/domain/shared"
	"github.com/Toston-App/lake-sub000/internal/domain/user"
	"github.com/Toston-App/lake-sub000/internal/infrastructure"

	"go.uber.org/fx"
)

// DomainModule fornece os services do domínio e o ledger
var DomainModule = fx.Module("domain",
	fx.Provide(
		newUserService,
		newUserCheckerService,
		newAccountService,
		newCategoryService,
		newPlaceService,
		newGoalService,
		newLedgerEngine,
		newFeedService,
		newReconcileService,
	),
)

func newUserService(repo *infrastructure.UserRepository) *user.Service {
	return user.NewService(repo)
}

func newUserCheckerService(userSvc *user.Service) *shared.UserCheckerService {
	return shared.NewUserCheckerService(userSvc)
}

func newAccountService(
	repo *infrastructure.AccountRepository,
	userChecker *shared.UserCheckerService,
) *account.Service {
	return account.NewService(repo, userChecker)
}

func newCategoryService(
	repo *infrastructure.CategoryRepository,
	transactor *infrastructure.Transactor,
	userChecker *shared.UserCheckerService,
) *category.Service {
	return category.NewService(repo, transactor, userChecker)
}

func newPlaceService(
	repo *infrastructure.PlaceRepository,
	userChecker *shared.UserCheckerService,
) *place.Service {
	return place.NewService(repo, userChecker)
}

func newGoalService(
	repo *infrastructure.GoalRepository,
	userChecker *shared.UserCheckerService,
) *goal.Service {
	return goal.NewService(repo, userChecker)
}

func newLedgerEngine(r *infrastructure.Repositories, publisher ledger.Publisher) *ledger.Engine {
	return ledger.NewEngine(
		r.Transactor,
		r.Transactions,
		r.Accounts,
		r.Categories,
		r.Users,
		r.Goals,
		r.Places,
		publisher,
	)
}

func newFeedService(
	repo *infrastructure.FeedRepository,
	transactor *infrastructure.Transactor,
	userChecker *shared.UserCheckerService,
) *feed.Service {
	return feed.NewService(repo, transactor, userChecker)
}

func newReconcileService(
	cfg *config.Config,
	repo *infrastructure.ReconcileRepository,
	transactor *infrastructure.Transactor,
) *reconcile.Service {
	return reconcile.NewService(repo, transactor, cfg.Ledger.ReconcileConcurrency)
}
