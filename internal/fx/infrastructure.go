package fx

import (
	"context"

	"github.com/Toston-App/lake-sub000/config"
	"github.com/Toston-App/lake-sub000/internal/infrastructure"
	"github.com/Toston-App/lake-sub000/internal/logger"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		infrastructure.NewRepositories,
		newTransactor,
		newUserRepository,
		newAccountRepository,
		newCategoryRepository,
		newPlaceRepository,
		newGoalRepository,
		newTransactionRepository,
		newFeedRepository,
		newReconcileRepository,
	),
)

func newDatabase(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := infrastructure.NewDb(cfg)
	if err != nil {
		return nil, err
	}
	if err := infrastructure.RunMigrations(db); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			logger.Info().Msg("Fechando conexão com o banco de dados")
			return sqlDB.Close()
		},
	})
	return db, nil
}

func newTransactor(r *infrastructure.Repositories) *infrastructure.Transactor {
	return r.Transactor
}

func newUserRepository(r *infrastructure.Repositories) *infrastructure.UserRepository {
	return r.Users
}

func newAccountRepository(r *infrastructure.Repositories) *infrastructure.AccountRepository {
	return r.Accounts
}

func newCategoryRepository(r *infrastructure.Repositories) *infrastructure.CategoryRepository {
	return r.Categories
}

func newPlaceRepository(r *infrastructure.Repositories) *infrastructure.PlaceRepository {
	return r.Places
}

func newGoalRepository(r *infrastructure.Repositories) *infrastructure.GoalRepository {
	return r.Goals
}

func newTransactionRepository(r *infrastructure.Repositories) *infrastructure.TransactionRepository {
	return r.Transactions
}

func newFeedRepository(r *infrastructure.Repositories) *infrastructure.FeedRepository {
	return r.Feed
}

func newReconcileRepository(r *infrastructure.Repositories) *infrastructure.ReconcileRepository {
	return r.Reconcile
}
