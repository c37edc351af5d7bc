package reconcile

import (
	"context"
	"sync"
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/shared"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/logger"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	Repository  Repository
	Transactor  shared.Transactor
	Concurrency int
	Now         func() time.Time
}

func NewService(repo Repository, transactor shared.Transactor, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		Repository:  repo,
		Transactor:  transactor,
		Concurrency: concurrency,
		Now:         time.Now,
	}
}

// Reconcile recomputes every aggregate of the owner from the transaction tables and,
// when fix is set, overwrites the drifted values in the same locked transaction.
func (s *Service) Reconcile(ctx context.Context, userID ulid.ULID, fix bool) (*Report, error) {
	report := &Report{UserId: userID, CheckedAt: s.Now().UTC()}

	err := s.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		ok, err := s.Repository.LockOwner(ctx, userID)
		if err != nil {
			return appErrors.NewDatabaseError(err)
		}
		if !ok {
			return appErrors.ErrUserNotFound
		}

		stored, err := s.Repository.Stored(ctx, userID)
		if err != nil {
			return appErrors.NewDatabaseError(err)
		}
		expected, err := s.Repository.Expected(ctx, userID)
		if err != nil {
			return appErrors.NewDatabaseError(err)
		}

		report.Drifts = Diff(userID, stored, expected)
		if !fix || report.Clean() {
			return nil
		}

		if err := s.Repository.Fix(ctx, userID, expected, report.Drifts); err != nil {
			return appErrors.NewDatabaseError(err)
		}
		report.Fixed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, d := range report.Drifts {
		logger.Warn().
			Str("user_id", userID.String()).
			Str("entity", d.Entity).
			Str("id", d.Id.String()).
			Str("field", d.Field).
			Str("stored", d.Stored.String()).
			Str("expected", d.Expected.String()).
			Bool("fixed", report.Fixed).
			Msg("reconcile_drift")
	}
	return report, nil
}

// ReconcileAll runs Reconcile for every owner with bounded concurrency.
func (s *Service) ReconcileAll(ctx context.Context, fix bool) ([]*Report, error) {
	ids, err := s.Repository.ListUserIDs(ctx)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	var (
		mu      sync.Mutex
		reports = make([]*Report, 0, len(ids))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			report, err := s.Reconcile(gctx, id, fix)
			if err != nil {
				if appErrors.HasCode(err, appErrors.ErrUserNotFound.Code) {
					return nil
				}
				return err
			}
			mu.Lock()
			reports = append(reports, report)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	drifted := 0
	for _, r := range reports {
		if !r.Clean() {
			drifted++
		}
	}
	logger.Info().
		Int("users", len(reports)).
		Int("users_with_drift", drifted).
		Bool("fix", fix).
		Msg("Reconciliação concluída")

	return reports, nil
}
