package feed

import (
	"context"
	"fmt"

	"github.com/Toston-App/lake-sub000/internal/domain/shared"
	"github.com/Toston-App/lake-sub000/internal/domain/transaction"
	appErrors "github.com/Toston-App/lake-sub000/internal/errors"
	"github.com/Toston-App/lake-sub000/internal/logger"
	"github.com/Toston-App/lake-sub000/internal/pkg/query"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository Repository
	Transactor shared.Transactor
	shared.BaseService
}

func NewService(repo Repository, transactor shared.Transactor, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository:  repo,
		Transactor:  transactor,
		BaseService: shared.BaseService{UserChecker: userChecker},
	}
}

// Query selects one page of the merged expense, income and transfer feed and
// hydrates only the rows on that page, preserving the selected order.
func (s *Service) Query(ctx context.Context, userID ulid.ULID, params Params) (*query.Result[Item], error) {
	if err := Validate(&params); err != nil {
		return nil, err
	}
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	var (
		items []Item
		total int64
	)
	err := s.Transactor.WithinSnapshot(ctx, func(ctx context.Context) error {
		entries, count, err := s.Repository.Identify(ctx, userID, params.Filters, params.Order, params.Page)
		if err != nil {
			return appErrors.NewDatabaseError(err)
		}
		total = count

		items, err = s.hydrate(ctx, userID, entries)
		return err
	})
	if err != nil {
		return nil, err
	}

	return query.NewResult(items, params.Page, total), nil
}

func (s *Service) hydrate(ctx context.Context, userID ulid.ULID, entries []Entry) ([]Item, error) {
	byKind := make(map[transaction.Kind][]ulid.ULID, len(transaction.Kinds))
	for _, entry := range entries {
		byKind[entry.Kind] = append(byKind[entry.Kind], entry.Id)
	}

	var (
		expenses  map[ulid.ULID]*ExpenseItem
		incomes   map[ulid.ULID]*IncomeItem
		transfers map[ulid.ULID]*TransferItem
		err       error
	)
	if ids := byKind[transaction.KindExpense]; len(ids) > 0 {
		if expenses, err = s.Repository.HydrateExpenses(ctx, userID, ids); err != nil {
			return nil, appErrors.NewDatabaseError(err)
		}
	}
	if ids := byKind[transaction.KindIncome]; len(ids) > 0 {
		if incomes, err = s.Repository.HydrateIncomes(ctx, userID, ids); err != nil {
			return nil, appErrors.NewDatabaseError(err)
		}
	}
	if ids := byKind[transaction.KindTransfer]; len(ids) > 0 {
		if transfers, err = s.Repository.HydrateTransfers(ctx, userID, ids); err != nil {
			return nil, appErrors.NewDatabaseError(err)
		}
	}

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		var item Item
		switch entry.Kind {
		case transaction.KindExpense:
			if v, ok := expenses[entry.Id]; ok {
				item = v
			}
		case transaction.KindIncome:
			if v, ok := incomes[entry.Id]; ok {
				item = v
			}
		case transaction.KindTransfer:
			if v, ok := transfers[entry.Id]; ok {
				item = v
			}
		}
		if item == nil {
			logger.Warn().
				Str("kind", string(entry.Kind)).
				Str("transaction_id", entry.Id.String()).
				Msg("Transação selecionada não encontrada na hidratação")
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Validate fills defaults and rejects inconsistent filters.
func Validate(params *Params) error {
	switch params.Order {
	case "":
		params.Order = OrderDesc
	case OrderAsc, OrderDesc:
	default:
		return appErrors.NewValidationError("order", "deve ser asc ou desc")
	}

	params.Page = query.NewPage(params.Page.Number, params.Page.Size)

	f := &params.Filters
	for _, kind := range f.Types {
		if !kind.IsValid() {
			return appErrors.NewValidationError("transaction_type", fmt.Sprintf("tipo inválido: %s", kind))
		}
	}

	if f.Amount != nil {
		switch f.AmountOperator {
		case "":
			f.AmountOperator = AmountEqual
		case AmountEqual, AmountLess, AmountGreater:
		default:
			return appErrors.NewValidationError("amount_operator", "deve ser equal, less ou greater")
		}
	}

	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return appErrors.NewValidationError("end_date", "deve ser posterior à data inicial")
	}
	return nil
}
