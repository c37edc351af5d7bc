package feed

import (
	"context"

	"github.com/Toston-App/lake-sub000/internal/pkg/query"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	// Identify returns the page of (id, kind) tuples and the total count across all kinds.
	Identify(ctx context.Context, userID ulid.ULID, filters Filters, order Order, page query.Page) ([]Entry, int64, error)
	HydrateExpenses(ctx context.Context, userID ulid.ULID, ids []ulid.ULID) (map[ulid.ULID]*ExpenseItem, error)
	HydrateIncomes(ctx context.Context, userID ulid.ULID, ids []ulid.ULID) (map[ulid.ULID]*IncomeItem, error)
	HydrateTransfers(ctx context.Context, userID ulid.ULID, ids []ulid.ULID) (map[ulid.ULID]*TransferItem, error)
}
