package account

import (
	"context"

	"github.com/Toston-App/lake-sub000/internal/pkg/query"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, account *Account) error
	Update(ctx context.Context, account *Account) error
	Delete(ctx context.Context, accountID, userID ulid.ULID) error
	GetById(ctx context.Context, accountID, userID ulid.ULID) (*Account, error)
	List(ctx context.Context, userID ulid.ULID, search string, page query.Page) (*query.Result[*Account], error)
	ListByUser(ctx context.Context, userID ulid.ULID) ([]*Account, error)
	// ApplyDelta locks the account row, applies d and persists the totals.
	ApplyDelta(ctx context.Context, accountID, userID ulid.ULID, d Delta) (*Account, bool, error)
	// Lock takes row locks on every id in the given order and reports which ones exist for the owner.
	Lock(ctx context.Context, userID ulid.ULID, ids ...ulid.ULID) (map[ulid.ULID]*Account, error)
	SaveTotals(ctx context.Context, account *Account) error
}
