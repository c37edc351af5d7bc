package user

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id ulid.ULID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Exists(ctx context.Context, id ulid.ULID) (bool, error)
	ListIDs(ctx context.Context) ([]ulid.ULID, error)
	// ApplyDelta locks the user row, applies d and persists the balances.
	ApplyDelta(ctx context.Context, id ulid.ULID, d Delta) (*User, bool, error)
	SaveBalances(ctx context.Context, user *User) error
}
