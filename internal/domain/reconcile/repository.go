package reconcile

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	ListUserIDs(ctx context.Context) ([]ulid.ULID, error)
	// LockOwner locks every aggregate row of the owner; false when the user does not exist.
	LockOwner(ctx context.Context, userID ulid.ULID) (bool, error)
	Stored(ctx context.Context, userID ulid.ULID) (*Totals, error)
	Expected(ctx context.Context, userID ulid.ULID) (*Totals, error)
	// Fix overwrites the drifted aggregates with the expected values.
	Fix(ctx context.Context, userID ulid.ULID, expected *Totals, drifts []Drift) error
}
