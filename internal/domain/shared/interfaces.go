package shared

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type UserChecker interface {
	Exists(ctx context.Context, userID ulid.ULID) error
}

// Transactor runs fn inside a database transaction carried by ctx.
// Nested calls join the outer transaction through a savepoint.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	// WithinSnapshot runs fn in a read-only transaction with a stable snapshot.
	WithinSnapshot(ctx context.Context, fn func(ctx context.Context) error) error
}
