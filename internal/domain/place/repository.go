package place

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, place *Place) error
	GetByID(ctx context.Context, placeID, userID ulid.ULID) (*Place, error)
	Exists(ctx context.Context, placeID, userID ulid.ULID) (bool, error)
	ListByUser(ctx context.Context, userID ulid.ULID, search string) ([]*Place, error)
}
