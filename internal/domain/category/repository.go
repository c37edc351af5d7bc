package category

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, category *Category) error
	CreateSubcategory(ctx context.Context, sub *Subcategory) error
	Delete(ctx context.Context, categoryID, userID ulid.ULID) error
	GetByID(ctx context.Context, categoryID, userID ulid.ULID) (*Category, error)
	GetSubcategoryByID(ctx context.Context, subcategoryID, userID ulid.ULID) (*Subcategory, error)
	ListByUser(ctx context.Context, userID ulid.ULID, isIncome *bool) ([]*Category, error)
	ListSubcategoriesByUser(ctx context.Context, userID ulid.ULID) ([]*Subcategory, error)
	// ApplyDelta locks the category row and moves its total.
	ApplyDelta(ctx context.Context, categoryID, userID ulid.ULID, amount decimal.Decimal) (*Category, bool, error)
	// ApplySubcategoryDelta locks the subcategory row, moves its total and,
	// when cascade is set, moves the parent category by the same amount.
	ApplySubcategoryDelta(ctx context.Context, subcategoryID, userID ulid.ULID, amount decimal.Decimal, cascade bool) (*Subcategory, bool, error)
	SaveTotal(ctx context.Context, category *Category) error
	SaveSubcategoryTotal(ctx context.Context, sub *Subcategory) error
}
