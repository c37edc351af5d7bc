package feed

import (
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/account"
	"github.com/Toston-App/lake-sub000/internal/domain/category"
	"github.com/Toston-App/lake-sub000/internal/domain/place"
	"github.com/Toston-App/lake-sub000/internal/domain/transaction"
	"github.com/Toston-App/lake-sub000/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

type AmountOperator string

const (
	AmountEqual   AmountOperator = "equal"
	AmountLess    AmountOperator = "less"
	AmountGreater AmountOperator = "greater"
)

type Filters struct {
	StartDate      *time.Time
	EndDate        *time.Time
	Search         string
	Amount         *decimal.Decimal
	AmountOperator AmountOperator
	Accounts       []ulid.ULID
	Categories     []ulid.ULID
	Places         []ulid.ULID
	Types          []transaction.Kind
}

// Includes reports whether kind takes part in the feed for these filters.
// Place and category filters exclude transfers, which carry neither.
func (f Filters) Includes(kind transaction.Kind) bool {
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if t == kind {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if kind == transaction.KindTransfer && (len(f.Places) > 0 || len(f.Categories) > 0) {
		return false
	}
	return true
}

type Params struct {
	Filters Filters
	Order   Order
	Page    query.Page
}

// Entry is the lightweight tuple selected before hydration.
type Entry struct {
	Id   ulid.ULID
	Kind transaction.Kind
}

type Summary struct {
	Id          ulid.ULID        `json:"id"`
	Type        transaction.Kind `json:"type"`
	Amount      decimal.Decimal  `json:"amount"`
	Date        time.Time        `json:"date"`
	Description string           `json:"description"`
}

func (s Summary) GetSummary() Summary {
	return s
}

// Item is one of *ExpenseItem, *IncomeItem or *TransferItem.
type Item interface {
	GetSummary() Summary
}

type ExpenseItem struct {
	Summary
	Account     *account.Account      `json:"account,omitempty"`
	Category    *category.Category    `json:"category,omitempty"`
	Subcategory *category.Subcategory `json:"subcategory,omitempty"`
	Place       *place.Place          `json:"place,omitempty"`
	GoalId      *ulid.ULID            `json:"goalId,omitempty"`
}

type IncomeItem struct {
	Summary
	Account     *account.Account      `json:"account,omitempty"`
	Subcategory *category.Subcategory `json:"subcategory,omitempty"`
	Category    *category.Category    `json:"category,omitempty"`
	Place       *place.Place          `json:"place,omitempty"`
}

type TransferItem struct {
	Summary
	FromAccount *account.Account `json:"fromAccount,omitempty"`
	ToAccount   *account.Account `json:"toAccount,omitempty"`
	GoalId      *ulid.ULID       `json:"goalId,omitempty"`
}
