package transaction

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindExpense  Kind = "expense"
	KindIncome   Kind = "income"
	KindTransfer Kind = "transfer"
)

var Kinds = []Kind{KindExpense, KindIncome, KindTransfer}

func (k Kind) IsValid() bool {
	switch k {
	case KindExpense, KindIncome, KindTransfer:
		return true
	}
	return false
}

type Expense struct {
	Id            ulid.ULID       `json:"id"`
	UserId        ulid.ULID       `json:"userId"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	AccountId     *ulid.ULID      `json:"accountId,omitempty"`
	CategoryId    *ulid.ULID      `json:"categoryId,omitempty"`
	SubcategoryId *ulid.ULID      `json:"subcategoryId,omitempty"`
	PlaceId       *ulid.ULID      `json:"placeId,omitempty"`
	GoalId        *ulid.ULID      `json:"goalId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type Income struct {
	Id            ulid.ULID       `json:"id"`
	UserId        ulid.ULID       `json:"userId"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	AccountId     *ulid.ULID      `json:"accountId,omitempty"`
	SubcategoryId *ulid.ULID      `json:"subcategoryId,omitempty"`
	PlaceId       *ulid.ULID      `json:"placeId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type Transfer struct {
	Id            ulid.ULID       `json:"id"`
	UserId        ulid.ULID       `json:"userId"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	FromAccountId ulid.ULID       `json:"fromAccountId"`
	ToAccountId   ulid.ULID       `json:"toAccountId"`
	GoalId        *ulid.ULID      `json:"goalId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// RefUpdate changes an optional reference. A nil *RefUpdate leaves it untouched;
// a RefUpdate with a nil Id clears it.
type RefUpdate struct {
	Id *ulid.ULID
}

func SetRef(id ulid.ULID) *RefUpdate {
	return &RefUpdate{Id: &id}
}

func ClearRef() *RefUpdate {
	return &RefUpdate{}
}

func (r *RefUpdate) Resolve(current *ulid.ULID) *ulid.ULID {
	if r == nil {
		return current
	}
	return r.Id
}
