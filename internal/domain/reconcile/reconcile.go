package reconcile

import (
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

const (
	EntityAccount     = "account"
	EntityCategory    = "category"
	EntitySubcategory = "subcategory"
	EntityUser        = "user"
	EntityGoal        = "goal"
)

type AccountTotals struct {
	Initial      decimal.Decimal
	Current      decimal.Decimal
	Expenses     decimal.Decimal
	Incomes      decimal.Decimal
	TransfersIn  decimal.Decimal
	TransfersOut decimal.Decimal
}

// Balance is the current balance implied by the totals.
func (a AccountTotals) Balance() decimal.Decimal {
	return a.Initial.Add(a.Incomes).Sub(a.Expenses).Add(a.TransfersIn).Sub(a.TransfersOut)
}

type UserTotals struct {
	Income  decimal.Decimal
	Outcome decimal.Decimal
	Total   decimal.Decimal
}

// Totals holds every aggregate of one owner, either as stored or as implied by the transactions.
type Totals struct {
	Accounts      map[ulid.ULID]AccountTotals
	Categories    map[ulid.ULID]decimal.Decimal
	Subcategories map[ulid.ULID]decimal.Decimal
	User          UserTotals
	Goals         map[ulid.ULID]decimal.Decimal
}

func NewTotals() *Totals {
	return &Totals{
		Accounts:      make(map[ulid.ULID]AccountTotals),
		Categories:    make(map[ulid.ULID]decimal.Decimal),
		Subcategories: make(map[ulid.ULID]decimal.Decimal),
		Goals:         make(map[ulid.ULID]decimal.Decimal),
	}
}

type Drift struct {
	Entity   string          `json:"entity"`
	Id       ulid.ULID       `json:"id"`
	Field    string          `json:"field"`
	Stored   decimal.Decimal `json:"stored"`
	Expected decimal.Decimal `json:"expected"`
}

type Report struct {
	UserId    ulid.ULID `json:"userId"`
	Drifts    []Drift   `json:"drifts"`
	Fixed     bool      `json:"fixed"`
	CheckedAt time.Time `json:"checkedAt"`
}

func (r *Report) Clean() bool {
	return len(r.Drifts) == 0
}

// Diff compares every stored aggregate with its expected value. Entities present only
// in expected are ignored: they are references to rows that no longer exist.
func Diff(userID ulid.ULID, stored, expected *Totals) []Drift {
	drifts := make([]Drift, 0)
	add := func(entity string, id ulid.ULID, field string, have, want decimal.Decimal) {
		if !have.Equal(want) {
			drifts = append(drifts, Drift{Entity: entity, Id: id, Field: field, Stored: have, Expected: want})
		}
	}

	for _, id := range sortedKeys(stored.Accounts) {
		have := stored.Accounts[id]
		want := expected.Accounts[id]
		want.Initial = have.Initial
		add(EntityAccount, id, "total_expenses", have.Expenses, want.Expenses)
		add(EntityAccount, id, "total_incomes", have.Incomes, want.Incomes)
		add(EntityAccount, id, "total_transfers_in", have.TransfersIn, want.TransfersIn)
		add(EntityAccount, id, "total_transfers_out", have.TransfersOut, want.TransfersOut)
		add(EntityAccount, id, "current_balance", have.Current, want.Balance())
	}

	for _, id := range sortedKeys(stored.Categories) {
		add(EntityCategory, id, "total", stored.Categories[id], valueOrZero(expected.Categories, id))
	}

	for _, id := range sortedKeys(stored.Subcategories) {
		add(EntitySubcategory, id, "total", stored.Subcategories[id], valueOrZero(expected.Subcategories, id))
	}

	add(EntityUser, userID, "balance_income", stored.User.Income, expected.User.Income)
	add(EntityUser, userID, "balance_outcome", stored.User.Outcome, expected.User.Outcome)
	add(EntityUser, userID, "balance_total", stored.User.Total, expected.User.Income.Sub(expected.User.Outcome))

	for _, id := range sortedKeys(stored.Goals) {
		add(EntityGoal, id, "current_amount", stored.Goals[id], valueOrZero(expected.Goals, id))
	}

	return drifts
}

func valueOrZero(m map[ulid.ULID]decimal.Decimal, id ulid.ULID) decimal.Decimal {
	if v, ok := m[id]; ok {
		return v
	}
	return decimal.Zero
}

func sortedKeys[V any](m map[ulid.ULID]V) []ulid.ULID {
	keys := make([]ulid.ULID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Compare(keys[j]) < 0
	})
	return keys
}
