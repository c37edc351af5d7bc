package account

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Account struct {
	Id                ulid.ULID       `json:"id"`
	UserId            ulid.ULID       `json:"userId"`
	Name              string          `json:"name"`
	Type              AccountType     `json:"type"`
	InitialBalance    decimal.Decimal `json:"initialBalance"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	TotalIncomes      decimal.Decimal `json:"totalIncomes"`
	TotalTransfersIn  decimal.Decimal `json:"totalTransfersIn"`
	TotalTransfersOut decimal.Decimal `json:"totalTransfersOut"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// Recompute re-derives CurrentBalance from the initial balance and the four totals.
func (a *Account) Recompute() {
	a.CurrentBalance = a.InitialBalance.
		Add(a.TotalIncomes).
		Sub(a.TotalExpenses).
		Add(a.TotalTransfersIn).
		Sub(a.TotalTransfersOut)
}

func (a *Account) Apply(d Delta) {
	switch d.Total {
	case TotalExpenses:
		a.TotalExpenses = a.TotalExpenses.Add(d.Amount)
	case TotalIncomes:
		a.TotalIncomes = a.TotalIncomes.Add(d.Amount)
	case TotalTransfersIn:
		a.TotalTransfersIn = a.TotalTransfersIn.Add(d.Amount)
	case TotalTransfersOut:
		a.TotalTransfersOut = a.TotalTransfersOut.Add(d.Amount)
	}
	a.Recompute()
}

func (a *Account) HasActivity() bool {
	return !a.TotalExpenses.IsZero() ||
		!a.TotalIncomes.IsZero() ||
		!a.TotalTransfersIn.IsZero() ||
		!a.TotalTransfersOut.IsZero()
}
