package user

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type User struct {
	Id             ulid.ULID       `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	BalanceTotal   decimal.Decimal `json:"balanceTotal"`
	BalanceIncome  decimal.Decimal `json:"balanceIncome"`
	BalanceOutcome decimal.Decimal `json:"balanceOutcome"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type BalanceKind string

const (
	BalanceIncome  BalanceKind = "INCOME"
	BalanceOutcome BalanceKind = "OUTCOME"
)

// Delta is a signed movement of the user's income or outcome balance.
type Delta struct {
	Kind   BalanceKind
	Amount decimal.Decimal
}

func IncomeDelta(amount decimal.Decimal) Delta {
	return Delta{Kind: BalanceIncome, Amount: amount}
}

func OutcomeDelta(amount decimal.Decimal) Delta {
	return Delta{Kind: BalanceOutcome, Amount: amount}
}

func (d Delta) Negate() Delta {
	return Delta{Kind: d.Kind, Amount: d.Amount.Neg()}
}

func (d Delta) IsZero() bool {
	return d.Amount.IsZero()
}

// Apply moves the matching balance and keeps BalanceTotal = income - outcome.
func (u *User) Apply(d Delta) {
	switch d.Kind {
	case BalanceIncome:
		u.BalanceIncome = u.BalanceIncome.Add(d.Amount)
	case BalanceOutcome:
		u.BalanceOutcome = u.BalanceOutcome.Add(d.Amount)
	}
	u.BalanceTotal = u.BalanceIncome.Sub(u.BalanceOutcome)
}
