package account

import "github.com/shopspring/decimal"

// Total names one of the account aggregates moved by transactions.
type Total int

const (
	TotalExpenses Total = iota + 1
	TotalIncomes
	TotalTransfersIn
	TotalTransfersOut
)

func (t Total) String() string {
	switch t {
	case TotalExpenses:
		return "total_expenses"
	case TotalIncomes:
		return "total_incomes"
	case TotalTransfersIn:
		return "total_transfers_in"
	case TotalTransfersOut:
		return "total_transfers_out"
	}
	return "unknown"
}

type Delta struct {
	Total  Total
	Amount decimal.Decimal
}

func ExpenseDelta(amount decimal.Decimal) Delta {
	return Delta{Total: TotalExpenses, Amount: amount}
}

func IncomeDelta(amount decimal.Decimal) Delta {
	return Delta{Total: TotalIncomes, Amount: amount}
}

func TransferInDelta(amount decimal.Decimal) Delta {
	return Delta{Total: TotalTransfersIn, Amount: amount}
}

func TransferOutDelta(amount decimal.Decimal) Delta {
	return Delta{Total: TotalTransfersOut, Amount: amount}
}

func (d Delta) Negate() Delta {
	return Delta{Total: d.Total, Amount: d.Amount.Neg()}
}
