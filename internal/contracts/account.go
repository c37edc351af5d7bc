package contracts

import (
	"github.com/Toston-App/lake-sub000/internal/domain/account"

	"github.com/shopspring/decimal"
)

type AccountCreateRequest struct {
	Name           string          `json:"name" binding:"required,max=100"`
	Type           string          `json:"type" binding:"required,oneof=CHECKING SAVINGS CASH INVESTMENT OTHER"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

type AccountUpdateRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Type           *string          `json:"type" binding:"omitempty,oneof=CHECKING SAVINGS CASH INVESTMENT OTHER"`
	InitialBalance *decimal.Decimal `json:"initial_balance"`
}

type AccountResponse struct {
	Message string           `json:"message,omitempty"`
	Account *account.Account `json:"account"`
}
