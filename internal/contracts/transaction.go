package contracts

import "github.com/shopspring/decimal"

// Reference fields in update requests: absent leaves the reference untouched, "" clears it.

type ExpenseCreateRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Date          string          `json:"date" binding:"required,datetime=2006-01-02"`
	Description   string          `json:"description" binding:"omitempty,max=255"`
	AccountId     *string         `json:"account_id"`
	CategoryId    *string         `json:"category_id"`
	SubcategoryId *string         `json:"subcategory_id"`
	PlaceId       *string         `json:"place_id"`
	GoalId        *string         `json:"goal_id"`
}

type ExpenseUpdateRequest struct {
	Amount        *decimal.Decimal `json:"amount" binding:"omitempty,gt=0"`
	Date          *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Description   *string          `json:"description" binding:"omitempty,max=255"`
	AccountId     *string          `json:"account_id"`
	CategoryId    *string          `json:"category_id"`
	SubcategoryId *string          `json:"subcategory_id"`
	PlaceId       *string          `json:"place_id"`
	GoalId        *string          `json:"goal_id"`
}

type ExpenseBulkRequest struct {
	Items []ExpenseCreateRequest `json:"items" binding:"required,min=1,max=500,dive"`
}

type IncomeCreateRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Date          string          `json:"date" binding:"required,datetime=2006-01-02"`
	Description   string          `json:"description" binding:"omitempty,max=255"`
	AccountId     *string         `json:"account_id"`
	SubcategoryId *string         `json:"subcategory_id"`
	PlaceId       *string         `json:"place_id"`
}

type IncomeUpdateRequest struct {
	Amount        *decimal.Decimal `json:"amount" binding:"omitempty,gt=0"`
	Date          *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Description   *string          `json:"description" binding:"omitempty,max=255"`
	AccountId     *string          `json:"account_id"`
	SubcategoryId *string          `json:"subcategory_id"`
	PlaceId       *string          `json:"place_id"`
}

type IncomeBulkRequest struct {
	Items []IncomeCreateRequest `json:"items" binding:"required,min=1,max=500,dive"`
}

type TransferCreateRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	Description string          `json:"description" binding:"omitempty,max=255"`
	FromAcc     string          `json:"from_acc" binding:"required"`
	ToAcc       string          `json:"to_acc" binding:"required"`
	GoalId      *string         `json:"goal_id"`
}

type TransferUpdateRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,gt=0"`
	Date        *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Description *string          `json:"description" binding:"omitempty,max=255"`
	FromAcc     *string          `json:"from_acc" binding:"omitempty,min=1"`
	ToAcc       *string          `json:"to_acc" binding:"omitempty,min=1"`
	GoalId      *string          `json:"goal_id"`
}

type TransferBulkRequest struct {
	Items []TransferCreateRequest `json:"items" binding:"required,min=1,max=500,dive"`
}

type BulkResponse[T any] struct {
	Results []T `json:"results"`
}
