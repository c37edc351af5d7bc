package contracts

import (
	domainGoal "github.com/Toston-App/lake-sub000/internal/domain/goal"

	"github.com/shopspring/decimal"
)

type GoalCreateRequest struct {
	Name     string          `json:"name" binding:"required,max=100"`
	Target   decimal.Decimal `json:"target" binding:"required,gt=0"`
	Deadline *string         `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
}

// GoalUpdateRequest clears the deadline when it is sent as "".
type GoalUpdateRequest struct {
	Name     *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Target   *decimal.Decimal `json:"target" binding:"omitempty,gt=0"`
	Deadline *string          `json:"deadline"`
}

type GoalResponse struct {
	Message string           `json:"message,omitempty"`
	Goal    *domainGoal.Goal `json:"goal"`
}

type GoalProgressResponse struct {
	Progress *domainGoal.GoalProgress `json:"progress"`
}
