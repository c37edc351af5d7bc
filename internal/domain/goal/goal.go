package goal

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type GoalStatus string

const (
	Active    GoalStatus = "ACTIVE"
	Completed GoalStatus = "COMPLETED"
	Overdue   GoalStatus = "OVERDUE"
)

type Goal struct {
	Id            ulid.ULID       `json:"id"`
	UserId        ulid.ULID       `json:"userId"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	Status        GoalStatus      `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Evaluate returns the status implied by the current amount and the deadline at now.
// The deadline day itself still counts as on time.
func (g *Goal) Evaluate(now time.Time) GoalStatus {
	if g.TargetAmount.IsPositive() && g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		return Completed
	}
	if g.Deadline != nil && now.After(g.Deadline.AddDate(0, 0, 1)) {
		return Overdue
	}
	return Active
}

// Apply moves the current amount and refreshes the status.
func (g *Goal) Apply(delta decimal.Decimal, now time.Time) {
	g.CurrentAmount = g.CurrentAmount.Add(delta)
	g.Status = g.Evaluate(now)
}

// Reset sets the current amount to a recalculated value and refreshes the status.
func (g *Goal) Reset(current decimal.Decimal, now time.Time) {
	g.CurrentAmount = current
	g.Status = g.Evaluate(now)
}

type GoalProgress struct {
	GoalId        ulid.ULID       `json:"goalId"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Remaining     decimal.Decimal `json:"remaining"`
	Percentage    decimal.Decimal `json:"percentage"`
	Status        GoalStatus      `json:"status"`
}

func (g *Goal) Progress() *GoalProgress {
	percentage := decimal.Zero
	if g.TargetAmount.IsPositive() {
		percentage = g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2)
	}

	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return &GoalProgress{
		GoalId:        g.Id,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Remaining:     remaining,
		Percentage:    percentage,
		Status:        g.Status,
	}
}
