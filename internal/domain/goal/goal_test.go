package goal_test

import (
	"testing"
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/goal"

	"github.com/shopspring/decimal"
)

func TestEvaluate(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	past := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	future := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		current  int64
		deadline *time.Time
		want     goal.GoalStatus
	}{
		{name: "below target without deadline", current: 100, want: goal.Active},
		{name: "reached target", current: 1000, want: goal.Completed},
		{name: "above target after deadline", current: 1200, deadline: &past, want: goal.Completed},
		{name: "deadline passed", current: 10, deadline: &past, want: goal.Overdue},
		{name: "deadline is today", current: 10, deadline: &today, want: goal.Active},
		{name: "future deadline", current: 10, deadline: &future, want: goal.Active},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := &goal.Goal{
				TargetAmount:  decimal.NewFromInt(1000),
				CurrentAmount: decimal.NewFromInt(tt.current),
				Deadline:      tt.deadline,
			}
			if got := g.Evaluate(now); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestApplyMovesStatusBothWays(t *testing.T) {
	now := time.Now()
	g := &goal.Goal{TargetAmount: decimal.NewFromInt(500), Status: goal.Active}

	g.Apply(decimal.NewFromInt(500), now)
	if g.Status != goal.Completed {
		t.Fatalf("expected completed, got %s", g.Status)
	}

	g.Apply(decimal.NewFromInt(-50), now)
	if g.Status != goal.Active {
		t.Fatalf("expected active after retreat, got %s", g.Status)
	}
	if !g.CurrentAmount.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("expected 450, got %s", g.CurrentAmount)
	}
}

func TestProgress(t *testing.T) {
	g := &goal.Goal{
		TargetAmount:  decimal.NewFromInt(200),
		CurrentAmount: decimal.NewFromInt(50),
		Status:        goal.Active,
	}
	p := g.Progress()
	if !p.Percentage.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected 25%%, got %s", p.Percentage)
	}
	if !p.Remaining.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected 150 remaining, got %s", p.Remaining)
	}

	g.CurrentAmount = decimal.NewFromInt(250)
	if !g.Progress().Remaining.IsZero() {
		t.Fatalf("remaining should not go negative")
	}
}
