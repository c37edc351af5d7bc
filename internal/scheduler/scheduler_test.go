package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/Toston-App/lake-sub000/config"
	"github.com/Toston-App/lake-sub000/internal/domain/reconcile"
)

type fakeReconciler struct {
	calls int
	fix   bool
	err   error
}

func (f *fakeReconciler) ReconcileAll(_ context.Context, fix bool) ([]*reconcile.Report, error) {
	f.calls++
	f.fix = fix
	if f.err != nil {
		return nil, f.err
	}
	return []*reconcile.Report{{}, {Drifts: []reconcile.Drift{{Entity: reconcile.EntityAccount}}}}, nil
}

type fakeSweeper struct {
	calls int
}

func (f *fakeSweeper) SweepOverdue(context.Context) (int64, error) {
	f.calls++
	return 2, nil
}

func TestNewRejectsInvalidSpec(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SchedulerConfig
	}{
		{"reconcile", config.SchedulerConfig{ReconcileSpec: "every tuesday", GoalSweepSpec: "@hourly"}},
		{"goal sweep", config.SchedulerConfig{ReconcileSpec: "@daily", GoalSweepSpec: "* *"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg, &fakeReconciler{}, &fakeSweeper{}); err == nil {
				t.Fatal("expected error for invalid cron expression")
			}
		})
	}
}

func TestEmptySpecDisablesJob(t *testing.T) {
	s, err := New(config.SchedulerConfig{GoalSweepSpec: "@hourly"}, &fakeReconciler{}, &fakeSweeper{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(s.cron.Entries()); got != 1 {
		t.Fatalf("expected 1 job, got %d", got)
	}
}

func TestJobsCallServices(t *testing.T) {
	rec := &fakeReconciler{}
	sweep := &fakeSweeper{}

	s, err := New(config.SchedulerConfig{ReconcileSpec: "@daily", GoalSweepSpec: "@hourly", ReconcileFix: true}, rec, sweep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(s.cron.Entries()); got != 2 {
		t.Fatalf("expected 2 jobs, got %d", got)
	}

	s.runReconcile()
	s.runGoalSweep()

	if rec.calls != 1 || !rec.fix {
		t.Fatalf("expected one reconcile with fix, got calls=%d fix=%v", rec.calls, rec.fix)
	}
	if sweep.calls != 1 {
		t.Fatalf("expected one sweep, got %d", sweep.calls)
	}

	rec.err = errors.New("boom")
	s.runReconcile()
	if rec.calls != 2 {
		t.Fatalf("expected failing run to be attempted")
	}
}
