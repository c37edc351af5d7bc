package pkg_test

import (
	"testing"
	"time"

	"github.com/Toston-App/lake-sub000/internal/pkg"
)

func TestParseULIDList(t *testing.T) {
	a := pkg.GenerateULIDObject()
	b := pkg.GenerateULIDObject()

	tests := []struct {
		name    string
		values  []string
		want    int
		wantErr bool
	}{
		{name: "empty", values: nil, want: 0},
		{name: "repeated", values: []string{a.String(), b.String()}, want: 2},
		{name: "comma separated", values: []string{a.String() + ", " + b.String()}, want: 2},
		{name: "blank parts", values: []string{",", ""}, want: 0},
		{name: "invalid", values: []string{"nope"}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ids, err := pkg.ParseULIDList(tt.values)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(ids) != tt.want {
				t.Fatalf("expected %d ids, got %d", tt.want, len(ids))
			}
		})
	}
}

func TestSameULID(t *testing.T) {
	a := pkg.GenerateULIDObject()
	b := pkg.GenerateULIDObject()
	aCopy := a

	if !pkg.SameULID(nil, nil) {
		t.Fatalf("nil refs should match")
	}
	if pkg.SameULID(&a, nil) || pkg.SameULID(nil, &a) {
		t.Fatalf("nil and set refs should differ")
	}
	if !pkg.SameULID(&a, &aCopy) {
		t.Fatalf("equal ids should match")
	}
	if pkg.SameULID(&a, &b) {
		t.Fatalf("different ids should differ")
	}
}

func TestParseDateTruncates(t *testing.T) {
	got, err := pkg.ParseDate("2024-03-09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}

	local := time.Date(2024, 3, 9, 22, 15, 0, 0, time.FixedZone("BRT", -3*3600))
	if !pkg.TruncateToDay(local).Equal(want) {
		t.Fatalf("expected calendar date to be kept")
	}

	if _, err := pkg.ParseDate("09/03/2024"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}
