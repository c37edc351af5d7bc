package errors_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	appErrors "github.com/Toston-App/lake-sub000/internal/errors"

	"gorm.io/gorm"
)

func TestFromErrorMapsKnownCauses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"app error passes through", appErrors.ErrGoalNotFound, "GOAL_NOT_FOUND", http.StatusNotFound},
		{"record not found", gorm.ErrRecordNotFound, "NOT_FOUND", http.StatusNotFound},
		{"canceled", context.Canceled, "REQUEST_CANCELED", http.StatusRequestTimeout},
		{"anything else", errors.New("boom"), "UNKNOWN_ERROR", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := appErrors.FromError(tt.err)
			if got.Code != tt.wantCode || got.StatusCode != tt.wantStatus {
				t.Fatalf("expected %s/%d, got %s/%d", tt.wantCode, tt.wantStatus, got.Code, got.StatusCode)
			}
			if !errors.Is(got, tt.err) {
				t.Fatalf("expected %v to be kept as the cause", tt.err)
			}
		})
	}
}

func TestParseValidationErrorsFallsBackToBadRequest(t *testing.T) {
	t.Parallel()

	cause := errors.New("unexpected EOF")
	got := appErrors.ParseValidationErrors(cause)
	if got.Code != "BAD_REQUEST" || got.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected BAD_REQUEST/400, got %s/%d", got.Code, got.StatusCode)
	}
	if !errors.Is(got, cause) {
		t.Fatalf("expected the decode error to be wrapped")
	}
}

func TestNewDatabaseErrorWrapsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	got := appErrors.NewDatabaseError(cause)
	if !appErrors.HasCode(got, "DATABASE_ERROR") || got.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected error %v", got)
	}
	if !errors.Is(got, cause) {
		t.Fatalf("expected cause to be wrapped")
	}
}
