package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("expected first two requests to pass")
	}
	if rl.Allow("a") {
		t.Fatal("expected third request to be limited")
	}
	if !rl.Allow("b") {
		t.Fatal("expected other keys to be independent")
	}

	now = now.Add(61 * time.Second)
	if !rl.Allow("a") {
		t.Fatal("expected window to slide")
	}

	now = now.Add(2 * time.Minute)
	rl.prune()
	if len(rl.requests) != 0 {
		t.Fatalf("expected expired keys to be pruned, got %d", len(rl.requests))
	}
}

func newOwnerRouter(limit int) *gin.Engine {
	r := gin.New()
	r.Use(RequireOwner(), RateLimitByOwner(NewRateLimiter(limit, time.Minute)))
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(UserIDKey))
	})
	return r
}

func TestRequireOwner(t *testing.T) {
	id := pkg.GenerateULID()

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"malformed", "not-a-ulid", http.StatusUnauthorized},
		{"valid", id, http.StatusOK},
	}

	r := newOwnerRouter(10)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			if tt.status == http.StatusOK && w.Body.String() != id {
				t.Fatalf("expected owner %s, got %s", id, w.Body.String())
			}
		})
	}
}

func TestRateLimitByOwner(t *testing.T) {
	r := newOwnerRouter(1)
	id := pkg.GenerateULID()

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(UserIDHeader, id)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status codes %v", codes)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("unexpected origin header %q", got)
	}
}
