package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Toston-App/lake-sub000/internal/contracts"
	"github.com/Toston-App/lake-sub000/internal/domain/account"
	"github.com/Toston-App/lake-sub000/internal/domain/category"
	"github.com/Toston-App/lake-sub000/internal/domain/feed"
	"github.com/Toston-App/lake-sub000/internal/domain/goal"
	"github.com/Toston-App/lake-sub000/internal/domain/ledger"
	"github.com/Toston-App/lake-sub000/internal/domain/place"
	"github.com/Toston-App/lake-sub000/internal/domain/reconcile"
	"github.com/Toston-App/lake-sub000/internal/domain/shared"
	"github.com/Toston-App/lake-sub000/internal/domain/user"
	"github.com/Toston-App/lake-sub000/internal/infrastructure"
	"github.com/Toston-App/lake-sub000/internal/middleware"
	"github.com/Toston-App/lake-sub000/internal/pkg"
	"github.com/Toston-App/lake-sub000/internal/routes"
	"github.com/Toston-App/lake-sub000/internal/testutil"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	contracts.RegisterValidators()
}

type server struct {
	t      *testing.T
	router *gin.Engine
}

func newServer(t *testing.T) *server {
	t.Helper()
	db := testutil.NewSQLite(t)
	repos := infrastructure.NewRepositories(db)

	userSvc := user.NewService(repos.Users)
	checker := shared.NewUserCheckerService(userSvc)

	h := &routes.Handler{
		UserService:     userSvc,
		AccountService:  account.NewService(repos.Accounts, checker),
		CategoryService: category.NewService(repos.Categories, repos.Transactor, checker),
		PlaceService:    place.NewService(repos.Places, checker),
		GoalService:     goal.NewService(repos.Goals, checker),
		Ledger: ledger.NewEngine(
			repos.Transactor,
			repos.Transactions,
			repos.Accounts,
			repos.Categories,
			repos.Users,
			repos.Goals,
			repos.Places,
			nil,
		),
		FeedService:      feed.NewService(repos.Feed, repos.Transactor, checker),
		ReconcileService: reconcile.NewService(repos.Reconcile, repos.Transactor, 2),
	}

	router := gin.New()
	routes.Register(router, h, middleware.NewRateLimiter(1000, time.Minute))
	return &server{t: t, router: router}
}

func (s *server) do(method, path, owner string, body interface{}) (int, map[string]interface{}) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if owner != "" {
		req.Header.Set(middleware.UserIDHeader, owner)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	out := map[string]interface{}{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			s.t.Fatalf("decode %s %s response %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code, out
}

func (s *server) mustDo(status int, method, path, owner string, body interface{}) map[string]interface{} {
	s.t.Helper()
	code, out := s.do(method, path, owner, body)
	if code != status {
		s.t.Fatalf("%s %s: status = %d, want %d (%v)", method, path, code, status, out)
	}
	return out
}

func (s *server) register() string {
	s.t.Helper()
	email := pkg.GenerateULID() + "@example.com"
	out := s.mustDo(http.StatusCreated, http.MethodPost, "/api/users", "", map[string]string{
		"name":  "Maria",
		"email": email,
	})
	return field(out, "user", "id").(string)
}

func (s *server) account(owner, initial string) string {
	s.t.Helper()
	out := s.mustDo(http.StatusCreated, http.MethodPost, "/api/accounts", owner, map[string]string{
		"name":            "Conta " + pkg.GenerateULID()[20:],
		"type":            "CHECKING",
		"initial_balance": initial,
	})
	return field(out, "account", "id").(string)
}

func (s *server) balance(owner, accountID string) string {
	s.t.Helper()
	out := s.mustDo(http.StatusOK, http.MethodGet, "/api/accounts/"+accountID, owner, nil)
	return field(out, "account", "currentBalance").(string)
}

func field(m map[string]interface{}, path ...string) interface{} {
	var cur interface{} = m
	for _, key := range path {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = obj[key]
	}
	return cur
}

func TestOwnerHeaderRequired(t *testing.T) {
	s := newServer(t)

	code, out := s.do(http.MethodGet, "/api/users/me", "", nil)
	if code != http.StatusUnauthorized || out["error"] != "UNAUTHORIZED" {
		t.Fatalf("unexpected response %d %v", code, out)
	}

	code, out = s.do(http.MethodGet, "/api/users/me", pkg.GenerateULID(), nil)
	if code != http.StatusNotFound || out["error"] != "USER_NOT_FOUND" {
		t.Fatalf("unexpected response %d %v", code, out)
	}
}

func TestExpenseLifecycle(t *testing.T) {
	s := newServer(t)
	owner := s.register()
	acc := s.account(owner, "1000")

	unknownPlace := pkg.GenerateULID()
	out := s.mustDo(http.StatusCreated, http.MethodPost, "/api/expenses", owner, map[string]interface{}{
		"amount":      "200",
		"date":        "2024-05-02",
		"description": "mercado",
		"account_id":  acc,
		"place_id":    unknownPlace,
	})

	dropped, _ := out["droppedReferences"].([]interface{})
	if len(dropped) != 1 || field(dropped[0].(map[string]interface{}), "field") != ledger.FieldPlace {
		t.Fatalf("expected dropped place reference, got %v", out["droppedReferences"])
	}
	expenseID := field(out, "transaction", "id").(string)

	if got := s.balance(owner, acc); got != "800" {
		t.Fatalf("balance after expense = %s, want 800", got)
	}

	s.mustDo(http.StatusOK, http.MethodPatch, "/api/expenses/"+expenseID, owner, map[string]interface{}{
		"amount": "150.5",
	})
	if got := s.balance(owner, acc); got != "849.5" {
		t.Fatalf("balance after update = %s, want 849.5", got)
	}

	out = s.mustDo(http.StatusOK, http.MethodPatch, "/api/expenses/"+expenseID, owner, map[string]interface{}{
		"account_id": "",
	})
	if field(out, "transaction", "accountId") != nil {
		t.Fatalf("expected account to be cleared, got %v", field(out, "transaction", "accountId"))
	}
	if got := s.balance(owner, acc); got != "1000" {
		t.Fatalf("balance after clearing account = %s, want 1000", got)
	}

	s.mustDo(http.StatusNoContent, http.MethodDelete, "/api/expenses/"+expenseID, owner, nil)
	code, out := s.do(http.MethodDelete, "/api/expenses/"+expenseID, owner, nil)
	if code != http.StatusNotFound || out["error"] != "TRANSACTION_NOT_FOUND" {
		t.Fatalf("unexpected second delete %d %v", code, out)
	}

	me := s.mustDo(http.StatusOK, http.MethodGet, "/api/users/me", owner, nil)
	if got := field(me, "user", "balanceOutcome"); got != "0" {
		t.Fatalf("balanceOutcome = %v, want 0", got)
	}
}

func TestCreateValidation(t *testing.T) {
	s := newServer(t)
	owner := s.register()

	tests := []struct {
		name string
		path string
		body map[string]interface{}
	}{
		{"zero amount", "/api/expenses", map[string]interface{}{"amount": "0", "date": "2024-05-01"}},
		{"negative amount", "/api/incomes", map[string]interface{}{"amount": "-3", "date": "2024-05-01"}},
		{"bad date", "/api/expenses", map[string]interface{}{"amount": "10", "date": "01/05/2024"}},
		{"missing date", "/api/incomes", map[string]interface{}{"amount": "10"}},
		{"bad reference", "/api/expenses", map[string]interface{}{"amount": "10", "date": "2024-05-01", "account_id": "xyz"}},
		{"missing endpoint", "/api/transfers", map[string]interface{}{"amount": "10", "date": "2024-05-01", "from_acc": pkg.GenerateULID()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out := s.do(http.MethodPost, tt.path, owner, tt.body)
			if code != http.StatusBadRequest || out["error"] != "VALIDATION_ERROR" {
				t.Fatalf("unexpected response %d %v", code, out)
			}
		})
	}
}

func TestTransferWithForeignAccount(t *testing.T) {
	s := newServer(t)
	owner := s.register()
	other := s.register()

	mine := s.account(owner, "500")
	theirs := s.account(other, "500")

	code, out := s.do(http.MethodPost, "/api/transfers", owner, map[string]interface{}{
		"amount":   "50",
		"date":     "2024-05-03",
		"from_acc": theirs,
		"to_acc":   mine,
	})
	if code != http.StatusUnprocessableEntity || out["error"] != "REQUIRED_REFERENCE_MISSING" {
		t.Fatalf("unexpected response %d %v", code, out)
	}
	if got := field(out, "details", "field"); got != ledger.FieldFromAccount {
		t.Fatalf("details.field = %v", got)
	}

	if got := s.balance(owner, mine); got != "500" {
		t.Fatalf("own balance changed to %s", got)
	}
	if got := s.balance(other, theirs); got != "500" {
		t.Fatalf("foreign balance changed to %s", got)
	}
}

func TestBulkCreateIsAllOrNothing(t *testing.T) {
	s := newServer(t)
	owner := s.register()
	a := s.account(owner, "100")
	b := s.account(owner, "100")

	code, out := s.do(http.MethodPost, "/api/transfers/bulk", owner, map[string]interface{}{
		"items": []map[string]interface{}{
			{"amount": "10", "date": "2024-05-01", "from_acc": a, "to_acc": b},
			{"amount": "10", "date": "2024-05-01", "from_acc": a, "to_acc": pkg.GenerateULID()},
		},
	})
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected response %d %v", code, out)
	}
	if got := field(out, "details", "index"); got != float64(1) {
		t.Fatalf("details.index = %v, want 1", got)
	}
	if got := s.balance(owner, a); got != "100" {
		t.Fatalf("balance of a = %s, want 100", got)
	}

	out = s.mustDo(http.StatusCreated, http.MethodPost, "/api/transfers/bulk", owner, map[string]interface{}{
		"items": []map[string]interface{}{
			{"amount": "10", "date": "2024-05-01", "from_acc": a, "to_acc": b},
			{"amount": "15", "date": "2024-05-02", "from_acc": b, "to_acc": a},
		},
	})
	results, _ := out["results"].([]interface{})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %v", out)
	}
	if got := s.balance(owner, a); got != "105" {
		t.Fatalf("balance of a = %s, want 105", got)
	}

	ids := []string{
		field(results[0].(map[string]interface{}), "transaction", "id").(string),
		field(results[1].(map[string]interface{}), "transaction", "id").(string),
	}
	s.mustDo(http.StatusOK, http.MethodPost, "/api/transfers/bulk-delete", owner, map[string]interface{}{"ids": ids})
	if got := s.balance(owner, b); got != "100" {
		t.Fatalf("balance of b = %s, want 100", got)
	}
}

func TestListTransactions(t *testing.T) {
	s := newServer(t)
	owner := s.register()
	a := s.account(owner, "0")
	b := s.account(owner, "0")

	for d := 1; d <= 2; d++ {
		s.mustDo(http.StatusCreated, http.MethodPost, "/api/expenses", owner, map[string]interface{}{
			"amount": "10", "date": fmt.Sprintf("2024-05-%02d", d), "account_id": a,
		})
	}
	s.mustDo(http.StatusCreated, http.MethodPost, "/api/incomes", owner, map[string]interface{}{
		"amount": "30", "date": "2024-05-03", "account_id": a,
	})
	for d := 4; d <= 6; d++ {
		s.mustDo(http.StatusCreated, http.MethodPost, "/api/transfers", owner, map[string]interface{}{
			"amount": "5", "date": fmt.Sprintf("2024-05-%02d", d), "from_acc": a, "to_acc": b,
		})
	}

	out := s.mustDo(http.StatusOK, http.MethodGet, "/api/transactions?transaction_type=transfer", owner, nil)
	items, _ := out["items"].([]interface{})
	if len(items) != 3 || out["total"] != float64(3) {
		t.Fatalf("expected 3 transfers, got %v", out)
	}
	for _, it := range items {
		item := it.(map[string]interface{})
		if item["type"] != "transfer" || field(item, "fromAccount", "id") != a {
			t.Fatalf("unexpected item %v", item)
		}
	}

	out = s.mustDo(http.StatusOK, http.MethodGet, "/api/transactions?order=asc&size=2&page=2", owner, nil)
	items, _ = out["items"].([]interface{})
	if len(items) != 2 || out["total"] != float64(6) || out["totalPages"] != float64(3) {
		t.Fatalf("unexpected page %v", out)
	}
	first := items[0].(map[string]interface{})
	if first["type"] != "income" {
		t.Fatalf("expected the income on page 2, got %v", first)
	}

	tests := []struct {
		name  string
		query string
	}{
		{"bad order", "order=sideways"},
		{"bad type", "transaction_type=refund"},
		{"bad amount", "amount=abc"},
		{"bad account id", "accounts=nope"},
		{"inverted dates", "start_date=2024-05-10&end_date=2024-05-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out := s.do(http.MethodGet, "/api/transactions?"+tt.query, owner, nil)
			if code != http.StatusBadRequest {
				t.Fatalf("unexpected response %d %v", code, out)
			}
		})
	}
}

func TestReconcileEndpoint(t *testing.T) {
	s := newServer(t)
	owner := s.register()
	acc := s.account(owner, "10")

	s.mustDo(http.StatusCreated, http.MethodPost, "/api/incomes", owner, map[string]interface{}{
		"amount": "25", "date": "2024-05-01", "account_id": acc,
	})

	out := s.mustDo(http.StatusOK, http.MethodPost, "/api/reconcile?fix=true", owner, nil)
	reports, _ := out["reports"].([]interface{})
	if len(reports) != 1 {
		t.Fatalf("expected one report, got %v", out)
	}
	if drifts, _ := reports[0].(map[string]interface{})["drifts"].([]interface{}); len(drifts) != 0 {
		t.Fatalf("expected no drift, got %v", drifts)
	}

	code, _ := s.do(http.MethodPost, "/api/reconcile?fix=maybe", owner, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
}

func TestGoalRoutes(t *testing.T) {
	s := newServer(t)
	owner := s.register()

	out := s.mustDo(http.StatusCreated, http.MethodPost, "/api/goals", owner, map[string]interface{}{
		"name": "Viagem", "target": "100", "deadline": "2099-12-31",
	})
	goalID := field(out, "goal", "id").(string)

	a := s.account(owner, "200")
	b := s.account(owner, "0")
	s.mustDo(http.StatusCreated, http.MethodPost, "/api/transfers", owner, map[string]interface{}{
		"amount": "40", "date": "2024-05-01", "from_acc": a, "to_acc": b, "goal_id": goalID,
	})

	out = s.mustDo(http.StatusOK, http.MethodGet, "/api/goals/"+goalID+"/progress", owner, nil)
	if got := field(out, "progress", "currentAmount"); got != "40" {
		t.Fatalf("currentAmount = %v, want 40", got)
	}

	out = s.mustDo(http.StatusOK, http.MethodPatch, "/api/goals/"+goalID, owner, map[string]interface{}{"deadline": ""})
	if field(out, "goal", "deadline") != nil {
		t.Fatalf("expected deadline to be cleared, got %v", field(out, "goal", "deadline"))
	}
}
