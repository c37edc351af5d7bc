package infrastructure_test

import (
	"context"
	"testing"
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/account"
	"github.com/Toston-App/lake-sub000/internal/domain/category"
	"github.com/Toston-App/lake-sub000/internal/domain/goal"
	"github.com/Toston-App/lake-sub000/internal/domain/ledger"
	"github.com/Toston-App/lake-sub000/internal/domain/place"
	"github.com/Toston-App/lake-sub000/internal/domain/user"
	"github.com/Toston-App/lake-sub000/internal/infrastructure"
	"github.com/Toston-App/lake-sub000/internal/pkg"
	"github.com/Toston-App/lake-sub000/internal/testutil"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fixture struct {
	t      *testing.T
	ctx    context.Context
	db     *gorm.DB
	repos  *infrastructure.Repositories
	engine *ledger.Engine
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewSQLite(t)
	repos := infrastructure.NewRepositories(db)

	f := &fixture{
		t:     t,
		ctx:   context.Background(),
		db:    db,
		repos: repos,
		now:   time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
	}
	f.engine = ledger.NewEngine(
		repos.Transactor,
		repos.Transactions,
		repos.Accounts,
		repos.Categories,
		repos.Users,
		repos.Goals,
		repos.Places,
		nil,
	)
	f.engine.Now = func() time.Time { return f.now }
	return f
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func day(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}

func ref(id ulid.ULID) *ulid.ULID {
	return &id
}

func (f *fixture) user() ulid.ULID {
	f.t.Helper()
	id := pkg.GenerateULIDObject()
	err := f.repos.Users.Create(f.ctx, &user.User{
		Id:        id,
		Name:      "Owner " + id.String()[20:],
		Email:     id.String() + "@example.com",
		CreatedAt: f.now,
		UpdatedAt: f.now,
	})
	if err != nil {
		f.t.Fatalf("create user: %v", err)
	}
	return id
}

func (f *fixture) account(userID ulid.ULID, initial int64) ulid.ULID {
	f.t.Helper()
	id := pkg.GenerateULIDObject()
	err := f.repos.Accounts.Create(f.ctx, &account.Account{
		Id:             id,
		UserId:         userID,
		Name:           "Conta " + id.String()[20:],
		Type:           account.TypeChecking,
		InitialBalance: dec(initial),
		CurrentBalance: dec(initial),
		CreatedAt:      f.now,
		UpdatedAt:      f.now,
	})
	if err != nil {
		f.t.Fatalf("create account: %v", err)
	}
	return id
}

// category creates a category with one subcategory and returns both ids.
func (f *fixture) category(userID ulid.ULID, name string, isIncome bool) (ulid.ULID, ulid.ULID) {
	f.t.Helper()
	c := &category.Category{
		Id:        pkg.GenerateULIDObject(),
		UserId:    userID,
		Name:      name,
		IsIncome:  isIncome,
		CreatedAt: f.now,
		UpdatedAt: f.now,
	}
	if err := f.repos.Categories.Create(f.ctx, c); err != nil {
		f.t.Fatalf("create category: %v", err)
	}
	s := &category.Subcategory{
		Id:         pkg.GenerateULIDObject(),
		UserId:     userID,
		CategoryId: c.Id,
		Name:       name + " sub",
		CreatedAt:  f.now,
		UpdatedAt:  f.now,
	}
	if err := f.repos.Categories.CreateSubcategory(f.ctx, s); err != nil {
		f.t.Fatalf("create subcategory: %v", err)
	}
	return c.Id, s.Id
}

func (f *fixture) place(userID ulid.ULID, name string) ulid.ULID {
	f.t.Helper()
	p := &place.Place{Id: pkg.GenerateULIDObject(), UserId: userID, Name: name, CreatedAt: f.now, UpdatedAt: f.now}
	if err := f.repos.Places.Create(f.ctx, p); err != nil {
		f.t.Fatalf("create place: %v", err)
	}
	return p.Id
}

func (f *fixture) goal(userID ulid.ULID, target int64) ulid.ULID {
	f.t.Helper()
	g := &goal.Goal{
		Id:           pkg.GenerateULIDObject(),
		UserId:       userID,
		Name:         "Reserva",
		TargetAmount: dec(target),
		Status:       goal.Active,
		CreatedAt:    f.now,
		UpdatedAt:    f.now,
	}
	if err := f.repos.Goals.Create(f.ctx, g); err != nil {
		f.t.Fatalf("create goal: %v", err)
	}
	return g.Id
}

func (f *fixture) getAccount(id, userID ulid.ULID) *account.Account {
	f.t.Helper()
	a, err := f.repos.Accounts.GetById(f.ctx, id, userID)
	if err != nil {
		f.t.Fatalf("get account: %v", err)
	}
	return a
}

func (f *fixture) getUser(id ulid.ULID) *user.User {
	f.t.Helper()
	u, err := f.repos.Users.GetByID(f.ctx, id)
	if err != nil {
		f.t.Fatalf("get user: %v", err)
	}
	return u
}

func (f *fixture) getCategory(id, userID ulid.ULID) *category.Category {
	f.t.Helper()
	c, err := f.repos.Categories.GetByID(f.ctx, id, userID)
	if err != nil {
		f.t.Fatalf("get category: %v", err)
	}
	return c
}

func (f *fixture) getSubcategory(id, userID ulid.ULID) *category.Subcategory {
	f.t.Helper()
	s, err := f.repos.Categories.GetSubcategoryByID(f.ctx, id, userID)
	if err != nil {
		f.t.Fatalf("get subcategory: %v", err)
	}
	return s
}

func (f *fixture) getGoal(id, userID ulid.ULID) *goal.Goal {
	f.t.Helper()
	g, err := f.repos.Goals.GetByIDAndUser(f.ctx, id, userID)
	if err != nil {
		f.t.Fatalf("get goal: %v", err)
	}
	return g
}

func assertAmount(t *testing.T, name string, got decimal.Decimal, want int64) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Fatalf("%s: expected %d, got %s", name, want, got)
	}
}
