package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Toston-App/lake-sub000/internal/domain/account"
	"github.com/Toston-App/lake-sub000/internal/domain/category"
	"github.com/Toston-App/lake-sub000/internal/domain/ledger"
	"github.com/Toston-App/lake-sub000/internal/domain/shared"
	"github.com/Toston-App/lake-sub000/internal/domain/user"
	"github.com/Toston-App/lake-sub000/internal/infrastructure"
	"github.com/Toston-App/lake-sub000/internal/pkg"
	"github.com/Toston-App/lake-sub000/internal/pkg/query"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagSeedUser  string
	flagSeedCount int
	flagSeedDays  int
	flagSeedValue int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Gera transações aleatórias através do ledger",
	Long:  "Cria um usuário (ou usa --user) com contas e categorias padrão e registra despesas, receitas e transferências pelo ledger.",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&flagSeedUser, "user", "u", "", "Usuário existente (ULID); vazio cria um novo")
	seedCmd.Flags().IntVarP(&flagSeedCount, "count", "n", 100, "Quantidade de transações")
	seedCmd.Flags().IntVar(&flagSeedDays, "days", 90, "Janela de datas em dias até hoje")
	seedCmd.Flags().Int64Var(&flagSeedValue, "seed", 0, "Semente do gerador (0 usa uma aleatória)")
	rootCmd.AddCommand(seedCmd)
}

type seedFixture struct {
	userID     ulid.ULID
	accounts   []ulid.ULID
	expenses   []ulid.ULID
	incomes    []ulid.ULID
	engine     *ledger.Engine
	faker      *gofakeit.Faker
	windowDays int
}

func runSeed(cmd *cobra.Command, _ []string) error {
	if flagSeedCount <= 0 {
		return fmt.Errorf("--count deve ser positivo")
	}
	if flagSeedDays <= 0 {
		return fmt.Errorf("--days deve ser positivo")
	}

	_, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeDb(db)

	if err := infrastructure.RunMigrations(db); err != nil {
		return err
	}

	ctx := cmd.Context()
	repos := infrastructure.NewRepositories(db)
	userSvc := user.NewService(repos.Users)
	checker := shared.NewUserCheckerService(userSvc)
	accountSvc := account.NewService(repos.Accounts, checker)
	categorySvc := category.NewService(repos.Categories, repos.Transactor, checker)

	faker := gofakeit.New(flagSeedValue)

	userID, err := seedUser(ctx, faker, userSvc, categorySvc)
	if err != nil {
		return err
	}

	f := &seedFixture{
		userID:     userID,
		engine:     ledger.NewEngine(repos.Transactor, repos.Transactions, repos.Accounts, repos.Categories, repos.Users, repos.Goals, repos.Places, nil),
		faker:      faker,
		windowDays: flagSeedDays,
	}
	if err := f.loadAccounts(ctx, accountSvc); err != nil {
		return err
	}
	if err := f.loadCategories(ctx, categorySvc); err != nil {
		return err
	}

	created := map[string]int{}
	for i := 0; i < flagSeedCount; i++ {
		kind, err := f.next(ctx)
		if err != nil {
			return fmt.Errorf("transação %d: %w", i, err)
		}
		created[kind]++
	}

	fmt.Printf("usuário %s: %d despesa(s), %d receita(s), %d transferência(s)\n",
		userID, created["expense"], created["income"], created["transfer"])
	return nil
}

func seedUser(ctx context.Context, faker *gofakeit.Faker, userSvc *user.Service, categorySvc *category.Service) (ulid.ULID, error) {
	if flagSeedUser != "" {
		userID, err := pkg.ParseULID(flagSeedUser)
		if err != nil {
			return ulid.ULID{}, fmt.Errorf("--user inválido: %w", err)
		}
		if err := userSvc.Exists(ctx, userID); err != nil {
			return ulid.ULID{}, err
		}
		return userID, nil
	}

	u, err := userSvc.Create(ctx, &user.CreateUserRequest{Name: faker.Name(), Email: faker.Email()})
	if err != nil {
		return ulid.ULID{}, err
	}
	if err := categorySvc.CreateDefaultCategories(ctx, u.Id); err != nil {
		return ulid.ULID{}, err
	}
	return u.Id, nil
}

func (f *seedFixture) loadAccounts(ctx context.Context, accountSvc *account.Service) error {
	existing, err := accountSvc.ListAccounts(ctx, f.userID, "", query.NewPage(1, 100))
	if err != nil {
		return err
	}
	for _, acc := range existing.Data {
		f.accounts = append(f.accounts, acc.Id)
	}

	for _, typ := range []account.AccountType{account.TypeChecking, account.TypeSavings, account.TypeCash} {
		if len(f.accounts) >= 3 {
			break
		}
		acc, err := accountSvc.CreateAccount(ctx, &account.CreateAccountRequest{
			UserId:         f.userID,
			Name:           f.faker.Company(),
			Type:           typ,
			InitialBalance: decimal.NewFromFloat(f.faker.Price(100, 5000)).Round(2),
		})
		if err != nil {
			return err
		}
		f.accounts = append(f.accounts, acc.Id)
	}
	return nil
}

func (f *seedFixture) loadCategories(ctx context.Context, categorySvc *category.Service) error {
	categories, err := categorySvc.List(ctx, f.userID, nil)
	if err != nil {
		return err
	}
	for _, c := range categories {
		if c.IsIncome {
			f.incomes = append(f.incomes, c.Id)
			continue
		}
		f.expenses = append(f.expenses, c.Id)
	}
	return nil
}

func (f *seedFixture) next(ctx context.Context) (string, error) {
	amount := decimal.NewFromFloat(f.faker.Price(1, 500)).Round(2)
	date := time.Now().UTC().AddDate(0, 0, -f.faker.Number(0, f.windowDays-1))
	description := f.faker.Sentence(4)

	switch roll := f.faker.Number(1, 10); {
	case roll <= 6:
		_, err := f.engine.CreateExpense(ctx, f.userID, ledger.ExpenseInput{
			Amount:      amount,
			Date:        date,
			Description: description,
			AccountId:   f.pick(f.accounts),
			CategoryId:  f.pick(f.expenses),
		})
		return "expense", err
	case roll <= 9 || len(f.accounts) < 2:
		_, err := f.engine.CreateIncome(ctx, f.userID, ledger.IncomeInput{
			Amount:      amount,
			Date:        date,
			Description: description,
			AccountId:   f.pick(f.accounts),
		})
		return "income", err
	default:
		from := f.faker.Number(0, len(f.accounts)-1)
		to := (from + f.faker.Number(1, len(f.accounts)-1)) % len(f.accounts)
		_, err := f.engine.CreateTransfer(ctx, f.userID, ledger.TransferInput{
			Amount:        amount,
			Date:          date,
			Description:   description,
			FromAccountId: f.accounts[from],
			ToAccountId:   f.accounts[to],
		})
		return "transfer", err
	}
}

func (f *seedFixture) pick(ids []ulid.ULID) *ulid.ULID {
	if len(ids) == 0 {
		return nil
	}
	id := ids[f.faker.Number(0, len(ids)-1)]
	return &id
}
