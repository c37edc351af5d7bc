package infrastructure

import (
	"time"

	"github.com/Toston-App/lake-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type userDB struct {
	Id             string          `gorm:"type:varchar(26);primaryKey"`
	Name           string          `gorm:"type:varchar(100);not null"`
	Email          string          `gorm:"type:varchar(100);uniqueIndex:idx_users_email;not null"`
	BalanceTotal   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	BalanceIncome  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	BalanceOutcome decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

func (userDB) TableName() string {
	return "users"
}

type accountDB struct {
	Id                string          `gorm:"type:varchar(26);primaryKey"`
	UserId            string          `gorm:"type:varchar(26);index;not null"`
	Name              string          `gorm:"type:varchar(100);not null"`
	Type              string          `gorm:"type:varchar(20);not null"`
	InitialBalance    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CurrentBalance    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalExpenses     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalIncomes      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalTransfersIn  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalTransfersOut decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

func (accountDB) TableName() string {
	return "accounts"
}

type categoryDB struct {
	Id            string          `gorm:"type:varchar(26);primaryKey"`
	UserId        string          `gorm:"type:varchar(26);uniqueIndex:idx_categories_user_name;not null"`
	Name          string          `gorm:"type:varchar(100);uniqueIndex:idx_categories_user_name;not null"`
	Icon          string          `gorm:"type:varchar(50)"`
	IsIncome      bool            `gorm:"not null;default:false"`
	Total         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Subcategories []subcategoryDB `gorm:"foreignKey:CategoryId"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

func (categoryDB) TableName() string {
	return "categories"
}

type subcategoryDB struct {
	Id         string          `gorm:"type:varchar(26);primaryKey"`
	UserId     string          `gorm:"type:varchar(26);index;not null"`
	CategoryId string          `gorm:"type:varchar(26);uniqueIndex:idx_subcategories_category_name;not null"`
	Name       string          `gorm:"type:varchar(100);uniqueIndex:idx_subcategories_category_name;not null"`
	Total      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Category   *categoryDB     `gorm:"foreignKey:CategoryId"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

func (subcategoryDB) TableName() string {
	return "subcategories"
}

type placeDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey"`
	UserId    string    `gorm:"type:varchar(26);uniqueIndex:idx_places_user_name;not null"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex:idx_places_user_name;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (placeDB) TableName() string {
	return "places"
}

type goalDB struct {
	Id            string          `gorm:"type:varchar(26);primaryKey"`
	UserId        string          `gorm:"type:varchar(26);index;not null"`
	Name          string          `gorm:"type:varchar(100);not null"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Deadline      *time.Time      `gorm:"type:date"`
	Status        string          `gorm:"type:varchar(15);index;not null"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

func (goalDB) TableName() string {
	return "goals"
}

type expenseDB struct {
	Id            string          `gorm:"type:varchar(26);primaryKey"`
	UserId        string          `gorm:"type:varchar(26);index:idx_expenses_user_date;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date          time.Time       `gorm:"type:date;index:idx_expenses_user_date;not null"`
	Description   string          `gorm:"size:255"`
	AccountId     *string         `gorm:"type:varchar(26);index"`
	CategoryId    *string         `gorm:"type:varchar(26);index"`
	SubcategoryId *string         `gorm:"type:varchar(26);index"`
	PlaceId       *string         `gorm:"type:varchar(26);index"`
	GoalId        *string         `gorm:"type:varchar(26);index"`
	Account       *accountDB      `gorm:"foreignKey:AccountId"`
	Category      *categoryDB     `gorm:"foreignKey:CategoryId"`
	Subcategory   *subcategoryDB  `gorm:"foreignKey:SubcategoryId"`
	Place         *placeDB        `gorm:"foreignKey:PlaceId"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

func (expenseDB) TableName() string {
	return "expenses"
}

type incomeDB struct {
	Id            string          `gorm:"type:varchar(26);primaryKey"`
	UserId        string          `gorm:"type:varchar(26);index:idx_incomes_user_date;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date          time.Time       `gorm:"type:date;index:idx_incomes_user_date;not null"`
	Description   string          `gorm:"size:255"`
	AccountId     *string         `gorm:"type:varchar(26);index"`
	SubcategoryId *string         `gorm:"type:varchar(26);index"`
	PlaceId       *string         `gorm:"type:varchar(26);index"`
	Account       *accountDB      `gorm:"foreignKey:AccountId"`
	Subcategory   *subcategoryDB  `gorm:"foreignKey:SubcategoryId"`
	Place         *placeDB        `gorm:"foreignKey:PlaceId"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

func (incomeDB) TableName() string {
	return "incomes"
}

type transferDB struct {
	Id            string          `gorm:"type:varchar(26);primaryKey"`
	UserId        string          `gorm:"type:varchar(26);index:idx_transfers_user_date;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date          time.Time       `gorm:"type:date;index:idx_transfers_user_date;not null"`
	Description   string          `gorm:"size:255"`
	FromAccountId string          `gorm:"type:varchar(26);index;not null"`
	ToAccountId   string          `gorm:"type:varchar(26);index;not null"`
	GoalId        *string         `gorm:"type:varchar(26);index"`
	FromAccount   *accountDB      `gorm:"foreignKey:FromAccountId"`
	ToAccount     *accountDB      `gorm:"foreignKey:ToAccountId"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

func (transferDB) TableName() string {
	return "transfers"
}

func parseRef(s *string) (*ulid.ULID, error) {
	return pkg.ParseULIDPtr(s)
}

func parseIDs(raw ...string) ([]ulid.ULID, error) {
	out := make([]ulid.ULID, len(raw))
	for i, s := range raw {
		id, err := pkg.ParseULID(s)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}

// asDay normalizes a date read back from the driver to UTC midnight.
func asDay(t time.Time) time.Time {
	return pkg.TruncateToDay(t)
}
