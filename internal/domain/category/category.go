package category

import (
	"crypto/sha256"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Category struct {
	Id            ulid.ULID       `json:"id"`
	UserId        ulid.ULID       `json:"userId"`
	Name          string          `json:"name"`
	Icon          string          `json:"icon"`
	IsIncome      bool            `json:"isIncome"`
	Total         decimal.Decimal `json:"total"`
	Subcategories []Subcategory   `json:"subcategories,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type Subcategory struct {
	Id         ulid.ULID       `json:"id"`
	UserId     ulid.ULID       `json:"userId"`
	CategoryId ulid.ULID       `json:"categoryId"`
	Name       string          `json:"name"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (c *Category) Apply(amount decimal.Decimal) {
	c.Total = c.Total.Add(amount)
}

func (s *Subcategory) Apply(amount decimal.Decimal) {
	s.Total = s.Total.Add(amount)
}

type DefaultCategoryDefinition struct {
	Name          string
	Icon          string
	IsIncome      bool
	Subcategories []string
}

var DefaultCategories = []DefaultCategoryDefinition{
	{Name: "Alimentação", Icon: "food", Subcategories: []string{"Mercado", "Restaurante"}},
	{Name: "Transporte", Icon: "car", Subcategories: []string{"Combustível", "Transporte Público"}},
	{Name: "Moradia", Icon: "home", Subcategories: []string{"Aluguel", "Contas"}},
	{Name: "Saúde", Icon: "health"},
	{Name: "Lazer", Icon: "entertainment"},
	{Name: "Salário", Icon: "salary", IsIncome: true, Subcategories: []string{"Mensal", "Bônus"}},
	{Name: "Freelance", Icon: "freelance", IsIncome: true, Subcategories: []string{"Projetos"}},
	{Name: "Outros", Icon: "other"},
}

// GetDefaultCategoriesForUser builds the starter categories with ids stable per user and name.
func GetDefaultCategoriesForUser(userID ulid.ULID) []*Category {
	now := time.Now()
	categories := make([]*Category, 0, len(DefaultCategories))

	for _, def := range DefaultCategories {
		categoryID := GenerateDeterministicID(userID.String(), def.Name)
		cat := &Category{
			Id:        categoryID,
			UserId:    userID,
			Name:      def.Name,
			Icon:      def.Icon,
			IsIncome:  def.IsIncome,
			Total:     decimal.Zero,
			CreatedAt: now,
			UpdatedAt: now,
		}
		for _, sub := range def.Subcategories {
			cat.Subcategories = append(cat.Subcategories, Subcategory{
				Id:         GenerateDeterministicID(userID.String(), def.Name+"/"+sub),
				UserId:     userID,
				CategoryId: categoryID,
				Name:       sub,
				Total:      decimal.Zero,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
		}
		categories = append(categories, cat)
	}

	return categories
}

func GenerateDeterministicID(userID, categoryName string) ulid.ULID {
	hash := sha256.Sum256([]byte("default_category:" + userID + ":" + categoryName))

	timestamp := ulid.Timestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	entropy := [10]byte{}
	copy(entropy[:], hash[:10])

	reader := &deterministicReader{data: entropy[:]}
	return ulid.MustNew(timestamp, reader)
}

type deterministicReader struct {
	data []byte
	pos  int
}

func (r *deterministicReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if r.pos >= len(r.data) {
		r.pos = 0
	}

	n := copy(p, r.data[r.pos:])
	r.pos += n

	if r.pos >= len(r.data) {
		r.pos = 0
	}

	return n, nil
}
