package account

type AccountType string

const (
	TypeChecking   AccountType = "CHECKING"
	TypeSavings    AccountType = "SAVINGS"
	TypeCash       AccountType = "CASH"
	TypeInvestment AccountType = "INVESTMENT"
	TypeOther      AccountType = "OTHER"
)

func (t AccountType) IsValid() bool {
	switch t {
	case TypeChecking, TypeSavings, TypeCash, TypeInvestment, TypeOther:
		return true
	}
	return false
}
