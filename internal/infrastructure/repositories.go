package infrastructure

import "gorm.io/gorm"

// Repositories groups every gorm-backed store sharing one connection.
type Repositories struct {
	Transactor   *Transactor
	Users        *UserRepository
	Accounts     *AccountRepository
	Categories   *CategoryRepository
	Places       *PlaceRepository
	Goals        *GoalRepository
	Transactions *TransactionRepository
	Feed         *FeedRepository
	Reconcile    *ReconcileRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	goals := &GoalRepository{DB: db}
	return &Repositories{
		Transactor:   NewTransactor(db),
		Users:        &UserRepository{DB: db},
		Accounts:     &AccountRepository{DB: db},
		Categories:   &CategoryRepository{DB: db},
		Places:       &PlaceRepository{DB: db},
		Goals:        goals,
		Transactions: &TransactionRepository{DB: db},
		Feed:         &FeedRepository{DB: db},
		Reconcile:    &ReconcileRepository{DB: db, Goals: goals},
	}
}
