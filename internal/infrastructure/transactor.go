package infrastructure

import (
	"context"
	"database/sql"

	"github.com/Toston-App/lake-sub000/internal/domain/shared"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type txKey struct{}

type Transactor struct {
	DB *gorm.DB
}

var _ shared.Transactor = (*Transactor)(nil)

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{DB: db}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.run(ctx, fn)
}

func (t *Transactor) WithinSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	if isPostgres(t.DB) {
		return t.run(ctx, fn, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	}
	return t.run(ctx, fn)
}

func (t *Transactor) run(ctx context.Context, fn func(ctx context.Context) error, opts ...*sql.TxOptions) error {
	db := t.DB.WithContext(ctx)
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		// nested calls open a savepoint on the outer transaction
		db = tx
		opts = nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}, opts...)
}

// conn returns the transaction carried by ctx or the base connection.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// forUpdate adds a row lock where the dialect supports it; sqlite serializes writers instead.
func forUpdate(db *gorm.DB) *gorm.DB {
	if isPostgres(db) {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

func isPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}
