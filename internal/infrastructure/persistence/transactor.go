package persistence

import (
	"context"
	"database/sql"

	"github.com/propman/backend/internal/application/pipeline"
	"gorm.io/gorm"
)

type txKey struct{}

// GormTransactor runs pipeline commands inside a database transaction and
// hands the transaction to repositories through the context.
type GormTransactor struct {
	db        *gorm.DB
	isolation sql.IsolationLevel
}

// TransactorOption configures a GormTransactor
type TransactorOption func(*GormTransactor)

// WithIsolation overrides the read-committed default. SQLite only accepts sql.LevelDefault.
func WithIsolation(level sql.IsolationLevel) TransactorOption {
	return func(t *GormTransactor) {
		t.isolation = level
	}
}

// NewGormTransactor creates a new GormTransactor
func NewGormTransactor(db *gorm.DB, opts ...TransactorOption) *GormTransactor {
	t := &GormTransactor{db: db, isolation: sql.LevelReadCommitted}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
// A nested call joins the outer transaction.
func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}, &sql.TxOptions{Isolation: t.isolation})
}

// conn returns the transaction carried by ctx, or db bound to ctx.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

var _ pipeline.Transactor = (*GormTransactor)(nil)
