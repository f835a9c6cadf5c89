package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/wallet-ledger/backend/internal/application/adapter"
)

// gormUnitOfWork implements adapter.UnitOfWork over a gorm connection.
type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a unit of work backed by the given gorm connection.
func NewUnitOfWork(db *gorm.DB) adapter.UnitOfWork {
	return &gormUnitOfWork{
		db: db,
	}
}

// Execute runs fn inside one database transaction. Every repository handed to
// fn is bound to that transaction; a non-nil error rolls everything back.
func (u *gormUnitOfWork) Execute(ctx context.Context, fn func(repos adapter.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepositories(tx))
	})
}

// Repos returns repositories bound to the base connection.
func (u *gormUnitOfWork) Repos() adapter.Repositories {
	return newRepositories(u.db)
}

func newRepositories(db *gorm.DB) adapter.Repositories {
	return adapter.Repositories{
		Wallets:       NewWalletRepository(db),
		Transactions:  NewTransactionRepository(db),
		Snapshots:     NewSnapshotRepository(db),
		LinkedEntries: NewLinkedEntryRepository(db),
		Categories:    NewCategoryRepository(db),
	}
}
