package adapter

import "context"

// Repositories bundles every repository bound to one storage connection or
// transaction. Use cases receive it instead of individual handles so that a
// mutation, its settlement bookkeeping and its snapshot invalidation always
// observe the same transactional state.
type Repositories struct {
	Wallets       WalletRepository
	Transactions  TransactionRepository
	Snapshots     SnapshotRepository
	LinkedEntries LinkedEntryRepository
	Categories    CategoryRepository
}

// UnitOfWork executes work against the ledger store atomically.
//
// The store is single-writer; Execute is the only mutation path. Everything
// staged inside fn (guard checks, entity writes, snapshot invalidation)
// commits together or rolls back together. There is no partial commit path.
type UnitOfWork interface {
	// Execute runs fn inside one storage transaction. A non-nil error from
	// fn rolls the whole transaction back and is returned unchanged.
	Execute(ctx context.Context, fn func(repos Repositories) error) error

	// Repos returns repositories bound to the base connection, for read-only
	// work that does not need transactional bracketing.
	Repos() Repositories
}
