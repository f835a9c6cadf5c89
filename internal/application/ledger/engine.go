// Package ledger implements the balance engine shared by the wallet,
// transaction and settlement use cases: snapshot-accelerated balance
// computation, lazy checkpoint creation, cache invalidation and the
// large-rebuild safety guard.
package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// Config carries the ledger tuning constants, loaded from the environment.
type Config struct {
	// SnapshotIntervalDays is the maximum age of the latest snapshot before
	// a present-day balance query creates a fresh one (default 90).
	SnapshotIntervalDays int

	// RebuildAgeDays is the history age beyond which the safety guard starts
	// checking rebuild impact (default 180).
	RebuildAgeDays int

	// RebuildTxnThreshold is the rebuild impact above which unconfirmed
	// writes are rejected (default 10000).
	RebuildTxnThreshold int64
}

// Engine computes wallet balances against one set of repositories. Mutating
// use cases construct an Engine over their transaction-bound repositories so
// that invalidation and the mutation commit or roll back together.
type Engine struct {
	repos adapter.Repositories
	clock adapter.Clock
	cfg   Config
}

// NewEngine creates a balance engine over the given repositories.
func NewEngine(repos adapter.Repositories, clock adapter.Clock, cfg Config) *Engine {
	return &Engine{
		repos: repos,
		clock: clock,
		cfg:   cfg,
	}
}

// Today returns the current UTC calendar date.
func (e *Engine) Today() time.Time {
	return entity.DateOf(e.clock.Now())
}

// Balance computes the wallet's balance as of the end of asOf.
//
// The most recent snapshot dated on or before asOf provides the starting
// balance; only transactions dated after it (and up to asOf) are summed.
// Normal wallets: start + inflows - outflows. Credit wallets:
// start + outflows - inflows, a positive result being debt owed. Reserved
// transactions never count. Ignored transactions always count.
//
// When allowCacheWrite is set and asOf is today, a stale or missing
// checkpoint is refreshed as a side effect (see maybeCreateLazySnapshot).
// Historical queries must pass allowCacheWrite=false so probing the past
// never pollutes the cache.
func (e *Engine) Balance(ctx context.Context, wallet *entity.Wallet, asOf time.Time, allowCacheWrite bool) (decimal.Decimal, error) {
	asOf = entity.DateOf(asOf)

	snapshot, err := e.repos.Snapshots.LatestOnOrBefore(ctx, wallet.ID, asOf)
	if err != nil {
		return decimal.Zero, err
	}

	start := decimal.Zero
	var after *time.Time
	if snapshot != nil {
		start = snapshot.Balance
		after = &snapshot.SnapshotDate
	}

	inflow, err := e.repos.Transactions.SumByDirection(ctx, wallet.ID, entity.DirectionInflow, after, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	outflow, err := e.repos.Transactions.SumByDirection(ctx, wallet.ID, entity.DirectionOutflow, after, asOf)
	if err != nil {
		return decimal.Zero, err
	}

	if wallet.Type == entity.WalletTypeCredit {
		// Positive balance is debt owed on the card. Credit wallets do not
		// participate in lazy snapshot creation.
		return start.Add(outflow).Sub(inflow), nil
	}

	balance := start.Add(inflow).Sub(outflow)

	if allowCacheWrite && asOf.Equal(e.Today()) {
		if err := e.maybeCreateLazySnapshot(ctx, wallet.ID, snapshot, balance); err != nil {
			return decimal.Zero, err
		}
	}

	return balance, nil
}

// maybeCreateLazySnapshot refreshes the wallet's checkpoint when none exists
// or the latest is older than the configured interval. The new snapshot is
// dated yesterday and its balance backs out only today's deltas:
// balance(yesterday) = balance(today) - inflows(today) + outflows(today).
// Creation is skipped when a snapshot at or after yesterday already exists.
func (e *Engine) maybeCreateLazySnapshot(ctx context.Context, walletID uuid.UUID, latest *entity.WalletSnapshot, todayBalance decimal.Decimal) error {
	today := e.Today()

	shouldCreate := latest == nil ||
		daysBetween(latest.SnapshotDate, today) > e.cfg.SnapshotIntervalDays
	if !shouldCreate {
		return nil
	}

	snapshotDate := today.AddDate(0, 0, -1)
	if latest != nil && !latest.SnapshotDate.Before(snapshotDate) {
		return nil
	}

	inflowsToday, err := e.repos.Transactions.SumOnDate(ctx, walletID, entity.DirectionInflow, today)
	if err != nil {
		return err
	}
	outflowsToday, err := e.repos.Transactions.SumOnDate(ctx, walletID, entity.DirectionOutflow, today)
	if err != nil {
		return err
	}

	balanceYesterday := todayBalance.Sub(inflowsToday).Add(outflowsToday)

	existing, err := e.repos.Snapshots.LatestOnOrBefore(ctx, walletID, snapshotDate)
	if err != nil {
		return err
	}
	if existing != nil && existing.SnapshotDate.Equal(snapshotDate) {
		return nil
	}

	slog.Debug("Creating lazy snapshot",
		"walletID", walletID,
		"snapshotDate", snapshotDate.Format(time.DateOnly),
		"balance", balanceYesterday,
	)

	return e.repos.Snapshots.Create(ctx, entity.NewWalletSnapshot(walletID, snapshotDate, balanceYesterday))
}

// InvalidateFrom deletes every snapshot for the wallet dated on or after
// from. It must be called inside the same unit of work as the mutation that
// staled them: a transaction create/delete invalidates from its date, an
// update from min(old, new) date, a settlement reclassification from the
// settling transaction's date.
func (e *Engine) InvalidateFrom(ctx context.Context, walletID uuid.UUID, from time.Time) error {
	deleted, err := e.repos.Snapshots.DeleteFrom(ctx, walletID, entity.DateOf(from))
	if err != nil {
		return err
	}
	if deleted > 0 {
		slog.Debug("Invalidated snapshots",
			"walletID", walletID,
			"from", entity.DateOf(from).Format(time.DateOnly),
			"deleted", deleted,
		)
	}
	return nil
}

// daysBetween returns the whole days from a to b. Both are UTC midnights.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
