package report

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/application/ledger"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	"github.com/wallet-ledger/backend/internal/integration/persistence"
	"github.com/wallet-ledger/backend/internal/integration/persistence/model"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// today is the fixed test date: 2026-03-10.
var today = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func testDeps(t *testing.T) (adapter.UnitOfWork, adapter.Clock, ledger.Config) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.WalletModel{},
		&model.TransactionModel{},
		&model.WalletSnapshotModel{},
		&model.LinkedEntryModel{},
		&model.LinkedTransactionModel{},
		&model.CategoryModel{},
		&model.SubcategoryModel{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := ledger.Config{
		SnapshotIntervalDays: 90,
		RebuildAgeDays:       180,
		RebuildTxnThreshold:  10000,
	}
	return persistence.NewUnitOfWork(db), fixedClock{now: today.Add(12 * time.Hour)}, cfg
}

func mustCreateWallet(t *testing.T, uow adapter.UnitOfWork, name string, walletType entity.WalletType) *entity.Wallet {
	t.Helper()
	wallet := entity.NewWallet(name, walletType, decimal.Zero, "")
	if err := uow.Repos().Wallets.Create(context.Background(), wallet); err != nil {
		t.Fatalf("failed to create wallet: %v", err)
	}
	return wallet
}

func mustCreateTransaction(
	t *testing.T,
	uow adapter.UnitOfWork,
	walletID uuid.UUID,
	date time.Time,
	direction entity.TransactionDirection,
	amount string,
) *entity.Transaction {
	t.Helper()
	classification := entity.ClassificationExpense
	if direction == entity.DirectionInflow {
		classification = entity.ClassificationIncome
	}
	txn := entity.NewTransaction(walletID, date, direction, decimal.RequireFromString(amount), classification, "test")
	if err := uow.Repos().Transactions.Create(context.Background(), txn); err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}
	return txn
}
