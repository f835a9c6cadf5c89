// Package dependency provides dependency injection for the application.
package dependency

import (
	"gorm.io/gorm"

	"github.com/wallet-ledger/backend/config"
	"github.com/wallet-ledger/backend/internal/application/ledger"
	"github.com/wallet-ledger/backend/internal/application/usecase/category"
	"github.com/wallet-ledger/backend/internal/application/usecase/linkedentry"
	"github.com/wallet-ledger/backend/internal/application/usecase/report"
	"github.com/wallet-ledger/backend/internal/application/usecase/transaction"
	"github.com/wallet-ledger/backend/internal/application/usecase/wallet"
	"github.com/wallet-ledger/backend/internal/infra/server/router"
	"github.com/wallet-ledger/backend/internal/integration/adapters"
	"github.com/wallet-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/wallet-ledger/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) *Injector {
	// Create shared infrastructure
	uow := persistence.NewUnitOfWork(db)
	clock := adapters.NewSystemClock()
	ledgerCfg := ledger.Config{
		SnapshotIntervalDays: cfg.Ledger.SnapshotIntervalDays,
		RebuildAgeDays:       cfg.Ledger.RebuildGuardAgeDays,
		RebuildTxnThreshold:  cfg.Ledger.RebuildGuardTxnThreshold,
	}

	// Create wallet use cases
	createWalletUseCase := wallet.NewCreateWalletUseCase(uow, clock)
	listWalletsUseCase := wallet.NewListWalletsUseCase(uow, clock, ledgerCfg)
	getWalletUseCase := wallet.NewGetWalletUseCase(uow, clock, ledgerCfg)
	updateWalletUseCase := wallet.NewUpdateWalletUseCase(uow)
	deleteWalletUseCase := wallet.NewDeleteWalletUseCase(uow)
	computeBalanceUseCase := wallet.NewComputeBalanceUseCase(uow, clock, ledgerCfg)
	balanceHistoryUseCase := wallet.NewBalanceHistoryUseCase(uow, clock, ledgerCfg)
	calibrateWalletUseCase := wallet.NewCalibrateWalletUseCase(uow, clock, ledgerCfg)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(uow)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(uow, clock, ledgerCfg)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(uow, clock, ledgerCfg)
	deleteTransactionsUseCase := transaction.NewDeleteTransactionsUseCase(uow, clock, ledgerCfg)
	mergeTransactionsUseCase := transaction.NewMergeTransactionsUseCase(uow, clock, ledgerCfg)
	createTransferUseCase := transaction.NewCreateTransferUseCase(uow, clock, ledgerCfg)
	setIgnoredUseCase := transaction.NewSetIgnoredUseCase(uow)
	resolveCalibrationUseCase := transaction.NewResolveCalibrationUseCase(uow, clock, ledgerCfg)

	// Create linked entry use cases
	createEntryUseCase := linkedentry.NewCreateEntryUseCase(uow)
	listEntriesUseCase := linkedentry.NewListEntriesUseCase(uow)
	updateEntryUseCase := linkedentry.NewUpdateEntryUseCase(uow)
	linkTransactionsUseCase := linkedentry.NewLinkTransactionsUseCase(uow, clock, ledgerCfg)
	unlinkTransactionUseCase := linkedentry.NewUnlinkTransactionUseCase(uow)
	unclassifyTransactionUseCase := linkedentry.NewUnclassifyTransactionUseCase(uow, clock, ledgerCfg)
	markAsLoanUseCase := linkedentry.NewMarkAsLoanUseCase(uow)
	markAsDebtUseCase := linkedentry.NewMarkAsDebtUseCase(uow)
	settlementTotalsUseCase := linkedentry.NewSettlementTotalsUseCase(uow)

	// Create category use cases
	createCategoryUseCase := category.NewCreateCategoryUseCase(uow)
	createSubcategoryUseCase := category.NewCreateSubcategoryUseCase(uow)
	listCategoriesUseCase := category.NewListCategoriesUseCase(uow)

	// Create report use cases
	monthlySummaryUseCase := report.NewMonthlySummaryUseCase(uow)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	walletController := controller.NewWalletController(
		createWalletUseCase,
		listWalletsUseCase,
		getWalletUseCase,
		updateWalletUseCase,
		deleteWalletUseCase,
		computeBalanceUseCase,
		balanceHistoryUseCase,
		calibrateWalletUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionsUseCase,
		mergeTransactionsUseCase,
		createTransferUseCase,
		setIgnoredUseCase,
		resolveCalibrationUseCase,
	)

	linkedEntryController := controller.NewLinkedEntryController(
		createEntryUseCase,
		listEntriesUseCase,
		updateEntryUseCase,
		linkTransactionsUseCase,
		unlinkTransactionUseCase,
		unclassifyTransactionUseCase,
		markAsLoanUseCase,
		markAsDebtUseCase,
		settlementTotalsUseCase,
	)

	categoryController := controller.NewCategoryController(
		createCategoryUseCase,
		createSubcategoryUseCase,
		listCategoriesUseCase,
	)

	reportController := controller.NewReportController(monthlySummaryUseCase)

	// Create router
	r := router.NewRouter(
		healthController,
		walletController,
		transactionController,
		linkedEntryController,
		categoryController,
		reportController,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}
