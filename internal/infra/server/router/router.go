// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/wallet-ledger/backend/internal/integration/entrypoint/controller"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	walletController      *controller.WalletController
	transactionController *controller.TransactionController
	linkedEntryController *controller.LinkedEntryController
	categoryController    *controller.CategoryController
	reportController      *controller.ReportController
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	walletController *controller.WalletController,
	transactionController *controller.TransactionController,
	linkedEntryController *controller.LinkedEntryController,
	categoryController *controller.CategoryController,
	reportController *controller.ReportController,
) *Router {
	return &Router{
		healthController:      healthController,
		walletController:      walletController,
		transactionController: transactionController,
		linkedEntryController: linkedEntryController,
		categoryController:    categoryController,
		reportController:      reportController,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Wallet routes
		if r.walletController != nil {
			wallets := v1.Group("/wallets")
			{
				wallets.GET("", r.walletController.List)
				wallets.POST("", r.walletController.Create)
				wallets.GET("/:id", r.walletController.Get)
				wallets.PATCH("/:id", r.walletController.Update)
				wallets.DELETE("/:id", r.walletController.Delete)
				wallets.GET("/:id/balance", r.walletController.Balance)
				wallets.GET("/:id/balance-history", r.walletController.History)
				wallets.POST("/:id/calibrate", r.walletController.Calibrate)
			}
		}

		// Transaction routes
		if r.transactionController != nil {
			transactions := v1.Group("/transactions")
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.PATCH("/:id", r.transactionController.Update)
				transactions.POST("/delete", r.transactionController.Delete)
				transactions.POST("/merge", r.transactionController.Merge)
				transactions.POST("/transfer", r.transactionController.Transfer)
				transactions.POST("/set-ignored", r.transactionController.SetIgnored)
				transactions.POST("/:id/resolve", r.transactionController.ResolveCalibration)

				// Settlement classification routes (nested under transactions)
				if r.linkedEntryController != nil {
					transactions.POST("/:id/unclassify", r.linkedEntryController.Unclassify)
					transactions.POST("/mark-as-loan", r.linkedEntryController.MarkAsLoan)
					transactions.POST("/mark-as-debt", r.linkedEntryController.MarkAsDebt)
				}
			}
		}

		// Linked entry routes
		if r.linkedEntryController != nil {
			entries := v1.Group("/linked-entries")
			{
				entries.GET("", r.linkedEntryController.List)
				entries.POST("", r.linkedEntryController.Create)
				entries.GET("/totals", r.linkedEntryController.Totals)
				entries.PATCH("/:id", r.linkedEntryController.Update)
				entries.POST("/:id/links", r.linkedEntryController.Link)
				entries.DELETE("/links/:id", r.linkedEntryController.Unlink)
			}
		}

		// Category routes
		if r.categoryController != nil {
			categories := v1.Group("/categories")
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
				categories.POST("/:id/subcategories", r.categoryController.CreateSubcategory)
			}
		}

		// Report routes
		if r.reportController != nil {
			reports := v1.Group("/reports")
			{
				reports.GET("/monthly-summary", r.reportController.MonthlySummary)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
