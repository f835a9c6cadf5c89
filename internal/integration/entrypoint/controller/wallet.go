package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/application/usecase/wallet"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	"github.com/wallet-ledger/backend/internal/integration/entrypoint/dto"
)

// WalletController handles wallet endpoints.
type WalletController struct {
	createUseCase    *wallet.CreateWalletUseCase
	listUseCase      *wallet.ListWalletsUseCase
	getUseCase       *wallet.GetWalletUseCase
	updateUseCase    *wallet.UpdateWalletUseCase
	deleteUseCase    *wallet.DeleteWalletUseCase
	balanceUseCase   *wallet.ComputeBalanceUseCase
	historyUseCase   *wallet.BalanceHistoryUseCase
	calibrateUseCase *wallet.CalibrateWalletUseCase
}

// NewWalletController creates a new wallet controller instance.
func NewWalletController(
	createUseCase *wallet.CreateWalletUseCase,
	listUseCase *wallet.ListWalletsUseCase,
	getUseCase *wallet.GetWalletUseCase,
	updateUseCase *wallet.UpdateWalletUseCase,
	deleteUseCase *wallet.DeleteWalletUseCase,
	balanceUseCase *wallet.ComputeBalanceUseCase,
	historyUseCase *wallet.BalanceHistoryUseCase,
	calibrateUseCase *wallet.CalibrateWalletUseCase,
) *WalletController {
	return &WalletController{
		createUseCase:    createUseCase,
		listUseCase:      listUseCase,
		getUseCase:       getUseCase,
		updateUseCase:    updateUseCase,
		deleteUseCase:    deleteUseCase,
		balanceUseCase:   balanceUseCase,
		historyUseCase:   historyUseCase,
		calibrateUseCase: calibrateUseCase,
	}
}

// Create handles POST /wallets requests.
func (c *WalletController) Create(ctx *gin.Context) {
	var req dto.CreateWalletRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := wallet.CreateWalletInput{
		Name:  req.Name,
		Type:  entity.WalletType(req.Type),
		Emoji: req.Emoji,
	}
	if req.CreditLimit != nil {
		input.CreditLimit = decimal.NewFromFloat(*req.CreditLimit)
	}
	if req.InitialBalance != nil {
		input.InitialBalance = decimal.NewFromFloat(*req.InitialBalance)
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	balance := "0"
	if req.InitialBalance != nil {
		balance = decimal.NewFromFloat(*req.InitialBalance).String()
	}
	ctx.JSON(http.StatusCreated, dto.ToWalletResponse(output.Wallet, balance))
}

// List handles GET /wallets requests.
func (c *WalletController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToWalletListResponse(output))
}

// Get handles GET /wallets/:id requests.
func (c *WalletController) Get(ctx *gin.Context) {
	walletID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), wallet.GetWalletInput{WalletID: walletID})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToWalletResponse(output.Wallet.Wallet, output.Wallet.Balance.String()))
}

// Update handles PATCH /wallets/:id requests.
func (c *WalletController) Update(ctx *gin.Context) {
	walletID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateWalletRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := wallet.UpdateWalletInput{
		WalletID: walletID,
		Name:     req.Name,
		Emoji:    req.Emoji,
	}
	if req.CreditLimit != nil {
		limit := decimal.NewFromFloat(*req.CreditLimit)
		input.CreditLimit = &limit
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToWalletResponse(output.Wallet, ""))
}

// Delete handles DELETE /wallets/:id requests.
func (c *WalletController) Delete(ctx *gin.Context) {
	walletID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), wallet.DeleteWalletInput{WalletID: walletID}); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Balance handles GET /wallets/:id/balance requests. An optional as_of query
// parameter (YYYY-MM-DD) computes a historical balance; the default is today.
func (c *WalletController) Balance(ctx *gin.Context) {
	walletID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	input := wallet.ComputeBalanceInput{WalletID: walletID}
	if asOfStr := ctx.Query("as_of"); asOfStr != "" {
		asOf, err := time.Parse("2006-01-02", asOfStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid as_of date format. Use YYYY-MM-DD",
			})
			return
		}
		input.AsOf = &asOf
	}

	output, err := c.balanceUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BalanceResponse{
		WalletID: output.WalletID.String(),
		AsOf:     output.AsOf.Format("2006-01-02"),
		Balance:  output.Balance.String(),
	})
}

// History handles GET /wallets/:id/balance-history requests.
func (c *WalletController) History(ctx *gin.Context) {
	walletID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	start, err := time.Parse("2006-01-02", ctx.Query("start"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid or missing start date. Use YYYY-MM-DD",
		})
		return
	}
	end, err := time.Parse("2006-01-02", ctx.Query("end"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid or missing end date. Use YYYY-MM-DD",
		})
		return
	}

	input := wallet.BalanceHistoryInput{
		WalletID: walletID,
		Start:    start,
		End:      end,
	}
	if stepStr := ctx.Query("step_days"); stepStr != "" {
		if step, err := strconv.Atoi(stepStr); err == nil {
			input.StepDays = step
		}
	}

	output, err := c.historyUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	points := make([]dto.BalancePointResponse, len(output.Points))
	for i, p := range output.Points {
		points[i] = dto.BalancePointResponse{
			Date:    p.Date.Format("2006-01-02"),
			Balance: p.Balance.String(),
		}
	}
	ctx.JSON(http.StatusOK, dto.BalanceHistoryResponse{
		WalletID: output.WalletID.String(),
		Points:   points,
	})
}

// Calibrate handles POST /wallets/:id/calibrate requests.
func (c *WalletController) Calibrate(ctx *gin.Context) {
	walletID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.CalibrateWalletRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := wallet.CalibrateWalletInput{
		WalletID:      walletID,
		ActualBalance: decimal.NewFromFloat(*req.ActualBalance),
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID format",
			})
			return
		}
		input.CategoryID = &id
	}

	output, err := c.calibrateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// parseIDParam parses the :id URL parameter as a UUID, writing a 400 response
// on failure.
func parseIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}
