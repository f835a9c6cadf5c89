package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/application/usecase/transaction"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	"github.com/wallet-ledger/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase        *transaction.ListTransactionsUseCase
	createUseCase      *transaction.CreateTransactionUseCase
	updateUseCase      *transaction.UpdateTransactionUseCase
	deleteUseCase      *transaction.DeleteTransactionsUseCase
	mergeUseCase       *transaction.MergeTransactionsUseCase
	transferUseCase    *transaction.CreateTransferUseCase
	setIgnoredUseCase  *transaction.SetIgnoredUseCase
	calibrationUseCase *transaction.ResolveCalibrationUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionsUseCase,
	mergeUseCase *transaction.MergeTransactionsUseCase,
	transferUseCase *transaction.CreateTransferUseCase,
	setIgnoredUseCase *transaction.SetIgnoredUseCase,
	calibrationUseCase *transaction.ResolveCalibrationUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:        listUseCase,
		createUseCase:      createUseCase,
		updateUseCase:      updateUseCase,
		deleteUseCase:      deleteUseCase,
		mergeUseCase:       mergeUseCase,
		transferUseCase:    transferUseCase,
		setIgnoredUseCase:  setIgnoredUseCase,
		calibrationUseCase: calibrationUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	var filter adapter.TransactionFilter

	if walletIDStr := ctx.Query("wallet_id"); walletIDStr != "" {
		if id, err := uuid.Parse(walletIDStr); err == nil {
			filter.WalletID = &id
		}
	}
	if categoryIDStr := ctx.Query("category_id"); categoryIDStr != "" {
		if id, err := uuid.Parse(categoryIDStr); err == nil {
			filter.CategoryID = &id
		}
	}
	if monthStr := ctx.Query("month"); monthStr != "" {
		if month, err := time.Parse("2006-01", monthStr); err == nil {
			filter.Month = &month
		}
	}
	if directionStr := ctx.Query("direction"); directionStr != "" {
		direction := entity.TransactionDirection(directionStr)
		filter.Direction = &direction
	}
	if classificationStr := ctx.Query("classification"); classificationStr != "" {
		classification := entity.TransactionClassification(classificationStr)
		filter.Classification = &classification
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}
	if offsetStr := ctx.Query("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{Filter: filter})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input, ok := buildCreateTransactionInput(ctx, req)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	transactionID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID:     transactionID,
		TimeOfDay:         req.TimeOfDay,
		Description:       req.Description,
		ClearCategory:     req.ClearCategory,
		IsIgnored:         req.IsIgnored,
		AllowLargeRebuild: req.AllowLargeRebuild,
	}

	if req.WalletID != nil {
		id, err := uuid.Parse(*req.WalletID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid wallet ID format",
			})
			return
		}
		input.WalletID = &id
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format. Use YYYY-MM-DD",
			})
			return
		}
		input.Date = &date
	}
	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}
	if req.Classification != nil {
		classification := entity.TransactionClassification(*req.Classification)
		input.Classification = &classification
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
	if req.SubcategoryID != nil && *req.SubcategoryID != "" {
		id, err := uuid.Parse(*req.SubcategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid subcategory ID format",
			})
			return
		}
		input.SubcategoryID = &id
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles POST /transactions/delete requests. Deletion is a batch
// operation so transfers and settlement links unwind atomically.
func (c *TransactionController) Delete(ctx *gin.Context) {
	var req dto.DeleteTransactionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	ids, ok := parseUUIDList(ctx, req.IDs)
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionsInput{
		TransactionIDs:    ids,
		AllowLargeRebuild: req.AllowLargeRebuild,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.DeleteTransactionsResponse{DeletedCount: output.DeletedCount})
}

// Merge handles POST /transactions/merge requests. The listed transactions
// collapse into one dated and described by the request.
func (c *TransactionController) Merge(ctx *gin.Context) {
	var req dto.MergeTransactionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	ids, ok := parseUUIDList(ctx, req.IDs)
	if !ok {
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
		})
		return
	}

	input := transaction.MergeTransactionsInput{
		TransactionIDs:    ids,
		Date:              date,
		Description:       req.Description,
		AllowLargeRebuild: req.AllowLargeRebuild,
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
	if req.SubcategoryID != nil && *req.SubcategoryID != "" {
		id, err := uuid.Parse(*req.SubcategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid subcategory ID format",
			})
			return
		}
		input.SubcategoryID = &id
	}

	output, err := c.mergeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Transfer handles POST /transactions/transfer requests.
func (c *TransactionController) Transfer(ctx *gin.Context) {
	var req dto.CreateTransferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	fromID, err := uuid.Parse(req.FromWalletID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid from_wallet_id format",
		})
		return
	}
	toID, err := uuid.Parse(req.ToWalletID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid to_wallet_id format",
		})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
		})
		return
	}

	output, err := c.transferUseCase.Execute(ctx.Request.Context(), transaction.CreateTransferInput{
		FromWalletID:      fromID,
		ToWalletID:        toID,
		Date:              date,
		TimeOfDay:         req.TimeOfDay,
		Amount:            decimal.NewFromFloat(req.Amount),
		Description:       req.Description,
		AllowLargeRebuild: req.AllowLargeRebuild,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.TransferResponse{
		Outflow: dto.ToTransactionResponse(output.Outflow),
		Inflow:  dto.ToTransactionResponse(output.Inflow),
	})
}

// SetIgnored handles POST /transactions/set-ignored requests.
func (c *TransactionController) SetIgnored(ctx *gin.Context) {
	var req dto.SetIgnoredRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	ids, ok := parseUUIDList(ctx, req.IDs)
	if !ok {
		return
	}

	output, err := c.setIgnoredUseCase.Execute(ctx.Request.Context(), transaction.SetIgnoredInput{
		TransactionIDs: ids,
		Ignored:        *req.Ignored,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SetIgnoredResponse{UpdatedCount: output.UpdatedCount})
}

// ResolveCalibration handles POST /transactions/:id/resolve requests. The
// URL parameter names the calibration being resolved.
func (c *TransactionController) ResolveCalibration(ctx *gin.Context) {
	calibrationID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.ResolveCalibrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	txnInput, ok := buildCreateTransactionInput(ctx, req.Transaction)
	if !ok {
		return
	}

	output, err := c.calibrationUseCase.Execute(ctx.Request.Context(), transaction.ResolveCalibrationInput{
		CalibrationID: calibrationID,
		Transaction:   txnInput,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ResolveCalibrationResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction),
		Calibration: dto.ToTransactionResponse(output.Calibration),
	})
}

// buildCreateTransactionInput converts a create request to a usecase input,
// writing a 400 response and returning false on malformed fields.
func buildCreateTransactionInput(ctx *gin.Context, req dto.CreateTransactionRequest) (transaction.CreateTransactionInput, bool) {
	var input transaction.CreateTransactionInput

	walletID, err := uuid.Parse(req.WalletID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid wallet ID format",
		})
		return input, false
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
		})
		return input, false
	}

	input = transaction.CreateTransactionInput{
		WalletID:          walletID,
		Date:              date,
		TimeOfDay:         req.TimeOfDay,
		Direction:         entity.TransactionDirection(req.Direction),
		Amount:            decimal.NewFromFloat(req.Amount),
		Classification:    entity.TransactionClassification(req.Classification),
		Description:       req.Description,
		IsIgnored:         req.IsIgnored,
		AllowLargeRebuild: req.AllowLargeRebuild,
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID format",
			})
			return input, false
		}
		input.CategoryID = &id
	}
	if req.SubcategoryID != nil && *req.SubcategoryID != "" {
		id, err := uuid.Parse(*req.SubcategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid subcategory ID format",
			})
			return input, false
		}
		input.SubcategoryID = &id
	}

	return input, true
}

// parseUUIDList parses a list of UUID strings, writing a 400 response and
// returning false on the first malformed ID.
func parseUUIDList(ctx *gin.Context, raw []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, idStr := range raw {
		id, err := uuid.Parse(idStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid transaction ID format: " + idStr,
			})
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
