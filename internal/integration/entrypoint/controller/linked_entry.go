package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/application/usecase/linkedentry"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	"github.com/wallet-ledger/backend/internal/integration/entrypoint/dto"
)

// LinkedEntryController handles settlement tracking endpoints.
type LinkedEntryController struct {
	createUseCase     *linkedentry.CreateEntryUseCase
	listUseCase       *linkedentry.ListEntriesUseCase
	updateUseCase     *linkedentry.UpdateEntryUseCase
	linkUseCase       *linkedentry.LinkTransactionsUseCase
	unlinkUseCase     *linkedentry.UnlinkTransactionUseCase
	unclassifyUseCase *linkedentry.UnclassifyTransactionUseCase
	markLoanUseCase   *linkedentry.MarkAsLoanUseCase
	markDebtUseCase   *linkedentry.MarkAsDebtUseCase
	totalsUseCase     *linkedentry.SettlementTotalsUseCase
}

// NewLinkedEntryController creates a new linked entry controller instance.
func NewLinkedEntryController(
	createUseCase *linkedentry.CreateEntryUseCase,
	listUseCase *linkedentry.ListEntriesUseCase,
	updateUseCase *linkedentry.UpdateEntryUseCase,
	linkUseCase *linkedentry.LinkTransactionsUseCase,
	unlinkUseCase *linkedentry.UnlinkTransactionUseCase,
	unclassifyUseCase *linkedentry.UnclassifyTransactionUseCase,
	markLoanUseCase *linkedentry.MarkAsLoanUseCase,
	markDebtUseCase *linkedentry.MarkAsDebtUseCase,
	totalsUseCase *linkedentry.SettlementTotalsUseCase,
) *LinkedEntryController {
	return &LinkedEntryController{
		createUseCase:     createUseCase,
		listUseCase:       listUseCase,
		updateUseCase:     updateUseCase,
		linkUseCase:       linkUseCase,
		unlinkUseCase:     unlinkUseCase,
		unclassifyUseCase: unclassifyUseCase,
		markLoanUseCase:   markLoanUseCase,
		markDebtUseCase:   markDebtUseCase,
		totalsUseCase:     totalsUseCase,
	}
}

// Create handles POST /linked-entries requests.
func (c *LinkedEntryController) Create(ctx *gin.Context) {
	var req dto.CreateEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	primaryID, err := uuid.Parse(req.PrimaryTransactionID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid primary transaction ID format",
		})
		return
	}

	input := linkedentry.CreateEntryInput{
		LinkType:             entity.LinkType(req.LinkType),
		PrimaryTransactionID: primaryID,
		CounterpartyName:     req.CounterpartyName,
		Notes:                req.Notes,
	}
	if req.UserAmount != nil {
		share := decimal.NewFromFloat(*req.UserAmount)
		input.UserAmount = &share
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToLinkedEntryResponse(output.Entry))
}

// List handles GET /linked-entries requests.
func (c *LinkedEntryController) List(ctx *gin.Context) {
	var filter adapter.LinkedEntryFilter

	if linkTypeStr := ctx.Query("link_type"); linkTypeStr != "" {
		linkType := entity.LinkType(linkTypeStr)
		filter.LinkType = &linkType
	}
	if statusStr := ctx.Query("status"); statusStr != "" {
		filter.Statuses = []entity.LinkStatus{entity.LinkStatus(statusStr)}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), linkedentry.ListEntriesInput{Filter: filter})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToEntryListResponse(output.Entries))
}

// Update handles PATCH /linked-entries/:id requests.
func (c *LinkedEntryController) Update(ctx *gin.Context) {
	entryID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := linkedentry.UpdateEntryInput{
		EntryID:          entryID,
		CounterpartyName: req.CounterpartyName,
		Notes:            req.Notes,
	}
	if req.UserAmount != nil {
		share := decimal.NewFromFloat(*req.UserAmount)
		input.UserAmount = &share
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToLinkedEntryResponse(output.Entry))
}

// Link handles POST /linked-entries/:id/links requests. The listed
// transactions settle part or all of the entry's pending amount.
func (c *LinkedEntryController) Link(ctx *gin.Context) {
	entryID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.LinkTransactionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	ids, ok := parseUUIDList(ctx, req.TransactionIDs)
	if !ok {
		return
	}

	output, err := c.linkUseCase.Execute(ctx.Request.Context(), linkedentry.LinkTransactionsInput{
		EntryID:        entryID,
		TransactionIDs: ids,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	links := make([]dto.LinkedTransactionResponse, len(output.Links))
	for i, link := range output.Links {
		links[i] = dto.ToLinkedTransactionResponse(link)
	}
	ctx.JSON(http.StatusCreated, dto.LinkTransactionsResponse{
		Entry: dto.ToLinkedEntryResponse(output.Entry),
		Links: links,
	})
}

// Unlink handles DELETE /linked-entries/links/:id requests. The freed amount
// returns to the entry's pending balance.
func (c *LinkedEntryController) Unlink(ctx *gin.Context) {
	linkID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	output, err := c.unlinkUseCase.Execute(ctx.Request.Context(), linkedentry.UnlinkTransactionInput{LinkID: linkID})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToLinkedEntryResponse(output.Entry))
}

// Unclassify handles POST /transactions/:id/unclassify requests. It dissolves
// the settlement entry owned by the transaction and reverts every settler.
func (c *LinkedEntryController) Unclassify(ctx *gin.Context) {
	transactionID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	output, err := c.unclassifyUseCase.Execute(ctx.Request.Context(), linkedentry.UnclassifyTransactionInput{
		TransactionID: transactionID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// MarkAsLoan handles POST /transactions/mark-as-loan requests.
func (c *LinkedEntryController) MarkAsLoan(ctx *gin.Context) {
	c.mark(ctx, func(ctx *gin.Context, input linkedentry.MarkTransactionInput) (*linkedentry.MarkTransactionOutput, error) {
		return c.markLoanUseCase.Execute(ctx.Request.Context(), input)
	})
}

// MarkAsDebt handles POST /transactions/mark-as-debt requests.
func (c *LinkedEntryController) MarkAsDebt(ctx *gin.Context) {
	c.mark(ctx, func(ctx *gin.Context, input linkedentry.MarkTransactionInput) (*linkedentry.MarkTransactionOutput, error) {
		return c.markDebtUseCase.Execute(ctx.Request.Context(), input)
	})
}

func (c *LinkedEntryController) mark(ctx *gin.Context, execute func(*gin.Context, linkedentry.MarkTransactionInput) (*linkedentry.MarkTransactionOutput, error)) {
	var req dto.MarkTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	transactionID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
		})
		return
	}

	output, err := execute(ctx, linkedentry.MarkTransactionInput{
		TransactionID:    transactionID,
		CounterpartyName: req.CounterpartyName,
		Notes:            req.Notes,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToLinkedEntryResponse(output.Entry))
}

// Totals handles GET /linked-entries/totals requests.
func (c *LinkedEntryController) Totals(ctx *gin.Context) {
	input := linkedentry.SettlementTotalsInput{}
	if walletIDStr := ctx.Query("wallet_id"); walletIDStr != "" {
		id, err := uuid.Parse(walletIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid wallet ID format",
			})
			return
		}
		input.WalletID = &id
	}

	output, err := c.totalsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SettlementTotalsResponse{
		OwedToUser:          output.OwedToUser.String(),
		OwedByUser:          output.OwedByUser.String(),
		PendingInstallments: output.PendingInstallments.String(),
	})
}
