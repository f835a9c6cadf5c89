// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
	"github.com/wallet-ledger/backend/internal/integration/entrypoint/dto"
)

// respondError maps domain errors to HTTP responses. The safety guard
// rejection carries its rebuild impact so clients can show a confirmation
// prompt before resubmitting with allow_large_rebuild.
func respondError(ctx *gin.Context, err error) {
	var confirmErr *domainerror.ConfirmationRequiredError
	if errors.As(err, &confirmErr) {
		impact := confirmErr.ImpactCount
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:       confirmErr.Error(),
			Code:        string(domainerror.ErrCodeRebuildConfirmationRequired),
			ImpactCount: &impact,
		})
		return
	}

	var walletErr *domainerror.WalletError
	if errors.As(err, &walletErr) {
		ctx.JSON(walletStatusCode(walletErr.Code), dto.ErrorResponse{
			Error: walletErr.Message,
			Code:  string(walletErr.Code),
		})
		return
	}

	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(transactionStatusCode(txnErr.Code), dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	var linkErr *domainerror.LinkedEntryError
	if errors.As(err, &linkErr) {
		ctx.JSON(linkedEntryStatusCode(linkErr.Code), dto.ErrorResponse{
			Error: linkErr.Message,
			Code:  string(linkErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// walletStatusCode maps wallet error codes to HTTP status codes.
func walletStatusCode(code domainerror.WalletErrorCode) int {
	switch code {
	case domainerror.ErrCodeWalletNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeWalletNameTaken,
		domainerror.ErrCodeWalletHasTransactions,
		domainerror.ErrCodeBalanceAlreadyCorrect:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidWalletType:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// transactionStatusCode maps transaction error codes to HTTP status codes.
func transactionStatusCode(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeTxnCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRebuildConfirmationRequired:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidDirection,
		domainerror.ErrCodeInvalidClassification,
		domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeEmptyTransactionIDs,
		domainerror.ErrCodeNotCalibration,
		domainerror.ErrCodeSameWalletTransfer,
		domainerror.ErrCodeMergeTooFew,
		domainerror.ErrCodeMergeMixedWallets,
		domainerror.ErrCodeMergeMixedDirections,
		domainerror.ErrCodeMergeSpecial:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// linkedEntryStatusCode maps linked entry error codes to HTTP status codes.
func linkedEntryStatusCode(code domainerror.LinkedEntryErrorCode) int {
	switch code {
	case domainerror.ErrCodeLinkedEntryNotFound,
		domainerror.ErrCodeLinkNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeEntryAlreadyExists,
		domainerror.ErrCodeEntrySettled,
		domainerror.ErrCodeTransactionAlreadyLinked,
		domainerror.ErrCodeAmountExceedsPending:
		return http.StatusConflict
	case domainerror.ErrCodeUserAmountRequired,
		domainerror.ErrCodeUserAmountExceedsTotal,
		domainerror.ErrCodeWrongDirection,
		domainerror.ErrCodeWrongClassification,
		domainerror.ErrCodeNegativePending,
		domainerror.ErrCodeInvalidLinkType:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
