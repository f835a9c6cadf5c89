package error

import (
	"errors"
	"fmt"
)

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidDirection is returned when the transaction direction is invalid.
	ErrInvalidDirection = errors.New("invalid transaction direction")

	// ErrInvalidClassification is returned when the classification is invalid.
	ErrInvalidClassification = errors.New("invalid transaction classification")

	// ErrInvalidAmount is returned when the transaction amount is not positive.
	ErrInvalidAmount = errors.New("transaction amount must be positive")

	// ErrEmptyTransactionIDs is returned when an empty list of transaction
	// IDs is provided to a batch operation.
	ErrEmptyTransactionIDs = errors.New("transaction IDs list cannot be empty")

	// ErrNotCalibration is returned when a calibration-only operation targets
	// a regular transaction.
	ErrNotCalibration = errors.New("transaction is not a calibration")

	// ErrSameWalletTransfer is returned when a transfer names the same wallet
	// on both sides.
	ErrSameWalletTransfer = errors.New("transfer wallets must differ")

	// ErrCategoryNotFoundForTransaction is returned when the referenced
	// category does not exist.
	ErrCategoryNotFoundForTransaction = errors.New("category not found")

	// ErrMergeTooFew is returned when a merge names fewer than two distinct
	// transactions.
	ErrMergeTooFew = errors.New("merge requires at least two transactions")

	// ErrMergeMixedWallets is returned when merged transactions span wallets.
	ErrMergeMixedWallets = errors.New("merged transactions must belong to one wallet")

	// ErrMergeMixedDirections is returned when merged transactions mix
	// directions.
	ErrMergeMixedDirections = errors.New("merged transactions must share one direction")

	// ErrMergeSpecialTransaction is returned when a merge includes a
	// calibration or a transaction whose classification is not plain
	// expense or income.
	ErrMergeSpecialTransaction = errors.New("special transactions cannot be merged")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDirection      TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidClassification TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidAmount         TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionNotFound   TransactionErrorCode = "TXN-010004"
	ErrCodeEmptyTransactionIDs   TransactionErrorCode = "TXN-010005"
	ErrCodeNotCalibration        TransactionErrorCode = "TXN-010006"
	ErrCodeSameWalletTransfer    TransactionErrorCode = "TXN-010007"
	ErrCodeTxnCategoryNotFound   TransactionErrorCode = "TXN-010008"
	ErrCodeMergeTooFew           TransactionErrorCode = "TXN-010009"
	ErrCodeMergeMixedWallets     TransactionErrorCode = "TXN-010010"
	ErrCodeMergeMixedDirections  TransactionErrorCode = "TXN-010011"
	ErrCodeMergeSpecial          TransactionErrorCode = "TXN-010012"

	// Safety guard errors (02XXXX)
	ErrCodeRebuildConfirmationRequired TransactionErrorCode = "TXN-020001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ConfirmationRequiredError is the safety-guard circuit breaker: a write
// touching history older than the configured age threshold would invalidate
// more transactions than the count threshold. The caller must resubmit with
// explicit confirmation. ImpactCount is the number of affected transactions.
type ConfirmationRequiredError struct {
	ImpactCount int64
}

// Error implements the error interface.
func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("this change affects %d historical transactions, confirm large cache rebuild", e.ImpactCount)
}

// NewConfirmationRequiredError creates a ConfirmationRequiredError for the
// given rebuild impact.
func NewConfirmationRequiredError(impact int64) *ConfirmationRequiredError {
	return &ConfirmationRequiredError{ImpactCount: impact}
}
