// Package error defines domain-specific errors for the wallet ledger.
package error

import "errors"

// Wallet domain errors.
var (
	// ErrWalletNotFound is returned when a wallet is not found in the system.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrInvalidWalletType is returned when the wallet type is invalid.
	ErrInvalidWalletType = errors.New("invalid wallet type")

	// ErrWalletNameTaken is returned when a wallet with the same name exists.
	ErrWalletNameTaken = errors.New("wallet name already in use")

	// ErrWalletHasTransactions is returned when deleting a wallet that still
	// owns transactions.
	ErrWalletHasTransactions = errors.New("cannot delete wallet with existing transactions")

	// ErrBalanceAlreadyCorrect is returned when a calibration is requested
	// but the computed balance already matches the asserted one.
	ErrBalanceAlreadyCorrect = errors.New("wallet balance is already correct")
)

// WalletErrorCode defines error codes for wallet errors.
// Format: WLT-XXYYYY where XX is category and YYYY is specific error.
type WalletErrorCode string

const (
	ErrCodeInvalidWalletType     WalletErrorCode = "WLT-010001"
	ErrCodeWalletNameTaken       WalletErrorCode = "WLT-010002"
	ErrCodeWalletNotFound        WalletErrorCode = "WLT-010003"
	ErrCodeWalletHasTransactions WalletErrorCode = "WLT-010004"
	ErrCodeBalanceAlreadyCorrect WalletErrorCode = "WLT-010005"
)

// WalletError represents a wallet error with code and message.
type WalletError struct {
	Code    WalletErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *WalletError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *WalletError) Unwrap() error {
	return e.Err
}

// NewWalletError creates a new WalletError with the given code and message.
func NewWalletError(code WalletErrorCode, message string, err error) *WalletError {
	return &WalletError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
