package error

import "errors"

// Linked entry domain errors.
var (
	// ErrLinkedEntryNotFound is returned when a linked entry is not found.
	ErrLinkedEntryNotFound = errors.New("linked entry not found")

	// ErrLinkNotFound is returned when a linked transaction record is not found.
	ErrLinkNotFound = errors.New("linked transaction not found")

	// ErrEntryAlreadyExists is returned when the primary transaction already
	// owns a linked entry.
	ErrEntryAlreadyExists = errors.New("transaction already has a linked entry")

	// ErrUserAmountRequired is returned when a split payment is created
	// without the payer's own share.
	ErrUserAmountRequired = errors.New("user_amount is required for split payments")

	// ErrUserAmountExceedsTotal is returned when the payer's share exceeds
	// the total amount.
	ErrUserAmountExceedsTotal = errors.New("user_amount cannot exceed total amount")

	// ErrEntrySettled is returned when linking against a fully settled entry.
	ErrEntrySettled = errors.New("entry is already fully settled")

	// ErrAmountExceedsPending is returned when a settlement batch exceeds the
	// entry's pending amount.
	ErrAmountExceedsPending = errors.New("settlement amount exceeds pending amount")

	// ErrTransactionAlreadyLinked is returned when a transaction is already
	// linked to another entry.
	ErrTransactionAlreadyLinked = errors.New("transaction is already linked")

	// ErrWrongDirection is returned when a transaction's direction does not
	// match what the entry type requires.
	ErrWrongDirection = errors.New("transaction direction does not match entry type")

	// ErrWrongClassification is returned when a transaction's classification
	// does not match what the entry type requires.
	ErrWrongClassification = errors.New("transaction classification does not match entry type")

	// ErrNegativePending is returned when an update would push the pending
	// amount below zero.
	ErrNegativePending = errors.New("pending amount would become negative")
)

// LinkedEntryErrorCode defines error codes for linked entry errors.
// Format: LNK-XXYYYY where XX is category and YYYY is specific error.
type LinkedEntryErrorCode string

const (
	ErrCodeLinkedEntryNotFound      LinkedEntryErrorCode = "LNK-010001"
	ErrCodeLinkNotFound             LinkedEntryErrorCode = "LNK-010002"
	ErrCodeEntryAlreadyExists       LinkedEntryErrorCode = "LNK-010003"
	ErrCodeUserAmountRequired       LinkedEntryErrorCode = "LNK-010004"
	ErrCodeUserAmountExceedsTotal   LinkedEntryErrorCode = "LNK-010005"
	ErrCodeEntrySettled             LinkedEntryErrorCode = "LNK-010006"
	ErrCodeAmountExceedsPending     LinkedEntryErrorCode = "LNK-010007"
	ErrCodeTransactionAlreadyLinked LinkedEntryErrorCode = "LNK-010008"
	ErrCodeWrongDirection           LinkedEntryErrorCode = "LNK-010009"
	ErrCodeWrongClassification      LinkedEntryErrorCode = "LNK-010010"
	ErrCodeNegativePending          LinkedEntryErrorCode = "LNK-010011"
	ErrCodeInvalidLinkType          LinkedEntryErrorCode = "LNK-010012"
)

// LinkedEntryError represents a linked entry error with code and message.
type LinkedEntryError struct {
	Code    LinkedEntryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LinkedEntryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LinkedEntryError) Unwrap() error {
	return e.Err
}

// NewLinkedEntryError creates a new LinkedEntryError with the given code and message.
func NewLinkedEntryError(code LinkedEntryErrorCode, message string, err error) *LinkedEntryError {
	return &LinkedEntryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
