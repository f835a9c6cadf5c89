package dto

import (
	"time"

	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	WalletID       string  `json:"wallet_id" binding:"required"`
	Date           string  `json:"date" binding:"required"`
	TimeOfDay      *string `json:"time_of_day,omitempty"`
	Direction      string  `json:"direction" binding:"required,oneof=inflow outflow reserved"`
	Amount         float64 `json:"amount" binding:"required"`
	Classification string  `json:"classification" binding:"required"`
	Description    string  `json:"description,omitempty" binding:"omitempty,max=255"`
	CategoryID     *string `json:"category_id,omitempty"`
	SubcategoryID  *string `json:"subcategory_id,omitempty"`
	IsIgnored      bool    `json:"is_ignored,omitempty"`

	// AllowLargeRebuild confirms a retroactive write the safety guard would
	// otherwise reject.
	AllowLargeRebuild bool `json:"allow_large_rebuild,omitempty"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	WalletID       *string  `json:"wallet_id,omitempty"`
	Date           *string  `json:"date,omitempty"`
	TimeOfDay      *string  `json:"time_of_day,omitempty"`
	Amount         *float64 `json:"amount,omitempty"`
	Classification *string  `json:"classification,omitempty"`
	Description    *string  `json:"description,omitempty" binding:"omitempty,max=255"`
	CategoryID     *string  `json:"category_id,omitempty"`
	ClearCategory  bool     `json:"clear_category,omitempty"`
	SubcategoryID  *string  `json:"subcategory_id,omitempty"`
	IsIgnored      *bool    `json:"is_ignored,omitempty"`

	AllowLargeRebuild bool `json:"allow_large_rebuild,omitempty"`
}

// DeleteTransactionsRequest represents the request body for batch deletion.
type DeleteTransactionsRequest struct {
	IDs               []string `json:"ids" binding:"required,min=1"`
	AllowLargeRebuild bool     `json:"allow_large_rebuild,omitempty"`
}

// DeleteTransactionsResponse represents the response for batch deletion.
type DeleteTransactionsResponse struct {
	DeletedCount int `json:"deleted_count"`
}

// MergeTransactionsRequest represents the request body for merging same-wallet
// transactions into one.
type MergeTransactionsRequest struct {
	IDs               []string `json:"ids" binding:"required,min=2"`
	Date              string   `json:"date" binding:"required"`
	Description       string   `json:"description,omitempty" binding:"omitempty,max=255"`
	CategoryID        *string  `json:"category_id,omitempty"`
	SubcategoryID     *string  `json:"subcategory_id,omitempty"`
	AllowLargeRebuild bool     `json:"allow_large_rebuild,omitempty"`
}

// CreateTransferRequest represents the request body for a wallet-to-wallet
// transfer.
type CreateTransferRequest struct {
	FromWalletID      string  `json:"from_wallet_id" binding:"required"`
	ToWalletID        string  `json:"to_wallet_id" binding:"required"`
	Date              string  `json:"date" binding:"required"`
	TimeOfDay         *string `json:"time_of_day,omitempty"`
	Amount            float64 `json:"amount" binding:"required"`
	Description       string  `json:"description,omitempty" binding:"omitempty,max=255"`
	AllowLargeRebuild bool    `json:"allow_large_rebuild,omitempty"`
}

// TransferResponse represents the two halves of a created transfer.
type TransferResponse struct {
	Outflow TransactionResponse `json:"outflow"`
	Inflow  TransactionResponse `json:"inflow"`
}

// SetIgnoredRequest represents the request body for bulk ignore flagging.
type SetIgnoredRequest struct {
	IDs     []string `json:"ids" binding:"required,min=1"`
	Ignored *bool    `json:"ignored" binding:"required"`
}

// SetIgnoredResponse represents the response for bulk ignore flagging.
type SetIgnoredResponse struct {
	UpdatedCount int `json:"updated_count"`
}

// ResolveCalibrationRequest represents the request body for recording a real
// transaction against an existing calibration adjustment.
type ResolveCalibrationRequest struct {
	Transaction CreateTransactionRequest `json:"transaction" binding:"required"`
}

// ResolveCalibrationResponse represents the created transaction and the
// updated calibration after resolution.
type ResolveCalibrationResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Calibration TransactionResponse `json:"calibration"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                  string    `json:"id"`
	WalletID            string    `json:"wallet_id"`
	Date                string    `json:"date"`
	TimeOfDay           *string   `json:"time_of_day,omitempty"`
	Direction           string    `json:"direction"`
	Amount              string    `json:"amount"`
	Classification      string    `json:"classification"`
	Description         string    `json:"description"`
	CategoryID          *string   `json:"category_id,omitempty"`
	SubcategoryID       *string   `json:"subcategory_id,omitempty"`
	PairedTransactionID *string   `json:"paired_transaction_id,omitempty"`
	IsIgnored           bool      `json:"is_ignored"`
	IsCalibration       bool      `json:"is_calibration"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a transaction entity to a response DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:             txn.ID.String(),
		WalletID:       txn.WalletID.String(),
		Date:           txn.Date.Format("2006-01-02"),
		TimeOfDay:      txn.TimeOfDay,
		Direction:      string(txn.Direction),
		Amount:         txn.Amount.String(),
		Classification: string(txn.Classification),
		Description:    txn.Description,
		IsIgnored:      txn.IsIgnored,
		IsCalibration:  txn.IsCalibration,
		CreatedAt:      txn.CreatedAt,
		UpdatedAt:      txn.UpdatedAt,
	}

	if txn.CategoryID != nil {
		id := txn.CategoryID.String()
		response.CategoryID = &id
	}
	if txn.SubcategoryID != nil {
		id := txn.SubcategoryID.String()
		response.SubcategoryID = &id
	}
	if txn.PairedTransactionID != nil {
		id := txn.PairedTransactionID.String()
		response.PairedTransactionID = &id
	}

	return response
}

// ToTransactionListResponse converts transaction entities to a list response.
func ToTransactionListResponse(txns []*entity.Transaction) TransactionListResponse {
	transactions := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		transactions[i] = ToTransactionResponse(txn)
	}
	return TransactionListResponse{Transactions: transactions}
}
