package dto

import (
	"time"

	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// CreateEntryRequest represents the request body for linked entry creation.
type CreateEntryRequest struct {
	LinkType             string   `json:"link_type" binding:"required,oneof=split_payment loan debt installment"`
	PrimaryTransactionID string   `json:"primary_transaction_id" binding:"required"`
	CounterpartyName     string   `json:"counterparty_name,omitempty" binding:"omitempty,max=100"`
	UserAmount           *float64 `json:"user_amount,omitempty"`
	Notes                string   `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// UpdateEntryRequest represents the request body for linked entry update.
type UpdateEntryRequest struct {
	CounterpartyName *string  `json:"counterparty_name,omitempty" binding:"omitempty,max=100"`
	Notes            *string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
	UserAmount       *float64 `json:"user_amount,omitempty"`
}

// MarkTransactionRequest represents the request body for marking an existing
// transaction as a loan or a debt.
type MarkTransactionRequest struct {
	TransactionID    string `json:"transaction_id" binding:"required"`
	CounterpartyName string `json:"counterparty_name,omitempty" binding:"omitempty,max=100"`
	Notes            string `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// LinkTransactionsRequest represents the request body for linking settlement
// transactions to an entry.
type LinkTransactionsRequest struct {
	TransactionIDs []string `json:"transaction_ids" binding:"required,min=1"`
}

// LinkedEntryResponse represents a linked entry in API responses.
type LinkedEntryResponse struct {
	ID                   string    `json:"id"`
	LinkType             string    `json:"link_type"`
	PrimaryTransactionID string    `json:"primary_transaction_id"`
	CounterpartyName     string    `json:"counterparty_name"`
	TotalAmount          string    `json:"total_amount"`
	UserAmount           *string   `json:"user_amount,omitempty"`
	PendingAmount        string    `json:"pending_amount"`
	Status               string    `json:"status"`
	Notes                string    `json:"notes"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// LinkedTransactionResponse represents a settlement link in API responses.
type LinkedTransactionResponse struct {
	ID            string    `json:"id"`
	LinkedEntryID string    `json:"linked_entry_id"`
	TransactionID string    `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// LinkTransactionsResponse represents the entry and links after settlement.
type LinkTransactionsResponse struct {
	Entry LinkedEntryResponse         `json:"entry"`
	Links []LinkedTransactionResponse `json:"links"`
}

// EntryListResponse represents the response for listing linked entries.
type EntryListResponse struct {
	Entries []LinkedEntryResponse `json:"entries"`
}

// SettlementTotalsResponse represents aggregate settlement amounts.
type SettlementTotalsResponse struct {
	OwedToUser          string `json:"owed_to_user"`
	OwedByUser          string `json:"owed_by_user"`
	PendingInstallments string `json:"pending_installments"`
}

// ToLinkedEntryResponse converts a linked entry entity to a response DTO.
func ToLinkedEntryResponse(entry *entity.LinkedEntry) LinkedEntryResponse {
	response := LinkedEntryResponse{
		ID:                   entry.ID.String(),
		LinkType:             string(entry.LinkType),
		PrimaryTransactionID: entry.PrimaryTransactionID.String(),
		CounterpartyName:     entry.CounterpartyName,
		TotalAmount:          entry.TotalAmount.String(),
		PendingAmount:        entry.PendingAmount.String(),
		Status:               string(entry.Status),
		Notes:                entry.Notes,
		CreatedAt:            entry.CreatedAt,
		UpdatedAt:            entry.UpdatedAt,
	}
	if entry.UserAmount != nil {
		share := entry.UserAmount.String()
		response.UserAmount = &share
	}
	return response
}

// ToLinkedTransactionResponse converts a settlement link to a response DTO.
func ToLinkedTransactionResponse(link *entity.LinkedTransaction) LinkedTransactionResponse {
	return LinkedTransactionResponse{
		ID:            link.ID.String(),
		LinkedEntryID: link.LinkedEntryID.String(),
		TransactionID: link.TransactionID.String(),
		CreatedAt:     link.CreatedAt,
	}
}

// ToEntryListResponse converts linked entry entities to a list response.
func ToEntryListResponse(entries []*entity.LinkedEntry) EntryListResponse {
	out := make([]LinkedEntryResponse, len(entries))
	for i, entry := range entries {
		out[i] = ToLinkedEntryResponse(entry)
	}
	return EntryListResponse{Entries: out}
}
