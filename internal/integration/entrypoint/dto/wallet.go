package dto

import (
	"time"

	"github.com/wallet-ledger/backend/internal/application/usecase/wallet"
	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// CreateWalletRequest represents the request body for wallet creation.
type CreateWalletRequest struct {
	Name           string   `json:"name" binding:"required,min=1,max=100"`
	Type           string   `json:"type" binding:"required,oneof=normal credit"`
	CreditLimit    *float64 `json:"credit_limit,omitempty"`
	Emoji          string   `json:"emoji,omitempty"`
	InitialBalance *float64 `json:"initial_balance,omitempty"`
}

// UpdateWalletRequest represents the request body for wallet update.
// The wallet type is immutable and cannot be changed here.
type UpdateWalletRequest struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	CreditLimit *float64 `json:"credit_limit,omitempty"`
	Emoji       *string  `json:"emoji,omitempty"`
}

// CalibrateWalletRequest represents the request body for wallet calibration.
// ActualBalance is a pointer so an explicit zero is accepted.
type CalibrateWalletRequest struct {
	ActualBalance *float64 `json:"actual_balance" binding:"required"`
	CategoryID    *string  `json:"category_id,omitempty"`
}

// WalletResponse represents a single wallet in API responses.
type WalletResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	CreditLimit string    `json:"credit_limit"`
	Emoji       string    `json:"emoji"`
	Balance     string    `json:"balance,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WalletListResponse represents the response for listing wallets.
type WalletListResponse struct {
	Wallets []WalletResponse `json:"wallets"`
}

// BalanceResponse represents a point-in-time wallet balance.
type BalanceResponse struct {
	WalletID string `json:"wallet_id"`
	AsOf     string `json:"as_of"`
	Balance  string `json:"balance"`
}

// BalancePointResponse represents one point of a balance history series.
type BalancePointResponse struct {
	Date    string `json:"date"`
	Balance string `json:"balance"`
}

// BalanceHistoryResponse represents a wallet's balance over time.
type BalanceHistoryResponse struct {
	WalletID string                 `json:"wallet_id"`
	Points   []BalancePointResponse `json:"points"`
}

// ToWalletResponse converts a wallet entity and its balance to a response DTO.
func ToWalletResponse(w *entity.Wallet, balance string) WalletResponse {
	return WalletResponse{
		ID:          w.ID.String(),
		Name:        w.Name,
		Type:        string(w.Type),
		CreditLimit: w.CreditLimit.String(),
		Emoji:       w.Emoji,
		Balance:     balance,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// ToWalletListResponse converts a ListWalletsOutput to a WalletListResponse.
func ToWalletListResponse(output *wallet.ListWalletsOutput) WalletListResponse {
	wallets := make([]WalletResponse, len(output.Wallets))
	for i, w := range output.Wallets {
		wallets[i] = ToWalletResponse(w.Wallet, w.Balance.String())
	}
	return WalletListResponse{Wallets: wallets}
}
