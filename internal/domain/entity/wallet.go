// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletType represents the kind of wallet (normal asset or credit card).
type WalletType string

const (
	WalletTypeNormal WalletType = "normal"
	WalletTypeCredit WalletType = "credit"
)

// Wallet represents a source of funds.
//
// Normal wallets hold money (cash, bank account, e-wallet); their balance is
// inflows minus outflows. Credit wallets track debt: a positive balance is the
// amount owed on the card, and CreditLimit bounds the available credit.
type Wallet struct {
	ID          uuid.UUID
	Name        string
	Type        WalletType
	CreditLimit decimal.Decimal // Credit wallets only
	Emoji       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewWallet creates a new Wallet entity.
func NewWallet(name string, walletType WalletType, creditLimit decimal.Decimal, emoji string) *Wallet {
	now := time.Now().UTC()

	return &Wallet{
		ID:          uuid.New(),
		Name:        name,
		Type:        walletType,
		CreditLimit: creditLimit,
		Emoji:       emoji,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsValidWalletType reports whether the given wallet type is known.
func IsValidWalletType(walletType WalletType) bool {
	return walletType == WalletTypeNormal || walletType == WalletTypeCredit
}
