package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionDirection is the physical direction of money movement for the
// owning wallet.
type TransactionDirection string

const (
	DirectionInflow  TransactionDirection = "inflow"
	DirectionOutflow TransactionDirection = "outflow"
	// DirectionReserved marks installment-plan placeholders: the amount
	// reserves credit limit but does not move money yet, so it is excluded
	// from balance sums.
	DirectionReserved TransactionDirection = "reserved"
)

// Opposite returns the reverse direction. Reserved has no opposite and is
// returned unchanged.
func (d TransactionDirection) Opposite() TransactionDirection {
	switch d {
	case DirectionInflow:
		return DirectionOutflow
	case DirectionOutflow:
		return DirectionInflow
	default:
		return d
	}
}

// TransactionClassification is the financial meaning of a transaction,
// orthogonal to its direction.
type TransactionClassification string

const (
	ClassificationExpense           TransactionClassification = "expense"
	ClassificationIncome            TransactionClassification = "income"
	ClassificationLend              TransactionClassification = "lend"
	ClassificationBorrow            TransactionClassification = "borrow"
	ClassificationDebtCollection    TransactionClassification = "debt_collection"
	ClassificationLoanRepayment     TransactionClassification = "loan_repayment"
	ClassificationSplitPayment      TransactionClassification = "split_payment"
	ClassificationTransfer          TransactionClassification = "transfer"
	ClassificationInstallment       TransactionClassification = "installment"
	ClassificationInstallmentCharge TransactionClassification = "installment_charge"
)

// CalibrationDescription is the fixed description marker for balance
// calibration transactions.
const CalibrationDescription = "CALIBRATION"

// InitialBalanceDescription is the fixed description for the transaction that
// seeds a wallet's opening balance.
const InitialBalanceDescription = "INITIAL BALANCE"

// Transaction represents a single money movement in a wallet.
//
// Direction says which way money physically moves for this wallet;
// Classification says what the movement means. Amount is always positive.
type Transaction struct {
	ID             uuid.UUID
	Date           time.Time // Date component only, UTC midnight
	TimeOfDay      *string   // Optional "HH:MM:SS" time of day
	WalletID       uuid.UUID
	Direction      TransactionDirection
	Amount         decimal.Decimal
	Classification TransactionClassification
	Description    string
	CategoryID     *uuid.UUID
	SubcategoryID  *uuid.UUID

	// PairedTransactionID links the two halves of a wallet-to-wallet
	// transfer; both halves reference each other.
	PairedTransactionID *uuid.UUID

	// IsIgnored excludes the transaction from expense/income reporting.
	// Ignored transactions still count toward balance.
	IsIgnored     bool
	IsCalibration bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	walletID uuid.UUID,
	date time.Time,
	direction TransactionDirection,
	amount decimal.Decimal,
	classification TransactionClassification,
	description string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:             uuid.New(),
		Date:           DateOf(date),
		WalletID:       walletID,
		Direction:      direction,
		Amount:         amount,
		Classification: classification,
		Description:    description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// DateOf truncates a timestamp to its UTC calendar date. Transaction dates,
// snapshot dates and all date arithmetic in the ledger use this form.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsValidDirection reports whether the given direction is known.
func IsValidDirection(direction TransactionDirection) bool {
	switch direction {
	case DirectionInflow, DirectionOutflow, DirectionReserved:
		return true
	}
	return false
}

// IsValidClassification reports whether the given classification is known.
func IsValidClassification(classification TransactionClassification) bool {
	switch classification {
	case ClassificationExpense, ClassificationIncome, ClassificationLend,
		ClassificationBorrow, ClassificationDebtCollection,
		ClassificationLoanRepayment, ClassificationSplitPayment,
		ClassificationTransfer, ClassificationInstallment,
		ClassificationInstallmentCharge:
		return true
	}
	return false
}
