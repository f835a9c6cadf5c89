package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LinkType is the kind of settlement a linked entry tracks.
type LinkType string

const (
	LinkTypeSplitPayment LinkType = "split_payment" // Paid on behalf, expect reimbursement
	LinkTypeLoan         LinkType = "loan"          // Lent money, expect payback
	LinkTypeDebt         LinkType = "debt"          // Borrowed money, must repay
	LinkTypeInstallment  LinkType = "installment"   // Credit card installment plan
)

// LinkStatus is the settlement state of a linked entry.
type LinkStatus string

const (
	LinkStatusPending LinkStatus = "pending"
	LinkStatusPartial LinkStatus = "partial"
	LinkStatusSettled LinkStatus = "settled"
)

// LinkedEntry tracks money owed across a split payment, loan, debt or
// installment plan. It is created by marking one primary transaction (a
// transaction can originate at most one entry) and settled by linking
// reimbursement/repayment/charge transactions to it.
type LinkedEntry struct {
	ID                   uuid.UUID
	LinkType             LinkType
	PrimaryTransactionID uuid.UUID
	CounterpartyName     string
	TotalAmount          decimal.Decimal
	UserAmount           *decimal.Decimal // Split payments only: the payer's own share
	PendingAmount        decimal.Decimal
	Status               LinkStatus
	Notes                string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewLinkedEntry creates a new LinkedEntry entity in the pending state.
func NewLinkedEntry(
	linkType LinkType,
	primaryTransactionID uuid.UUID,
	counterpartyName string,
	totalAmount decimal.Decimal,
	userAmount *decimal.Decimal,
	pendingAmount decimal.Decimal,
	notes string,
) *LinkedEntry {
	now := time.Now().UTC()

	return &LinkedEntry{
		ID:                   uuid.New(),
		LinkType:             linkType,
		PrimaryTransactionID: primaryTransactionID,
		CounterpartyName:     counterpartyName,
		TotalAmount:          totalAmount,
		UserAmount:           userAmount,
		PendingAmount:        pendingAmount,
		Status:               LinkStatusPending,
		Notes:                notes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// OutstandingTotal is the amount that can ever be settled against the entry:
// the total minus the user's own share for split payments.
func (e *LinkedEntry) OutstandingTotal() decimal.Decimal {
	if e.UserAmount != nil {
		return e.TotalAmount.Sub(*e.UserAmount)
	}
	return e.TotalAmount
}

// SettledAmount is the portion of the outstanding total already settled.
func (e *LinkedEntry) SettledAmount() decimal.Decimal {
	return e.OutstandingTotal().Sub(e.PendingAmount)
}

// RecomputeStatus derives Status from PendingAmount: settled at zero, pending
// while nothing has been settled, partial in between.
func (e *LinkedEntry) RecomputeStatus() {
	switch {
	case e.PendingAmount.IsZero():
		e.Status = LinkStatusSettled
	case e.PendingAmount.GreaterThanOrEqual(e.OutstandingTotal()):
		e.Status = LinkStatusPending
	default:
		e.Status = LinkStatusPartial
	}
}

// IsValidLinkType reports whether the given link type is known.
func IsValidLinkType(linkType LinkType) bool {
	switch linkType {
	case LinkTypeSplitPayment, LinkTypeLoan, LinkTypeDebt, LinkTypeInstallment:
		return true
	}
	return false
}

// LinkedTransaction joins one settling transaction to exactly one entry.
// The settled amount is not stored here; it is always read from the linked
// transaction's amount so the ledger has a single source of monetary truth.
type LinkedTransaction struct {
	ID            uuid.UUID
	LinkedEntryID uuid.UUID
	TransactionID uuid.UUID
	CreatedAt     time.Time
}

// NewLinkedTransaction creates a new LinkedTransaction entity.
func NewLinkedTransaction(linkedEntryID, transactionID uuid.UUID) *LinkedTransaction {
	return &LinkedTransaction{
		ID:            uuid.New(),
		LinkedEntryID: linkedEntryID,
		TransactionID: transactionID,
		CreatedAt:     time.Now().UTC(),
	}
}
