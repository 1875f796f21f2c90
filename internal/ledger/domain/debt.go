package domain

import (
	"time"

	"github.com/shopspring/decimal"
	ledgerErrors "github.com/workyudha21-cmd/LedgerWallet/internal/ledger/errors"
)

type DebtType string

const (
	DebtPayable    DebtType = "payable"    // money we owe
	DebtReceivable DebtType = "receivable" // money owed to us
)

type DebtStatus string

const (
	DebtActive DebtStatus = "active"
	DebtPaid   DebtStatus = "paid"
)

// Debt tracks money owed to or by a person. RemainingAmount stays within
// [0, TotalAmount] and Status is paid exactly when RemainingAmount reaches
// zero.
type Debt struct {
	ID              string          `json:"id"`
	OwnerID         string          `json:"ownerId"`
	Type            DebtType        `json:"type"`
	PersonName      string          `json:"personName"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	Description     string          `json:"description,omitempty"`
	Status          DebtStatus      `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func (d Debt) Validate() error {
	if d.Type != DebtPayable && d.Type != DebtReceivable {
		return ledgerErrors.NewValidationError("Debt type must be 'payable' or 'receivable'")
	}
	if d.PersonName == "" {
		return ledgerErrors.NewValidationError("Person name must be provided")
	}
	if !d.TotalAmount.IsPositive() {
		return ledgerErrors.NewValidationError("Total amount must be greater than zero")
	}
	return nil
}
