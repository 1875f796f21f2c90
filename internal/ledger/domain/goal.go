package domain

import (
	"time"

	"github.com/shopspring/decimal"
	ledgerErrors "github.com/workyudha21-cmd/LedgerWallet/internal/ledger/errors"
)

// FinancialGoal is a savings target. CurrentAmount only grows through
// contributions made by the ledger service; there is no automatic
// withdrawal path, lowering it requires a direct edit.
type FinancialGoal struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"ownerId"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	Color         string          `json:"color,omitempty"`
}

func (g FinancialGoal) Validate() error {
	if g.Name == "" {
		return ledgerErrors.NewValidationError("Goal name must be provided")
	}
	if !g.TargetAmount.IsPositive() {
		return ledgerErrors.NewValidationError("Target amount must be greater than zero")
	}
	if g.CurrentAmount.IsNegative() {
		return ledgerErrors.NewValidationError("Current amount must not be negative")
	}
	return nil
}
