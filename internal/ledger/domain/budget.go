package domain

import (
	"github.com/shopspring/decimal"
	ledgerErrors "github.com/workyudha21-cmd/LedgerWallet/internal/ledger/errors"
)

// Budget is a monthly spending limit for one category. At most one budget
// exists per (owner, category) pair, enforced by upsert semantics in the
// service rather than by the store.
type Budget struct {
	ID       string          `json:"id"`
	OwnerID  string          `json:"ownerId"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

func (b Budget) Validate() error {
	if b.Category == "" {
		return ledgerErrors.NewValidationError("Budget category must be provided")
	}
	if !b.Amount.IsPositive() {
		return ledgerErrors.NewValidationError("Budget amount must be greater than zero")
	}
	return nil
}
