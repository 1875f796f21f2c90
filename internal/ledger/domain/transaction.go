package domain

import (
	"time"

	"github.com/shopspring/decimal"
	ledgerErrors "github.com/workyudha21-cmd/LedgerWallet/internal/ledger/errors"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction is a single ledger entry. Amount is always positive,
// the sign is carried by Type.
type Transaction struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"ownerId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	AccountID   string          `json:"accountId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// TransactionForm carries the user-provided fields of a transaction.
type TransactionForm struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	AccountID   string          `json:"accountId,omitempty"`
}

func (f TransactionForm) Validate() error {
	if f.Type != TypeIncome && f.Type != TypeExpense {
		return ledgerErrors.NewValidationError("Type must be 'income' or 'expense'")
	}
	if !f.Amount.IsPositive() {
		return ledgerErrors.NewValidationError("Amount must be greater than zero")
	}
	if f.Category == "" {
		return ledgerErrors.NewValidationError("Category must be provided")
	}
	if len(f.Description) > 200 {
		return ledgerErrors.NewValidationError("Description must be of length less than 200")
	}
	return nil
}

// SignedDelta returns the effect of the transaction on an account balance:
// positive for income, negative for expense. Every component that touches a
// balance goes through this, there is no second place doing sign arithmetic.
func SignedDelta(t TransactionType, amount decimal.Decimal) decimal.Decimal {
	if t == TypeIncome {
		return amount
	}
	return amount.Neg()
}
