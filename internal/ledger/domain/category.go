package domain

import ledgerErrors "github.com/workyudha21-cmd/LedgerWallet/internal/ledger/errors"

type Category struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"ownerId"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	IsDefault bool            `json:"isDefault,omitempty"`
}

func (c Category) Validate() error {
	if c.Name == "" {
		return ledgerErrors.NewValidationError("Category name must be provided")
	}
	if c.Type != TypeIncome && c.Type != TypeExpense {
		return ledgerErrors.NewValidationError("Type must be 'income' or 'expense'")
	}
	return nil
}

// Categories seeded for a new owner.
var DefaultIncomeCategories = []string{
	"Salary",
	"Freelance",
	"Investments",
	"Gift",
	"Other Income",
}

var DefaultExpenseCategories = []string{
	"Food & Dining",
	"Transportation",
	"Housing (Rent/Mortgage)",
	"Utilities",
	"Insurance",
	"Healthcare",
	"Entertainment",
	"Shopping",
	"Personal Care",
	"Education",
	"Travel",
	"Debt/Loan",
	"Other Expense",
}

// Categories the service assigns to transactions it creates itself.
const (
	CategoryGoalContribution = "Financial Goal"
	CategoryDebtPayment      = "Debt Payment"
	CategoryDebtCollection   = "Debt Collection"
)
