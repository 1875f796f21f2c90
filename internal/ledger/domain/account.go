package domain

import (
	"github.com/shopspring/decimal"
	ledgerErrors "github.com/workyudha21-cmd/LedgerWallet/internal/ledger/errors"
)

type AccountType string

const (
	AccountCash       AccountType = "Cash"
	AccountBank       AccountType = "Bank"
	AccountWallet     AccountType = "Wallet"
	AccountInvestment AccountType = "Investment"
	AccountOther      AccountType = "Other"
)

var accountTypes = map[AccountType]bool{
	AccountCash:       true,
	AccountBank:       true,
	AccountWallet:     true,
	AccountInvestment: true,
	AccountOther:      true,
}

// Account holds a stored running balance. The balance is derived state: it
// must equal the initial balance plus the signed sum of every transaction,
// goal contribution and debt payment referencing the account. Only the
// ledger service mutates it, except the explicit edit-account override.
type Account struct {
	ID      string          `json:"id"`
	OwnerID string          `json:"ownerId"`
	Name    string          `json:"name"`
	Type    AccountType     `json:"type"`
	Balance decimal.Decimal `json:"balance"`
	Color   string          `json:"color,omitempty"`
}

func (a Account) Validate() error {
	if a.Name == "" {
		return ledgerErrors.NewValidationError("Account name must be provided")
	}
	if !accountTypes[a.Type] {
		return ledgerErrors.NewValidationError("Unknown account type")
	}
	return nil
}
