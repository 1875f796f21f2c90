package domain

import (
	"time"

	"github.com/shopspring/decimal"
	ledgerErrors "github.com/workyudha21-cmd/LedgerWallet/internal/ledger/errors"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Next returns the run date one period after t. Monthly and yearly steps use
// calendar arithmetic, so Jan 31 + 1 month normalizes into March the same way
// the rest of the ledger treats dates.
func (f Frequency) Next(t time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return t.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return t.AddDate(0, 1, 0)
	case FrequencyYearly:
		return t.AddDate(1, 0, 0)
	}
	return t
}

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// RecurringTransaction is a rule that materializes transactions over time.
// NextRunDate only ever advances; Active false suspends evaluation without
// losing the schedule position.
type RecurringTransaction struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"ownerId"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	AccountID   string          `json:"accountId,omitempty"`
	Frequency   Frequency       `json:"frequency"`
	StartDate   time.Time       `json:"startDate"`
	NextRunDate time.Time       `json:"nextRunDate"`
	Active      bool            `json:"active"`
	LastRunDate *time.Time      `json:"lastRunDate,omitempty"`
}

// Due reports whether the rule should materialize a transaction at now.
func (r RecurringTransaction) Due(now time.Time) bool {
	return r.Active && !r.NextRunDate.After(now)
}

func (r RecurringTransaction) Validate() error {
	if r.Name == "" {
		return ledgerErrors.NewValidationError("Recurring transaction name must be provided")
	}
	if r.Type != TypeIncome && r.Type != TypeExpense {
		return ledgerErrors.NewValidationError("Type must be 'income' or 'expense'")
	}
	if !r.Amount.IsPositive() {
		return ledgerErrors.NewValidationError("Amount must be greater than zero")
	}
	if !r.Frequency.Valid() {
		return ledgerErrors.NewValidationError("Frequency must be daily, weekly, monthly or yearly")
	}
	if r.NextRunDate.IsZero() {
		return ledgerErrors.NewValidationError("Next run date must be provided")
	}
	return nil
}
