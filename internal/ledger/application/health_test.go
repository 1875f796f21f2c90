package application

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/domain"
)

func TestFinancialHealth_Excellent(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Accounts: []domain.Account{
			{ID: "a1", Balance: decimal.NewFromInt(60_000)},
		},
		Transactions: []domain.Transaction{
			{Amount: decimal.NewFromInt(20_000), Type: domain.TypeIncome, Category: "Salary", Date: now.AddDate(0, 0, -5)},
			{Amount: decimal.NewFromInt(10_000), Type: domain.TypeExpense, Category: "Food & Dining", Date: now.AddDate(0, 0, -3)},
		},
	}

	report := FinancialHealth(snap, now)

	assert.True(t, report.NetWorth.Equal(decimal.NewFromInt(60_000)))
	assert.InDelta(t, 50.0, report.SavingsRatio, 0.01)
	assert.Zero(t, report.DebtToIncomeRatio)
	assert.InDelta(t, 6.0, report.EmergencyFundRatio, 0.01)
	assert.Equal(t, 100, report.OverallScore)
	assert.Equal(t, "Excellent", report.Status)
	assert.NotEmpty(t, report.Tips)
}

func TestFinancialHealth_Critical(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Accounts: []domain.Account{
			{ID: "a1", Balance: decimal.NewFromInt(5_000)},
		},
		Debts: []domain.Debt{
			{Type: domain.DebtPayable, Status: domain.DebtActive, RemainingAmount: decimal.NewFromInt(50_000)},
		},
		Transactions: []domain.Transaction{
			{Amount: decimal.NewFromInt(10_000), Type: domain.TypeExpense, Category: "Shopping", Date: now.AddDate(0, 0, -1)},
		},
	}

	report := FinancialHealth(snap, now)

	assert.True(t, report.NetWorth.Equal(decimal.NewFromInt(-45_000)))
	assert.Equal(t, 0, report.OverallScore)
	assert.Equal(t, "Critical", report.Status)
	assert.Len(t, report.Tips, 4, "every failing dimension contributes a tip")
}

func TestFinancialHealth_DebtAccounting(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Accounts: []domain.Account{{ID: "a1", Balance: decimal.NewFromInt(10_000)}},
		Goals:    []domain.FinancialGoal{{CurrentAmount: decimal.NewFromInt(2_000)}},
		Debts: []domain.Debt{
			{Type: domain.DebtReceivable, Status: domain.DebtActive, RemainingAmount: decimal.NewFromInt(3_000)},
			{Type: domain.DebtPayable, Status: domain.DebtActive, RemainingAmount: decimal.NewFromInt(4_000)},
			// settled debts no longer count either way
			{Type: domain.DebtPayable, Status: domain.DebtPaid, RemainingAmount: decimal.Zero},
		},
	}

	report := FinancialHealth(snap, now)
	// 10000 + 2000 + 3000 - 4000
	assert.True(t, report.NetWorth.Equal(decimal.NewFromInt(11_000)))
}

func TestBudgetReport(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Budgets: []domain.Budget{
			{ID: "b1", Category: "Food & Dining", Amount: decimal.NewFromInt(100)},
			{ID: "b2", Category: "Travel", Amount: decimal.NewFromInt(500)},
		},
		Transactions: []domain.Transaction{
			{Amount: decimal.NewFromInt(30), Type: domain.TypeExpense, Category: "Food & Dining", Date: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)},
			{Amount: decimal.NewFromInt(20), Type: domain.TypeExpense, Category: "Food & Dining", Date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
			// outside the current month
			{Amount: decimal.NewFromInt(99), Type: domain.TypeExpense, Category: "Food & Dining", Date: time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC)},
			// income never counts as spend
			{Amount: decimal.NewFromInt(40), Type: domain.TypeIncome, Category: "Food & Dining", Date: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)},
			// unbudgeted category is simply absent from the report
			{Amount: decimal.NewFromInt(10), Type: domain.TypeExpense, Category: "Shopping", Date: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)},
		},
	}

	report := BudgetReport(snap, now)

	assert.Len(t, report, 2)
	byCategory := make(map[string]BudgetProgress)
	for _, progress := range report {
		byCategory[progress.Budget.Category] = progress
	}
	assert.True(t, byCategory["Food & Dining"].Spent.Equal(decimal.NewFromInt(50)))
	assert.True(t, byCategory["Travel"].Spent.IsZero())
}
