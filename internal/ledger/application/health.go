package application

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/domain"
)

// FinancialHealthReport scores an owner's overall position from 0 to 100.
// Assets count account balances, goal savings and open receivables; open
// payables count against. The flow ratios look at the trailing 30 days.
type FinancialHealthReport struct {
	NetWorth           decimal.Decimal `json:"netWorth"`
	SavingsRatio       float64         `json:"savingsRatio"`
	DebtToIncomeRatio  float64         `json:"debtToIncomeRatio"`
	EmergencyFundRatio float64         `json:"emergencyFundRatio"`
	OverallScore       int             `json:"overallScore"`
	Status             string          `json:"status"`
	Tips               []string        `json:"tips"`
}

// FinancialHealth computes the report from a snapshot. Read-only; it never
// touches the gateway.
func FinancialHealth(snap Snapshot, now time.Time) FinancialHealthReport {
	thirtyDaysAgo := now.AddDate(0, 0, -30)

	totalBalance := decimal.Zero
	for _, account := range snap.Accounts {
		totalBalance = totalBalance.Add(account.Balance)
	}
	goalSavings := decimal.Zero
	for _, goal := range snap.Goals {
		goalSavings = goalSavings.Add(goal.CurrentAmount)
	}
	receivables := decimal.Zero
	payables := decimal.Zero
	for _, debt := range snap.Debts {
		if debt.Status != domain.DebtActive {
			continue
		}
		if debt.Type == domain.DebtReceivable {
			receivables = receivables.Add(debt.RemainingAmount)
		} else {
			payables = payables.Add(debt.RemainingAmount)
		}
	}
	netWorth := totalBalance.Add(goalSavings).Add(receivables).Sub(payables)

	income := decimal.Zero
	expense := decimal.Zero
	debtPayments := decimal.Zero
	for _, transaction := range snap.Transactions {
		if !transaction.Date.After(thirtyDaysAgo) {
			continue
		}
		if transaction.Type == domain.TypeIncome {
			income = income.Add(transaction.Amount)
			continue
		}
		expense = expense.Add(transaction.Amount)
		if strings.Contains(strings.ToLower(transaction.Category), "debt") {
			debtPayments = debtPayments.Add(transaction.Amount)
		}
	}

	var savingsRatio float64
	if income.IsPositive() {
		savingsRatio, _ = income.Sub(expense).Div(income).Mul(decimal.NewFromInt(100)).Float64()
	}

	var dti float64
	if income.IsPositive() {
		dti, _ = debtPayments.Div(income).Mul(decimal.NewFromInt(100)).Float64()
	} else if payables.IsPositive() {
		dti = 100
	}

	monthlyExpenses := expense
	if !monthlyExpenses.IsPositive() {
		monthlyExpenses = decimal.NewFromInt(1)
	}
	emergencyFund, _ := totalBalance.Div(monthlyExpenses).Float64()

	score := 0
	var tips []string

	switch {
	case netWorth.IsPositive():
		score += 20
	case netWorth.IsZero():
		score += 10
	default:
		tips = append(tips, "Your net worth is negative. Focus on paying down debts to build wealth.")
	}

	switch {
	case savingsRatio >= 20:
		score += 30
	case savingsRatio > 0:
		score += 15
		tips = append(tips, "Try to save at least 20% of your income to improve your savings ratio.")
	default:
		tips = append(tips, "Your expenses exceed your income. Review your budget to cut unnecessary costs.")
	}

	switch {
	case dti == 0:
		score += 25
	case dti < 30:
		score += 20
	case dti <= 50:
		score += 10
		tips = append(tips, "Your debt payments are taking up a large portion of your income. Consider a debt payoff strategy.")
	default:
		tips = append(tips, "Critical debt-to-income ratio. Focus aggressively on reducing debt obligations.")
	}

	switch {
	case emergencyFund >= 6:
		score += 25
	case emergencyFund >= 3:
		score += 20
	case emergencyFund >= 1:
		score += 10
		tips = append(tips, "Your emergency fund covers less than 3 months of expenses. Try to build it up.")
	default:
		tips = append(tips, "You are highly vulnerable to financial shocks. Start saving an emergency fund immediately.")
	}

	status := "Critical"
	switch {
	case score >= 80:
		status = "Excellent"
	case score >= 60:
		status = "Good"
	case score >= 40:
		status = "Fair"
	}

	if len(tips) == 0 && status == "Excellent" {
		tips = append(tips, "Great job! Your finances are in exceptional shape. Keep up the good work.")
	}

	return FinancialHealthReport{
		NetWorth:           netWorth,
		SavingsRatio:       savingsRatio,
		DebtToIncomeRatio:  dti,
		EmergencyFundRatio: emergencyFund,
		OverallScore:       score,
		Status:             status,
		Tips:               tips,
	}
}

// BudgetProgress is the month-to-date spend against one category limit.
type BudgetProgress struct {
	Budget domain.Budget   `json:"budget"`
	Spent  decimal.Decimal `json:"spent"`
}

// BudgetReport totals this month's expenses per budgeted category.
func BudgetReport(snap Snapshot, now time.Time) []BudgetProgress {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	spent := make(map[string]decimal.Decimal)
	for _, transaction := range snap.Transactions {
		if transaction.Type != domain.TypeExpense || transaction.Date.Before(monthStart) {
			continue
		}
		spent[transaction.Category] = spent[transaction.Category].Add(transaction.Amount)
	}

	report := make([]BudgetProgress, 0, len(snap.Budgets))
	for _, budget := range snap.Budgets {
		report = append(report, BudgetProgress{
			Budget: budget,
			Spent:  spent[budget.Category],
		})
	}
	return report
}
