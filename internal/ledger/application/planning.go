package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/domain"
	ledgerErrors "github.com/workyudha21-cmd/LedgerWallet/internal/ledger/errors"
)

// SetBudget upserts the monthly limit for a category. A second call for the
// same (owner, category) updates the existing budget instead of creating a
// duplicate.
func (s *LedgerService) SetBudget(ctx context.Context, ownerID string, budget domain.Budget) (domain.Budget, error) {
	budget.OwnerID = ownerID
	if err := budget.Validate(); err != nil {
		return domain.Budget{}, err
	}

	snap, err := s.Snapshot(ctx, ownerID)
	if err != nil {
		return domain.Budget{}, err
	}

	op := domain.OpInsert
	if existing, ok := snap.FindBudgetByCategory(budget.Category); ok {
		budget.ID = existing.ID
		op = domain.OpUpdate
	} else {
		budget.ID = uuid.NewString()
	}

	err = s.commit(ctx, []domain.Write{{
		Op:         op,
		Collection: domain.CollectionBudgets,
		ID:         budget.ID,
		OwnerID:    ownerID,
		Doc:        budget,
	}})
	if err != nil {
		return domain.Budget{}, err
	}
	return budget, nil
}

func (s *LedgerService) RemoveBudget(ctx context.Context, ownerID, budgetID string) error {
	return s.commit(ctx, []domain.Write{{
		Op:         domain.OpDelete,
		Collection: domain.CollectionBudgets,
		ID:         budgetID,
		OwnerID:    ownerID,
	}})
}

func (s *LedgerService) AddGoal(ctx context.Context, ownerID string, goal domain.FinancialGoal) (domain.FinancialGoal, error) {
	goal.ID = uuid.NewString()
	goal.OwnerID = ownerID
	if err := goal.Validate(); err != nil {
		return domain.FinancialGoal{}, err
	}
	err := s.commit(ctx, []domain.Write{{
		Op:         domain.OpInsert,
		Collection: domain.CollectionGoals,
		ID:         goal.ID,
		OwnerID:    ownerID,
		Doc:        goal,
	}})
	if err != nil {
		return domain.FinancialGoal{}, err
	}
	return goal, nil
}

func (s *LedgerService) EditGoal(ctx context.Context, ownerID string, goal domain.FinancialGoal) error {
	if goal.ID == "" {
		return ledgerErrors.NewValidationError("Goal ID must be provided")
	}
	goal.OwnerID = ownerID
	if err := goal.Validate(); err != nil {
		return err
	}
	return s.commit(ctx, []domain.Write{{
		Op:         domain.OpUpdate,
		Collection: domain.CollectionGoals,
		ID:         goal.ID,
		OwnerID:    ownerID,
		Doc:        goal,
	}})
}

func (s *LedgerService) RemoveGoal(ctx context.Context, ownerID, goalID string) error {
	return s.commit(ctx, []domain.Write{{
		Op:         domain.OpDelete,
		Collection: domain.CollectionGoals,
		ID:         goalID,
		OwnerID:    ownerID,
	}})
}

// ContributeToGoal moves money from an account into a savings goal as one
// atomic unit: an expense transaction, the account debit and the goal
// increment all land together or not at all.
func (s *LedgerService) ContributeToGoal(ctx context.Context, ownerID, goalID, accountID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ledgerErrors.NewValidationError("Contribution amount must be greater than zero")
	}
	if accountID == "" {
		return ledgerErrors.ErrNoAccountSelected
	}

	var goal domain.FinancialGoal
	if err := s.gateway.PointRead(ctx, domain.CollectionGoals, goalID, &goal); err != nil {
		return err
	}
	if goal.OwnerID != ownerID {
		return ledgerErrors.NewNotFoundError(domain.CollectionGoals, goalID)
	}
	account, found, err := s.readAccountBalance(ctx, ownerID, accountID)
	if err != nil {
		return err
	}
	if !found {
		return ledgerErrors.NewNotFoundError(domain.CollectionAccounts, accountID)
	}

	if account.Balance.LessThan(amount) {
		return ledgerErrors.ErrInsufficientFunds
	}

	transaction := domain.Transaction{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Amount:      amount,
		Type:        domain.TypeExpense,
		Category:    domain.CategoryGoalContribution,
		Description: fmt.Sprintf("Contribution to %s", goal.Name),
		Date:        s.now(),
		AccountID:   accountID,
		CreatedAt:   s.now(),
	}

	account.Balance = account.Balance.Sub(amount)
	goal.CurrentAmount = goal.CurrentAmount.Add(amount)

	return s.commit(ctx, []domain.Write{
		{
			Op:         domain.OpInsert,
			Collection: domain.CollectionTransactions,
			ID:         transaction.ID,
			OwnerID:    ownerID,
			Doc:        transaction,
		},
		accountUpdate(account),
		{
			Op:         domain.OpUpdate,
			Collection: domain.CollectionGoals,
			ID:         goal.ID,
			OwnerID:    ownerID,
			Doc:        goal,
		},
	})
}

// AddDebt records a new debt with the full amount outstanding.
func (s *LedgerService) AddDebt(ctx context.Context, ownerID string, debt domain.Debt) (domain.Debt, error) {
	debt.ID = uuid.NewString()
	debt.OwnerID = ownerID
	debt.RemainingAmount = debt.TotalAmount
	debt.Status = domain.DebtActive
	debt.CreatedAt = s.now()
	if err := debt.Validate(); err != nil {
		return domain.Debt{}, err
	}
	err := s.commit(ctx, []domain.Write{{
		Op:         domain.OpInsert,
		Collection: domain.CollectionDebts,
		ID:         debt.ID,
		OwnerID:    ownerID,
		Doc:        debt,
	}})
	if err != nil {
		return domain.Debt{}, err
	}
	return debt, nil
}

func (s *LedgerService) EditDebt(ctx context.Context, ownerID string, debt domain.Debt) error {
	if debt.ID == "" {
		return ledgerErrors.NewValidationError("Debt ID must be provided")
	}
	debt.OwnerID = ownerID
	if err := debt.Validate(); err != nil {
		return err
	}
	return s.commit(ctx, []domain.Write{{
		Op:         domain.OpUpdate,
		Collection: domain.CollectionDebts,
		ID:         debt.ID,
		OwnerID:    ownerID,
		Doc:        debt,
	}})
}

func (s *LedgerService) RemoveDebt(ctx context.Context, ownerID, debtID string) error {
	return s.commit(ctx, []domain.Write{{
		Op:         domain.OpDelete,
		Collection: domain.CollectionDebts,
		ID:         debtID,
		OwnerID:    ownerID,
	}})
}

// PayDebt settles part of a debt from an account. Paying a payable debt
// spends money and requires sufficient balance; collecting a receivable adds
// money and has no balance precondition. The payment never exceeds what is
// still owed, and the debt flips to paid exactly when nothing remains.
func (s *LedgerService) PayDebt(ctx context.Context, ownerID, debtID string, amount decimal.Decimal, accountID string) error {
	if !amount.IsPositive() {
		return ledgerErrors.NewValidationError("Payment amount must be greater than zero")
	}
	if accountID == "" {
		return ledgerErrors.ErrNoAccountSelected
	}

	var debt domain.Debt
	if err := s.gateway.PointRead(ctx, domain.CollectionDebts, debtID, &debt); err != nil {
		return err
	}
	if debt.OwnerID != ownerID {
		return ledgerErrors.NewNotFoundError(domain.CollectionDebts, debtID)
	}
	account, found, err := s.readAccountBalance(ctx, ownerID, accountID)
	if err != nil {
		return err
	}
	if !found {
		return ledgerErrors.NewNotFoundError(domain.CollectionAccounts, accountID)
	}

	if amount.GreaterThan(debt.RemainingAmount) {
		return ledgerErrors.ErrPaymentExceedsDebt
	}
	isPayable := debt.Type == domain.DebtPayable
	if isPayable && account.Balance.LessThan(amount) {
		return ledgerErrors.ErrInsufficientFunds
	}

	transaction := domain.Transaction{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Amount:    amount,
		Date:      s.now(),
		AccountID: accountID,
		CreatedAt: s.now(),
	}
	if isPayable {
		transaction.Type = domain.TypeExpense
		transaction.Category = domain.CategoryDebtPayment
		transaction.Description = fmt.Sprintf("Paid to %s", debt.PersonName)
		account.Balance = account.Balance.Sub(amount)
	} else {
		transaction.Type = domain.TypeIncome
		transaction.Category = domain.CategoryDebtCollection
		transaction.Description = fmt.Sprintf("Received from %s", debt.PersonName)
		account.Balance = account.Balance.Add(amount)
	}

	debt.RemainingAmount = debt.RemainingAmount.Sub(amount)
	if debt.RemainingAmount.Sign() <= 0 {
		debt.Status = domain.DebtPaid
	} else {
		debt.Status = domain.DebtActive
	}

	return s.commit(ctx, []domain.Write{
		{
			Op:         domain.OpInsert,
			Collection: domain.CollectionTransactions,
			ID:         transaction.ID,
			OwnerID:    ownerID,
			Doc:        transaction,
		},
		accountUpdate(account),
		{
			Op:         domain.OpUpdate,
			Collection: domain.CollectionDebts,
			ID:         debt.ID,
			OwnerID:    ownerID,
			Doc:        debt,
		},
	})
}

// AddRecurring registers a rule; the first run happens on NextRunDate, which
// defaults to the start date.
func (s *LedgerService) AddRecurring(ctx context.Context, ownerID string, rule domain.RecurringTransaction) (domain.RecurringTransaction, error) {
	rule.ID = uuid.NewString()
	rule.OwnerID = ownerID
	if rule.NextRunDate.IsZero() {
		rule.NextRunDate = rule.StartDate
	}
	if err := rule.Validate(); err != nil {
		return domain.RecurringTransaction{}, err
	}
	err := s.commit(ctx, []domain.Write{{
		Op:         domain.OpInsert,
		Collection: domain.CollectionRecurring,
		ID:         rule.ID,
		OwnerID:    ownerID,
		Doc:        rule,
	}})
	if err != nil {
		return domain.RecurringTransaction{}, err
	}
	return rule, nil
}

func (s *LedgerService) EditRecurring(ctx context.Context, ownerID string, rule domain.RecurringTransaction) error {
	if rule.ID == "" {
		return ledgerErrors.NewValidationError("Recurring transaction ID must be provided")
	}
	rule.OwnerID = ownerID
	if err := rule.Validate(); err != nil {
		return err
	}
	return s.commit(ctx, []domain.Write{{
		Op:         domain.OpUpdate,
		Collection: domain.CollectionRecurring,
		ID:         rule.ID,
		OwnerID:    ownerID,
		Doc:        rule,
	}})
}

func (s *LedgerService) RemoveRecurring(ctx context.Context, ownerID, ruleID string) error {
	return s.commit(ctx, []domain.Write{{
		Op:         domain.OpDelete,
		Collection: domain.CollectionRecurring,
		ID:         ruleID,
		OwnerID:    ownerID,
	}})
}
