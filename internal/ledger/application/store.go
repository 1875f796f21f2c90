package application

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/domain"
)

// LedgerStore holds the latest known contents of every collection for one
// owner. Each subscription push replaces a whole collection; there is no
// incremental diffing. Readers get copies, never the internal slices.
type LedgerStore struct {
	mu sync.RWMutex

	ownerID      string
	transactions []domain.Transaction
	categories   []domain.Category
	budgets      []domain.Budget
	accounts     []domain.Account
	recurring    []domain.RecurringTransaction
	goals        []domain.FinancialGoal
	debts        []domain.Debt
}

func NewLedgerStore(ownerID string) *LedgerStore {
	return &LedgerStore{ownerID: ownerID}
}

func (s *LedgerStore) OwnerID() string {
	return s.ownerID
}

// ReplaceCollection swaps in the full new contents of one collection as
// delivered by a gateway subscription.
func (s *LedgerStore) ReplaceCollection(collection string, docs []json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch collection {
	case domain.CollectionTransactions:
		return decodeInto(docs, &s.transactions)
	case domain.CollectionCategories:
		return decodeInto(docs, &s.categories)
	case domain.CollectionBudgets:
		return decodeInto(docs, &s.budgets)
	case domain.CollectionAccounts:
		return decodeInto(docs, &s.accounts)
	case domain.CollectionRecurring:
		return decodeInto(docs, &s.recurring)
	case domain.CollectionGoals:
		return decodeInto(docs, &s.goals)
	case domain.CollectionDebts:
		return decodeInto(docs, &s.debts)
	}
	return fmt.Errorf("unknown collection %q", collection)
}

func decodeInto[T any](docs []json.RawMessage, target *[]T) error {
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := json.Unmarshal(doc, &item); err != nil {
			return err
		}
		items = append(items, item)
	}
	*target = items
	return nil
}

// Reset drops every collection. Called when the owner logs out so the next
// owner never sees stale data.
func (s *LedgerStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = nil
	s.categories = nil
	s.budgets = nil
	s.accounts = nil
	s.recurring = nil
	s.goals = nil
	s.debts = nil
}

// Snapshot is a point-in-time copy of all collections. It may be torn across
// concurrent pushes of different collections, which is acceptable because
// every mutation still commits atomically at the gateway.
type Snapshot struct {
	Transactions []domain.Transaction
	Categories   []domain.Category
	Budgets      []domain.Budget
	Accounts     []domain.Account
	Recurring    []domain.RecurringTransaction
	Goals        []domain.FinancialGoal
	Debts        []domain.Debt
}

func (s *LedgerStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Transactions: append([]domain.Transaction(nil), s.transactions...),
		Categories:   append([]domain.Category(nil), s.categories...),
		Budgets:      append([]domain.Budget(nil), s.budgets...),
		Accounts:     append([]domain.Account(nil), s.accounts...),
		Recurring:    append([]domain.RecurringTransaction(nil), s.recurring...),
		Goals:        append([]domain.FinancialGoal(nil), s.goals...),
		Debts:        append([]domain.Debt(nil), s.debts...),
	}
}

func (snap Snapshot) FindTransaction(id string) (domain.Transaction, bool) {
	for _, t := range snap.Transactions {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Transaction{}, false
}

func (snap Snapshot) FindAccount(id string) (domain.Account, bool) {
	for _, a := range snap.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Account{}, false
}

func (snap Snapshot) FindBudgetByCategory(category string) (domain.Budget, bool) {
	for _, b := range snap.Budgets {
		if b.Category == category {
			return b, true
		}
	}
	return domain.Budget{}, false
}
