package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/domain"
	ledgerErrors "github.com/workyudha21-cmd/LedgerWallet/internal/ledger/errors"
)

// LedgerService is the only component that mutates ledger state. Every
// operation builds one atomic write set against current state and submits it
// in a single gateway commit; a rejected intent never submits anything.
//
// Reads always happen before any write is queued. Local state is never
// mutated optimistically: the store only reflects gateway-confirmed state
// arriving through subscriptions.
type LedgerService struct {
	gateway  domain.Gateway
	sessions *SessionManager
	log      zerolog.Logger
	now      func() time.Time
}

func NewLedgerService(gateway domain.Gateway, sessions *SessionManager, log zerolog.Logger) *LedgerService {
	return &LedgerService{
		gateway:  gateway,
		sessions: sessions,
		log:      log,
		now:      time.Now,
	}
}

// Snapshot opens the owner's session if needed and returns the current view.
// Read paths (listings, reports) go through here; they never touch the
// gateway directly.
func (s *LedgerService) Snapshot(ctx context.Context, ownerID string) (Snapshot, error) {
	sess, err := s.sessions.Open(ctx, ownerID)
	if err != nil {
		return Snapshot{}, err
	}
	return sess.Store.Snapshot(), nil
}

func (s *LedgerService) commit(ctx context.Context, writes []domain.Write) error {
	if err := s.gateway.AtomicCommit(ctx, writes); err != nil {
		return ledgerErrors.NewCommitError(err)
	}
	return nil
}

// readAccountBalance point-reads an account right before building balance
// writes. A missing account is reported through found=false so callers can
// decide whether that aborts the intent or degrades it. Another owner's
// account is indistinguishable from a missing one.
func (s *LedgerService) readAccountBalance(ctx context.Context, ownerID, id string) (domain.Account, bool, error) {
	var account domain.Account
	err := s.gateway.PointRead(ctx, domain.CollectionAccounts, id, &account)
	if ledgerErrors.IsNotFound(err) {
		return domain.Account{}, false, nil
	}
	if err != nil {
		return domain.Account{}, false, err
	}
	if account.OwnerID != ownerID {
		return domain.Account{}, false, nil
	}
	return account, true, nil
}

// AddTransaction records a manual ledger entry and adjusts the referenced
// account, if any. Overdraft is allowed: expenses may push a balance
// negative, since what "Cash" or "Bank" means is up to the user.
func (s *LedgerService) AddTransaction(ctx context.Context, ownerID string, form domain.TransactionForm) (domain.Transaction, error) {
	if err := form.Validate(); err != nil {
		return domain.Transaction{}, err
	}

	transaction := domain.Transaction{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Amount:      form.Amount,
		Type:        form.Type,
		Category:    form.Category,
		Description: form.Description,
		Date:        form.Date,
		AccountID:   form.AccountID,
		CreatedAt:   s.now(),
	}

	writes := []domain.Write{{
		Op:         domain.OpInsert,
		Collection: domain.CollectionTransactions,
		ID:         transaction.ID,
		OwnerID:    ownerID,
		Doc:        transaction,
	}}

	if form.AccountID != "" {
		account, found, err := s.readAccountBalance(ctx, ownerID, form.AccountID)
		if err != nil {
			return domain.Transaction{}, err
		}
		if found {
			account.Balance = account.Balance.Add(domain.SignedDelta(form.Type, form.Amount))
			writes = append(writes, accountUpdate(account))
		}
	}

	if err := s.commit(ctx, writes); err != nil {
		return domain.Transaction{}, err
	}
	return transaction, nil
}

// RemoveTransaction deletes an entry and reverses its effect on the account
// it referenced, using the stored amount and type, never a recomputed value.
func (s *LedgerService) RemoveTransaction(ctx context.Context, ownerID, transactionID string) error {
	snap, err := s.Snapshot(ctx, ownerID)
	if err != nil {
		return err
	}
	transaction, ok := snap.FindTransaction(transactionID)
	if !ok {
		return ledgerErrors.NewNotFoundError(domain.CollectionTransactions, transactionID)
	}

	writes := []domain.Write{{
		Op:         domain.OpDelete,
		Collection: domain.CollectionTransactions,
		ID:         transactionID,
		OwnerID:    ownerID,
	}}

	if transaction.AccountID != "" {
		account, found, err := s.readAccountBalance(ctx, ownerID, transaction.AccountID)
		if err != nil {
			return err
		}
		if found {
			account.Balance = account.Balance.Sub(domain.SignedDelta(transaction.Type, transaction.Amount))
			writes = append(writes, accountUpdate(account))
		}
	}

	return s.commit(ctx, writes)
}

// TransactionUpdate carries the fields of an edit; nil means unchanged.
type TransactionUpdate struct {
	Amount      *decimal.Decimal       `json:"amount,omitempty"`
	Type        *domain.TransactionType `json:"type,omitempty"`
	Category    *string                `json:"category,omitempty"`
	Description *string                `json:"description,omitempty"`
	Date        *time.Time             `json:"date,omitempty"`
	AccountID   *string                `json:"accountId,omitempty"`
}

func (u TransactionUpdate) applyTo(t domain.Transaction) domain.Transaction {
	if u.Amount != nil {
		t.Amount = *u.Amount
	}
	if u.Type != nil {
		t.Type = *u.Type
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Date != nil {
		t.Date = *u.Date
	}
	if u.AccountID != nil {
		t.AccountID = *u.AccountID
	}
	return t
}

// EditTransaction rewrites an entry. When amount, type or account changed,
// the old impact is reversed and the new one applied; the same account takes
// both adjustments when only amount or type moved. Every touched account is
// read exactly once, and all reads finish before any write is queued.
func (s *LedgerService) EditTransaction(ctx context.Context, ownerID, transactionID string, update TransactionUpdate) error {
	snap, err := s.Snapshot(ctx, ownerID)
	if err != nil {
		return err
	}
	oldTransaction, ok := snap.FindTransaction(transactionID)
	if !ok {
		return ledgerErrors.NewNotFoundError(domain.CollectionTransactions, transactionID)
	}

	newTransaction := update.applyTo(oldTransaction)
	if err := (domain.TransactionForm{
		Amount:      newTransaction.Amount,
		Type:        newTransaction.Type,
		Category:    newTransaction.Category,
		Description: newTransaction.Description,
		Date:        newTransaction.Date,
		AccountID:   newTransaction.AccountID,
	}).Validate(); err != nil {
		return err
	}

	writes := []domain.Write{{
		Op:         domain.OpUpdate,
		Collection: domain.CollectionTransactions,
		ID:         transactionID,
		OwnerID:    ownerID,
		Doc:        newTransaction,
	}}

	impactChanged := !oldTransaction.Amount.Equal(newTransaction.Amount) ||
		oldTransaction.Type != newTransaction.Type ||
		oldTransaction.AccountID != newTransaction.AccountID

	if impactChanged {
		// Read each distinct account once before computing anything.
		balances := make(map[string]domain.Account)
		for _, id := range []string{oldTransaction.AccountID, newTransaction.AccountID} {
			if id == "" {
				continue
			}
			if _, seen := balances[id]; seen {
				continue
			}
			account, found, err := s.readAccountBalance(ctx, ownerID, id)
			if err != nil {
				return err
			}
			if found {
				balances[id] = account
			}
		}

		if account, ok := balances[oldTransaction.AccountID]; ok {
			account.Balance = account.Balance.Sub(domain.SignedDelta(oldTransaction.Type, oldTransaction.Amount))
			balances[oldTransaction.AccountID] = account
		}
		if account, ok := balances[newTransaction.AccountID]; ok {
			account.Balance = account.Balance.Add(domain.SignedDelta(newTransaction.Type, newTransaction.Amount))
			balances[newTransaction.AccountID] = account
		}

		for _, account := range balances {
			writes = append(writes, accountUpdate(account))
		}
	}

	return s.commit(ctx, writes)
}

func accountUpdate(account domain.Account) domain.Write {
	return domain.Write{
		Op:         domain.OpUpdate,
		Collection: domain.CollectionAccounts,
		ID:         account.ID,
		OwnerID:    account.OwnerID,
		Doc:        account,
	}
}

// AddAccount creates an account with its starting balance.
func (s *LedgerService) AddAccount(ctx context.Context, ownerID string, account domain.Account) (domain.Account, error) {
	account.ID = uuid.NewString()
	account.OwnerID = ownerID
	if err := account.Validate(); err != nil {
		return domain.Account{}, err
	}
	err := s.commit(ctx, []domain.Write{{
		Op:         domain.OpInsert,
		Collection: domain.CollectionAccounts,
		ID:         account.ID,
		OwnerID:    ownerID,
		Doc:        account,
	}})
	if err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

// EditAccount overwrites an account, including its balance. This is the one
// deliberate escape hatch that sets a balance without reconciling history.
func (s *LedgerService) EditAccount(ctx context.Context, ownerID string, account domain.Account) error {
	if account.ID == "" {
		return ledgerErrors.NewValidationError("Account ID must be provided")
	}
	account.OwnerID = ownerID
	if err := account.Validate(); err != nil {
		return err
	}
	return s.commit(ctx, []domain.Write{accountUpdate(account)})
}

// RemoveAccount deletes the account document only. Transactions and
// recurring rules keep their references; consumers treat a missing account
// as a defined degraded state, never a crash.
func (s *LedgerService) RemoveAccount(ctx context.Context, ownerID, accountID string) error {
	return s.commit(ctx, []domain.Write{{
		Op:         domain.OpDelete,
		Collection: domain.CollectionAccounts,
		ID:         accountID,
		OwnerID:    ownerID,
	}})
}

func (s *LedgerService) AddCategory(ctx context.Context, ownerID string, category domain.Category) (domain.Category, error) {
	category.ID = uuid.NewString()
	category.OwnerID = ownerID
	if err := category.Validate(); err != nil {
		return domain.Category{}, err
	}
	err := s.commit(ctx, []domain.Write{{
		Op:         domain.OpInsert,
		Collection: domain.CollectionCategories,
		ID:         category.ID,
		OwnerID:    ownerID,
		Doc:        category,
	}})
	if err != nil {
		return domain.Category{}, err
	}
	return category, nil
}

func (s *LedgerService) RemoveCategory(ctx context.Context, ownerID, categoryID string) error {
	return s.commit(ctx, []domain.Write{{
		Op:         domain.OpDelete,
		Collection: domain.CollectionCategories,
		ID:         categoryID,
		OwnerID:    ownerID,
	}})
}

// SeedDefaultCategories inserts the stock category lists for a new owner in
// one batch.
func (s *LedgerService) SeedDefaultCategories(ctx context.Context, ownerID string) error {
	var writes []domain.Write
	add := func(name string, categoryType domain.TransactionType) {
		category := domain.Category{
			ID:        uuid.NewString(),
			OwnerID:   ownerID,
			Name:      name,
			Type:      categoryType,
			IsDefault: true,
		}
		writes = append(writes, domain.Write{
			Op:         domain.OpInsert,
			Collection: domain.CollectionCategories,
			ID:         category.ID,
			OwnerID:    ownerID,
			Doc:        category,
		})
	}
	for _, name := range domain.DefaultIncomeCategories {
		add(name, domain.TypeIncome)
	}
	for _, name := range domain.DefaultExpenseCategories {
		add(name, domain.TypeExpense)
	}
	return s.commit(ctx, writes)
}

// ResetData wipes every collection of one owner. Used by the settings
// "start over" flow.
func (s *LedgerService) ResetData(ctx context.Context, ownerID string) error {
	for _, collection := range domain.Collections {
		if err := s.gateway.BulkDelete(ctx, collection, ownerID); err != nil {
			return fmt.Errorf("resetting %s: %w", collection, err)
		}
	}
	return nil
}
