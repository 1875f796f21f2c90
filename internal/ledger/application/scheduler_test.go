package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/domain"
	ledgerErrors "github.com/workyudha21-cmd/LedgerWallet/internal/ledger/errors"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/infrastructure"
)

func newTestScheduler(t *testing.T, policy CatchUpPolicy, now time.Time) (*LedgerService, *RecurringScheduler, *infrastructure.MemoryGateway) {
	t.Helper()
	service, gateway, sessions := newTestLedger(t)
	scheduler := NewRecurringScheduler(gateway, sessions, policy, zerolog.Nop())
	scheduler.now = func() time.Time { return now }
	return service, scheduler, gateway
}

func mustAddRule(t *testing.T, service *LedgerService, rule domain.RecurringTransaction) domain.RecurringTransaction {
	t.Helper()
	created, err := service.AddRecurring(context.Background(), testOwner, rule)
	if err != nil {
		t.Fatalf("adding recurring rule: %v", err)
	}
	return created
}

func TestScheduler_SinglePeriodAdvance(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	service, scheduler, _ := newTestScheduler(t, CatchUpSinglePeriod, now)
	account := mustAddAccount(t, service, 1_000_000)

	mustAddRule(t, service, domain.RecurringTransaction{
		Name:      "Rent",
		Amount:    decimal.NewFromInt(100_000),
		Type:      domain.TypeExpense,
		Category:  "Housing (Rent/Mortgage)",
		AccountID: account.ID,
		Frequency: domain.FrequencyMonthly,
		StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Active:    true,
	})

	assert.NoError(t, scheduler.ProcessDue(context.Background(), testOwner))

	snap, _ := service.Snapshot(context.Background(), testOwner)
	assert.Len(t, snap.Transactions, 1, "one period per pass, even when two are overdue")
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), snap.Transactions[0].Date,
		"the materialized transaction carries the scheduled date, not the processing date")
	assert.Equal(t, "Recurring: Rent", snap.Transactions[0].Description)

	advanced := snap.Recurring[0]
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), advanced.NextRunDate,
		"advance from the previous scheduled date, never from now")
	if assert.NotNil(t, advanced.LastRunDate) {
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *advanced.LastRunDate)
	}
	assert.True(t, accountBalance(t, service, account.ID).Equal(decimal.NewFromInt(900_000)))

	// The remaining overdue period is caught on the next pass.
	assert.NoError(t, scheduler.ProcessDue(context.Background(), testOwner))
	snap, _ = service.Snapshot(context.Background(), testOwner)
	assert.Len(t, snap.Transactions, 2)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), snap.Recurring[0].NextRunDate)

	// Now the rule is ahead of the clock; a further pass commits nothing.
	assert.NoError(t, scheduler.ProcessDue(context.Background(), testOwner))
	snap, _ = service.Snapshot(context.Background(), testOwner)
	assert.Len(t, snap.Transactions, 2)
}

func TestScheduler_CatchUpAll(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	service, scheduler, _ := newTestScheduler(t, CatchUpAll, now)
	account := mustAddAccount(t, service, 500_000)

	mustAddRule(t, service, domain.RecurringTransaction{
		Name:      "Salary",
		Amount:    decimal.NewFromInt(50_000),
		Type:      domain.TypeIncome,
		Category:  "Salary",
		AccountID: account.ID,
		Frequency: domain.FrequencyMonthly,
		StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Active:    true,
	})

	assert.NoError(t, scheduler.ProcessDue(context.Background(), testOwner))

	snap, _ := service.Snapshot(context.Background(), testOwner)
	assert.Len(t, snap.Transactions, 2, "every missed period lands in one pass")
	dates := []time.Time{snap.Transactions[0].Date, snap.Transactions[1].Date}
	assert.Contains(t, dates, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, dates, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), snap.Recurring[0].NextRunDate)
	assert.True(t, accountBalance(t, service, account.ID).Equal(decimal.NewFromInt(600_000)))
}

func TestScheduler_InactiveRuleSkipped(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	service, scheduler, _ := newTestScheduler(t, CatchUpSinglePeriod, now)
	account := mustAddAccount(t, service, 100_000)

	mustAddRule(t, service, domain.RecurringTransaction{
		Name:      "Paused subscription",
		Amount:    decimal.NewFromInt(10_000),
		Type:      domain.TypeExpense,
		Category:  "Entertainment",
		AccountID: account.ID,
		Frequency: domain.FrequencyMonthly,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:    false,
	})

	assert.NoError(t, scheduler.ProcessDue(context.Background(), testOwner))

	snap, _ := service.Snapshot(context.Background(), testOwner)
	assert.Empty(t, snap.Transactions)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), snap.Recurring[0].NextRunDate,
		"a paused rule keeps its schedule position")
}

func TestScheduler_NotDueIsNoOp(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	service, scheduler, _ := newTestScheduler(t, CatchUpSinglePeriod, now)
	account := mustAddAccount(t, service, 100_000)

	mustAddRule(t, service, domain.RecurringTransaction{
		Name:      "Future bill",
		Amount:    decimal.NewFromInt(10_000),
		Type:      domain.TypeExpense,
		Category:  "Utilities",
		AccountID: account.ID,
		Frequency: domain.FrequencyMonthly,
		StartDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Active:    true,
	})

	assert.NoError(t, scheduler.ProcessDue(context.Background(), testOwner))

	snap, _ := service.Snapshot(context.Background(), testOwner)
	assert.Empty(t, snap.Transactions)
	assert.True(t, accountBalance(t, service, account.ID).Equal(decimal.NewFromInt(100_000)))
}

func TestScheduler_DanglingAccount(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	service, scheduler, _ := newTestScheduler(t, CatchUpSinglePeriod, now)

	mustAddRule(t, service, domain.RecurringTransaction{
		Name:      "Orphaned rule",
		Amount:    decimal.NewFromInt(5_000),
		Type:      domain.TypeExpense,
		Category:  "Other Expense",
		AccountID: "deleted-account",
		Frequency: domain.FrequencyWeekly,
		StartDate: time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC),
		Active:    true,
	})

	assert.NoError(t, scheduler.ProcessDue(context.Background(), testOwner),
		"a rule pointing at a deleted account must not fail the pass")

	snap, _ := service.Snapshot(context.Background(), testOwner)
	assert.Len(t, snap.Transactions, 1, "the transaction is still created")
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), snap.Recurring[0].NextRunDate,
		"the schedule still advances")
	assert.Empty(t, snap.Accounts)
}

func TestScheduler_TwoRulesOneAccount(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	service, scheduler, _ := newTestScheduler(t, CatchUpSinglePeriod, now)
	account := mustAddAccount(t, service, 1_000)

	mustAddRule(t, service, domain.RecurringTransaction{
		Name:      "Gym",
		Amount:    decimal.NewFromInt(100),
		Type:      domain.TypeExpense,
		Category:  "Personal Care",
		AccountID: account.ID,
		Frequency: domain.FrequencyMonthly,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Active:    true,
	})
	mustAddRule(t, service, domain.RecurringTransaction{
		Name:      "Allowance",
		Amount:    decimal.NewFromInt(40),
		Type:      domain.TypeIncome,
		Category:  "Gift",
		AccountID: account.ID,
		Frequency: domain.FrequencyMonthly,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Active:    true,
	})

	assert.NoError(t, scheduler.ProcessDue(context.Background(), testOwner))

	snap, _ := service.Snapshot(context.Background(), testOwner)
	assert.Len(t, snap.Transactions, 2)
	assert.True(t, accountBalance(t, service, account.ID).Equal(decimal.NewFromInt(940)),
		"both rules must land on the same balance, neither clobbering the other")
}

func TestScheduler_CommitFailureChangesNothing(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	service, scheduler, gateway := newTestScheduler(t, CatchUpSinglePeriod, now)
	account := mustAddAccount(t, service, 10_000)

	mustAddRule(t, service, domain.RecurringTransaction{
		Name:      "Internet",
		Amount:    decimal.NewFromInt(500),
		Type:      domain.TypeExpense,
		Category:  "Utilities",
		AccountID: account.ID,
		Frequency: domain.FrequencyMonthly,
		StartDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Active:    true,
	})

	gateway.FailNextCommit = errors.New("unavailable")
	err := scheduler.ProcessDue(context.Background(), testOwner)
	assert.True(t, ledgerErrors.IsCommitError(err))

	snap, _ := service.Snapshot(context.Background(), testOwner)
	assert.Empty(t, snap.Transactions, "a failed pass leaves the ledger untouched")
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), snap.Recurring[0].NextRunDate)
	assert.True(t, accountBalance(t, service, account.ID).Equal(decimal.NewFromInt(10_000)))

	// The next pass starts from the same state and succeeds.
	assert.NoError(t, scheduler.ProcessDue(context.Background(), testOwner))
	snap, _ = service.Snapshot(context.Background(), testOwner)
	assert.Len(t, snap.Transactions, 1)
	assert.True(t, accountBalance(t, service, account.ID).Equal(decimal.NewFromInt(9_500)))
}

func TestScheduler_InvalidFrequencySkipped(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	service, scheduler, gateway := newTestScheduler(t, CatchUpAll, now)

	// a rule like this never passes validation; write it directly to model
	// a corrupted document
	rule := domain.RecurringTransaction{
		ID:          "corrupt",
		OwnerID:     testOwner,
		Name:        "Corrupt rule",
		Amount:      decimal.NewFromInt(10),
		Type:        domain.TypeExpense,
		Category:    "Other Expense",
		Frequency:   "fortnightly",
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		NextRunDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:      true,
	}
	err := gateway.AtomicCommit(context.Background(), []domain.Write{{
		Op:         domain.OpInsert,
		Collection: domain.CollectionRecurring,
		ID:         rule.ID,
		OwnerID:    testOwner,
		Doc:        rule,
	}})
	assert.NoError(t, err)

	assert.NoError(t, scheduler.ProcessDue(context.Background(), testOwner),
		"a rule whose schedule cannot advance must not stall the pass")

	snap, _ := service.Snapshot(context.Background(), testOwner)
	assert.Empty(t, snap.Transactions)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), snap.Recurring[0].NextRunDate)
}

func TestScheduler_NoSessionIsNoOp(t *testing.T) {
	gateway := infrastructure.NewMemoryGateway()
	sessions := NewSessionManager(gateway, zerolog.Nop())
	scheduler := NewRecurringScheduler(gateway, sessions, CatchUpSinglePeriod, zerolog.Nop())

	assert.NoError(t, scheduler.ProcessDue(context.Background(), "never-opened"))
}

func TestParseCatchUpPolicy(t *testing.T) {
	assert.Equal(t, CatchUpAll, ParseCatchUpPolicy("all"))
	assert.Equal(t, CatchUpSinglePeriod, ParseCatchUpPolicy("single"))
	assert.Equal(t, CatchUpSinglePeriod, ParseCatchUpPolicy(""))
	assert.Equal(t, CatchUpSinglePeriod, ParseCatchUpPolicy("bogus"))
}
