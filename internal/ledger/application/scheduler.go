package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/domain"
	ledgerErrors "github.com/workyudha21-cmd/LedgerWallet/internal/ledger/errors"
)

// CatchUpPolicy decides what happens when a rule is overdue by more than one
// period.
type CatchUpPolicy string

const (
	// CatchUpSinglePeriod advances one period per evaluation pass. A rule
	// overdue by several periods is picked up again on the next pass.
	CatchUpSinglePeriod CatchUpPolicy = "single"
	// CatchUpAll materializes every missed period in one pass, one
	// transaction per period, until the rule is no longer due.
	CatchUpAll CatchUpPolicy = "all"
)

func ParseCatchUpPolicy(s string) CatchUpPolicy {
	if s == string(CatchUpAll) {
		return CatchUpAll
	}
	return CatchUpSinglePeriod
}

// RecurringScheduler materializes transactions from due recurring rules.
// It runs on every recurring-collection push and on a periodic sweep, not on
// a per-rule timer. All writes of one pass commit as a single batch, so a
// failed pass changes nothing and the next pass starts from the same state.
type RecurringScheduler struct {
	gateway  domain.Gateway
	sessions *SessionManager
	policy   CatchUpPolicy
	log      zerolog.Logger
	now      func() time.Time
}

func NewRecurringScheduler(gateway domain.Gateway, sessions *SessionManager, policy CatchUpPolicy, log zerolog.Logger) *RecurringScheduler {
	return &RecurringScheduler{
		gateway:  gateway,
		sessions: sessions,
		policy:   policy,
		log:      log,
		now:      time.Now,
	}
}

// ProcessDue evaluates every rule of one owner against the current time and
// commits the resulting transactions, balance adjustments and schedule
// advances in one atomic batch. No due rules means no commit at all.
func (rs *RecurringScheduler) ProcessDue(ctx context.Context, ownerID string) error {
	sess, ok := rs.sessions.Get(ownerID)
	if !ok {
		return nil
	}
	snap := sess.Store.Snapshot()
	now := rs.now()

	var writes []domain.Write
	// Two due rules can hit the same account in one pass; deltas are
	// accumulated so neither update clobbers the other.
	deltas := make(map[string]decimal.Decimal)
	processed := 0

	for _, rule := range snap.Recurring {
		if !rule.Due(now) {
			continue
		}
		if !rule.Frequency.Valid() {
			// Next would not advance such a rule, turning the catch-up
			// loop into a spin; skip it instead of stalling the pass.
			rs.log.Error().
				Str("owner", ownerID).
				Str("rule", rule.ID).
				Str("frequency", string(rule.Frequency)).
				Msg("recurring rule has an invalid frequency, skipping")
			continue
		}
		processed++

		runDate := rule.NextRunDate
		for {
			transaction := domain.Transaction{
				ID:          uuid.NewString(),
				OwnerID:     ownerID,
				Amount:      rule.Amount,
				Type:        rule.Type,
				Category:    rule.Category,
				Description: "Recurring: " + rule.Name,
				Date:        runDate,
				AccountID:   rule.AccountID,
				CreatedAt:   now,
			}
			writes = append(writes, domain.Write{
				Op:         domain.OpInsert,
				Collection: domain.CollectionTransactions,
				ID:         transaction.ID,
				OwnerID:    ownerID,
				Doc:        transaction,
			})

			if rule.AccountID != "" {
				if _, ok := snap.FindAccount(rule.AccountID); ok {
					deltas[rule.AccountID] = deltas[rule.AccountID].Add(domain.SignedDelta(rule.Type, rule.Amount))
				} else {
					// Tolerated degradation: the transaction is still
					// created and the schedule still advances, so one
					// dangling rule cannot stall the rest of the batch.
					rs.log.Warn().
						Str("owner", ownerID).
						Str("rule", rule.ID).
						Str("account", rule.AccountID).
						Msg("recurring rule references a missing account, skipping balance adjustment")
				}
			}

			lastRun := runDate
			rule.LastRunDate = &lastRun
			// Advance from the previous scheduled date, never from now,
			// so late passes neither skip nor duplicate a period.
			runDate = rule.Frequency.Next(runDate)
			rule.NextRunDate = runDate

			if rs.policy != CatchUpAll || runDate.After(now) {
				break
			}
		}

		writes = append(writes, domain.Write{
			Op:         domain.OpUpdate,
			Collection: domain.CollectionRecurring,
			ID:         rule.ID,
			OwnerID:    ownerID,
			Doc:        rule,
		})
	}

	if processed == 0 {
		return nil
	}

	for accountID, delta := range deltas {
		account, _ := snap.FindAccount(accountID)
		account.Balance = account.Balance.Add(delta)
		writes = append(writes, accountUpdate(account))
	}

	if err := rs.gateway.AtomicCommit(ctx, writes); err != nil {
		return ledgerErrors.NewCommitError(err)
	}
	rs.log.Info().
		Str("owner", ownerID).
		Int("rules", processed).
		Msg("processed recurring transactions")
	return nil
}

// Sweep runs ProcessDue for every open session. Wired to a cron entry so
// rules fire even when no subscription push arrives.
func (rs *RecurringScheduler) Sweep(ctx context.Context) {
	for _, ownerID := range rs.sessions.Owners() {
		if err := rs.ProcessDue(ctx, ownerID); err != nil {
			rs.log.Error().Err(err).Str("owner", ownerID).Msg("recurring sweep failed")
		}
	}
}
