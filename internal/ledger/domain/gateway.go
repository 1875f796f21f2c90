package domain

import (
	"context"
	"encoding/json"
)

// Collection names in the backing document store.
const (
	CollectionTransactions = "transactions"
	CollectionCategories   = "categories"
	CollectionBudgets      = "budgets"
	CollectionAccounts     = "accounts"
	CollectionRecurring    = "recurring_transactions"
	CollectionGoals        = "goals"
	CollectionDebts        = "debts"
)

// Collections lists every collection the ledger uses, in no particular order.
var Collections = []string{
	CollectionTransactions,
	CollectionCategories,
	CollectionBudgets,
	CollectionAccounts,
	CollectionRecurring,
	CollectionGoals,
	CollectionDebts,
}

type WriteOp string

const (
	OpInsert WriteOp = "insert"
	OpUpdate WriteOp = "update"
	OpDelete WriteOp = "delete"
)

// Write is one element of an atomic batch. Doc must be JSON-marshalable and
// is ignored for deletes. Insert fails when the ID already exists, Update
// when no document with that ID belongs to OwnerID; either failure rolls
// back the whole batch. Delete only reaches documents owned by OwnerID and
// is otherwise a no-op.
type Write struct {
	Op         WriteOp
	Collection string
	ID         string
	OwnerID    string
	Doc        any
}

// SnapshotFunc receives the full current collection contents for one owner
// every time any matching document changes.
type SnapshotFunc func(docs []json.RawMessage)

// Gateway is the transactional document store behind the ledger. Any store
// offering these four primitives satisfies the contract; nothing in the
// ledger depends on a particular backend.
type Gateway interface {
	// AtomicCommit applies all writes or none of them.
	AtomicCommit(ctx context.Context, writes []Write) error

	// PointRead decodes the document with the given ID into dest.
	// Returns a not-found error when the document does not exist.
	PointRead(ctx context.Context, collection, id string, dest any) error

	// Subscribe delivers full-collection snapshots filtered by owner,
	// starting with the current contents. The returned cancel func stops
	// delivery and is safe to call more than once.
	Subscribe(ctx context.Context, collection, ownerID string, fn SnapshotFunc) (cancel func(), err error)

	// BulkDelete removes every document of one owner from a collection.
	BulkDelete(ctx context.Context, collection, ownerID string) error
}
