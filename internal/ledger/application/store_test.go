package application

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/domain"
)

func TestLedgerStore_ReplaceCollection(t *testing.T) {
	store := NewLedgerStore("owner-1")

	docs := []json.RawMessage{
		json.RawMessage(`{"id":"t1","ownerId":"owner-1","amount":"125.50","type":"expense","category":"Shopping"}`),
		json.RawMessage(`{"id":"t2","ownerId":"owner-1","amount":"40","type":"income","category":"Gift"}`),
	}
	assert.NoError(t, store.ReplaceCollection(domain.CollectionTransactions, docs))

	snap := store.Snapshot()
	assert.Len(t, snap.Transactions, 2)
	assert.Equal(t, "t1", snap.Transactions[0].ID)
	assert.Equal(t, "125.5", snap.Transactions[0].Amount.String())

	// a later push fully replaces, never merges
	assert.NoError(t, store.ReplaceCollection(domain.CollectionTransactions, docs[1:]))
	snap = store.Snapshot()
	assert.Len(t, snap.Transactions, 1)
	assert.Equal(t, "t2", snap.Transactions[0].ID)
}

func TestLedgerStore_UnknownCollection(t *testing.T) {
	store := NewLedgerStore("owner-1")
	err := store.ReplaceCollection("nonsense", nil)
	assert.Error(t, err)
}

func TestLedgerStore_MalformedDoc(t *testing.T) {
	store := NewLedgerStore("owner-1")
	err := store.ReplaceCollection(domain.CollectionAccounts, []json.RawMessage{
		json.RawMessage(`{"id":`),
	})
	assert.Error(t, err)
}

func TestLedgerStore_SnapshotIsACopy(t *testing.T) {
	store := NewLedgerStore("owner-1")
	assert.NoError(t, store.ReplaceCollection(domain.CollectionAccounts, []json.RawMessage{
		json.RawMessage(`{"id":"a1","name":"Main","type":"Bank","balance":"100"}`),
	}))

	snap := store.Snapshot()
	snap.Accounts[0].Name = "Tampered"

	fresh := store.Snapshot()
	assert.Equal(t, "Main", fresh.Accounts[0].Name, "mutating a snapshot must not leak into the store")
}

func TestLedgerStore_Reset(t *testing.T) {
	store := NewLedgerStore("owner-1")
	assert.NoError(t, store.ReplaceCollection(domain.CollectionAccounts, []json.RawMessage{
		json.RawMessage(`{"id":"a1","name":"Main","type":"Bank","balance":"100"}`),
	}))
	assert.NoError(t, store.ReplaceCollection(domain.CollectionDebts, []json.RawMessage{
		json.RawMessage(`{"id":"d1","type":"payable","personName":"Budi","totalAmount":"10","remainingAmount":"10","status":"active"}`),
	}))

	store.Reset()

	snap := store.Snapshot()
	assert.Empty(t, snap.Accounts)
	assert.Empty(t, snap.Debts)
}
