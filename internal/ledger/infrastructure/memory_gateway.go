package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/domain"
	ledgerErrors "github.com/workyudha21-cmd/LedgerWallet/internal/ledger/errors"
)

type memoryDoc struct {
	ownerID string
	data    json.RawMessage
	seq     int64
}

type memorySub struct {
	id         int
	collection string
	ownerID    string
	fn         domain.SnapshotFunc
}

// MemoryGateway is an in-process document store implementing the full
// gateway contract: atomic batches, owner-filtered live snapshots, point
// reads and bulk delete. It backs the test suite and local development.
type MemoryGateway struct {
	mu      sync.Mutex
	docs    map[string]map[string]memoryDoc // collection -> id -> doc
	subs    map[int]*memorySub
	nextSub int
	nextSeq int64

	// FailNextCommit makes the next AtomicCommit fail without applying
	// anything, to exercise commit-failure paths in tests.
	FailNextCommit error
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		docs: make(map[string]map[string]memoryDoc),
		subs: make(map[int]*memorySub),
	}
}

// AtomicCommit validates and encodes the whole batch first and applies it
// only when every write is applicable, so a failed batch leaves the store
// untouched. Updates and deletes only reach documents owned by the write's
// owner, matching the owner-scoped SQL of the Postgres gateway.
func (g *MemoryGateway) AtomicCommit(_ context.Context, writes []domain.Write) error {
	g.mu.Lock()

	if err := g.failNextLocked(); err != nil {
		g.mu.Unlock()
		return err
	}

	encoded := make([]json.RawMessage, len(writes))
	for i, w := range writes {
		stored, exists := g.docs[w.Collection][w.ID]
		switch w.Op {
		case domain.OpInsert:
			if exists {
				g.mu.Unlock()
				return fmt.Errorf("insert %s/%s: already exists", w.Collection, w.ID)
			}
		case domain.OpUpdate:
			if !exists || stored.ownerID != w.OwnerID {
				g.mu.Unlock()
				return fmt.Errorf("update %s/%s: no such document", w.Collection, w.ID)
			}
		case domain.OpDelete:
			// deleting a missing (or another owner's) document is a no-op
			continue
		default:
			g.mu.Unlock()
			return fmt.Errorf("unknown write op %q", w.Op)
		}
		data, err := json.Marshal(w.Doc)
		if err != nil {
			g.mu.Unlock()
			return fmt.Errorf("encode %s/%s: %w", w.Collection, w.ID, err)
		}
		encoded[i] = data
	}

	touched := make(map[string]bool)
	for i, w := range writes {
		touched[w.Collection] = true
		if g.docs[w.Collection] == nil {
			g.docs[w.Collection] = make(map[string]memoryDoc)
		}
		if w.Op == domain.OpDelete {
			if stored, ok := g.docs[w.Collection][w.ID]; ok && stored.ownerID == w.OwnerID {
				delete(g.docs[w.Collection], w.ID)
			}
			continue
		}
		seq := g.nextSeq
		if existing, ok := g.docs[w.Collection][w.ID]; ok {
			seq = existing.seq
		} else {
			g.nextSeq++
		}
		g.docs[w.Collection][w.ID] = memoryDoc{ownerID: w.OwnerID, data: encoded[i], seq: seq}
	}

	notifications := g.pendingNotificationsLocked(touched)
	g.mu.Unlock()

	for _, notify := range notifications {
		notify()
	}
	return nil
}

func (g *MemoryGateway) failNextLocked() error {
	if g.FailNextCommit == nil {
		return nil
	}
	err := g.FailNextCommit
	g.FailNextCommit = nil
	return err
}

// pendingNotificationsLocked captures subscriber callbacks with their
// snapshots while the lock is held; callers invoke them after unlocking so a
// subscriber may itself commit.
func (g *MemoryGateway) pendingNotificationsLocked(touched map[string]bool) []func() {
	var notifications []func()
	for _, sub := range g.subs {
		if !touched[sub.collection] {
			continue
		}
		docs := g.collectionSnapshotLocked(sub.collection, sub.ownerID)
		fn := sub.fn
		notifications = append(notifications, func() { fn(docs) })
	}
	return notifications
}

func (g *MemoryGateway) collectionSnapshotLocked(collection, ownerID string) []json.RawMessage {
	type entry struct {
		seq  int64
		data json.RawMessage
	}
	var entries []entry
	for _, doc := range g.docs[collection] {
		if doc.ownerID != ownerID {
			continue
		}
		entries = append(entries, entry{seq: doc.seq, data: doc.data})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	snapshot := make([]json.RawMessage, len(entries))
	for i, e := range entries {
		snapshot[i] = e.data
	}
	return snapshot
}

func (g *MemoryGateway) PointRead(_ context.Context, collection, id string, dest any) error {
	g.mu.Lock()
	doc, ok := g.docs[collection][id]
	g.mu.Unlock()
	if !ok {
		return ledgerErrors.NewNotFoundError(collection, id)
	}
	return json.Unmarshal(doc.data, dest)
}

// Subscribe registers fn and immediately delivers the current collection
// contents. The cancel func is idempotent.
func (g *MemoryGateway) Subscribe(_ context.Context, collection, ownerID string, fn domain.SnapshotFunc) (func(), error) {
	g.mu.Lock()
	id := g.nextSub
	g.nextSub++
	g.subs[id] = &memorySub{id: id, collection: collection, ownerID: ownerID, fn: fn}
	initial := g.collectionSnapshotLocked(collection, ownerID)
	g.mu.Unlock()

	fn(initial)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.subs, id)
			g.mu.Unlock()
		})
	}
	return cancel, nil
}

func (g *MemoryGateway) BulkDelete(_ context.Context, collection, ownerID string) error {
	g.mu.Lock()
	for id, doc := range g.docs[collection] {
		if doc.ownerID == ownerID {
			delete(g.docs[collection], id)
		}
	}
	notifications := g.pendingNotificationsLocked(map[string]bool{collection: true})
	g.mu.Unlock()

	for _, notify := range notifications {
		notify()
	}
	return nil
}

var _ domain.Gateway = (*MemoryGateway)(nil)
