package application

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/domain"
)

// Session binds one owner's LedgerStore to live gateway subscriptions.
type Session struct {
	OwnerID string
	Store   *LedgerStore

	cancels []func()
}

// SessionManager opens and closes per-owner sessions. A session attaches one
// subscription per collection; every recurring-collection push additionally
// fires the registered hook so the scheduler re-evaluates due rules.
type SessionManager struct {
	mu          sync.Mutex
	gateway     domain.Gateway
	sessions    map[string]*Session
	onRecurring func(ownerID string)
	log         zerolog.Logger
}

func NewSessionManager(gateway domain.Gateway, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		gateway:  gateway,
		sessions: make(map[string]*Session),
		log:      log,
	}
}

// SetRecurringHook registers the callback invoked after each recurring
// collection push. Must be called before the first Open.
func (m *SessionManager) SetRecurringHook(fn func(ownerID string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onRecurring = fn
}

// Open attaches subscriptions for the owner, or returns the session already
// open for it.
func (m *SessionManager) Open(ctx context.Context, ownerID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[ownerID]; ok {
		return sess, nil
	}

	sess := &Session{
		OwnerID: ownerID,
		Store:   NewLedgerStore(ownerID),
	}

	hook := m.onRecurring
	for _, collection := range domain.Collections {
		collection := collection
		cancel, err := m.gateway.Subscribe(ctx, collection, ownerID, func(docs []json.RawMessage) {
			if err := sess.Store.ReplaceCollection(collection, docs); err != nil {
				m.log.Error().Err(err).
					Str("owner", ownerID).
					Str("collection", collection).
					Msg("dropping malformed subscription push")
				return
			}
			if collection == domain.CollectionRecurring && hook != nil {
				hook(ownerID)
			}
		})
		if err != nil {
			for _, c := range sess.cancels {
				c()
			}
			return nil, err
		}
		sess.cancels = append(sess.cancels, cancel)
	}

	m.sessions[ownerID] = sess
	m.log.Info().Str("owner", ownerID).Msg("session opened")
	return sess, nil
}

// Get returns the open session for the owner, if any.
func (m *SessionManager) Get(ownerID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[ownerID]
	return sess, ok
}

// Close detaches the owner's subscriptions and wipes the store so no data
// leaks into a later session. Closing an unknown owner is a no-op.
func (m *SessionManager) Close(ownerID string) {
	m.mu.Lock()
	sess, ok := m.sessions[ownerID]
	delete(m.sessions, ownerID)
	m.mu.Unlock()

	if !ok {
		return
	}
	for _, cancel := range sess.cancels {
		cancel()
	}
	sess.Store.Reset()
	m.log.Info().Str("owner", ownerID).Msg("session closed")
}

// Owners lists every owner with an open session.
func (m *SessionManager) Owners() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	owners := make([]string, 0, len(m.sessions))
	for owner := range m.sessions {
		owners = append(owners, owner)
	}
	return owners
}
