package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/workyudha21-cmd/LedgerWallet/internal/ledger/domain"
	ledgerErrors "github.com/workyudha21-cmd/LedgerWallet/internal/ledger/errors"
)

const notifyChannel = "ledger_documents_changed"

const schema = `
CREATE TABLE IF NOT EXISTS ledger_documents (
    collection TEXT   NOT NULL,
    id         TEXT   NOT NULL,
    owner_id   TEXT   NOT NULL,
    doc        JSONB  NOT NULL,
    seq        BIGSERIAL,
    PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS ledger_documents_owner_idx
    ON ledger_documents (collection, owner_id);
`

// PostgresGateway stores documents as JSONB rows and implements the gateway
// contract on top of Postgres transactions. Subscriptions ride on
// LISTEN/NOTIFY: each committed batch notifies one payload per touched
// (collection, owner) pair and listeners re-read the whole collection.
type PostgresGateway struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

func NewPostgresGateway(pool *pgxpool.Pool, log zerolog.Logger) *PostgresGateway {
	return &PostgresGateway{pool: pool, log: log}
}

// Migrate creates the documents table if it is missing.
func (g *PostgresGateway) Migrate(ctx context.Context) error {
	_, err := g.pool.Exec(ctx, schema)
	return err
}

func (g *PostgresGateway) AtomicCommit(ctx context.Context, writes []domain.Write) error {
	tx, err := g.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			g.log.Error().Err(err).Msg("error during transaction rollback")
		}
	}()

	touched := make(map[string]bool)
	for _, w := range writes {
		touched[w.Collection+"|"+w.OwnerID] = true
		switch w.Op {
		case domain.OpInsert:
			doc, err := json.Marshal(w.Doc)
			if err != nil {
				return fmt.Errorf("encode %s/%s: %w", w.Collection, w.ID, err)
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO ledger_documents (collection, id, owner_id, doc) VALUES ($1, $2, $3, $4)`,
				w.Collection, w.ID, w.OwnerID, doc,
			); err != nil {
				return fmt.Errorf("insert %s/%s: %w", w.Collection, w.ID, err)
			}
		case domain.OpUpdate:
			doc, err := json.Marshal(w.Doc)
			if err != nil {
				return fmt.Errorf("encode %s/%s: %w", w.Collection, w.ID, err)
			}
			tag, err := tx.Exec(ctx,
				`UPDATE ledger_documents SET doc = $4 WHERE collection = $1 AND id = $2 AND owner_id = $3`,
				w.Collection, w.ID, w.OwnerID, doc,
			)
			if err != nil {
				return fmt.Errorf("update %s/%s: %w", w.Collection, w.ID, err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("update %s/%s: no such document", w.Collection, w.ID)
			}
		case domain.OpDelete:
			if _, err := tx.Exec(ctx,
				`DELETE FROM ledger_documents WHERE collection = $1 AND id = $2 AND owner_id = $3`,
				w.Collection, w.ID, w.OwnerID,
			); err != nil {
				return fmt.Errorf("delete %s/%s: %w", w.Collection, w.ID, err)
			}
		default:
			return fmt.Errorf("unknown write op %q", w.Op)
		}
	}

	for payload := range touched {
		if _, err := tx.Exec(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, payload); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (g *PostgresGateway) PointRead(ctx context.Context, collection, id string, dest any) error {
	var doc []byte
	err := g.pool.QueryRow(ctx,
		`SELECT doc FROM ledger_documents WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return ledgerErrors.NewNotFoundError(collection, id)
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(doc, dest)
}

func (g *PostgresGateway) readCollection(ctx context.Context, collection, ownerID string) ([]json.RawMessage, error) {
	rows, err := g.pool.Query(ctx,
		`SELECT doc FROM ledger_documents WHERE collection = $1 AND owner_id = $2 ORDER BY seq`,
		collection, ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []json.RawMessage
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, json.RawMessage(doc))
	}
	return docs, rows.Err()
}

// Subscribe delivers the current collection contents, then re-reads and
// redelivers after every notification matching the collection and owner.
// The listener holds a dedicated connection until cancelled.
func (g *PostgresGateway) Subscribe(ctx context.Context, collection, ownerID string, fn domain.SnapshotFunc) (func(), error) {
	initial, err := g.readCollection(ctx, collection, ownerID)
	if err != nil {
		return nil, err
	}
	fn(initial)

	listenCtx, stop := context.WithCancel(ctx)
	want := collection + "|" + ownerID

	go func() {
		conn, err := g.pool.Acquire(listenCtx)
		if err != nil {
			g.log.Error().Err(err).Str("collection", collection).Msg("acquiring listen connection")
			return
		}
		defer conn.Release()

		if _, err := conn.Exec(listenCtx, "LISTEN "+notifyChannel); err != nil {
			g.log.Error().Err(err).Str("collection", collection).Msg("starting listener")
			return
		}

		for {
			notification, err := conn.Conn().WaitForNotification(listenCtx)
			if err != nil {
				if listenCtx.Err() == nil {
					g.log.Error().Err(err).Str("collection", collection).Msg("listener stopped")
				}
				return
			}
			if notification.Payload != want {
				continue
			}
			docs, err := g.readCollection(listenCtx, collection, ownerID)
			if err != nil {
				if listenCtx.Err() == nil {
					g.log.Error().Err(err).Str("collection", collection).Msg("re-reading collection")
				}
				return
			}
			fn(docs)
		}
	}()

	var once sync.Once
	cancel := func() { once.Do(stop) }
	return cancel, nil
}

func (g *PostgresGateway) BulkDelete(ctx context.Context, collection, ownerID string) error {
	tx, err := g.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			g.log.Error().Err(err).Msg("error during transaction rollback")
		}
	}()

	if _, err := tx.Exec(ctx,
		`DELETE FROM ledger_documents WHERE collection = $1 AND owner_id = $2`,
		collection, ownerID,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, collection+"|"+ownerID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

var _ domain.Gateway = (*PostgresGateway)(nil)
