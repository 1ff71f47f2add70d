package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/freshmart/platform/core/session"
)

// PgxQuerier is the subset of pgxpool.Pool used by PostgresStore,
// extracted so tests can substitute a fake connection.
type PgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore persists session slots in the freshmart_sessions table
// (see the migrations directory for the schema). Each slot holds the full
// canonical JSON blob plus denormalized expiry for purge queries.
type PostgresStore struct {
	db   PgxQuerier
	slot string
}

// NewPostgresStore creates a Postgres-backed session store for the given
// slot, typically a device or client identifier.
func NewPostgresStore(db PgxQuerier, slot string) *PostgresStore {
	return &PostgresStore{db: db, slot: slot}
}

// Load implements session.Store.
func (s *PostgresStore) Load(ctx context.Context) (session.Session, error) {
	var data []byte
	err := s.db.QueryRow(ctx,
		`SELECT data FROM freshmart_sessions WHERE slot = $1`, s.slot,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return session.Session{}, session.ErrNotFound
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("sessionstore: select slot %s: %w", s.slot, err)
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return session.Session{}, fmt.Errorf("sessionstore: decode session: %w", err)
	}
	return sess, nil
}

// Save implements session.Store via upsert on the slot key.
func (s *PostgresStore) Save(ctx context.Context, sess session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("sessionstore: encode session: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO freshmart_sessions (slot, session_id, data, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (slot) DO UPDATE
		SET session_id = EXCLUDED.session_id,
		    data       = EXCLUDED.data,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = now()`,
		s.slot, sess.ID, data, sess.ExpiresAt)
	if err != nil {
		return fmt.Errorf("sessionstore: upsert slot %s: %w", s.slot, err)
	}
	return nil
}

// Clear implements session.Store.
func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.db.Exec(ctx,
		`DELETE FROM freshmart_sessions WHERE slot = $1`, s.slot); err != nil {
		return fmt.Errorf("sessionstore: delete slot %s: %w", s.slot, err)
	}
	return nil
}

// PurgeExpired removes every expired slot and returns the count.
// Intended to run periodically; Redis handles this via key TTLs, the
// file store holds a single slot, so only Postgres needs sweeping.
func (s *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM freshmart_sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("sessionstore: purge expired: %w", err)
	}
	return tag.RowsAffected(), nil
}
