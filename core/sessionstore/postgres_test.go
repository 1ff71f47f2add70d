package sessionstore_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/platform/core/session"
	"github.com/freshmart/platform/core/sessionstore"
)

// fakePgx emulates the single-table slot semantics in memory.
type fakePgx struct {
	blobs   map[string][]byte
	expires map[string]time.Time
}

func newFakePgx() *fakePgx {
	return &fakePgx{
		blobs:   make(map[string][]byte),
		expires: make(map[string]time.Time),
	}
}

type fakeRow struct {
	data []byte
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.data
	return nil
}

func (f *fakePgx) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	slot := args[0].(string)
	data, ok := f.blobs[slot]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{data: data}
}

func (f *fakePgx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	switch {
	case strings.HasPrefix(strings.TrimSpace(sql), "INSERT"):
		slot := args[0].(string)
		f.blobs[slot] = args[2].([]byte)
		f.expires[slot] = args[3].(time.Time)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case strings.Contains(sql, "WHERE slot"):
		slot := args[0].(string)
		n := 0
		if _, ok := f.blobs[slot]; ok {
			n = 1
		}
		delete(f.blobs, slot)
		delete(f.expires, slot)
		return pgconn.NewCommandTag(fmt.Sprintf("DELETE %d", n)), nil
	case strings.Contains(sql, "WHERE expires_at"):
		n := 0
		for slot, exp := range f.expires {
			if exp.Before(time.Now()) {
				delete(f.blobs, slot)
				delete(f.expires, slot)
				n++
			}
		}
		return pgconn.NewCommandTag(fmt.Sprintf("DELETE %d", n)), nil
	}
	return pgconn.CommandTag{}, fmt.Errorf("unexpected sql: %s", sql)
}

func TestPostgresStore_SaveLoadClear(t *testing.T) {
	t.Parallel()

	db := newFakePgx()
	store := sessionstore.NewPostgresStore(db, "device-1")
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNotFound)

	sess := newTestSession(t)
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, loaded.ID)
	assert.Equal(t, sess.User, loaded.User)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestPostgresStore_SlotsAreIsolated(t *testing.T) {
	t.Parallel()

	db := newFakePgx()
	ctx := context.Background()

	first := sessionstore.NewPostgresStore(db, "device-1")
	second := sessionstore.NewPostgresStore(db, "device-2")

	sess := newTestSession(t)
	require.NoError(t, first.Save(ctx, sess))

	_, err := second.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestPostgresStore_PurgeExpired(t *testing.T) {
	t.Parallel()

	db := newFakePgx()
	ctx := context.Background()

	live := sessionstore.NewPostgresStore(db, "live")
	require.NoError(t, live.Save(ctx, newTestSession(t)))

	expired, err := session.NewGuest(-time.Hour)
	require.NoError(t, err)
	stale := sessionstore.NewPostgresStore(db, "stale")
	require.NoError(t, stale.Save(ctx, expired))

	n, err := live.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = stale.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNotFound)
	_, err = live.Load(ctx)
	assert.NoError(t, err)
}
