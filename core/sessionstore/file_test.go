package sessionstore_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/platform/core/session"
	"github.com/freshmart/platform/core/sessionstore"
)

func newTestSession(t *testing.T) session.Session {
	t.Helper()
	sess, err := session.New(session.User{
		ID:       uuid.New(),
		Username: "alice",
		Role:     session.RoleCustomer,
	}, "", 24*time.Hour)
	require.NoError(t, err)
	return sess
}

func TestFileStore_SaveLoadClear(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "freshmart_session.json")
	store := sessionstore.NewFileStore(path)
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNotFound)

	sess := newTestSession(t)
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, loaded.ID)
	assert.Equal(t, sess.User, loaded.User)
	assert.WithinDuration(t, sess.ExpiresAt, loaded.ExpiresAt, time.Millisecond)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNotFound)

	// Clearing an already empty slot is fine.
	assert.NoError(t, store.Clear(ctx))
}

func TestFileStore_WritesVersionedEnvelope(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "freshmart_session.json")
	store := sessionstore.NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newTestSession(t)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var env struct {
		Version int             `json:"version"`
		Session json.RawMessage `json:"session"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, session.SchemaVersion, env.Version)
	assert.NotEmpty(t, env.Session)
}

func TestFileStore_ReadsLegacyUnversionedBlob(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "freshmart_session.json")
	ctx := context.Background()

	id := uuid.New()
	legacy := fmt.Sprintf(`{
		"sessionId": %q,
		"token": "legacy",
		"user": {"name": "bob", "role": "customer"},
		"createdAt": %d,
		"expiresAt": %d
	}`, id, time.Now().UnixMilli(), time.Now().Add(time.Hour).UnixMilli())
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	store := sessionstore.NewFileStore(path)
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, loaded.ID)
	assert.Equal(t, "bob", loaded.User.Username)
}

func TestFileStore_MigratesLegacyPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	canonical := filepath.Join(dir, "freshmart_session.json")
	legacyPath := filepath.Join(dir, "user_session.json")
	ctx := context.Background()

	id := uuid.New()
	legacy := fmt.Sprintf(`{"id": %q, "user": {"role": "guest", "isGuest": true},
		"createdAt": "2024-04-05T12:00:00Z", "expiresAt": "2099-01-01T00:00:00Z"}`, id)
	require.NoError(t, os.WriteFile(legacyPath, []byte(legacy), 0o600))

	store := sessionstore.NewFileStore(canonical, sessionstore.WithLegacyPaths(legacyPath))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, loaded.ID)

	// Saving writes the canonical file and retires the legacy one.
	require.NoError(t, store.Save(ctx, loaded))
	assert.FileExists(t, canonical)
	assert.NoFileExists(t, legacyPath)

	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, again.ID)
}

func TestFileStore_CanonicalFileWinsOverLegacy(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	canonical := filepath.Join(dir, "freshmart_session.json")
	legacyPath := filepath.Join(dir, "session.json")
	ctx := context.Background()

	store := sessionstore.NewFileStore(canonical, sessionstore.WithLegacyPaths(legacyPath))

	current := newTestSession(t)
	require.NoError(t, store.Save(ctx, current))
	require.NoError(t, os.WriteFile(legacyPath, []byte(`{"id": "stale"}`), 0o600))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, current.ID, loaded.ID)
}

func TestFileStore_CorruptBlobFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "freshmart_session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := sessionstore.NewFileStore(path)
	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrNotFound)
}

func TestFileStore_WorksWithManager(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "freshmart_session.json")
	ctx := context.Background()

	mgr := session.NewManager(sessionstore.NewFileStore(path))
	sess, err := mgr.Current(ctx)
	require.NoError(t, err)
	assert.True(t, sess.IsGuest())

	// A second manager over the same file sees the same session,
	// exactly like a reloaded browser tab.
	mgr2 := session.NewManager(sessionstore.NewFileStore(path))
	sess2, err := mgr2.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, sess2.ID)
}
