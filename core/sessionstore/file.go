package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/freshmart/platform/core/session"
)

// CanonicalKey is the single storage key every backend writes to.
const CanonicalKey = "freshmart_session"

// envelope is the versioned on-disk form. Legacy blobs were written as a
// bare session object without the wrapper.
type envelope struct {
	Version int             `json:"version"`
	Session json.RawMessage `json:"session"`
}

// FileStore persists the session slot as a JSON file, the platform's
// counterpart of the browser local-storage entry. Writes are atomic
// (temp file + rename) so a crash never leaves a half-written blob.
type FileStore struct {
	path        string
	legacyPaths []string
	mu          sync.Mutex
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithLegacyPaths registers files written by the retired implementations.
// They are consulted when the canonical file is absent, and removed once
// the canonical file is written.
func WithLegacyPaths(paths ...string) FileOption {
	return func(s *FileStore) {
		s.legacyPaths = append(s.legacyPaths, paths...)
	}
}

// NewFileStore creates a file-backed session store at the given path.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	s := &FileStore{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load implements session.Store. It reads the canonical file first and
// falls back to registered legacy files, decoding both the versioned
// envelope and bare legacy blobs.
func (s *FileStore) Load(ctx context.Context) (session.Session, error) {
	if err := ctx.Err(); err != nil {
		return session.Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, path := range append([]string{s.path}, s.legacyPaths...) {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return session.Session{}, fmt.Errorf("sessionstore: read %s: %w", path, err)
		}
		return decodeBlob(data)
	}

	return session.Session{}, session.ErrNotFound
}

// Save implements session.Store. The canonical versioned envelope is
// written atomically; legacy files are removed so the migration happens
// exactly once.
func (s *FileStore) Save(ctx context.Context, sess session.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("sessionstore: encode session: %w", err)
	}
	blob, err := json.Marshal(envelope{Version: session.SchemaVersion, Session: raw})
	if err != nil {
		return fmt.Errorf("sessionstore: encode envelope: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFileAtomic(s.path, blob); err != nil {
		return fmt.Errorf("sessionstore: write %s: %w", s.path, err)
	}

	for _, legacy := range s.legacyPaths {
		if err := os.Remove(legacy); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("sessionstore: remove legacy %s: %w", legacy, err)
		}
	}
	return nil
}

// Clear implements session.Store, removing the canonical file and any
// legacy leftovers. A missing file is not an error.
func (s *FileStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, path := range append([]string{s.path}, s.legacyPaths...) {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("sessionstore: remove %s: %w", path, err)
		}
	}
	return nil
}

// decodeBlob accepts both the versioned envelope and legacy bare blobs.
func decodeBlob(data []byte) (session.Session, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Version > 0 && len(env.Session) > 0 {
		var sess session.Session
		if err := json.Unmarshal(env.Session, &sess); err != nil {
			return session.Session{}, fmt.Errorf("sessionstore: decode session: %w", err)
		}
		return sess, nil
	}

	// Legacy form: the session object itself, unwrapped and unversioned.
	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return session.Session{}, fmt.Errorf("sessionstore: decode legacy blob: %w", err)
	}
	return sess, nil
}

// writeFileAtomic writes via a temp file in the target directory and
// renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
