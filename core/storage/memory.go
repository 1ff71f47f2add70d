package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryStorage is an in-process Storage implementation for tests and
// local development.
type MemoryStorage struct {
	baseURL string

	mu    sync.RWMutex
	blobs map[string]memoryBlob
}

type memoryBlob struct {
	data        []byte
	contentType string
}

// NewMemoryStorage creates an empty in-memory store. The baseURL is used
// for URL generation and may be empty.
func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		blobs:   make(map[string]memoryBlob),
	}
}

// Put implements Storage.
func (s *MemoryStorage) Put(ctx context.Context, key string, data []byte, contentType string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return Blob{}, err
	}
	key, err := cleanKey(key)
	if err != nil {
		return Blob{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[key] = memoryBlob{
		data:        append([]byte(nil), data...),
		contentType: contentType,
	}
	return Blob{Key: key, ContentType: contentType, Size: int64(len(data))}, nil
}

// Get implements Storage.
func (s *MemoryStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return append([]byte(nil), blob.data...), nil
}

// Delete implements Storage.
func (s *MemoryStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blobs[key]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	delete(s.blobs, key)
	return nil
}

// Exists implements Storage.
func (s *MemoryStorage) Exists(ctx context.Context, key string) bool {
	key, err := cleanKey(key)
	if err != nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.blobs[key]
	return ok
}

// URL implements Storage.
func (s *MemoryStorage) URL(key string) string {
	key = strings.TrimPrefix(key, "/")
	if s.baseURL == "" {
		return "/" + key
	}
	return s.baseURL + "/" + key
}

// cleanKey normalizes a key and rejects path traversal.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return key, nil
}
