package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Store is a byte-oriented key/value backend with per-key expiry. Get returns
// (nil, nil) on a miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// FileStore keeps one file per key under a directory. File names are derived
// from a hash of the key.
type FileStore struct {
	dir string
	now func() time.Time
}

type fileRecord struct {
	ExpiresAt int64  `msgpack:"expires_at"` // unix nanoseconds, 0 = never
	Data      []byte `msgpack:"data"`
}

// DefaultDir is ~/.cache/salat.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".cache", "salat"), nil
}

// NewFileStore creates a FileStore rooted at dir, or DefaultDir when dir is
// empty.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	return &FileStore{dir: dir, now: time.Now}, nil
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string { return s.dir }

// fileName hashes the key; 16 hex chars is plenty for uniqueness.
func fileName(key string) string {
	h := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x.bin", h[:8])
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, fileName(key))
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	var rec fileRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("corrupt cache file for %q: %w", key, err)
	}
	if rec.ExpiresAt != 0 && s.now().UnixNano() >= rec.ExpiresAt {
		_ = os.Remove(s.path(key))
		return nil, nil
	}
	return rec.Data, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	rec := fileRecord{Data: value}
	if ttl > 0 {
		rec.ExpiresAt = s.now().Add(ttl).UnixNano()
	}
	data, err := msgpack.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryItem), now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[key]
	if !ok {
		return nil, nil
	}
	if !it.expiresAt.IsZero() && !s.now().Before(it.expiresAt) {
		delete(s.items, key)
		return nil, nil
	}
	return it.data, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := memoryItem{data: append([]byte(nil), value...)}
	if ttl > 0 {
		it.expiresAt = s.now().Add(ttl)
	}
	s.items[key] = it
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}
