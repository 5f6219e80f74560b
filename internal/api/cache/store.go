package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Store is the persistent tier behind the in-process cache.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Name() string
}

type fileEntry struct {
	Data       json.RawMessage `json:"data"`
	CreatedAt  time.Time       `json:"created_at"`
	ExpiresAt  time.Time       `json:"expires_at"`
	TTLSeconds int64           `json:"ttl_seconds"`
}

// compactEvery is the number of writes between two expiry and size sweeps.
const compactEvery = 100

// FileStore keeps one JSON file per key. When the directory grows beyond
// maxSizeMB the oldest entries are removed until it is back under 80%.
type FileStore struct {
	dir       string
	maxBytes  int64
	logger    *slog.Logger
	mu        sync.Mutex
	writes    int
	evictions int64
	now       func() time.Time
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string, maxSizeMB int, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir %s: %w", dir, err)
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 100
	}
	return &FileStore{
		dir:      dir,
		maxBytes: int64(maxSizeMB) * 1024 * 1024,
		logger:   logger,
		now:      time.Now,
	}, nil
}

func (s *FileStore) Name() string { return "file" }

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, strings.ReplaceAll(key, ":", "_")+".json")
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.path(key)
	raw, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache file: %w", err)
	}

	var e fileEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		s.logger.Warn("Removing corrupt cache file", slog.String("path", p), slog.Any("error", err))
		_ = os.Remove(p)
		return nil, false, nil
	}
	if !s.now().Before(e.ExpiresAt) {
		_ = os.Remove(p)
		return nil, false, nil
	}
	return e.Data, true, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	raw, err := json.Marshal(fileEntry{
		Data:       value,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
		TTLSeconds: int64(ttl.Seconds()),
	})
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := os.WriteFile(s.path(key), raw, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	s.writes++
	if s.writes%compactEvery == 0 {
		s.compactLocked()
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	files, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return err
	}
	for _, f := range files {
		_ = os.Remove(f)
	}
	return nil
}

// Compact removes expired and corrupt files, then evicts the oldest files
// while the directory is over its size limit.
func (s *FileStore) Compact() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compactLocked()
}

// Evictions reports how many files were removed for size.
func (s *FileStore) Evictions() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictions
}

type fileInfo struct {
	path    string
	size    int64
	created time.Time
}

func (s *FileStore) compactLocked() {
	files, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		s.logger.Error("Failed to list cache files", slog.Any("error", err))
		return
	}

	now := s.now()
	var live []fileInfo
	var total int64
	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			continue
		}
		var e fileEntry
		if err := json.Unmarshal(raw, &e); err != nil || !now.Before(e.ExpiresAt) {
			_ = os.Remove(f)
			continue
		}
		live = append(live, fileInfo{path: f, size: int64(len(raw)), created: e.CreatedAt})
		total += int64(len(raw))
	}

	if total <= s.maxBytes {
		return
	}
	sort.Slice(live, func(i, j int) bool { return live[i].created.Before(live[j].created) })
	target := s.maxBytes * 8 / 10
	for _, f := range live {
		if total <= target {
			break
		}
		if err := os.Remove(f.path); err != nil {
			continue
		}
		total -= f.size
		s.evictions++
	}
	s.logger.Info("Cache size compacted", slog.Int64("bytes", total), slog.Int64("evictions", s.evictions))
}
