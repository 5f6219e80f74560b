// Package cache memoises external data lookups in two tiers: an in-process
// go-cache and a persistent Store (files or Redis).
package cache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/singleflight"

	"github.com/FACorreiaa/go-itinerary-planner/app/observability/metrics"
)

type Category string

const (
	Weather    Category = "weather"
	Places     Category = "places"
	Directions Category = "directions"
	Wiki       Category = "wiki"
	Geocode    Category = "geocode"
)

var ttls = map[Category]time.Duration{
	Weather:    30 * time.Minute,
	Places:     24 * time.Hour,
	Directions: time.Hour,
	Wiki:       7 * 24 * time.Hour,
	Geocode:    7 * 24 * time.Hour,
}

// TTL returns the lifetime of entries in a category, one hour when unknown.
func (c Category) TTL() time.Duration {
	if ttl, ok := ttls[c]; ok {
		return ttl
	}
	return time.Hour
}

// Key hashes the JSON form of args with BLAKE2b-256.
func Key(category Category, args ...any) string {
	raw, err := json.Marshal(args)
	if err != nil {
		raw = []byte(fmt.Sprint(args...))
	}
	sum := blake2b.Sum256(raw)
	return string(category) + ":" + hex.EncodeToString(sum[:])
}

type Stats struct {
	Hits          int64   `json:"hits"`
	Misses        int64   `json:"misses"`
	Evictions     int64   `json:"evictions"`
	TotalRequests int64   `json:"total_requests"`
	HitRate       float64 `json:"hit_rate"`
	MemoryItems   int     `json:"memory_items"`
	Backend       string  `json:"backend"`
}

type Manager struct {
	memory         *gocache.Cache
	store          Store
	maxMemoryItems int
	group          singleflight.Group
	logger         *slog.Logger

	hits, misses, evictions, requests atomic.Int64
}

// NewManager builds a cache. store may be nil for a memory-only cache.
func NewManager(store Store, maxMemoryItems int, logger *slog.Logger) *Manager {
	if maxMemoryItems <= 0 {
		maxMemoryItems = 1000
	}
	return &Manager{
		memory:         gocache.New(time.Hour, 10*time.Minute),
		store:          store,
		maxMemoryItems: maxMemoryItems,
		logger:         logger,
	}
}

// Backend names the persistent tier.
func (m *Manager) Backend() string {
	if m.store == nil {
		return "memory"
	}
	return m.store.Name()
}

// Get returns the raw cached value. Store errors count as misses.
func (m *Manager) Get(ctx context.Context, key string) ([]byte, bool) {
	m.requests.Add(1)
	if v, ok := m.memory.Get(key); ok {
		m.hits.Add(1)
		return v.([]byte), true
	}
	if m.store != nil {
		raw, ok, err := m.store.Get(ctx, key)
		if err != nil {
			m.logger.WarnContext(ctx, "Cache store read failed", slog.String("key", key), slog.Any("error", err))
		}
		if ok {
			m.hits.Add(1)
			m.remember(key, raw, time.Minute*5)
			return raw, true
		}
	}
	m.misses.Add(1)
	return nil, false
}

func (m *Manager) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	m.remember(key, value, ttl)
	if m.store == nil {
		return
	}
	if err := m.store.Set(ctx, key, value, ttl); err != nil {
		m.logger.WarnContext(ctx, "Cache store write failed", slog.String("key", key), slog.Any("error", err))
	}
}

// remember stores value in memory, evicting the entry closest to expiry
// when the memory tier is full.
func (m *Manager) remember(key string, value []byte, ttl time.Duration) {
	if _, ok := m.memory.Get(key); !ok && m.memory.ItemCount() >= m.maxMemoryItems {
		var oldestKey string
		var oldest int64
		for k, item := range m.memory.Items() {
			if oldestKey == "" || item.Expiration < oldest {
				oldestKey, oldest = k, item.Expiration
			}
		}
		m.memory.Delete(oldestKey)
		m.evictions.Add(1)
	}
	m.memory.Set(key, value, ttl)
}

func (m *Manager) Delete(ctx context.Context, key string) {
	m.memory.Delete(key)
	if m.store != nil {
		if err := m.store.Delete(ctx, key); err != nil {
			m.logger.WarnContext(ctx, "Cache store delete failed", slog.String("key", key), slog.Any("error", err))
		}
	}
}

func (m *Manager) Clear(ctx context.Context) {
	m.memory.Flush()
	if m.store != nil {
		if err := m.store.Clear(ctx); err != nil {
			m.logger.WarnContext(ctx, "Cache store clear failed", slog.Any("error", err))
		}
	}
}

func (m *Manager) Stats() Stats {
	s := Stats{
		Hits:          m.hits.Load(),
		Misses:        m.misses.Load(),
		Evictions:     m.evictions.Load(),
		TotalRequests: m.requests.Load(),
		MemoryItems:   m.memory.ItemCount(),
		Backend:       m.Backend(),
	}
	if fs, ok := m.store.(*FileStore); ok {
		s.Evictions += fs.Evictions()
	}
	if s.TotalRequests > 0 {
		s.HitRate = float64(s.Hits) / float64(s.TotalRequests)
	}
	return s
}

// Load returns the cached value for key or calls load once per key across
// concurrent callers. Failed loads are not cached.
func Load[T any](ctx context.Context, m *Manager, category Category, key string, load func(context.Context) (T, error)) (T, error) {
	attrs := metric.WithAttributes(attribute.String("category", string(category)))

	if raw, ok := m.Get(ctx, key); ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			metrics.Get().CacheHitsTotal.Add(ctx, 1, attrs)
			return v, nil
		}
		m.Delete(ctx, key)
	}
	metrics.Get().CacheMissesTotal.Add(ctx, 1, attrs)

	res, err, _ := m.group.Do(key, func() (any, error) {
		v, err := load(ctx)
		if err != nil {
			return v, err
		}
		if raw, err := json.Marshal(v); err == nil {
			m.Set(ctx, key, raw, category.TTL())
		}
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}
