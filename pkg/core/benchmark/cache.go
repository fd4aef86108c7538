package benchmark

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the key/value backend behind the cache.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// RedisStore backs the cache with a shared redis instance so multiple
// api processes reuse one benchmark pull.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisStore(addr string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStore{
		client: rdb,
		ctx:    context.Background(),
	}
}

func (r *RedisStore) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisStore) Set(key, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

// Cache wraps a Source with an explicit refresh window. Freshness is
// tracked against a caller-supplied clock: entries written before the
// last refresh, or older than the TTL, are refetched. Invalidation
// bumps a generation counter instead of deleting keys, which keeps the
// Store interface minimal.
type Cache struct {
	src   Source
	store Store
	ttl   time.Duration

	mu            sync.Mutex
	lastRefreshed time.Time
	generation    int
}

func NewCache(src Source, store Store, ttl time.Duration) *Cache {
	return &Cache{src: src, store: store, ttl: ttl}
}

// Refresh invalidates every cached entry and stamps the refresh time.
func (c *Cache) Refresh(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.lastRefreshed = now
}

// LastRefreshed reports when the cache last invalidated.
func (c *Cache) LastRefreshed() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRefreshed
}

// StatsAt serves peer stats through the cache as of now. A stale or
// never-refreshed cache self-refreshes before the lookup.
func (c *Cache) StatsAt(naics string, now time.Time) (Stats, bool) {
	c.mu.Lock()
	if c.lastRefreshed.IsZero() || now.Sub(c.lastRefreshed) > c.ttl {
		c.generation++
		c.lastRefreshed = now
	}
	key := fmt.Sprintf("peer:%d:%s", c.generation, naics)
	c.mu.Unlock()

	if raw, ok := c.store.Get(key); ok {
		var st Stats
		if err := json.Unmarshal([]byte(raw), &st); err == nil {
			return st, true
		}
	}

	st, ok := c.src.PeerStats(naics)
	if !ok {
		return Stats{}, false
	}
	if raw, err := json.Marshal(st); err == nil {
		_ = c.store.Set(key, string(raw))
	}
	return st, true
}

// PeerStats implements Source against the wall clock.
func (c *Cache) PeerStats(naics string) (Stats, bool) {
	return c.StatsAt(naics, time.Now())
}
