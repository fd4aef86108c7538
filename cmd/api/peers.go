package main

import (
	"os"
	"time"

	"lightsignal/pkg/core/benchmark"
	"lightsignal/pkg/core/store"
)

const peerCacheTTL = 24 * time.Hour

// NewPeerSource builds the peer benchmark chain: the postgres table
// when a pool is up, falling back to the built-in table, all behind a
// daily cache. REDIS_ADDR switches the cache backend from process
// memory to a shared redis so replicas reuse one pull.
func NewPeerSource() *benchmark.Cache {
	var src benchmark.Source = benchmark.NewStaticSource()
	if pool := store.GetPool(); pool != nil {
		src = chain{primary: benchmark.NewPGSource(pool), fallback: src}
	}

	var backend benchmark.Store = benchmark.NewMemoryStore()
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		backend = benchmark.NewRedisStore(addr)
	}
	return benchmark.NewCache(src, backend, peerCacheTTL)
}

// chain asks primary first and falls back on a miss.
type chain struct {
	primary  benchmark.Source
	fallback benchmark.Source
}

func (c chain) PeerStats(naics string) (benchmark.Stats, bool) {
	if st, ok := c.primary.PeerStats(naics); ok {
		return st, true
	}
	return c.fallback.PeerStats(naics)
}
