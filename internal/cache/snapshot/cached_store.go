package snapshot

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	snapshotrepo "marketlens/internal/gateway/repository/snapshot"
)

type Store = snapshotrepo.Store

const DefaultMaxEntries = 256

type MetricsSnapshot struct {
	Hits           uint64
	Misses         uint64
	OriginReads    uint64
	OriginWrites   uint64
	OriginReadErr  uint64
	OriginWriteErr uint64
}

type Metrics struct {
	hits           atomic.Uint64
	misses         atomic.Uint64
	originReads    atomic.Uint64
	originWrites   atomic.Uint64
	originReadErr  atomic.Uint64
	originWriteErr atomic.Uint64
}

func (m *Metrics) snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Hits:           m.hits.Load(),
		Misses:         m.misses.Load(),
		OriginReads:    m.originReads.Load(),
		OriginWrites:   m.originWrites.Load(),
		OriginReadErr:  m.originReadErr.Load(),
		OriginWriteErr: m.originWriteErr.Load(),
	}
}

// CachedStore is a write-through read cache in front of an origin Store.
// After a successful Put the cache holds exactly the bytes the origin
// accepted; a failed Put evicts the key. Misses are not cached.
//
// Writes hold mu across the origin call and bump the key's generation. A
// read-through fills the cache only if the generation it saw before reading
// the origin is still current, so a slow read never overwrites a newer write.
type CachedStore struct {
	origin  Store
	cache   *lru.Cache[string, []byte]
	metrics Metrics

	mu  sync.Mutex
	gen map[string]uint64
}

func NewCachedStore(origin Store, maxEntries int) *CachedStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	cache, err := lru.New[string, []byte](maxEntries)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &CachedStore{origin: origin, cache: cache, gen: map[string]uint64{}}
}

func (s *CachedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	k := cacheKey(key)
	if raw, ok := s.cache.Get(k); ok {
		s.metrics.hits.Add(1)
		return append([]byte(nil), raw...), true, nil
	}
	s.metrics.misses.Add(1)
	s.metrics.originReads.Add(1)

	s.mu.Lock()
	seen := s.gen[k]
	s.mu.Unlock()

	raw, ok, err := s.origin.Get(ctx, key)
	if err != nil {
		s.metrics.originReadErr.Add(1)
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	copied := append([]byte(nil), raw...)
	s.mu.Lock()
	if s.gen[k] == seen {
		s.cache.Add(k, copied)
	}
	s.mu.Unlock()
	return append([]byte(nil), copied...), true, nil
}

func (s *CachedStore) Put(ctx context.Context, key string, value []byte) error {
	k := cacheKey(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen[k]++

	s.metrics.originWrites.Add(1)
	if err := s.origin.Put(ctx, key, value); err != nil {
		s.metrics.originWriteErr.Add(1)
		s.cache.Remove(k)
		return err
	}
	s.cache.Add(k, append([]byte(nil), value...))
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, key string) error {
	k := cacheKey(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen[k]++

	s.cache.Remove(k)
	return s.origin.Delete(ctx, key)
}

func (s *CachedStore) Metrics() MetricsSnapshot {
	if s == nil {
		return MetricsSnapshot{}
	}
	return s.metrics.snapshot()
}

func cacheKey(key string) string {
	return strings.Trim(strings.TrimSpace(key), "/")
}
