// Package collection keeps the user's saved state: the connected shop,
// favorite keywords, shops and products, and named keyword lists. Each
// collection is one JSON snapshot in a key-value backend.
package collection

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"marketlens/internal/logging"
	"marketlens/internal/metrics"
)

// Collection names, also the last segment of every backend key.
const (
	ConnectedShopKey    = "connected_etsy_shop"
	FavoriteKeywordsKey = "favorite_keywords"
	FavoriteShopsKey    = "favorite_shops"
	FavoriteProductsKey = "favorite_products"
	KeywordListsKey     = "keyword_lists"
)

var (
	ErrEmptyShopName = errors.New("collection: shop name is empty")
	ErrEmptyListName = errors.New("collection: list name is empty")
	ErrEmptyKeyword  = errors.New("collection: keyword is empty")
	ErrEmptyKey      = errors.New("collection: favorite key is empty")
	ErrListNotFound  = errors.New("collection: keyword list not found")
)

// Backend is the byte-level persistence the store writes through.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store serializes read-modify-write cycles with a mutex and holds its read
// lock for public reads. Reads never fail: a missing or unreadable snapshot
// is the empty collection.
type Store struct {
	backend   Backend
	namespace string
	log       *zap.Logger

	mu    sync.RWMutex
	now   func() time.Time
	newID func() string
}

func New(backend Backend, namespace string, logger *zap.Logger) *Store {
	return &Store{
		backend:   backend,
		namespace: strings.Trim(strings.TrimSpace(namespace), "/"),
		log:       logging.OrNop(logger),
		now:       time.Now,
		newID:     newListID,
	}
}

func newListID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *Store) key(name string) string {
	if s.namespace == "" {
		return name
	}
	return s.namespace + "/" + name
}

// readRaw returns the stored bytes of a collection, or nil.
func (s *Store) readRaw(ctx context.Context, name string) []byte {
	raw, ok, err := s.backend.Get(ctx, s.key(name))
	if err != nil {
		s.log.Warn("collection read failed", zap.String("collection", name), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	return raw
}

func (s *Store) writeRaw(ctx context.Context, name string, raw []byte) error {
	if err := s.backend.Put(ctx, s.key(name), raw); err != nil {
		metrics.CollectionWrites.WithLabelValues(name, "error").Inc()
		s.log.Warn("collection write failed", zap.String("collection", name), zap.Error(err))
		return err
	}
	metrics.CollectionWrites.WithLabelValues(name, "ok").Inc()
	return nil
}

// read loads a collection under the read lock. Callers already holding
// s.mu use load directly.
func read[T any](ctx context.Context, s *Store, name string) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return load[T](ctx, s, name)
}

func load[T any](ctx context.Context, s *Store, name string) []T {
	raw := s.readRaw(ctx, name)
	if len(raw) == 0 {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.Warn("collection snapshot unreadable, using empty default",
			zap.String("collection", name), zap.Error(err))
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

func save[T any](ctx context.Context, s *Store, name string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.writeRaw(ctx, name, raw)
}

// ConnectedShop returns the stored shop name.
func (s *Store) ConnectedShop(ctx context.Context) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name := strings.TrimSpace(string(s.readRaw(ctx, ConnectedShopKey)))
	return name, name != ""
}

// SetConnectedShop stores the trimmed shop name.
func (s *Store) SetConnectedShop(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyShopName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeRaw(ctx, ConnectedShopKey, []byte(name))
}

func (s *Store) ClearConnectedShop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Delete(ctx, s.key(ConnectedShopKey))
}
