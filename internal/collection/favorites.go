package collection

import (
	"context"
	"fmt"
	"strings"

	"marketlens/internal/types"
)

// Favorite is the kind-independent view of one saved item.
type Favorite struct {
	Kind types.FavoriteKind `json:"kind"`
	Key  string             `json:"key"`
	Item any                `json:"item"`
}

func keywordKey(f types.FavoriteKeyword) string { return f.Keyword }
func shopKey(f types.ShopAnalysis) string       { return f.ShopName }
func productKey(f types.ProductAnalysis) string { return f.ProductConcept }

func (s *Store) FavoriteKeywords(ctx context.Context) []types.FavoriteKeyword {
	return read[types.FavoriteKeyword](ctx, s, FavoriteKeywordsKey)
}

func (s *Store) FavoriteShops(ctx context.Context) []types.ShopAnalysis {
	return read[types.ShopAnalysis](ctx, s, FavoriteShopsKey)
}

func (s *Store) FavoriteProducts(ctx context.Context) []types.ProductAnalysis {
	return read[types.ProductAnalysis](ctx, s, FavoriteProductsKey)
}

// ToggleKeywordFavorite adds the trimmed keyword with its analysis, or removes
// it if already saved. It reports whether the keyword is a favorite afterwards.
func (s *Store) ToggleKeywordFavorite(ctx context.Context, keyword string, analysis types.KeywordAnalysis) (bool, error) {
	keyword = strings.TrimSpace(keyword)
	return toggle(ctx, s, FavoriteKeywordsKey, types.FavoriteKeyword{Keyword: keyword, Analysis: analysis}, keywordKey)
}

func (s *Store) ToggleShopFavorite(ctx context.Context, shop types.ShopAnalysis) (bool, error) {
	return toggle(ctx, s, FavoriteShopsKey, shop, shopKey)
}

func (s *Store) ToggleProductFavorite(ctx context.Context, product types.ProductAnalysis) (bool, error) {
	return toggle(ctx, s, FavoriteProductsKey, product, productKey)
}

// toggle matches on the identity key only; the rest of the item is ignored
// when removing.
func toggle[T any](ctx context.Context, s *Store, name string, item T, key func(T) string) (bool, error) {
	id := key(item)
	if strings.TrimSpace(id) == "" {
		return false, ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	items := load[T](ctx, s, name)
	kept := items[:0:0]
	for _, it := range items {
		if key(it) != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		if err := save(ctx, s, name, append(items, item)); err != nil {
			return false, err
		}
		return true, nil
	}
	if err := save(ctx, s, name, kept); err != nil {
		return true, err
	}
	return false, nil
}

func remove[T any](ctx context.Context, s *Store, name, id string, key func(T) string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := load[T](ctx, s, name)
	kept := items[:0:0]
	for _, it := range items {
		if key(it) != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return save(ctx, s, name, kept)
}

func contains[T any](items []T, id string, key func(T) string) bool {
	for _, it := range items {
		if key(it) == id {
			return true
		}
	}
	return false
}

// IsFavorite reports whether an item with the identity key is saved.
func (s *Store) IsFavorite(ctx context.Context, kind types.FavoriteKind, id string) bool {
	switch kind {
	case types.FavoriteKeywords:
		return contains(s.FavoriteKeywords(ctx), id, keywordKey)
	case types.FavoriteShops:
		return contains(s.FavoriteShops(ctx), id, shopKey)
	case types.FavoriteProducts:
		return contains(s.FavoriteProducts(ctx), id, productKey)
	}
	return false
}

// RemoveFavorite deletes every item with the identity key. Removing an item
// that is not saved is a no-op.
func (s *Store) RemoveFavorite(ctx context.Context, kind types.FavoriteKind, id string) error {
	switch kind {
	case types.FavoriteKeywords:
		return remove(ctx, s, FavoriteKeywordsKey, id, keywordKey)
	case types.FavoriteShops:
		return remove(ctx, s, FavoriteShopsKey, id, shopKey)
	case types.FavoriteProducts:
		return remove(ctx, s, FavoriteProductsKey, id, productKey)
	}
	return fmt.Errorf("collection: unknown favorite kind %q", kind)
}

// ListFavorites returns one collection in saved order.
func (s *Store) ListFavorites(ctx context.Context, kind types.FavoriteKind) ([]Favorite, error) {
	switch kind {
	case types.FavoriteKeywords:
		return view(kind, s.FavoriteKeywords(ctx), keywordKey), nil
	case types.FavoriteShops:
		return view(kind, s.FavoriteShops(ctx), shopKey), nil
	case types.FavoriteProducts:
		return view(kind, s.FavoriteProducts(ctx), productKey), nil
	}
	return nil, fmt.Errorf("collection: unknown favorite kind %q", kind)
}

func view[T any](kind types.FavoriteKind, items []T, key func(T) string) []Favorite {
	out := make([]Favorite, 0, len(items))
	for _, it := range items {
		out = append(out, Favorite{Kind: kind, Key: key(it), Item: it})
	}
	return out
}
