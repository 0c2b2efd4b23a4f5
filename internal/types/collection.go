package types

import (
	"fmt"
	"strings"
	"time"
)

// FavoriteKind names one of the three favorite collections.
type FavoriteKind string

const (
	FavoriteKeywords FavoriteKind = "keywords"
	FavoriteShops    FavoriteKind = "shops"
	FavoriteProducts FavoriteKind = "products"
)

func ParseFavoriteKind(s string) (FavoriteKind, error) {
	switch FavoriteKind(strings.ToLower(strings.TrimSpace(s))) {
	case FavoriteKeywords:
		return FavoriteKeywords, nil
	case FavoriteShops:
		return FavoriteShops, nil
	case FavoriteProducts:
		return FavoriteProducts, nil
	}
	return "", fmt.Errorf("unknown favorite kind %q", s)
}

// FavoriteKeyword pairs a keyword with the analysis it was saved with.
type FavoriteKeyword struct {
	Keyword  string          `json:"keyword"`
	Analysis KeywordAnalysis `json:"analysis"`
}

// KeywordList is a named, ordered list of keywords. Duplicates are allowed.
type KeywordList struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Keywords  []string  `json:"keywords"`
	CreatedAt time.Time `json:"createdAt"`
}
