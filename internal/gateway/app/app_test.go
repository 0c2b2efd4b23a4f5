package app

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"marketlens/internal/gateway/config"
	"marketlens/internal/tester"
)

func offlineConfig(backend, dir string) *config.Config {
	return &config.Config{
		Port: ":0",
		LLM:  config.LLMConfig{Provider: "fake"},
		Store: config.StoreConfig{
			Backend:      backend,
			Namespace:    "test",
			Dir:          dir,
			CacheEntries: 8,
		},
		ConnectTokenTTL: time.Minute,
	}
}

func TestNewOfflineAnalyzesAndPersists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	a, err := New(ctx, offlineConfig(config.BackendFile, dir), zaptest.NewLogger(t))
	tester.NoErr(t, err)

	res := a.Gateway.AnalyzeKeyword(ctx, "ceramic mug")
	tester.NotNil(t, res)
	on, err := a.Collections.ToggleKeywordFavorite(ctx, "ceramic mug", *res)
	tester.NoErr(t, err)
	tester.True(t, on)
	tester.NoErr(t, a.Close())

	// A second app over the same directory sees the saved favorite.
	b, err := New(ctx, offlineConfig(config.BackendFile, dir), zaptest.NewLogger(t))
	tester.NoErr(t, err)
	defer b.Close()
	favs := b.Collections.FavoriteKeywords(ctx)
	tester.Eq(t, len(favs), 1)
	tester.Eq(t, favs[0].Keyword, "ceramic mug")
}

func TestNewMemoryBackend(t *testing.T) {
	a, err := New(context.Background(), offlineConfig(config.BackendMemory, ""), nil)
	tester.NoErr(t, err)
	defer a.Close()
	tester.Eq(t, len(a.Collections.KeywordLists(context.Background())), 0)
	tester.NoErr(t, a.Shutdown(context.Background()))
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(context.Background(), nil, nil)
	tester.Err(t, err)

	_, err = New(context.Background(), offlineConfig("sqlite", ""), nil)
	tester.Err(t, err)

	cfg := offlineConfig(config.BackendMemory, "")
	cfg.LLM.Provider = "openai"
	_, err = New(context.Background(), cfg, nil)
	tester.Err(t, err)
}
