package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "fake")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, ".marketlens", cfg.Store.Dir)
	assert.Equal(t, 256, cfg.Store.CacheEntries)
	assert.Equal(t, 10*time.Minute, cfg.ConnectTokenTTL)
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("GOOGLE_API_KEY", "google-key")
	t.Setenv("LLM_TIMEOUT", "15s")
	t.Setenv("LLM_RPS", "2.5")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://app.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "google-key", cfg.LLM.APIKey)
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	assert.InDelta(t, 2.5, cfg.LLM.RPS, 1e-9)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, 3, cfg.Store.Redis.DB)
	assert.Equal(t, []string{"http://localhost:5173", "https://app.example.com"}, cfg.CORSOrigins)
}

func TestGeminiKeyTakesPrecedence(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-key", cfg.LLM.APIKey)
}

func TestLoadRejectsUnusableCombinations(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"gemini without key", map[string]string{"LLM_PROVIDER": "gemini", "GEMINI_API_KEY": "", "GOOGLE_API_KEY": ""}},
		{"unknown provider", map[string]string{"LLM_PROVIDER": "openai"}},
		{"postgres without dsn", map[string]string{"LLM_PROVIDER": "fake", "STORE_BACKEND": "postgres", "DATABASE_URL": ""}},
		{"redis without addr", map[string]string{"LLM_PROVIDER": "fake", "STORE_BACKEND": "redis", "REDIS_ADDR": ""}},
		{"s3 without bucket credentials", map[string]string{"LLM_PROVIDER": "fake", "STORE_BACKEND": "s3", "S3_ENDPOINT": "minio:9000"}},
		{"unknown backend", map[string]string{"LLM_PROVIDER": "fake", "STORE_BACKEND": "sqlite"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestOffline(t *testing.T) {
	cfg := &Config{LLM: LLMConfig{Provider: "gemini", RPS: 1}, Store: StoreConfig{Backend: BackendMemory}}
	cfg.Offline()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "fake", cfg.LLM.Provider)
	assert.Zero(t, cfg.LLM.RPS)
}

func TestNormalizePort(t *testing.T) {
	assert.Equal(t, ":8081", normalizePort("8081"))
	assert.Equal(t, ":8081", normalizePort(":8081"))
	assert.Equal(t, "127.0.0.1:8081", normalizePort("127.0.0.1:8081"))
}
