package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port      string
	Env       string
	LogLevel  string
	LogFormat string
	// CORSOrigins empty means any origin.
	CORSOrigins     []string
	LLM             LLMConfig
	Store           StoreConfig
	ConnectTokenTTL time.Duration
}

type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
	Timeout  time.Duration
	RPS      float64
	Burst    int
}

type StoreConfig struct {
	Backend      string
	Namespace    string
	Dir          string
	CacheEntries int
	DatabaseURL  string
	Redis        RedisConfig
	S3           S3Config
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendS3       = "s3"
)

var defaults = map[string]any{
	"port":                ":8081",
	"app_env":             "local",
	"log_level":           "info",
	"log_format":          "console",
	"llm_provider":        "gemini",
	"gemini_model":        "gemini-2.5-flash",
	"llm_timeout":         "60s",
	"llm_rps":             1.0,
	"llm_burst":           1,
	"store_backend":       BackendFile,
	"store_namespace":     "default",
	"store_dir":           ".marketlens",
	"store_cache_entries": 256,
	"redis_db":            0,
	"s3_region":           "us-east-1",
	"s3_bucket":           "marketlens-collections",
	"s3_use_ssl":          true,
	"connect_token_ttl":   "10m",
}

// Load reads .env when present, then the environment. Environment values
// win over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return v
}

// FromViper builds a validated Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:        normalizePort(v.GetString("port")),
		Env:         strings.TrimSpace(v.GetString("app_env")),
		LogLevel:    strings.TrimSpace(v.GetString("log_level")),
		LogFormat:   strings.TrimSpace(v.GetString("log_format")),
		CORSOrigins: splitList(v.GetString("cors_allowed_origins")),
		LLM: LLMConfig{
			Provider: strings.ToLower(strings.TrimSpace(v.GetString("llm_provider"))),
			APIKey:   firstNonEmpty(strings.TrimSpace(v.GetString("gemini_api_key")), strings.TrimSpace(v.GetString("google_api_key"))),
			Model:    strings.TrimSpace(v.GetString("gemini_model")),
			Timeout:  v.GetDuration("llm_timeout"),
			RPS:      v.GetFloat64("llm_rps"),
			Burst:    v.GetInt("llm_burst"),
		},
		Store: StoreConfig{
			Backend:      strings.ToLower(strings.TrimSpace(v.GetString("store_backend"))),
			Namespace:    strings.TrimSpace(v.GetString("store_namespace")),
			Dir:          strings.TrimSpace(v.GetString("store_dir")),
			CacheEntries: v.GetInt("store_cache_entries"),
			DatabaseURL:  strings.TrimSpace(v.GetString("database_url")),
			Redis: RedisConfig{
				Addr:     strings.TrimSpace(v.GetString("redis_addr")),
				Password: v.GetString("redis_password"),
				DB:       v.GetInt("redis_db"),
			},
			S3: S3Config{
				Endpoint:  strings.TrimSpace(v.GetString("s3_endpoint")),
				Region:    strings.TrimSpace(v.GetString("s3_region")),
				AccessKey: strings.TrimSpace(v.GetString("s3_access_key")),
				SecretKey: strings.TrimSpace(v.GetString("s3_secret_key")),
				Bucket:    strings.TrimSpace(v.GetString("s3_bucket")),
				UseSSL:    v.GetBool("s3_use_ssl"),
			},
		},
		ConnectTokenTTL: v.GetDuration("connect_token_ttl"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate rejects combinations that cannot work at runtime.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "gemini":
		if c.LLM.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY or GOOGLE_API_KEY is required for the gemini provider")
		}
	case "fake":
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("LLM_TIMEOUT must not be negative")
	}
	switch c.Store.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Store.Dir == "" {
			return fmt.Errorf("STORE_DIR is required for the file backend")
		}
	case BackendPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
	case BackendS3:
		s3 := c.Store.S3
		if s3.Endpoint == "" || s3.AccessKey == "" || s3.SecretKey == "" || s3.Bucket == "" {
			return fmt.Errorf("S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY and S3_BUCKET are required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	return nil
}

// Offline switches to the canned model client with no rate limit.
func (c *Config) Offline() {
	c.LLM.Provider = "fake"
	c.LLM.RPS = 0
}

func normalizePort(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || strings.HasPrefix(p, ":") || strings.Contains(p, ":") {
		return p
	}
	return ":" + p
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
