package llmclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	ProviderGemini = "gemini"
	ProviderFake   = "fake"
)

// Options selects and tunes a client.
type Options struct {
	Provider string
	APIKey   string
	Model    string
	Timeout  time.Duration
	RPS      float64
	Burst    int
	Logger   *zap.Logger
}

// New builds the provider client wrapped in metrics, logging and rate
// limiting, outermost first.
func New(ctx context.Context, opts Options) (Client, error) {
	var inner Client
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", ProviderGemini:
		g, err := NewGeminiClient(ctx, opts.APIKey, opts.Model, opts.Timeout)
		if err != nil {
			return nil, err
		}
		inner = g
	case ProviderFake:
		inner = NewFakeClient()
	default:
		return nil, fmt.Errorf("llmclient: unknown provider %q", opts.Provider)
	}
	return Wrap(inner,
		WithMetrics(),
		WithLogging(opts.Logger),
		RateLimit(opts.RPS, opts.Burst),
	), nil
}
