package llmclient

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"marketlens/internal/metrics"
	"marketlens/internal/schema"
)

// Middleware decorates a Client.
type Middleware func(Client) Client

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner Client, mws ...Middleware) Client {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

// -------- Rate limiting --------

// RateLimit blocks each call on a token bucket. rps <= 0 disables it.
func RateLimit(rps float64, burst int) Middleware {
	return func(next Client) Client {
		if rps <= 0 {
			return next
		}
		if burst < 1 {
			burst = 1
		}
		return &rateLimited{next: next, lim: rate.NewLimiter(rate.Limit(rps), burst)}
	}
}

type rateLimited struct {
	next Client
	lim  *rate.Limiter
}

func (c *rateLimited) Name() string { return c.next.Name() }
func (c *rateLimited) Close() error { return c.next.Close() }
func (c *rateLimited) GenerateStructured(ctx context.Context, prompt string, s *schema.Schema) (string, error) {
	if err := c.lim.Wait(ctx); err != nil {
		return "", err
	}
	return c.next.GenerateStructured(ctx, prompt, s)
}

// -------- Logging --------

func WithLogging(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next Client) Client {
		return &logging{next: next, log: logger.With(zap.String("client", next.Name()))}
	}
}

type logging struct {
	next Client
	log  *zap.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }
func (l *logging) GenerateStructured(ctx context.Context, prompt string, s *schema.Schema) (string, error) {
	fields := []zap.Field{zap.String("schema", s.Name()), zap.Int("prompt_bytes", len(prompt))}
	if q, ok := QueryFrom(ctx); ok {
		fields = append(fields, zap.Stringer("kind", q.Kind))
	}
	l.log.Debug("llm request", fields...)
	start := time.Now()
	out, err := l.next.GenerateStructured(ctx, prompt, s)
	fields = append(fields, zap.Duration("latency", time.Since(start)))
	if err != nil {
		l.log.Info("llm error", append(fields, zap.Error(err))...)
		return out, err
	}
	l.log.Debug("llm response", append(fields, zap.Int("response_bytes", len(out)))...)
	return out, nil
}

// -------- Metrics --------

// WithMetrics records call counts and latency per schema.
func WithMetrics() Middleware {
	return func(next Client) Client { return &measured{next: next} }
}

type measured struct{ next Client }

func (m *measured) Name() string { return m.next.Name() }
func (m *measured) Close() error { return m.next.Close() }
func (m *measured) GenerateStructured(ctx context.Context, prompt string, s *schema.Schema) (string, error) {
	start := time.Now()
	out, err := m.next.GenerateStructured(ctx, prompt, s)
	metrics.LLMRequestDuration.WithLabelValues(s.Name()).Observe(time.Since(start).Seconds())
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.LLMRequests.WithLabelValues(s.Name(), status).Inc()
	return out, err
}
