// Package llmclient talks to the structured-output model behind the
// analysis gateway. Clients are composed from a thin transport plus
// Middleware for cross-cutting concerns.
package llmclient

import (
	"context"
	"errors"

	"marketlens/internal/schema"
	"marketlens/internal/types"
)

var (
	// ErrEmptyResponse is returned when the model produced no text.
	ErrEmptyResponse = errors.New("llmclient: empty response")
	// ErrBlocked is returned when the prompt or the answer was blocked.
	ErrBlocked = errors.New("llmclient: response blocked")
)

// Client issues one structured generation call and returns the raw text of
// the answer. Implementations must not retry.
type Client interface {
	Name() string
	GenerateStructured(ctx context.Context, prompt string, s *schema.Schema) (string, error)
	Close() error
}

type ctxKeyQuery struct{}

// WithQuery attaches the query being analyzed. Middleware uses it for log
// fields and the fake client uses it to echo inputs.
func WithQuery(ctx context.Context, q types.Query) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKeyQuery{}, q)
}

func QueryFrom(ctx context.Context) (types.Query, bool) {
	if ctx == nil {
		return types.Query{}, false
	}
	q, ok := ctx.Value(ctxKeyQuery{}).(types.Query)
	return q, ok
}

// Func adapts a function to Client.
type Func func(ctx context.Context, prompt string, s *schema.Schema) (string, error)

func (f Func) Name() string { return "func" }
func (f Func) Close() error { return nil }
func (f Func) GenerateStructured(ctx context.Context, prompt string, s *schema.Schema) (string, error) {
	return f(ctx, prompt, s)
}
