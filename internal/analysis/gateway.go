// Package analysis is the boundary between callers and the model: every
// analysis returns either a typed, contract-checked result or nil.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"marketlens/internal/llmclient"
	"marketlens/internal/logging"
	"marketlens/internal/metrics"
	"marketlens/internal/prompt"
	"marketlens/internal/schema"
	"marketlens/internal/types"
	"marketlens/internal/util/jsonutil"
)

// Failure classes, also used as metric outcomes.
const (
	classInput     = "input"
	classTransport = "transport"
	classEmpty     = "empty"
	classParse     = "parse"
	classContract  = "contract"
	classPanic     = "panic"
	outcomeOK      = "ok"
)

// Gateway runs analyses. It holds no mutable state and is safe for
// concurrent use.
type Gateway struct {
	client llmclient.Client
	log    *zap.Logger
}

func New(client llmclient.Client, logger *zap.Logger) *Gateway {
	return &Gateway{client: client, log: logging.OrNop(logger)}
}

func (g *Gateway) AnalyzeKeyword(ctx context.Context, keyword string) *types.KeywordAnalysis {
	return analyze[types.KeywordAnalysis](ctx, g, types.KeywordQuery(keyword))
}

func (g *Gateway) AnalyzeShop(ctx context.Context, shopName string) *types.ShopAnalysis {
	return analyze[types.ShopAnalysis](ctx, g, types.ShopQuery(shopName))
}

func (g *Gateway) AnalyzeProduct(ctx context.Context, description string) *types.ProductAnalysis {
	return analyze[types.ProductAnalysis](ctx, g, types.ProductQuery(description))
}

func (g *Gateway) AnalyzeRank(ctx context.Context, keyword, description string) *types.RankAnalysis {
	return analyze[types.RankAnalysis](ctx, g, types.RankQuery(keyword, description))
}

// Analyze dispatches on q.Kind. The result is one of the typed pointers
// above, or nil. A nil typed pointer is returned as an untyped nil.
func (g *Gateway) Analyze(ctx context.Context, q types.Query) any {
	switch q.Kind {
	case types.KeywordQueryKind:
		if r := g.AnalyzeKeyword(ctx, q.Keyword); r != nil {
			return r
		}
	case types.ShopQueryKind:
		if r := g.AnalyzeShop(ctx, q.ShopName); r != nil {
			return r
		}
	case types.ProductQueryKind:
		if r := g.AnalyzeProduct(ctx, q.Product); r != nil {
			return r
		}
	case types.RankQueryKind:
		if r := g.AnalyzeRank(ctx, q.Keyword, q.Product); r != nil {
			return r
		}
	default:
		g.fail(q, classInput, fmt.Errorf("unsupported query kind %v", q.Kind))
	}
	return nil
}

type failure struct {
	class string
	err   error
}

func (f *failure) Error() string { return f.class + ": " + f.err.Error() }
func (f *failure) Unwrap() error { return f.err }

func analyze[T any](ctx context.Context, g *Gateway, q types.Query) (result *T) {
	defer func() {
		if r := recover(); r != nil {
			g.fail(q, classPanic, fmt.Errorf("recovered: %v", r))
			result = nil
		}
	}()

	out, err := run[T](ctx, g.client, q)
	if err != nil {
		var f *failure
		if errors.As(err, &f) {
			g.fail(q, f.class, f.err)
		} else {
			g.fail(q, classTransport, err)
		}
		return nil
	}
	metrics.AnalysisResults.WithLabelValues(q.Kind.String(), outcomeOK).Inc()
	return out
}

// run performs exactly one remote call for a valid query.
func run[T any](ctx context.Context, client llmclient.Client, q types.Query) (*T, error) {
	text, err := prompt.Build(q)
	if err != nil {
		return nil, &failure{classInput, err}
	}
	s, err := schema.For(q.Kind)
	if err != nil {
		return nil, &failure{classInput, err}
	}

	raw, err := client.GenerateStructured(llmclient.WithQuery(ctx, q), text, s)
	if err != nil {
		if errors.Is(err, llmclient.ErrEmptyResponse) {
			return nil, &failure{classEmpty, err}
		}
		return nil, &failure{classTransport, err}
	}
	body := []byte(strings.TrimSpace(raw))
	if len(body) == 0 {
		return nil, &failure{classEmpty, llmclient.ErrEmptyResponse}
	}

	// Parse first so malformed text is classified apart from contract breaks.
	var doc any
	if err := jsonutil.DecodeStrict(body, &doc); err != nil {
		return nil, &failure{classParse, err}
	}
	if err := s.Validate(body); err != nil {
		return nil, &failure{classContract, err}
	}
	out := new(T)
	if err := jsonutil.DecodeStrict(body, out); err != nil {
		return nil, &failure{classContract, err}
	}
	return out, nil
}

func (g *Gateway) fail(q types.Query, class string, err error) {
	metrics.AnalysisResults.WithLabelValues(q.Kind.String(), class).Inc()
	fields := []zap.Field{zap.Stringer("kind", q.Kind), zap.String("class", class), zap.Error(err)}
	if class == classInput {
		g.log.Debug("analysis rejected", fields...)
		return
	}
	g.log.Warn("analysis failed", fields...)
}
