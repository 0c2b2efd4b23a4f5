package analysis

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"marketlens/internal/llmclient"
	"marketlens/internal/schema"
	"marketlens/internal/tester"
	"marketlens/internal/types"
)

func newGateway(t *testing.T, c llmclient.Client) *Gateway {
	t.Helper()
	return New(c, zaptest.NewLogger(t))
}

func reply(text string, err error) llmclient.Func {
	return func(context.Context, string, *schema.Schema) (string, error) { return text, err }
}

func TestAnalyzeKeywordSuccess(t *testing.T) {
	g := newGateway(t, llmclient.NewFakeClient())
	got := g.AnalyzeKeyword(context.Background(), "handmade leather journal")
	require.NotNil(t, got)
	assert.Contains(t, types.Levels, string(got.Competition))
	assert.GreaterOrEqual(t, got.CompetitionScore, 0)
	assert.LessOrEqual(t, got.CompetitionScore, 100)
	assert.Len(t, got.HistoricalData, types.SeriesLength)
}

func TestEveryKindSucceedsAgainstConformingModel(t *testing.T) {
	g := newGateway(t, llmclient.NewFakeClient())
	ctx := context.Background()

	shop := g.AnalyzeShop(ctx, "ExampleShop")
	require.NotNil(t, shop)
	assert.Equal(t, "ExampleShop", shop.ShopName)

	product := g.AnalyzeProduct(ctx, "Personalized pet portrait mug")
	require.NotNil(t, product)
	assert.Equal(t, "Personalized pet portrait mug", product.ProductConcept)
	for _, s := range [][]types.MonthlyPoint{product.HistoricalData.Sales, product.HistoricalData.Views, product.HistoricalData.Favorites} {
		assert.Len(t, s, types.SeriesLength)
	}

	rank := g.AnalyzeRank(ctx, "pet mug", "Personalized pet portrait mug")
	require.NotNil(t, rank)
	assert.NotEmpty(t, rank.ImprovementSuggestions)

	_, ok := g.Analyze(ctx, types.ShopQuery("ExampleShop")).(*types.ShopAnalysis)
	assert.True(t, ok)
}

func TestFailureSentinelTotality(t *testing.T) {
	valid, err := llmclient.NewFakeClient().GenerateStructured(context.Background(), "", schema.MustFor(types.ShopQueryKind))
	require.NoError(t, err)

	cases := map[string]llmclient.Client{
		"network failure":     reply("", errors.New("dial tcp: connection refused")),
		"empty body":          reply("", nil),
		"whitespace body":     reply(" \n\t ", nil),
		"empty response":      reply("", llmclient.ErrEmptyResponse),
		"blocked":             reply("", llmclient.ErrBlocked),
		"malformed json":      reply(`{"shop_name": "ExampleShop",`, nil),
		"markdown fence":      reply("```json\n"+valid+"\n```", nil),
		"trailing data":       reply(valid+" {}", nil),
		"missing field":       reply(`{"shop_name":"ExampleShop","niche":"x","estimated_monthly_sales":"1","top_keywords":[],"strengths":[]}`, nil),
		"wrong type":          reply(strings.Replace(valid, `"top_keywords":[`, `"top_keywords":"x","ignored":[`, 1), nil),
		"json array":          reply(`[]`, nil),
		"json null":           reply(`null`, nil),
		"panicking transport": llmclient.Func(func(context.Context, string, *schema.Schema) (string, error) { panic("boom") }),
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			g := newGateway(t, c)
			var got *types.ShopAnalysis
			assert.NotPanics(t, func() { got = g.AnalyzeShop(context.Background(), "ExampleShop") })
			tester.Nil(t, got)
		})
	}
}

func TestTrimmedResponseIsAccepted(t *testing.T) {
	valid, err := llmclient.NewFakeClient().GenerateStructured(context.Background(), "", schema.MustFor(types.RankQueryKind))
	require.NoError(t, err)
	g := newGateway(t, reply("\n  "+valid+"\n", nil))
	tester.NotNil(t, g.AnalyzeRank(context.Background(), "k", "d"))
}

func TestInputErrorsSkipRemoteCall(t *testing.T) {
	var calls atomic.Int32
	c := llmclient.Func(func(context.Context, string, *schema.Schema) (string, error) {
		calls.Add(1)
		return "", nil
	})
	g := newGateway(t, c)
	ctx := context.Background()
	tester.Nil(t, g.AnalyzeKeyword(ctx, "  "))
	tester.Nil(t, g.AnalyzeShop(ctx, ""))
	tester.Nil(t, g.AnalyzeProduct(ctx, "\t"))
	tester.Nil(t, g.AnalyzeRank(ctx, "ok", ""))
	assert.Nil(t, g.Analyze(ctx, types.Query{Kind: 42, Keyword: "x"}))
	assert.Equal(t, int32(0), calls.Load())
}

func TestExactlyOneCallPerAnalysis(t *testing.T) {
	var calls atomic.Int32
	c := llmclient.Func(func(context.Context, string, *schema.Schema) (string, error) {
		calls.Add(1)
		return "", errors.New("temporary")
	})
	g := newGateway(t, c)
	tester.Nil(t, g.AnalyzeKeyword(context.Background(), "retry me"))
	assert.Equal(t, int32(1), calls.Load())
}

func TestCallCarriesPromptSchemaAndQuery(t *testing.T) {
	var (
		gotPrompt string
		gotSchema *schema.Schema
		gotQuery  types.Query
	)
	c := llmclient.Func(func(ctx context.Context, p string, s *schema.Schema) (string, error) {
		gotPrompt, gotSchema = p, s
		gotQuery, _ = llmclient.QueryFrom(ctx)
		return "", errors.New("stop")
	})
	newGateway(t, c).AnalyzeRank(context.Background(), "soy candle", "Lavender candle")
	assert.Contains(t, gotPrompt, `Target Keyword: "soy candle"`)
	assert.Equal(t, schema.RankName, gotSchema.Name())
	assert.Equal(t, types.RankQuery("soy candle", "Lavender candle"), gotQuery)
}

func TestFailuresAreLoggedWithClass(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := New(reply("not json", nil), zap.New(core))
	tester.Nil(t, g.AnalyzeKeyword(context.Background(), "x"))

	entries := logs.FilterMessage("analysis failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "parse", entries[0].ContextMap()["class"])
	assert.Equal(t, "keyword", entries[0].ContextMap()["kind"])

	g = New(reply("", nil), zap.New(core))
	tester.Nil(t, g.AnalyzeKeyword(context.Background(), " "))
	rejected := logs.FilterMessage("analysis rejected").All()
	require.Len(t, rejected, 1)
	assert.Equal(t, zapcore.DebugLevel, rejected[0].Level)
}

func TestGatewayIsSafeForConcurrentUse(t *testing.T) {
	g := newGateway(t, llmclient.NewFakeClient())
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotNil(t, g.AnalyzeKeyword(context.Background(), "concurrent"))
		}()
	}
	wg.Wait()
}

// slowFake delays selected keywords and fails others.
type slowFake struct {
	fake  *llmclient.FakeClient
	delay map[string]time.Duration
	fail  map[string]bool
	mu    sync.Mutex
	order []string
}

func (s *slowFake) Name() string { return "slow" }
func (s *slowFake) Close() error { return nil }
func (s *slowFake) GenerateStructured(ctx context.Context, p string, sc *schema.Schema) (string, error) {
	q, _ := llmclient.QueryFrom(ctx)
	s.mu.Lock()
	s.order = append(s.order, q.Keyword)
	s.mu.Unlock()
	if d := s.delay[q.Keyword]; d > 0 {
		time.Sleep(d)
	}
	if s.fail[q.Keyword] {
		return "", errors.New("upstream 503")
	}
	return s.fake.GenerateStructured(ctx, p, sc)
}
