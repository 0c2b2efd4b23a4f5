package analysis

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"marketlens/internal/types"
)

// Comparison holds two keyword analyses side by side. Complete is false when
// either side failed; the side that succeeded is still set.
type Comparison struct {
	FirstKeyword  string                 `json:"first_keyword"`
	SecondKeyword string                 `json:"second_keyword"`
	First         *types.KeywordAnalysis `json:"first"`
	Second        *types.KeywordAnalysis `json:"second"`
	Complete      bool                   `json:"complete"`
}

// CompareKeywords analyzes both keywords concurrently and returns once both
// calls have settled.
func (g *Gateway) CompareKeywords(ctx context.Context, first, second string) Comparison {
	c := Comparison{FirstKeyword: first, SecondKeyword: second}
	var eg errgroup.Group
	eg.Go(func() error {
		c.First = g.AnalyzeKeyword(ctx, first)
		return nil
	})
	eg.Go(func() error {
		c.Second = g.AnalyzeKeyword(ctx, second)
		return nil
	})
	_ = eg.Wait()
	c.Complete = c.First != nil && c.Second != nil
	return c
}

// ComparisonRow is one metric of a side by side comparison.
type ComparisonRow struct {
	Metric string `json:"metric"`
	First  string `json:"first"`
	Second string `json:"second"`
}

var comparisonMetrics = []struct {
	name  string
	value func(*types.KeywordAnalysis) string
}{
	{"Competition Score", func(a *types.KeywordAnalysis) string { return strconv.Itoa(a.CompetitionScore) }},
	{"Competition", func(a *types.KeywordAnalysis) string { return string(a.Competition) }},
	{"Est. Monthly Searches", func(a *types.KeywordAnalysis) string { return strconv.Itoa(a.EstimatedMonthlySearches) }},
	{"Search Volume", func(a *types.KeywordAnalysis) string { return string(a.SearchVolume) }},
	{"Buyer Intent", func(a *types.KeywordAnalysis) string { return a.BuyerIntent }},
	{"Long-tail Keywords", func(a *types.KeywordAnalysis) string { return strconv.Itoa(len(a.LongTailKeywords)) }},
	{"Product Ideas", func(a *types.KeywordAnalysis) string { return strconv.Itoa(len(a.ProductIdeas)) }},
}

// Rows renders the comparison table. A failed side shows "-".
func (c Comparison) Rows() []ComparisonRow {
	cell := func(a *types.KeywordAnalysis, f func(*types.KeywordAnalysis) string) string {
		if a == nil {
			return "-"
		}
		return f(a)
	}
	rows := make([]ComparisonRow, 0, len(comparisonMetrics))
	for _, m := range comparisonMetrics {
		rows = append(rows, ComparisonRow{Metric: m.name, First: cell(c.First, m.value), Second: cell(c.Second, m.value)})
	}
	return rows
}
