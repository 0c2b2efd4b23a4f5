package analysis

import (
	"context"
	"strings"

	"marketlens/internal/types"
)

// BulkItem is the outcome for one keyword of a bulk run. Analysis is nil
// when that keyword failed.
type BulkItem struct {
	Index    int                    `json:"index"`
	Total    int                    `json:"total"`
	Keyword  string                 `json:"keyword"`
	Analysis *types.KeywordAnalysis `json:"analysis"`
}

// BulkKeywords analyzes keywords one at a time in the given order. onItem,
// when set, is called after each keyword settles. Once ctx is done no
// further calls are issued and the items gathered so far are returned.
func (g *Gateway) BulkKeywords(ctx context.Context, keywords []string, onItem func(BulkItem)) []BulkItem {
	items := make([]BulkItem, 0, len(keywords))
	for i, kw := range keywords {
		if ctx.Err() != nil {
			break
		}
		item := BulkItem{
			Index:    i,
			Total:    len(keywords),
			Keyword:  kw,
			Analysis: g.AnalyzeKeyword(ctx, kw),
		}
		items = append(items, item)
		if onItem != nil {
			onItem(item)
		}
	}
	return items
}

// ParseKeywordLines splits newline separated input into keywords. Lines are
// trimmed; blanks and repeats are dropped, keeping the first occurrence.
func ParseKeywordLines(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, line := range strings.Split(text, "\n") {
		kw := strings.TrimSpace(line)
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}
