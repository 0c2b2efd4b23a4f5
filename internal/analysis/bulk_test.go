package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketlens/internal/llmclient"
)

func TestBulkKeywordsKeepsOrderAndIsolatesFailures(t *testing.T) {
	c := &slowFake{fake: llmclient.NewFakeClient(), fail: map[string]bool{"b": true}}
	g := newGateway(t, c)

	var seen []string
	items := g.BulkKeywords(context.Background(), []string{"a", "b", "c"}, func(it BulkItem) {
		seen = append(seen, it.Keyword)
		assert.Equal(t, 3, it.Total)
	})

	require.Len(t, items, 3)
	assert.Equal(t, []string{"a", "b", "c"}, seen)
	assert.Equal(t, []string{"a", "b", "c"}, c.order)
	assert.NotNil(t, items[0].Analysis)
	assert.Nil(t, items[1].Analysis)
	assert.NotNil(t, items[2].Analysis)
	for i, it := range items {
		assert.Equal(t, i, it.Index)
	}
}

func TestBulkKeywordsStopsWhenCancelled(t *testing.T) {
	c := &slowFake{fake: llmclient.NewFakeClient()}
	g := newGateway(t, c)
	ctx, cancel := context.WithCancel(context.Background())

	items := g.BulkKeywords(ctx, []string{"a", "b", "c"}, func(it BulkItem) {
		if it.Keyword == "a" {
			cancel()
		}
	})
	require.Len(t, items, 1)
	assert.Equal(t, []string{"a"}, c.order)
}

func TestParseKeywordLines(t *testing.T) {
	got := ParseKeywordLines("  boho decor \n\n\r\nwall art\nboho decor\n  \nmacrame\r\n")
	assert.Equal(t, []string{"boho decor", "wall art", "macrame"}, got)
	assert.Empty(t, ParseKeywordLines(" \n \n"))
}
