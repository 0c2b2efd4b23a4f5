package llmclient

import (
	"context"
	"sync/atomic"

	"marketlens/internal/prompt"
	"marketlens/internal/schema"
	"marketlens/internal/types"
	"marketlens/internal/util/jsonutil"
)

// FakeClient returns the canned example for the requested schema, echoing
// the query from the context when present. It never touches the network.
type FakeClient struct {
	calls atomic.Int64
}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

// Calls reports how many generations were requested.
func (f *FakeClient) Calls() int { return int(f.calls.Load()) }

func (f *FakeClient) GenerateStructured(ctx context.Context, _ string, s *schema.Schema) (string, error) {
	f.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	q, ok := QueryFrom(ctx)
	if !ok || q.Kind != s.Kind() {
		q = types.Query{Kind: s.Kind()}
	}
	b, err := jsonutil.MarshalNoEscape(prompt.Example(q))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
