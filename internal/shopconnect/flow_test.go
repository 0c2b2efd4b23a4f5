package shopconnect

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"marketlens/internal/collection"
	snapshotrepo "marketlens/internal/gateway/repository/snapshot"
	"marketlens/internal/tester"
)

func newFlow(t *testing.T) (*Flow, *collection.Store, *time.Time) {
	t.Helper()
	store := collection.New(snapshotrepo.NewMemoryStore(), "test", zaptest.NewLogger(t))
	f := New(store, time.Minute, zaptest.NewLogger(t))
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }
	return f, store, &now
}

func TestConnectLifecycle(t *testing.T) {
	f, store, _ := newFlow(t)
	ctx := context.Background()

	tester.Eq(t, f.Status(ctx).State, StateIdle)

	p := f.Begin(ctx)
	tester.True(t, p.Token != "")
	st := f.Status(ctx)
	tester.Eq(t, st.State, StateConnecting)
	tester.Eq(t, st.ExpiresAt, p.ExpiresAt)

	st, err := f.Complete(ctx, p.Token, "  WillowAndWool ")
	tester.NoErr(t, err)
	tester.Eq(t, st.State, StateConnected)
	tester.Eq(t, st.ShopName, "WillowAndWool")
	name, ok := store.ConnectedShop(ctx)
	tester.True(t, ok)
	tester.Eq(t, name, "WillowAndWool")

	// Tokens are single use.
	_, err = f.Complete(ctx, p.Token, "Other")
	tester.ErrIs(t, err, ErrUnknownToken)

	tester.NoErr(t, f.Disconnect(ctx))
	tester.Eq(t, f.Status(ctx).State, StateIdle)
	_, ok = store.ConnectedShop(ctx)
	tester.False(t, ok)
}

func TestCompleteRejectsBadInput(t *testing.T) {
	f, _, now := newFlow(t)
	ctx := context.Background()

	_, err := f.Complete(ctx, "", "Shop")
	tester.ErrIs(t, err, ErrUnknownToken)

	p := f.Begin(ctx)
	_, err = f.Complete(ctx, "forged", "Shop")
	tester.ErrIs(t, err, ErrUnknownToken)

	st, err := f.Complete(ctx, p.Token, "   ")
	tester.ErrIs(t, err, ErrEmptyShop)
	tester.Eq(t, st.State, StateConnecting, "blank name keeps the attempt open")

	*now = now.Add(2 * time.Minute)
	st, err = f.Complete(ctx, p.Token, "Shop")
	tester.ErrIs(t, err, ErrTokenExpired)
	tester.Eq(t, st.State, StateIdle)
}

func TestBeginReplacesPendingAttempt(t *testing.T) {
	f, _, _ := newFlow(t)
	ctx := context.Background()
	first := f.Begin(ctx)
	second := f.Begin(ctx)
	tester.True(t, first.Token != second.Token)

	_, err := f.Complete(ctx, first.Token, "Shop")
	tester.ErrIs(t, err, ErrUnknownToken)
	_, err = f.Complete(ctx, second.Token, "Shop")
	tester.NoErr(t, err)
}

func TestReconnectKeepsCurrentShopVisible(t *testing.T) {
	f, _, _ := newFlow(t)
	ctx := context.Background()
	p := f.Begin(ctx)
	_, err := f.Complete(ctx, p.Token, "First")
	tester.NoErr(t, err)

	f.Begin(ctx)
	st := f.Status(ctx)
	tester.Eq(t, st.State, StateConnecting)
	tester.Eq(t, st.ShopName, "First")
}
