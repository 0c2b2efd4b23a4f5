// Package shopconnect models linking an Etsy shop as an explicit state
// machine: Idle -> Connecting -> Connected. A connection attempt is started
// with Begin and finished by an external callback carrying the one-time
// state token.
package shopconnect

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"marketlens/internal/logging"
)

type State string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateConnected  State = "connected"
)

const DefaultTokenTTL = 10 * time.Minute

var (
	ErrUnknownToken = errors.New("shopconnect: unknown state token")
	ErrTokenExpired = errors.New("shopconnect: state token expired")
	ErrEmptyShop    = errors.New("shopconnect: shop name is empty")
)

// ShopRecorder persists the connected shop name.
type ShopRecorder interface {
	ConnectedShop(ctx context.Context) (string, bool)
	SetConnectedShop(ctx context.Context, name string) error
	ClearConnectedShop(ctx context.Context) error
}

// Status is a snapshot of the flow. ShopName is set whenever a shop is
// stored, including while a reconnect is in progress.
type Status struct {
	State     State     `json:"state"`
	ShopName  string    `json:"shop_name,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Pending is handed to the caller by Begin; Token must come back through
// Complete before ExpiresAt.
type Pending struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Flow struct {
	shops ShopRecorder
	ttl   time.Duration
	log   *zap.Logger
	now   func() time.Time

	mu      sync.Mutex
	pending *Pending
}

func New(shops ShopRecorder, ttl time.Duration, logger *zap.Logger) *Flow {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Flow{shops: shops, ttl: ttl, log: logging.OrNop(logger), now: time.Now}
}

// Begin starts a connection attempt, replacing any attempt in progress.
func (f *Flow) Begin(_ context.Context) Pending {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := Pending{Token: uuid.NewString(), ExpiresAt: f.now().Add(f.ttl).UTC()}
	f.pending = &p
	f.log.Info("shop connect started", zap.Time("expires_at", p.ExpiresAt))
	return p
}

// Complete finishes the attempt identified by token and stores the shop
// name. The token is consumed on success and on expiry.
func (f *Flow) Complete(ctx context.Context, token, shopName string) (Status, error) {
	shopName = strings.TrimSpace(shopName)
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pending == nil || token == "" || f.pending.Token != token {
		return f.statusLocked(ctx), ErrUnknownToken
	}
	if f.now().After(f.pending.ExpiresAt) {
		f.pending = nil
		return f.statusLocked(ctx), ErrTokenExpired
	}
	if shopName == "" {
		return f.statusLocked(ctx), ErrEmptyShop
	}
	if err := f.shops.SetConnectedShop(ctx, shopName); err != nil {
		return f.statusLocked(ctx), err
	}
	f.pending = nil
	f.log.Info("shop connected", zap.String("shop", shopName))
	return f.statusLocked(ctx), nil
}

func (f *Flow) Status(ctx context.Context) Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusLocked(ctx)
}

func (f *Flow) statusLocked(ctx context.Context) Status {
	name, connected := f.shops.ConnectedShop(ctx)
	if f.pending != nil && !f.now().After(f.pending.ExpiresAt) {
		return Status{State: StateConnecting, ShopName: name, ExpiresAt: f.pending.ExpiresAt}
	}
	if connected {
		return Status{State: StateConnected, ShopName: name}
	}
	return Status{State: StateIdle}
}

// Disconnect cancels any attempt and forgets the stored shop.
func (f *Flow) Disconnect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = nil
	if err := f.shops.ClearConnectedShop(ctx); err != nil {
		return err
	}
	f.log.Info("shop disconnected")
	return nil
}
