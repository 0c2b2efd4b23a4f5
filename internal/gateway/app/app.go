// Package app wires configuration into the running services. The API
// server and the CLI share it.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"marketlens/internal/analysis"
	"marketlens/internal/collection"
	"marketlens/internal/gateway/config"
	"marketlens/internal/gateway/handler"
	"marketlens/internal/gateway/server"
	"marketlens/internal/llmclient"
	"marketlens/internal/logging"
	"marketlens/internal/shopconnect"
)

type App struct {
	Config      *config.Config
	Collections *collection.Store
	Gateway     *analysis.Gateway
	ShopConnect *shopconnect.Flow

	log     *zap.Logger
	client  llmclient.Client
	backend *backend
	server  *server.Server
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	log := logging.OrNop(logger)

	be, err := openBackend(ctx, cfg.Store, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection store: %w", err)
	}
	client, err := llmclient.New(ctx, llmclient.Options{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		Timeout:  cfg.LLM.Timeout,
		RPS:      cfg.LLM.RPS,
		Burst:    cfg.LLM.Burst,
		Logger:   log.Named("llm"),
	})
	if err != nil {
		_ = be.close()
		return nil, fmt.Errorf("failed to initialize llm client: %w", err)
	}
	log.Info("llm client ready", zap.String("client", client.Name()))

	store := collection.New(be, cfg.Store.Namespace, log.Named("collection"))
	return &App{
		Config:      cfg,
		Collections: store,
		Gateway:     analysis.New(client, log.Named("analysis")),
		ShopConnect: shopconnect.New(store, cfg.ConnectTokenTTL, log.Named("shopconnect")),
		log:         log,
		client:      client,
		backend:     be,
	}, nil
}

// Handler exposes the app over Connect and the bulk websocket.
func (a *App) Handler() *handler.Handler {
	return handler.New(a.Gateway, a.Collections, a.ShopConnect, a.log.Named("handler"))
}

func (a *App) Start() error {
	if a.server == nil {
		a.server = server.New(a.Config.Port, server.NewMux(a.Handler(), a.Config.CORSOrigins), a.log)
	}
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Close releases the model client and the collection backend.
func (a *App) Close() error {
	return errors.Join(a.client.Close(), a.backend.close())
}
