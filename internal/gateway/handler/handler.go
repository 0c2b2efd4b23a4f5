package handler

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"go.uber.org/zap"

	"marketlens/internal/analysis"
	"marketlens/internal/collection"
	"marketlens/internal/logging"
	"marketlens/internal/shopconnect"
)

const (
	AnalysisServiceName    = "marketlens.v1.AnalysisService"
	FavoriteServiceName    = "marketlens.v1.FavoriteService"
	KeywordListServiceName = "marketlens.v1.KeywordListService"
	ShopConnectServiceName = "marketlens.v1.ShopConnectService"
	ProfitServiceName      = "marketlens.v1.ProfitService"
)

// Handler exposes the analysis gateway and the saved collections over
// Connect unary procedures and a bulk websocket.
type Handler struct {
	gateway *analysis.Gateway
	store   *collection.Store
	flow    *shopconnect.Flow
	log     *zap.Logger
}

func New(gateway *analysis.Gateway, store *collection.Store, flow *shopconnect.Flow, logger *zap.Logger) *Handler {
	return &Handler{
		gateway: gateway,
		store:   store,
		flow:    flow,
		log:     logging.OrNop(logger),
	}
}

// Register mounts every procedure and the bulk websocket on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	h.registerAnalysis(mux)
	h.registerFavorites(mux)
	h.registerKeywordLists(mux)
	h.registerShopConnect(mux)
	h.registerProfit(mux)
	mux.HandleFunc("/ws/bulk", h.HandleBulkSocket)
}

func procedure(service, method string) string {
	return "/" + service + "/" + method
}

// unary adapts a plain request/response function to a Connect handler that
// speaks JSON.
func unary[Req, Res any](h *Handler, mux *http.ServeMux, path string, fn func(context.Context, *Req) (*Res, error)) {
	mux.Handle(path, connect.NewUnaryHandler(path,
		func(ctx context.Context, req *connect.Request[Req]) (*connect.Response[Res], error) {
			res, err := fn(ctx, req.Msg)
			if err != nil {
				cerr := toConnectError(err)
				if codeOf(cerr) == connect.CodeInternal {
					h.log.Warn("rpc failed", zap.String("procedure", path), zap.Error(err))
				}
				return nil, cerr
			}
			return connect.NewResponse(res), nil
		},
		connect.WithCodec(jsonCodec{}),
	))
}
