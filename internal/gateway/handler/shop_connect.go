package handler

import (
	"context"
	"net/http"

	"marketlens/internal/shopconnect"
)

type CompleteConnectRequest struct {
	Token    string `json:"token"`
	ShopName string `json:"shop_name"`
}

func (h *Handler) registerShopConnect(mux *http.ServeMux) {
	unary(h, mux, procedure(ShopConnectServiceName, "BeginConnect"), h.BeginConnect)
	unary(h, mux, procedure(ShopConnectServiceName, "CompleteConnect"), h.CompleteConnect)
	unary(h, mux, procedure(ShopConnectServiceName, "GetConnection"), h.GetConnection)
	unary(h, mux, procedure(ShopConnectServiceName, "Disconnect"), h.Disconnect)
}

func (h *Handler) BeginConnect(ctx context.Context, _ *Empty) (*shopconnect.Pending, error) {
	p := h.flow.Begin(ctx)
	return &p, nil
}

func (h *Handler) CompleteConnect(ctx context.Context, req *CompleteConnectRequest) (*shopconnect.Status, error) {
	st, err := h.flow.Complete(ctx, req.Token, req.ShopName)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (h *Handler) GetConnection(ctx context.Context, _ *Empty) (*shopconnect.Status, error) {
	st := h.flow.Status(ctx)
	return &st, nil
}

func (h *Handler) Disconnect(ctx context.Context, _ *Empty) (*shopconnect.Status, error) {
	if err := h.flow.Disconnect(ctx); err != nil {
		return nil, err
	}
	st := h.flow.Status(ctx)
	return &st, nil
}
