package handler

import (
	"context"
	"net/http"

	"marketlens/internal/profit"
)

func (h *Handler) registerProfit(mux *http.ServeMux) {
	unary(h, mux, procedure(ProfitServiceName, "Calculate"), h.CalculateProfit)
}

func (h *Handler) CalculateProfit(_ context.Context, req *profit.Inputs) (*profit.Breakdown, error) {
	if req.SalePrice < 0 || req.ShippingCharge < 0 || req.ItemCost < 0 || req.ShippingCost < 0 {
		return nil, invalidf("amounts must not be negative")
	}
	b := profit.Calculate(*req)
	return &b, nil
}
