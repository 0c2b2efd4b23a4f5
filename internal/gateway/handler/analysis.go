package handler

import (
	"context"
	"net/http"
	"strings"

	"marketlens/internal/analysis"
	"marketlens/internal/types"
)

type AnalyzeKeywordRequest struct {
	Keyword string `json:"keyword"`
}

type AnalyzeKeywordResponse struct {
	Keyword  string                 `json:"keyword"`
	Analysis *types.KeywordAnalysis `json:"analysis"`
	Favorite bool                   `json:"favorite"`
}

type AnalyzeShopRequest struct {
	ShopName string `json:"shop_name"`
}

type AnalyzeShopResponse struct {
	Analysis *types.ShopAnalysis `json:"analysis"`
	Favorite bool                `json:"favorite"`
}

type AnalyzeProductRequest struct {
	Product string `json:"product"`
}

type AnalyzeProductResponse struct {
	Analysis *types.ProductAnalysis `json:"analysis"`
	Favorite bool                   `json:"favorite"`
}

type AnalyzeRankRequest struct {
	Keyword string `json:"keyword"`
	Product string `json:"product"`
}

type AnalyzeRankResponse struct {
	Analysis *types.RankAnalysis `json:"analysis"`
}

// BulkAnalyzeKeywordsRequest takes either a keyword slice or newline
// separated text. Both are trimmed and deduplicated.
type BulkAnalyzeKeywordsRequest struct {
	Keywords []string `json:"keywords"`
	Text     string   `json:"text"`
}

type BulkAnalyzeKeywordsResponse struct {
	Items []analysis.BulkItem `json:"items"`
}

type CompareKeywordsRequest struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

type CompareKeywordsResponse struct {
	Comparison analysis.Comparison      `json:"comparison"`
	Rows       []analysis.ComparisonRow `json:"rows"`
}

func (h *Handler) registerAnalysis(mux *http.ServeMux) {
	unary(h, mux, procedure(AnalysisServiceName, "AnalyzeKeyword"), h.AnalyzeKeyword)
	unary(h, mux, procedure(AnalysisServiceName, "AnalyzeShop"), h.AnalyzeShop)
	unary(h, mux, procedure(AnalysisServiceName, "AnalyzeProduct"), h.AnalyzeProduct)
	unary(h, mux, procedure(AnalysisServiceName, "AnalyzeRank"), h.AnalyzeRank)
	unary(h, mux, procedure(AnalysisServiceName, "BulkAnalyzeKeywords"), h.BulkAnalyzeKeywords)
	unary(h, mux, procedure(AnalysisServiceName, "CompareKeywords"), h.CompareKeywords)
}

func (h *Handler) AnalyzeKeyword(ctx context.Context, req *AnalyzeKeywordRequest) (*AnalyzeKeywordResponse, error) {
	if err := types.KeywordQuery(req.Keyword).Validate(); err != nil {
		return nil, err
	}
	keyword := strings.TrimSpace(req.Keyword)
	res := &AnalyzeKeywordResponse{Keyword: keyword, Analysis: h.gateway.AnalyzeKeyword(ctx, keyword)}
	if res.Analysis != nil {
		res.Favorite = h.store.IsFavorite(ctx, types.FavoriteKeywords, keyword)
	}
	return res, nil
}

func (h *Handler) AnalyzeShop(ctx context.Context, req *AnalyzeShopRequest) (*AnalyzeShopResponse, error) {
	if err := types.ShopQuery(req.ShopName).Validate(); err != nil {
		return nil, err
	}
	res := &AnalyzeShopResponse{Analysis: h.gateway.AnalyzeShop(ctx, req.ShopName)}
	if res.Analysis != nil {
		res.Favorite = h.store.IsFavorite(ctx, types.FavoriteShops, res.Analysis.ShopName)
	}
	return res, nil
}

func (h *Handler) AnalyzeProduct(ctx context.Context, req *AnalyzeProductRequest) (*AnalyzeProductResponse, error) {
	if err := types.ProductQuery(req.Product).Validate(); err != nil {
		return nil, err
	}
	res := &AnalyzeProductResponse{Analysis: h.gateway.AnalyzeProduct(ctx, req.Product)}
	if res.Analysis != nil {
		res.Favorite = h.store.IsFavorite(ctx, types.FavoriteProducts, res.Analysis.ProductConcept)
	}
	return res, nil
}

func (h *Handler) AnalyzeRank(ctx context.Context, req *AnalyzeRankRequest) (*AnalyzeRankResponse, error) {
	if err := types.RankQuery(req.Keyword, req.Product).Validate(); err != nil {
		return nil, err
	}
	return &AnalyzeRankResponse{Analysis: h.gateway.AnalyzeRank(ctx, req.Keyword, req.Product)}, nil
}

func (h *Handler) BulkAnalyzeKeywords(ctx context.Context, req *BulkAnalyzeKeywordsRequest) (*BulkAnalyzeKeywordsResponse, error) {
	keywords := bulkKeywords(req.Keywords, req.Text)
	if len(keywords) == 0 {
		return nil, invalidf("no keywords given")
	}
	return &BulkAnalyzeKeywordsResponse{Items: h.gateway.BulkKeywords(ctx, keywords, nil)}, nil
}

func (h *Handler) CompareKeywords(ctx context.Context, req *CompareKeywordsRequest) (*CompareKeywordsResponse, error) {
	first, second := strings.TrimSpace(req.First), strings.TrimSpace(req.Second)
	if first == "" || second == "" {
		return nil, invalidf("both keywords are required")
	}
	c := h.gateway.CompareKeywords(ctx, first, second)
	return &CompareKeywordsResponse{Comparison: c, Rows: c.Rows()}, nil
}

func bulkKeywords(keywords []string, text string) []string {
	if strings.TrimSpace(text) != "" {
		return analysis.ParseKeywordLines(text)
	}
	return analysis.ParseKeywordLines(strings.Join(keywords, "\n"))
}
