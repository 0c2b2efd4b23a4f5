package handler

import (
	"context"
	"net/http"

	"marketlens/internal/collection"
	"marketlens/internal/types"
)

type ListFavoritesRequest struct {
	Kind string `json:"kind"`
}

type ListFavoritesResponse struct {
	Favorites []collection.Favorite `json:"favorites"`
}

type ToggleKeywordFavoriteRequest struct {
	Keyword  string                `json:"keyword"`
	Analysis types.KeywordAnalysis `json:"analysis"`
}

type ToggleShopFavoriteRequest struct {
	Shop types.ShopAnalysis `json:"shop"`
}

type ToggleProductFavoriteRequest struct {
	Product types.ProductAnalysis `json:"product"`
}

// ToggleFavoriteResponse reports the membership after the toggle.
type ToggleFavoriteResponse struct {
	Favorite bool `json:"favorite"`
}

type RemoveFavoriteRequest struct {
	Kind string `json:"kind"`
	Key  string `json:"key"`
}

type Empty struct{}

func (h *Handler) registerFavorites(mux *http.ServeMux) {
	unary(h, mux, procedure(FavoriteServiceName, "ListFavorites"), h.ListFavorites)
	unary(h, mux, procedure(FavoriteServiceName, "ToggleKeywordFavorite"), h.ToggleKeywordFavorite)
	unary(h, mux, procedure(FavoriteServiceName, "ToggleShopFavorite"), h.ToggleShopFavorite)
	unary(h, mux, procedure(FavoriteServiceName, "ToggleProductFavorite"), h.ToggleProductFavorite)
	unary(h, mux, procedure(FavoriteServiceName, "RemoveFavorite"), h.RemoveFavorite)
}

func (h *Handler) ListFavorites(ctx context.Context, req *ListFavoritesRequest) (*ListFavoritesResponse, error) {
	kind, err := types.ParseFavoriteKind(req.Kind)
	if err != nil {
		return nil, invalidf("%v", err)
	}
	favs, err := h.store.ListFavorites(ctx, kind)
	if err != nil {
		return nil, err
	}
	return &ListFavoritesResponse{Favorites: favs}, nil
}

func (h *Handler) ToggleKeywordFavorite(ctx context.Context, req *ToggleKeywordFavoriteRequest) (*ToggleFavoriteResponse, error) {
	on, err := h.store.ToggleKeywordFavorite(ctx, req.Keyword, req.Analysis)
	if err != nil {
		return nil, err
	}
	return &ToggleFavoriteResponse{Favorite: on}, nil
}

func (h *Handler) ToggleShopFavorite(ctx context.Context, req *ToggleShopFavoriteRequest) (*ToggleFavoriteResponse, error) {
	on, err := h.store.ToggleShopFavorite(ctx, req.Shop)
	if err != nil {
		return nil, err
	}
	return &ToggleFavoriteResponse{Favorite: on}, nil
}

func (h *Handler) ToggleProductFavorite(ctx context.Context, req *ToggleProductFavoriteRequest) (*ToggleFavoriteResponse, error) {
	on, err := h.store.ToggleProductFavorite(ctx, req.Product)
	if err != nil {
		return nil, err
	}
	return &ToggleFavoriteResponse{Favorite: on}, nil
}

func (h *Handler) RemoveFavorite(ctx context.Context, req *RemoveFavoriteRequest) (*Empty, error) {
	kind, err := types.ParseFavoriteKind(req.Kind)
	if err != nil {
		return nil, invalidf("%v", err)
	}
	if err := h.store.RemoveFavorite(ctx, kind, req.Key); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

type ListKeywordListsResponse struct {
	Lists []types.KeywordList `json:"lists"`
}

type CreateKeywordListRequest struct {
	Name string `json:"name"`
}

type KeywordListResponse struct {
	List types.KeywordList `json:"list"`
}

type DeleteKeywordListRequest struct {
	ID string `json:"id"`
}

type KeywordRequest struct {
	ListID  string `json:"list_id"`
	Keyword string `json:"keyword"`
}

func (h *Handler) registerKeywordLists(mux *http.ServeMux) {
	unary(h, mux, procedure(KeywordListServiceName, "ListKeywordLists"), h.ListKeywordLists)
	unary(h, mux, procedure(KeywordListServiceName, "CreateKeywordList"), h.CreateKeywordList)
	unary(h, mux, procedure(KeywordListServiceName, "DeleteKeywordList"), h.DeleteKeywordList)
	unary(h, mux, procedure(KeywordListServiceName, "AddKeyword"), h.AddKeyword)
	unary(h, mux, procedure(KeywordListServiceName, "RemoveKeyword"), h.RemoveKeyword)
}

func (h *Handler) ListKeywordLists(ctx context.Context, _ *Empty) (*ListKeywordListsResponse, error) {
	return &ListKeywordListsResponse{Lists: h.store.KeywordLists(ctx)}, nil
}

func (h *Handler) CreateKeywordList(ctx context.Context, req *CreateKeywordListRequest) (*KeywordListResponse, error) {
	l, err := h.store.CreateList(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	return &KeywordListResponse{List: l}, nil
}

func (h *Handler) DeleteKeywordList(ctx context.Context, req *DeleteKeywordListRequest) (*Empty, error) {
	if err := h.store.DeleteList(ctx, req.ID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (h *Handler) AddKeyword(ctx context.Context, req *KeywordRequest) (*KeywordListResponse, error) {
	l, err := h.store.AddKeyword(ctx, req.ListID, req.Keyword)
	if err != nil {
		return nil, err
	}
	return &KeywordListResponse{List: l}, nil
}

func (h *Handler) RemoveKeyword(ctx context.Context, req *KeywordRequest) (*KeywordListResponse, error) {
	l, err := h.store.RemoveKeyword(ctx, req.ListID, req.Keyword)
	if err != nil {
		return nil, err
	}
	return &KeywordListResponse{List: l}, nil
}
