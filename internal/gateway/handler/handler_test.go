package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"marketlens/internal/analysis"
	"marketlens/internal/collection"
	snapshotrepo "marketlens/internal/gateway/repository/snapshot"
	"marketlens/internal/llmclient"
	"marketlens/internal/profit"
	"marketlens/internal/schema"
	"marketlens/internal/shopconnect"
	"marketlens/internal/types"
)

const failingKeyword = "zz-unreachable"

// failingOn answers like the fake client except for prompts that mention
// failingKeyword.
func failingOn(fake *llmclient.FakeClient) llmclient.Func {
	return func(ctx context.Context, prompt string, s *schema.Schema) (string, error) {
		if strings.Contains(prompt, failingKeyword) {
			return "", errors.New("connection reset")
		}
		return fake.GenerateStructured(ctx, prompt, s)
	}
}

type testEnv struct {
	srv   *httptest.Server
	fake  *llmclient.FakeClient
	store *collection.Store
}

func newEnv(t *testing.T, backend collection.Backend) *testEnv {
	t.Helper()
	if backend == nil {
		backend = snapshotrepo.NewMemoryStore()
	}
	log := zaptest.NewLogger(t)
	fake := llmclient.NewFakeClient()
	store := collection.New(backend, "test", log)
	h := New(analysis.New(failingOn(fake), log), store, shopconnect.New(store, time.Minute, log), log)

	mux := http.NewServeMux()
	h.Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, fake: fake, store: store}
}

func call[Req, Res any](t *testing.T, env *testEnv, service, method string, req *Req) (*Res, error) {
	t.Helper()
	client := connect.NewClient[Req, Res](env.srv.Client(), env.srv.URL+procedure(service, method), connect.WithCodec(jsonCodec{}))
	res, err := client.CallUnary(context.Background(), connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}

func TestAnalyzeKeywordReportsFavoriteStatus(t *testing.T) {
	env := newEnv(t, nil)

	res, err := call[AnalyzeKeywordRequest, AnalyzeKeywordResponse](t, env, AnalysisServiceName, "AnalyzeKeyword", &AnalyzeKeywordRequest{Keyword: " boho earrings "})
	require.NoError(t, err)
	require.NotNil(t, res.Analysis)
	assert.Equal(t, "boho earrings", res.Keyword)
	assert.False(t, res.Favorite)

	toggled, err := call[ToggleKeywordFavoriteRequest, ToggleFavoriteResponse](t, env, FavoriteServiceName, "ToggleKeywordFavorite",
		&ToggleKeywordFavoriteRequest{Keyword: res.Keyword, Analysis: *res.Analysis})
	require.NoError(t, err)
	assert.True(t, toggled.Favorite)

	res, err = call[AnalyzeKeywordRequest, AnalyzeKeywordResponse](t, env, AnalysisServiceName, "AnalyzeKeyword", &AnalyzeKeywordRequest{Keyword: "boho earrings"})
	require.NoError(t, err)
	assert.True(t, res.Favorite)
}

func TestUntrimmedKeywordFavoriteMatchesAnalysis(t *testing.T) {
	env := newEnv(t, nil)

	res, err := call[AnalyzeKeywordRequest, AnalyzeKeywordResponse](t, env, AnalysisServiceName, "AnalyzeKeyword", &AnalyzeKeywordRequest{Keyword: "boho earrings"})
	require.NoError(t, err)
	require.NotNil(t, res.Analysis)

	toggled, err := call[ToggleKeywordFavoriteRequest, ToggleFavoriteResponse](t, env, FavoriteServiceName, "ToggleKeywordFavorite",
		&ToggleKeywordFavoriteRequest{Keyword: "  boho earrings ", Analysis: *res.Analysis})
	require.NoError(t, err)
	assert.True(t, toggled.Favorite)

	res, err = call[AnalyzeKeywordRequest, AnalyzeKeywordResponse](t, env, AnalysisServiceName, "AnalyzeKeyword", &AnalyzeKeywordRequest{Keyword: " boho earrings"})
	require.NoError(t, err)
	assert.True(t, res.Favorite)
}

func TestBlankInputIsInvalidArgumentWithoutRemoteCall(t *testing.T) {
	env := newEnv(t, nil)

	_, err := call[AnalyzeKeywordRequest, AnalyzeKeywordResponse](t, env, AnalysisServiceName, "AnalyzeKeyword", &AnalyzeKeywordRequest{Keyword: "   "})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	_, err = call[AnalyzeShopRequest, AnalyzeShopResponse](t, env, AnalysisServiceName, "AnalyzeShop", &AnalyzeShopRequest{})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	_, err = call[AnalyzeRankRequest, AnalyzeRankResponse](t, env, AnalysisServiceName, "AnalyzeRank", &AnalyzeRankRequest{Keyword: "mug"})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	_, err = call[CompareKeywordsRequest, CompareKeywordsResponse](t, env, AnalysisServiceName, "CompareKeywords", &CompareKeywordsRequest{First: "mug"})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	_, err = call[BulkAnalyzeKeywordsRequest, BulkAnalyzeKeywordsResponse](t, env, AnalysisServiceName, "BulkAnalyzeKeywords", &BulkAnalyzeKeywordsRequest{Text: "\n \n"})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	assert.Equal(t, 0, env.fake.Calls())
}

func TestFailedAnalysisIsNullNotError(t *testing.T) {
	env := newEnv(t, nil)

	res, err := call[AnalyzeKeywordRequest, AnalyzeKeywordResponse](t, env, AnalysisServiceName, "AnalyzeKeyword", &AnalyzeKeywordRequest{Keyword: failingKeyword})
	require.NoError(t, err)
	assert.Nil(t, res.Analysis)
	assert.False(t, res.Favorite)
}

func TestAnalyzeShopProductAndRank(t *testing.T) {
	env := newEnv(t, nil)

	shop, err := call[AnalyzeShopRequest, AnalyzeShopResponse](t, env, AnalysisServiceName, "AnalyzeShop", &AnalyzeShopRequest{ShopName: "WillowAndWool"})
	require.NoError(t, err)
	require.NotNil(t, shop.Analysis)
	assert.Equal(t, "WillowAndWool", shop.Analysis.ShopName)

	product, err := call[AnalyzeProductRequest, AnalyzeProductResponse](t, env, AnalysisServiceName, "AnalyzeProduct", &AnalyzeProductRequest{Product: "Hand-thrown stoneware mug"})
	require.NoError(t, err)
	require.NotNil(t, product.Analysis)
	assert.Len(t, product.Analysis.HistoricalData.Sales, types.SeriesLength)

	rank, err := call[AnalyzeRankRequest, AnalyzeRankResponse](t, env, AnalysisServiceName, "AnalyzeRank", &AnalyzeRankRequest{Keyword: "stoneware mug", Product: "Hand-thrown stoneware mug"})
	require.NoError(t, err)
	require.NotNil(t, rank.Analysis)
	assert.NotEmpty(t, rank.Analysis.EstimatedRank)
}

func TestBulkAnalyzeKeywords(t *testing.T) {
	env := newEnv(t, nil)

	res, err := call[BulkAnalyzeKeywordsRequest, BulkAnalyzeKeywordsResponse](t, env, AnalysisServiceName, "BulkAnalyzeKeywords",
		&BulkAnalyzeKeywordsRequest{Text: "alpha\n" + failingKeyword + "\n\nalpha\ngamma\n"})
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, []string{"alpha", failingKeyword, "gamma"}, []string{res.Items[0].Keyword, res.Items[1].Keyword, res.Items[2].Keyword})
	assert.NotNil(t, res.Items[0].Analysis)
	assert.Nil(t, res.Items[1].Analysis)
	assert.NotNil(t, res.Items[2].Analysis)
}

func TestCompareKeywords(t *testing.T) {
	env := newEnv(t, nil)

	res, err := call[CompareKeywordsRequest, CompareKeywordsResponse](t, env, AnalysisServiceName, "CompareKeywords",
		&CompareKeywordsRequest{First: "linen apron", Second: failingKeyword})
	require.NoError(t, err)
	assert.False(t, res.Comparison.Complete)
	assert.NotNil(t, res.Comparison.First)
	assert.Nil(t, res.Comparison.Second)
	require.Len(t, res.Rows, 7)
	assert.Equal(t, "-", res.Rows[0].Second)
}

func TestFavoritesService(t *testing.T) {
	env := newEnv(t, nil)
	shop := types.ShopAnalysis{ShopName: "WillowAndWool"}

	_, err := call[ToggleShopFavoriteRequest, ToggleFavoriteResponse](t, env, FavoriteServiceName, "ToggleShopFavorite", &ToggleShopFavoriteRequest{Shop: shop})
	require.NoError(t, err)
	_, err = call[ToggleProductFavoriteRequest, ToggleFavoriteResponse](t, env, FavoriteServiceName, "ToggleProductFavorite",
		&ToggleProductFavoriteRequest{Product: types.ProductAnalysis{ProductConcept: "Linen apron"}})
	require.NoError(t, err)

	list, err := call[ListFavoritesRequest, ListFavoritesResponse](t, env, FavoriteServiceName, "ListFavorites", &ListFavoritesRequest{Kind: "shops"})
	require.NoError(t, err)
	require.Len(t, list.Favorites, 1)
	assert.Equal(t, "WillowAndWool", list.Favorites[0].Key)

	_, err = call[RemoveFavoriteRequest, Empty](t, env, FavoriteServiceName, "RemoveFavorite", &RemoveFavoriteRequest{Kind: "shops", Key: "WillowAndWool"})
	require.NoError(t, err)
	assert.Empty(t, env.store.FavoriteShops(context.Background()))
	assert.Len(t, env.store.FavoriteProducts(context.Background()), 1)

	_, err = call[ListFavoritesRequest, ListFavoritesResponse](t, env, FavoriteServiceName, "ListFavorites", &ListFavoritesRequest{Kind: "listings"})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestKeywordListService(t *testing.T) {
	env := newEnv(t, nil)

	_, err := call[CreateKeywordListRequest, KeywordListResponse](t, env, KeywordListServiceName, "CreateKeywordList", &CreateKeywordListRequest{Name: "  "})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	created, err := call[CreateKeywordListRequest, KeywordListResponse](t, env, KeywordListServiceName, "CreateKeywordList", &CreateKeywordListRequest{Name: "Spring"})
	require.NoError(t, err)
	id := created.List.ID

	added, err := call[KeywordRequest, KeywordListResponse](t, env, KeywordListServiceName, "AddKeyword", &KeywordRequest{ListID: id, Keyword: "tulip print"})
	require.NoError(t, err)
	assert.Equal(t, []string{"tulip print"}, added.List.Keywords)

	removed, err := call[KeywordRequest, KeywordListResponse](t, env, KeywordListServiceName, "RemoveKeyword", &KeywordRequest{ListID: id, Keyword: "tulip print"})
	require.NoError(t, err)
	assert.Empty(t, removed.List.Keywords)

	_, err = call[KeywordRequest, KeywordListResponse](t, env, KeywordListServiceName, "AddKeyword", &KeywordRequest{ListID: "missing", Keyword: "x"})
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = call[DeleteKeywordListRequest, Empty](t, env, KeywordListServiceName, "DeleteKeywordList", &DeleteKeywordListRequest{ID: id})
	require.NoError(t, err)
	lists, err := call[Empty, ListKeywordListsResponse](t, env, KeywordListServiceName, "ListKeywordLists", &Empty{})
	require.NoError(t, err)
	assert.Empty(t, lists.Lists)
}

func TestShopConnectService(t *testing.T) {
	env := newEnv(t, nil)

	pending, err := call[Empty, shopconnect.Pending](t, env, ShopConnectServiceName, "BeginConnect", &Empty{})
	require.NoError(t, err)
	require.NotEmpty(t, pending.Token)

	_, err = call[CompleteConnectRequest, shopconnect.Status](t, env, ShopConnectServiceName, "CompleteConnect", &CompleteConnectRequest{Token: "bogus", ShopName: "x"})
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	st, err := call[CompleteConnectRequest, shopconnect.Status](t, env, ShopConnectServiceName, "CompleteConnect", &CompleteConnectRequest{Token: pending.Token, ShopName: "WillowAndWool"})
	require.NoError(t, err)
	assert.Equal(t, shopconnect.StateConnected, st.State)

	st, err = call[Empty, shopconnect.Status](t, env, ShopConnectServiceName, "GetConnection", &Empty{})
	require.NoError(t, err)
	assert.Equal(t, "WillowAndWool", st.ShopName)

	st, err = call[Empty, shopconnect.Status](t, env, ShopConnectServiceName, "Disconnect", &Empty{})
	require.NoError(t, err)
	assert.Equal(t, shopconnect.StateIdle, st.State)
}

func TestProfitService(t *testing.T) {
	env := newEnv(t, nil)

	in := profit.DefaultInputs()
	b, err := call[profit.Inputs, profit.Breakdown](t, env, ProfitServiceName, "Calculate", &in)
	require.NoError(t, err)
	assert.InDelta(t, 16.7, b.Profit, 1e-9)

	in.SalePrice = -1
	_, err = call[profit.Inputs, profit.Breakdown](t, env, ProfitServiceName, "Calculate", &in)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

type brokenBackend struct{ *snapshotrepo.MemoryStore }

func (brokenBackend) Put(context.Context, string, []byte) error { return errors.New("disk full") }

func TestBackendFailureIsInternal(t *testing.T) {
	env := newEnv(t, brokenBackend{snapshotrepo.NewMemoryStore()})

	_, err := call[CreateKeywordListRequest, KeywordListResponse](t, env, KeywordListServiceName, "CreateKeywordList", &CreateKeywordListRequest{Name: "Spring"})
	assert.Equal(t, connect.CodeInternal, connect.CodeOf(err))
}

func TestPlainJSONRequest(t *testing.T) {
	env := newEnv(t, nil)

	resp, err := env.srv.Client().Post(env.srv.URL+procedure(AnalysisServiceName, "AnalyzeKeyword"), "application/json", strings.NewReader(`{"keyword":""}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "invalid_argument")
}

func TestBulkSocketStreamsInOrder(t *testing.T) {
	env := newEnv(t, nil)

	url := "ws" + strings.TrimPrefix(env.srv.URL, "http") + "/ws/bulk"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(bulkCommand{Type: bulkStart, Keywords: []string{"alpha", failingKeyword, "gamma"}}))

	var events []bulkEvent
	for {
		var ev bulkEvent
		require.NoError(t, conn.ReadJSON(&ev))
		events = append(events, ev)
		if ev.Type == bulkDone {
			break
		}
	}
	require.Len(t, events, 7)
	for i := 0; i < 3; i++ {
		processing, result := events[2*i], events[2*i+1]
		assert.Equal(t, bulkProcessing, processing.Type)
		assert.Equal(t, i, processing.Index)
		assert.Equal(t, 3, processing.Total)
		assert.Equal(t, bulkResult, result.Type)
		require.NotNil(t, result.Item)
		assert.Equal(t, i, result.Item.Index)
	}
	assert.NotNil(t, events[1].Item.Analysis)
	assert.Nil(t, events[3].Item.Analysis)
	assert.NotNil(t, events[5].Item.Analysis)
}

func TestBulkSocketRejectsEmptyStart(t *testing.T) {
	env := newEnv(t, nil)

	url := "ws" + strings.TrimPrefix(env.srv.URL, "http") + "/ws/bulk"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(bulkCommand{Type: bulkStart, Text: " \n "}))
	var ev bulkEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, bulkError, ev.Type)
	assert.Equal(t, 0, env.fake.Calls())
}
