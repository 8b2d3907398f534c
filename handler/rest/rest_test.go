package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dsc/core"
	"dsc/handler/render"
	"dsc/service/engine"
	"dsc/service/feed"
	"dsc/service/oracle"
	"dsc/service/token"
	"dsc/service/vault"
	"dsc/store/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const engineID = "dsc-engine"

type testServer struct {
	handler http.Handler
	feed    *feed.Static
}

func newTestServer(t *testing.T) *testServer {
	assets, err := core.NewAssetSet([]*core.Asset{
		{ID: "weth", Symbol: "WETH", Decimals: 18, FeedID: "ETH-USD"},
		{ID: "wbtc", Symbol: "WBTC", Decimals: 8, FeedID: "BTC-USD"},
	})
	require.Nil(t, err)

	state := memory.New()
	for _, a := range assets.List() {
		require.Nil(t, state.Assets().Save(context.Background(), a))
	}
	prices := feed.NewStatic()
	prices.Set("ETH-USD", decimal.NewFromInt(2000), time.Now())
	prices.Set("BTC-USD", decimal.NewFromInt(30000), time.Now())

	tokenSrv := token.New(state.Tokens(), state, []string{engineID}, []string{engineID})
	engineSrv := engine.New(
		engine.Config{EngineID: engineID},
		assets,
		oracle.New(assets, prices),
		state.Collaterals(),
		state.Debts(),
		state.Transactions(),
		tokenSrv,
		vault.New(state.Transfers()),
		state,
	)

	return &testServer{
		handler: render.WrapResponse(true)(Handle(engineSrv, state.Assets(), tokenSrv, state.Transactions())),
		feed:    prices,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string) (int, map[string]interface{}) {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)

	resp := map[string]interface{}{}
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func data(resp map[string]interface{}) map[string]interface{} {
	v, _ := resp["data"].(map[string]interface{})
	return v
}

func TestAccountLifecycle(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodPost, "/accounts/alice/deposit-and-mint",
		`{"asset_id":"weth","collateral":"10000000000000000000","dsc":"8000000000000000000000"}`)
	require.Equal(t, http.StatusOK, code, resp)
	assert.NotEmpty(t, data(resp)["trace_id"])

	code, resp = s.do(t, http.MethodGet, "/accounts/alice/health-factor", "")
	require.Equal(t, http.StatusOK, code)
	hf := data(resp)
	assert.Equal(t, "1250000000000000000", hf["value"])
	assert.Equal(t, true, hf["healthy"])

	code, resp = s.do(t, http.MethodGet, "/accounts/alice", "")
	require.Equal(t, http.StatusOK, code)
	account := data(resp)
	assert.Equal(t, "alice", account["user_id"])
	assert.Len(t, account["collaterals"], 1)

	code, resp = s.do(t, http.MethodGet, "/accounts/alice/balance", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "8000000000000000000000", data(resp)["value"])

	code, resp = s.do(t, http.MethodPost, "/accounts/alice/mint", `{"amount":"2000000000000000000001"}`)
	assert.Equal(t, http.StatusPreconditionFailed, code)
	assert.Equal(t, float64(core.ErrMintBreaksHealthFactor), resp["code"])

	code, _ = s.do(t, http.MethodPost, "/accounts/alice/redeem-for-dsc",
		`{"asset_id":"weth","collateral":"2000000000000000000","dsc":"2000000000000000000000"}`)
	require.Equal(t, http.StatusOK, code)

	code, resp = s.do(t, http.MethodGet, "/accounts/alice/transactions?limit=10", "")
	require.Equal(t, http.StatusOK, code)
	list, _ := resp["data"].([]interface{})
	require.Len(t, list, 4)

	first, _ := list[0].(map[string]interface{})
	code, resp = s.do(t, http.MethodGet, "/transactions/"+first["trace_id"].(string), "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, first["id"], data(resp)["id"])

	code, _ = s.do(t, http.MethodGet, "/transactions/unknown", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestLiquidation(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, http.MethodPost, "/accounts/alice/deposit-and-mint",
		`{"asset_id":"weth","collateral":"10000000000000000000","dsc":"8000000000000000000000"}`)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodPost, "/accounts/bob/deposit-and-mint",
		`{"asset_id":"wbtc","collateral":"100000000","dsc":"12000000000000000000000"}`)
	require.Equal(t, http.StatusOK, code)

	body := `{"liquidator":"bob","user_id":"alice","asset_id":"weth","debt_to_cover":"4000000000000000000000"}`
	code, resp := s.do(t, http.MethodPost, "/liquidations", body)
	assert.Equal(t, http.StatusPreconditionFailed, code)
	assert.Equal(t, float64(core.ErrPositionIsHealthy), resp["code"])

	s.feed.Set("ETH-USD", decimal.NewFromInt(1500), time.Now())

	code, resp = s.do(t, http.MethodPost, "/liquidations", body)
	require.Equal(t, http.StatusOK, code, resp)
	l := data(resp)
	seized, _ := l["seized"].(map[string]interface{})
	assert.Equal(t, "2933333333333333332", seized["value"])
	end, _ := l["end_health_factor"].(map[string]interface{})
	assert.Equal(t, "1325000000000000000", end["value"])
}

func TestBadRequests(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodPost, "/accounts/alice/deposit", `{"asset_id":"weth"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, float64(100001), resp["code"])

	code, resp = s.do(t, http.MethodPost, "/accounts/alice/deposit", `{"asset_id":"weth","amount":"0"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, float64(core.ErrInvalidAmount), resp["code"])

	code, resp = s.do(t, http.MethodPost, "/accounts/alice/deposit", `{"asset_id":"doge","amount":"10"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, float64(core.ErrUnsupportedAsset), resp["code"])

	code, _ = s.do(t, http.MethodGet, "/nothing-here", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAssetViews(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodGet, "/assets", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp["data"], 2)

	code, resp = s.do(t, http.MethodGet, "/assets/wbtc", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(8), data(resp)["decimals"])

	code, resp = s.do(t, http.MethodGet, "/assets/doge", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, float64(core.ErrUnsupportedAsset), resp["code"])

	code, resp = s.do(t, http.MethodGet, "/assets/wbtc/usd-value?amount=100000000", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "30000000000000000000000", data(resp)["value"])

	code, resp = s.do(t, http.MethodGet, "/assets/weth/token-amount?usd=1000000000000000000000", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "500000000000000000", data(resp)["value"])

	code, resp = s.do(t, http.MethodGet, "/health-factor?debt=0&collateral_value=100", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, data(resp)["infinite"])

	s.feed.Set("ETH-USD", decimal.NewFromInt(2000), time.Now().Add(-4*time.Hour))
	code, resp = s.do(t, http.MethodGet, "/assets/weth/usd-value?amount=1", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, float64(core.ErrStalePrice), resp["code"])
}
