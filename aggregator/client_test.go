package aggregator

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raykavin/pairwatch/core"
	"github.com/raykavin/pairwatch/logger"
	zerologadapter "github.com/raykavin/pairwatch/logger/zerolog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	tokenListFixture = `{"data":[
		{"address":"So11111","symbol":"SOL","name":"Wrapped SOL","decimals":9},
		{"address":"EPjFW","symbol":"USDC","name":"USD Coin","decimals":6}
	]}`

	pairsFixture = `[
		{"baseToken":{"address":"So11111","symbol":"SOL"},"volume24h":"125000.5",
		 "priceUsd":23.42,"liquidity":{"usd":"900000"},"dexes":["Orca"]},
		{"baseToken":{"address":"EPjFW","symbol":"USDC"},"volume24h":"oops",
		 "priceUsd":1.0,"liquidity":{"usd":5000000},"dexes":["Raydium","Orca"]}
	]`

	tokenInfoFixture = `{"name":"Wrapped SOL","symbol":"SOL","holder_count":120345,"market_cap":"10500000000"}`
)

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	l := zerolog.New(io.Discard)
	return zerologadapter.NewAdapter(&l)
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(core.ScannerSettings{
		TokenListURL: server.URL + "/token-list",
		PairsURL:     server.URL + "/pairs",
		TokenInfoURL: server.URL + "/tokens",
	}, testLogger(t))
}

func TestClient_TokenList(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token-list", r.URL.Path)
		io.WriteString(w, tokenListFixture)
	}))

	tokens, err := client.TokenList(context.Background())
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "SOL", tokens[0].Symbol)
	assert.Equal(t, "EPjFW", tokens[1].Address)
}

func TestClient_Pairs(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pairs", r.URL.Path)
		io.WriteString(w, pairsFixture)
	}))

	pairs, err := client.Pairs(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	assert.Equal(t, 125000.5, pairs[0].Volume24h.Float64())
	assert.Equal(t, 900000.0, pairs[0].Liquidity.USD.Float64())

	// Malformed volume decodes to zero instead of failing the list.
	assert.Zero(t, pairs[1].Volume24h.Float64())
	assert.Equal(t, []string{"Raydium", "Orca"}, pairs[1].Dexes)
}

func TestClient_PairsServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Pairs(context.Background())
	assert.ErrorContains(t, err, "unexpected status 500")
}

func TestClient_TokenInfo(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tokens/So11111", r.URL.Path)
		io.WriteString(w, tokenInfoFixture)
	}))

	info, err := client.TokenInfo(context.Background(), "So11111")
	require.NoError(t, err)
	require.False(t, info.Empty())
	assert.Equal(t, 120345, info.HolderCount)
	assert.Equal(t, 10500000000.0, info.MarketCap.Float64())
}

func TestClient_TokenInfoNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	info, err := client.TokenInfo(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(core.ScannerSettings{}, testLogger(t))
	assert.Equal(t, DefaultTokenListURL, client.tokenListURL)
	assert.Equal(t, DefaultPairsURL, client.pairsURL)
	assert.Equal(t, DefaultTokenInfoURL, client.tokenInfoURL)
}
