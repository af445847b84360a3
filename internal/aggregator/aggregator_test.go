package aggregator

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapterQuoteParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Uniswap_V3", r.URL.Query().Get("includedSources"))
		assert.Equal(t, "1000000000", r.URL.Query().Get("sellAmount"))
		json.NewEncoder(w).Encode(aggregatorQuoteResponse{
			BuyAmount: "300000000000000000",
			Gas:       "250000",
			GasPrice:  "1000000000",
		})
	}))
	defer server.Close()

	adapter := NewAdapter(server.URL, "", "", "Uniswap_V3")
	quote := adapter.Quote(context.Background(), common.HexToAddress("0x1"), common.HexToAddress("0x2"), big.NewInt(1000000000))

	require.NotNil(t, quote)
	assert.Equal(t, "Uniswap_V3", quote.Protocol)
	assert.Equal(t, "300000000000000000", quote.BuyAmount.String())
	require.NotNil(t, quote.GasUnits)
	assert.Equal(t, uint64(250000), *quote.GasUnits)
}

func TestAdapterQuoteReturnsNilOnNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := NewAdapter(server.URL, "", "", "Uniswap_V3")
	adapter.client.RetryMax = 0
	quote := adapter.Quote(context.Background(), common.HexToAddress("0x1"), common.HexToAddress("0x2"), big.NewInt(1000000000))
	assert.Nil(t, quote)
}

func TestAdapterQuoteTreatsZeroBuyAmountAsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(aggregatorQuoteResponse{BuyAmount: "0"})
	}))
	defer server.Close()

	adapter := NewAdapter(server.URL, "", "", "Uniswap_V3")
	quote := adapter.Quote(context.Background(), common.HexToAddress("0x1"), common.HexToAddress("0x2"), big.NewInt(1000000000))
	assert.Nil(t, quote)
}

func TestAdapterQuoteUsesBearerTokenWhenNoAPIKey(t *testing.T) {
	var gotAuth, gotAPIKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("0x-api-key")
		json.NewEncoder(w).Encode(aggregatorQuoteResponse{BuyAmount: "1"})
	}))
	defer server.Close()

	adapter := NewAdapter(server.URL, "", "tok123", "Uniswap_V3")
	adapter.Quote(context.Background(), common.HexToAddress("0x1"), common.HexToAddress("0x2"), big.NewInt(1000000000))

	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, "", gotAPIKey)
}

func TestAdapterQuotePrefersAPIKeyOverBearerToken(t *testing.T) {
	var gotAuth, gotAPIKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("0x-api-key")
		json.NewEncoder(w).Encode(aggregatorQuoteResponse{BuyAmount: "1"})
	}))
	defer server.Close()

	adapter := NewAdapter(server.URL, "key456", "tok123", "Uniswap_V3")
	adapter.Quote(context.Background(), common.HexToAddress("0x1"), common.HexToAddress("0x2"), big.NewInt(1000000000))

	assert.Equal(t, "key456", gotAPIKey)
	assert.Equal(t, "", gotAuth)
}
