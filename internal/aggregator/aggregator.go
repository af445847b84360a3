// Package aggregator implements the HTTP-based QuoteAdapter family:
// source-pinned meta-aggregator quotes and a decimal-unit venue API
// variant, both satisfying arbscan.QuoteAdapter.
package aggregator

import (
	"context"
	"encoding/json"
	"log"
	"math/big"
	"net/http"
	"net/url"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-retryablehttp"

	"arbscan"
)

// Adapter is the 0x-style meta-aggregator QuoteAdapter: one instance is
// pinned to exactly one protocol source, forcing single-venue pricing so
// the Scanner can tell leg A and leg B truly price on different venues.
type Adapter struct {
	client      *retryablehttp.Client
	baseURL     string
	apiKey      string
	bearerToken string
	source      string
}

// NewAdapter builds an Adapter pinned to source (e.g. "Uniswap_V3").
// baseURL is the aggregator's API root. apiKey and bearerToken may both
// be empty; when both are set, apiKey (the vendor's own header) takes
// precedence and bearerToken is left unused for that request.
func NewAdapter(baseURL, apiKey, bearerToken, source string) *Adapter {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.Logger = nil // the vendor's default retry logging is noisy; adapter failures are logged discriminated below instead

	return &Adapter{client: client, baseURL: baseURL, apiKey: apiKey, bearerToken: bearerToken, source: source}
}

type aggregatorQuoteResponse struct {
	BuyAmount string `json:"buyAmount"`
	Gas       string `json:"gas"`
	GasPrice  string `json:"gasPrice"`
	Sources   []struct {
		Name       string `json:"name"`
		Proportion string `json:"proportion"`
	} `json:"sources"`
}

// Quote implements arbscan.QuoteAdapter. Per §7, every transport, parse,
// or protocol error returns nil; nothing here ever propagates an error
// to the Scanner.
func (a *Adapter) Quote(ctx context.Context, sell, buy common.Address, amountIn *big.Int) *arbscan.Quote {
	u, err := url.Parse(a.baseURL + "/swap/v1/quote")
	if err != nil {
		log.Printf("aggregator %s: bad base url: %v", a.source, err)
		return nil
	}

	q := u.Query()
	q.Set("sellToken", sell.Hex())
	q.Set("buyToken", buy.Hex())
	q.Set("sellAmount", amountIn.String())
	q.Set("slippagePercentage", "0.001")
	q.Set("skipValidation", "true")
	q.Set("includedSources", a.source)
	u.RawQuery = q.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		log.Printf("aggregator %s: build request: %v", a.source, err)
		return nil
	}
	req.Header.Set("Accept", "application/json")
	if a.apiKey != "" {
		req.Header.Set("0x-api-key", a.apiKey)
	} else if a.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+a.bearerToken)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		log.Printf("aggregator %s: request failed: %v", a.source, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("aggregator %s: unexpected status %d", a.source, resp.StatusCode)
		return nil
	}

	var body aggregatorQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Printf("aggregator %s: decode response: %v", a.source, err)
		return nil
	}

	buyAmount, ok := new(big.Int).SetString(body.BuyAmount, 10)
	if !ok || buyAmount.Sign() <= 0 {
		return nil
	}

	quote := &arbscan.Quote{
		BuyAmount: buyAmount,
		Protocol:  a.source,
		Meta:      map[string]any{"sources": body.Sources},
	}
	if gasUnits, ok := new(big.Int).SetString(body.Gas, 10); ok {
		g := gasUnits.Uint64()
		quote.GasUnits = &g
	}
	if gasPrice, ok := new(big.Int).SetString(body.GasPrice, 10); ok {
		quote.GasPrice = gasPrice
	}
	return quote
}
