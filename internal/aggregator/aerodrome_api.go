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
	"github.com/shopspring/decimal"

	"arbscan"
)

// AerodromeAPIAdapter is a second HTTP QuoteAdapter family: a
// quote-by-API venue whose query string takes decimal token units
// rather than integer base units, unlike Adapter in aggregator.go. It converts at
// its own boundary so the Scanner never needs to know the difference.
//
// Unlike Adapter, this venue's wire format is decimal-denominated, so
// it needs each token's decimals to convert at the boundary. decimals
// is keyed by token address and built once from configuration, letting
// one Adapter instance serve every configured pair — the same
// one-instance-per-source sharing the aggregator package's Adapter
// already relies on.
type AerodromeAPIAdapter struct {
	client   *retryablehttp.Client
	baseURL  string
	decimals map[common.Address]int
}

// NewAerodromeAPIAdapter builds an AerodromeAPIAdapter against baseURL,
// resolving each leg's decimals from decimals (typically every
// configured token, address -> decimals).
func NewAerodromeAPIAdapter(baseURL string, decimals map[common.Address]int) *AerodromeAPIAdapter {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.Logger = nil
	return &AerodromeAPIAdapter{client: client, baseURL: baseURL, decimals: decimals}
}

type aerodromeAPIResponse struct {
	AmountOut string `json:"amountOut"`
}

// Quote implements arbscan.QuoteAdapter.
func (a *AerodromeAPIAdapter) Quote(ctx context.Context, sell, buy common.Address, amountIn *big.Int) *arbscan.Quote {
	sellDecimals, ok := a.decimals[sell]
	if !ok {
		log.Printf("aerodrome api: no decimals configured for token %s", sell.Hex())
		return nil
	}
	buyDecimals, ok := a.decimals[buy]
	if !ok {
		log.Printf("aerodrome api: no decimals configured for token %s", buy.Hex())
		return nil
	}

	u, err := url.Parse(a.baseURL + "/quote")
	if err != nil {
		log.Printf("aerodrome api: bad base url: %v", err)
		return nil
	}

	sellAmount := arbscan.FromBase(amountIn, sellDecimals)

	q := u.Query()
	q.Set("tokenIn", sell.Hex())
	q.Set("tokenOut", buy.Hex())
	q.Set("amountIn", sellAmount.String())
	u.RawQuery = q.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		log.Printf("aerodrome api: build request: %v", err)
		return nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		log.Printf("aerodrome api: request failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("aerodrome api: unexpected status %d", resp.StatusCode)
		return nil
	}

	var body aerodromeAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Printf("aerodrome api: decode response: %v", err)
		return nil
	}

	amountOut, err := decimal.NewFromString(body.AmountOut)
	if err != nil || amountOut.Sign() <= 0 {
		return nil
	}

	buyAmount := arbscan.ToBase(amountOut, buyDecimals)
	if buyAmount.Sign() <= 0 {
		return nil
	}

	return &arbscan.Quote{
		BuyAmount: buyAmount,
		Protocol:  "Aerodrome_API",
	}
}
