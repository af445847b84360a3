package arbscan

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Token is one entry of the configured token set: symbol, checksummed
// address, and the base-10 scale of its on-chain representation.
type Token struct {
	Symbol   string
	Address  common.Address
	Decimals int
}

// Pair is an ordered (base, quote) pair drawn from the configured token
// set. Size is denominated in base-token units; leg A sells base to
// obtain quote, leg B sells quote back to base.
type Pair struct {
	Base  Token
	Quote Token
}

func (p Pair) String() string {
	return fmt.Sprintf("%s/%s", p.Base.Symbol, p.Quote.Symbol)
}

// Quote is the uniform result shape every QuoteAdapter produces. A zero
// or missing BuyAmount means "no liquidity / error" and is never
// distinguished from adapter failure once it reaches the Scanner.
type Quote struct {
	BuyAmount *big.Int
	GasUnits  *uint64
	GasPrice  *big.Int
	Protocol  string
	Meta      map[string]any
}

// Route names the two legs of a round-trip trade by protocol tag. It is
// valid iff LegA != LegB.
type Route struct {
	LegA string
	LegB string
}

func (r Route) String() string {
	return fmt.Sprintf("%s->%s", r.LegA, r.LegB)
}

// Key returns the exact cooldown key form: "pair|size|leg_a->leg_b".
func (r Route) Key(pair Pair, size decimal.Decimal) string {
	return fmt.Sprintf("%s|%s|%s", pair.String(), size.String(), r.String())
}

// OpportunityDetails carries both raw quotes plus the two ROI figures a
// human reading an alert or a Sink row needs: the MEV-only ROI (before
// gas) and the net-of-gas ROI.
type OpportunityDetails struct {
	QuoteA       Quote   `json:"quote_a"`
	QuoteB       Quote   `json:"quote_b"`
	MEVOnlyROIBp float64 `json:"mev_only_roi_bps"`
	NetROIBps    float64 `json:"net_roi_bps"`
}

// Opportunity is a published round-trip dislocation, ready for the Sink
// and the Alerter.
type Opportunity struct {
	ChainID    int64
	Pair       Pair
	Size       decimal.Decimal
	Route      Route
	GrossBase  decimal.Decimal
	GrossBps   float64
	NetUSD     float64
	GasUSD     float64
	Details    OpportunityDetails
}
