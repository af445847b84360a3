package arbscan

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// QuoteAdapter is the single capability every venue integration exposes:
// aggregator-pinned, direct on-chain router, or any future addition.
// Modeled as one interface rather than a type hierarchy so the Scanner
// can hold a flat list and dispatch uniformly.
//
// Quote MUST return nil rather than an error on any transport, parse, or
// protocol failure — no exception ever propagates to the Scanner. A
// returned Quote with BuyAmount <= 0 is treated identically to nil by
// every caller; implementations SHOULD normalize that case to nil
// themselves so logs stay discriminated at the adapter.
//
// Implementations must be safe for concurrent invocation: the Scanner
// fans calls out across pairs, sizes, and routes within a single scan.
type QuoteAdapter interface {
	Quote(ctx context.Context, sell, buy common.Address, amountIn *big.Int) *Quote
}

// DefaultCallDeadline bounds every adapter call end-to-end. Scan
// iterations have no global deadline of their own; this is the only
// thing that bounds their duration.
const DefaultCallDeadline = 3500 * time.Millisecond
