// Package router implements the direct on-chain QuoteAdapter: an
// eth_call against a configured router contract, negotiating between
// the two route tuple shapes deployments actually use.
package router

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"arbscan"
	"arbscan/pkg/contractclient"
)

// getAmountsOutABI4 is the 4-field route variant: (from, to, stable, factory).
const getAmountsOutABI4 = `[{
	"name": "getAmountsOut",
	"type": "function",
	"stateMutability": "view",
	"inputs": [
		{"name": "amountIn", "type": "uint256"},
		{"name": "routes", "type": "tuple[]", "components": [
			{"name": "from", "type": "address"},
			{"name": "to", "type": "address"},
			{"name": "stable", "type": "bool"},
			{"name": "factory", "type": "address"}
		]}
	],
	"outputs": [{"name": "amounts", "type": "uint256[]"}]
}]`

// getAmountsOutABI3 is the 3-field route variant: (from, to, stable).
const getAmountsOutABI3 = `[{
	"name": "getAmountsOut",
	"type": "function",
	"stateMutability": "view",
	"inputs": [
		{"name": "amountIn", "type": "uint256"},
		{"name": "routes", "type": "tuple[]", "components": [
			{"name": "from", "type": "address"},
			{"name": "to", "type": "address"},
			{"name": "stable", "type": "bool"}
		]}
	],
	"outputs": [{"name": "amounts", "type": "uint256[]"}]
}]`

type route4 struct {
	From    common.Address
	To      common.Address
	Stable  bool
	Factory common.Address
}

type route3 struct {
	From   common.Address
	To     common.Address
	Stable bool
}

// caller is the subset of contractclient.ContractClient the negotiation
// loop needs; an interface here lets tests substitute a fake instead of
// a live RPC connection.
type caller interface {
	Call(ctx context.Context, from *common.Address, method string, args ...interface{}) ([]interface{}, error)
}

// Adapter is the direct on-chain QuoteAdapter. One Adapter is built per
// configured router/factory pair and reused across every scan.
type Adapter struct {
	router4       caller
	router3       caller
	factory       common.Address
	stableDefault bool
}

// NewAdapter builds an Adapter against routerAddr, probing both the
// 4-field-with-factory and 3-field ABI shapes at the same address since
// the negotiation in Quote tries both.
func NewAdapter(client *ethclient.Client, routerAddr, factoryAddr common.Address, stableDefault bool) (*Adapter, error) {
	abi4, err := abi.JSON(strings.NewReader(getAmountsOutABI4))
	if err != nil {
		return nil, fmt.Errorf("parse 4-field router abi: %w", err)
	}
	abi3, err := abi.JSON(strings.NewReader(getAmountsOutABI3))
	if err != nil {
		return nil, fmt.Errorf("parse 3-field router abi: %w", err)
	}

	return &Adapter{
		router4:       contractclient.NewContractClient(client, routerAddr, abi4),
		router3:       contractclient.NewContractClient(client, routerAddr, abi3),
		factory:       factoryAddr,
		stableDefault: stableDefault,
	}, nil
}

// Quote implements arbscan.QuoteAdapter. Negotiation order: 4-field
// variant first, then 3-field, each tried at the requested stable flag
// and then its inverse. The first successful attempt with a positive
// last-amount wins. The protocol tag names the variant that succeeded
// (Aerodrome_V1_4f or Aerodrome_V1_3f) and does not carry the stable
// flag; that flag is recorded in Meta["stable"].
func (a *Adapter) Quote(ctx context.Context, sell, buy common.Address, amountIn *big.Int) *arbscan.Quote {
	attempts := []struct {
		client    caller
		tagBase   string
		buildArgs func(stable bool) []interface{}
	}{
		{a.router4, "Aerodrome_V1_4f", func(stable bool) []interface{} {
			routes := []route4{{From: sell, To: buy, Stable: stable, Factory: a.factory}}
			return []interface{}{amountIn, routes}
		}},
		{a.router3, "Aerodrome_V1_3f", func(stable bool) []interface{} {
			routes := []route3{{From: sell, To: buy, Stable: stable}}
			return []interface{}{amountIn, routes}
		}},
	}

	for _, attempt := range attempts {
		for _, stable := range []bool{a.stableDefault, !a.stableDefault} {
			out, err := attempt.client.Call(ctx, nil, "getAmountsOut", attempt.buildArgs(stable)...)
			if err != nil {
				log.Printf("router: getAmountsOut %s stable=%v failed: %v", attempt.tagBase, stable, err)
				continue
			}
			amounts, ok := out[0].([]*big.Int)
			if !ok || len(amounts) == 0 {
				continue
			}
			buyAmount := amounts[len(amounts)-1]
			if buyAmount.Sign() <= 0 {
				continue
			}
			return &arbscan.Quote{
				BuyAmount: buyAmount,
				Protocol:  attempt.tagBase,
				Meta:      map[string]any{"stable": stable},
			}
		}
	}
	return nil
}
