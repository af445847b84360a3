package arbscan

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// ProfitModel turns a pair of quotes for one route into a publish/suppress
// decision plus, on publish, a populated Opportunity. All thresholds are
// configuration, never constants, so a deployment can tune them without
// a rebuild.
type ProfitModel struct {
	MEVBps       int64
	MinProfitUSD float64
	MinROIBps    float64
	USDPerBase   float64
	ETHUSD       float64
	fallbackGas  uint64
}

// NewProfitModel builds a ProfitModel from the given thresholds and
// prices, used as passed, and sets the fallback gas to 250000 units per
// leg. The threshold defaults (MEV_BPS=5, MIN_PROFIT_USD=1.0,
// MIN_ROI_BPS=5) are applied by configs.LoadEnvConfig, not here.
func NewProfitModel(mevBps int64, minProfitUSD, minROIBps, usdPerBase, ethUSD float64) *ProfitModel {
	return &ProfitModel{
		MEVBps:       mevBps,
		MinProfitUSD: minProfitUSD,
		MinROIBps:    minROIBps,
		USDPerBase:   usdPerBase,
		ETHUSD:       ethUSD,
		fallbackGas:  250000,
	}
}

// Evaluate runs the §4.5 computation in order and returns the populated
// Opportunity plus a publish decision. chainID/pair/size/baseDecimals
// describe the round-trip being evaluated; quoteA/quoteB are leg A and
// leg B's results, already known non-nil with positive BuyAmount.
func (m *ProfitModel) Evaluate(chainID int64, pair Pair, size decimal.Decimal, baseDecimals int, route Route, quoteA, quoteB Quote) (Opportunity, bool) {
	sellAmountBase := ToBase(size, baseDecimals)
	outBackBase := quoteB.BuyAmount

	profitBase := FromBase(new(big.Int).Sub(outBackBase, sellAmountBase), baseDecimals)

	gasUnits := gasOrDefault(quoteA.GasUnits, m.fallbackGas) + gasOrDefault(quoteB.GasUnits, m.fallbackGas)
	gasPrice := firstNonNilGasPrice(quoteA.GasPrice, quoteB.GasPrice)

	gasUSD := 0.0
	if gasPrice != nil && gasPrice.Sign() > 0 && m.ETHUSD > 0 {
		gasEth := new(big.Float).Quo(
			new(big.Float).SetInt(new(big.Int).Mul(new(big.Int).SetUint64(gasUnits), gasPrice)),
			new(big.Float).SetFloat64(1e18),
		)
		gasEthF, _ := gasEth.Float64()
		gasUSD = gasEthF * m.ETHUSD
	}

	mevCut := size.Mul(decimal.NewFromInt(m.MEVBps)).Div(decimal.NewFromInt(10000))
	netBaseMEV := profitBase.Sub(mevCut)

	netUSDDec := netBaseMEV.Mul(decimal.NewFromFloat(m.USDPerBase)).Sub(decimal.NewFromFloat(gasUSD))
	netUSD, _ := netUSDDec.Float64()

	sizeUSD := size.Mul(decimal.NewFromFloat(m.USDPerBase))
	roiNetBps := 0.0
	if !sizeUSD.IsZero() {
		roiDec := netUSDDec.Div(sizeUSD).Mul(decimal.NewFromInt(10000))
		roiNetBps, _ = roiDec.Float64()
	}

	grossBps := 0.0
	if !size.IsZero() {
		grossBpsDec := profitBase.Div(size).Mul(decimal.NewFromInt(10000))
		grossBps, _ = grossBpsDec.Float64()
	}

	mevOnlyROIBps := 0.0
	if !sizeUSD.IsZero() {
		mevOnlyDec := netBaseMEV.Mul(decimal.NewFromFloat(m.USDPerBase)).Div(sizeUSD).Mul(decimal.NewFromInt(10000))
		mevOnlyROIBps, _ = mevOnlyDec.Float64()
	}

	opp := Opportunity{
		ChainID:   chainID,
		Pair:      pair,
		Size:      size,
		Route:     route,
		GrossBase: profitBase,
		GrossBps:  grossBps,
		NetUSD:    netUSD,
		GasUSD:    gasUSD,
		Details: OpportunityDetails{
			QuoteA:       quoteA,
			QuoteB:       quoteB,
			MEVOnlyROIBp: mevOnlyROIBps,
			NetROIBps:    roiNetBps,
		},
	}

	publish := netUSD >= m.MinProfitUSD && roiNetBps >= m.MinROIBps
	return opp, publish
}

func gasOrDefault(gasUnits *uint64, fallback uint64) uint64 {
	if gasUnits == nil {
		return fallback
	}
	return *gasUnits
}

func firstNonNilGasPrice(a, b *big.Int) *big.Int {
	if a != nil {
		return a
	}
	return b
}
