package arbscan

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Token values span 10^-18 to 10^12; float64 cannot represent that range
// losslessly without corrupting PnL, so every amount that crosses an
// adapter boundary is either an integer (*big.Int, base units) or a
// decimal.Decimal carrying arbitrary precision.
func init() {
	decimal.DivisionPrecision = 60
}

// ToBase converts a decimal token amount into an integer base-unit amount
// (i.e. amount * 10^decimals), truncating toward zero. Truncation, not
// rounding, is required: rounding up would let the scanner overestimate
// how much a leg can sell.
func ToBase(amount decimal.Decimal, decimals int) *big.Int {
	scale := decimal.New(1, int32(decimals))
	return amount.Mul(scale).Truncate(0).BigInt()
}

// FromBase converts an integer base-unit amount back into decimal token
// units. The conversion is exact; no precision is lost.
func FromBase(amount *big.Int, decimals int) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -int32(decimals))
}
