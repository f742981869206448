package chain

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// SUIDecimals is the number of decimal places of SUI (1 SUI = 1e9 MIST).
const SUIDecimals = 9

// FormatMIST renders a MIST amount as SUI with 9 decimals.
func FormatMIST(mist uint64) string {
	return FormatMISTBig(new(big.Int).SetUint64(mist))
}

// FormatMISTBig is FormatMIST for balances that may exceed u64.
func FormatMISTBig(mist *big.Int) string {
	if mist == nil {
		mist = new(big.Int)
	}
	return decimal.NewFromBigInt(mist, -SUIDecimals).StringFixed(SUIDecimals)
}

// ParseSUI parses a decimal SUI amount ("1.5") into MIST.
func ParseSUI(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid SUI amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("invalid SUI amount %q: negative", s)
	}
	mist := d.Shift(SUIDecimals)
	if !mist.Equal(mist.Truncate(0)) {
		return 0, fmt.Errorf("invalid SUI amount %q: more than %d decimals", s, SUIDecimals)
	}
	b := mist.BigInt()
	if !b.IsUint64() {
		return 0, fmt.Errorf("invalid SUI amount %q: overflows u64", s)
	}
	return b.Uint64(), nil
}
