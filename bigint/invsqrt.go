package bigint

import (
	"math/big"

	"github.com/ALTree/bigfloat"
)

// InvSqrt returns 1/sqrt(x) to the given precision (bits of mantissa).
// It is a standalone helper: the gauss package's bootstrap rounding
// works in float64 and does not call it. bigfloat has no native Sqrt,
// so this computes it as
// exp(-0.5 * ln(x)), matching the standard identity and the shape of
// bigfloat's own Pow implementation.
func InvSqrt(x *big.Float, prec uint) *big.Float {
	ln := bigfloat.Log(x)
	half := new(big.Float).SetPrec(prec).SetFloat64(-0.5)
	exponent := new(big.Float).SetPrec(prec).Mul(half, ln)
	return bigfloat.Exp(exponent)
}

// Sqrt returns sqrt(x) to the given precision, via exp(0.5*ln(x)).
func Sqrt(x *big.Float, prec uint) *big.Float {
	ln := bigfloat.Log(x)
	half := new(big.Float).SetPrec(prec).SetFloat64(0.5)
	exponent := new(big.Float).SetPrec(prec).Mul(half, ln)
	return bigfloat.Exp(exponent)
}
