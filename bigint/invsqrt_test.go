package bigint

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvSqrtMatchesFloat64(t *testing.T) {
	const prec = 128
	for _, x := range []float64{1, 2, 4, 10, 12289, 1e6} {
		bx := new(big.Float).SetPrec(prec).SetFloat64(x)
		got, _ := InvSqrt(bx, prec).Float64()
		want := 1 / math.Sqrt(x)
		require.InDelta(t, want, got, want*1e-9)
	}
}

func TestSqrtMatchesFloat64(t *testing.T) {
	const prec = 128
	for _, x := range []float64{1, 2, 4, 10, 12289, 1e6} {
		bx := new(big.Float).SetPrec(prec).SetFloat64(x)
		got, _ := Sqrt(bx, prec).Float64()
		want := math.Sqrt(x)
		require.InDelta(t, want, got, want*1e-9)
	}
}

func TestSqrtInvSqrtAreReciprocal(t *testing.T) {
	const prec = 128
	x := new(big.Float).SetPrec(prec).SetFloat64(7)
	s := Sqrt(x, prec)
	inv := InvSqrt(x, prec)
	product := new(big.Float).SetPrec(prec).Mul(s, inv)
	got, _ := product.Float64()
	require.InDelta(t, 1.0, got, 1e-9)
}
