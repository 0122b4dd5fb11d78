package ntru

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neil-smyth/phantom/bigint"
)

func ints(vs ...int64) []*bigint.Int {
	out := make([]*bigint.Int, len(vs))
	for i, v := range vs {
		out[i] = bigint.FromInt64(v)
	}
	return out
}

func toInt64s(p []*bigint.Int) []int64 {
	out := make([]int64, len(p))
	for i, c := range p {
		out[i] = c.Int64()
	}
	return out
}

func TestPolyMulModWraps(t *testing.T) {
	// (X) * (X) mod X^2+1 == -1
	a := ints(0, 1)
	out := polyMulMod(a, a)
	require.Equal(t, []int64{-1, 0}, toInt64s(out))
}

func TestMulByXRotatesWithNegation(t *testing.T) {
	p := ints(1, 2, 3, 4)
	out := mulByX(p)
	require.Equal(t, []int64{-4, 1, 2, 3}, toInt64s(out))
}

func TestConjugateNegatesOddIndices(t *testing.T) {
	p := ints(1, 2, 3, 4)
	out := conjugate(p)
	require.Equal(t, []int64{1, -2, 3, -4}, toInt64s(out))
}

func TestSplitEvenOddUpsampleRoundTrip(t *testing.T) {
	p := ints(1, 2, 3, 4)
	p0, p1 := splitEvenOdd(p)
	require.Equal(t, []int64{1, 3}, toInt64s(p0))
	require.Equal(t, []int64{2, 4}, toInt64s(p1))

	up := upsample(p0)
	require.Equal(t, []int64{1, 0, 3, 0}, toInt64s(up))
}
