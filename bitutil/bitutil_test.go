package bitutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIlog2(t *testing.T) {
	require.Equal(t, 0, Ilog2(1))
	require.Equal(t, 1, Ilog2(2))
	require.Equal(t, 1, Ilog2(3))
	require.Equal(t, 10, Ilog2(1024))
}

func TestIlog2Ceil(t *testing.T) {
	require.Equal(t, 0, Ilog2Ceil(1))
	require.Equal(t, 1, Ilog2Ceil(2))
	require.Equal(t, 2, Ilog2Ceil(3))
	require.Equal(t, 10, Ilog2Ceil(1024))
	require.Equal(t, 11, Ilog2Ceil(1025))
}

func TestBitReverseRoundTrip(t *testing.T) {
	for _, x := range []uint64{0, 1, 5, 0xAA, 0xFF00} {
		rev := BitReverse(x, 16)
		require.Equal(t, x, BitReverse(rev, 16))
	}
}

func TestIsqrt(t *testing.T) {
	for _, x := range []uint64{0, 1, 2, 3, 4, 15, 16, 17, 1 << 40} {
		r := Isqrt(x)
		require.LessOrEqual(t, r*r, x)
		require.Greater(t, (r+1)*(r+1), x)
	}
}

func TestInvSqrt(t *testing.T) {
	got := InvSqrt(4.0)
	require.InDelta(t, 0.5, got, 1e-9)
	got = InvSqrt(1.0)
	require.InDelta(t, 1.0, got, 1e-9)
	got = InvSqrt(2.0)
	require.InDelta(t, 1.0/math.Sqrt2, got, 1e-9)
}

func TestSelect(t *testing.T) {
	require.Equal(t, uint64(7), Select(1, 7, 9))
	require.Equal(t, uint64(9), Select(0, 7, 9))
}

func TestCmpLessThan(t *testing.T) {
	require.Equal(t, uint64(1), CmpLessThan(3, 5))
	require.Equal(t, uint64(0), CmpLessThan(5, 3))
	require.Equal(t, uint64(0), CmpLessThan(5, 5))
}

func TestIfGTEAndIfLTE(t *testing.T) {
	require.Equal(t, uint64(1), IfGTE(5, 3, 1, 2))
	require.Equal(t, uint64(1), IfGTE(3, 3, 1, 2))
	require.Equal(t, uint64(2), IfGTE(3, 5, 1, 2))

	require.Equal(t, uint64(1), IfLTE(3, 5, 1, 2))
	require.Equal(t, uint64(1), IfLTE(3, 3, 1, 2))
	require.Equal(t, uint64(2), IfLTE(5, 3, 1, 2))
}

func TestCmpArrayNotEqual(t *testing.T) {
	require.False(t, CmpArrayNotEqual([]uint64{1, 2, 3}, []uint64{1, 2, 3}))
	require.True(t, CmpArrayNotEqual([]uint64{1, 2, 3}, []uint64{1, 2, 4}))
	require.True(t, CmpArrayNotEqual([]uint64{1, 2}, []uint64{1, 2, 3}))
}

func TestPopcount(t *testing.T) {
	require.Equal(t, 0, Popcount(0))
	require.Equal(t, 8, Popcount(0xFF))
	require.Equal(t, 64, Popcount(^uint64(0)))
}

func TestMinMaxClamp(t *testing.T) {
	require.Equal(t, 3, Min(3, 7))
	require.Equal(t, 3, Min(7, 3))
	require.Equal(t, 7, Max(3, 7))
	require.Equal(t, 7, Max(7, 3))
	require.Equal(t, 5, Clamp(5, 0, 10))
	require.Equal(t, 0, Clamp(-5, 0, 10))
	require.Equal(t, 10, Clamp(15, 0, 10))
}
