package bigint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTripBytes(t *testing.T) {
	for _, b := range [][]byte{
		{0x01, 0x02, 0x03},
		{0xff, 0xff, 0xff, 0xff},
		{0x00, 0x01},
		{0x7f},
	} {
		x := FromBytes(b, true)
		out, err := x.GetBytes(len(b), true)
		require.NoError(t, err)
		require.Equal(t, b, out)
	}
}

func TestAddSubMul(t *testing.T) {
	a := FromInt64(123456789)
	b := FromInt64(987654321)
	require.Equal(t, int64(1111111110), a.Add(b).Int64())
	require.Equal(t, int64(-864197532), a.Sub(b).Int64())
	require.Equal(t, "121932631112635269", a.Mul(b).GetStr(10, false))
}

func TestModPositive(t *testing.T) {
	a := FromInt64(-5)
	m := FromInt64(7)
	r, err := a.ModPositive(m)
	require.NoError(t, err)
	require.Equal(t, int64(2), r.Int64())
}

func TestMulModInverse(t *testing.T) {
	m := FromInt64(97)
	x := FromInt64(13)
	inv, ok := x.Invert(m)
	require.True(t, ok)
	prod, err := x.MulMod(inv, m)
	require.NoError(t, err)
	require.Equal(t, int64(1), prod.Int64())
}

func TestInvertNotCoprime(t *testing.T) {
	m := FromInt64(10)
	x := FromInt64(4)
	_, ok := x.Invert(m)
	require.False(t, ok)
}

func TestGCDExt(t *testing.T) {
	a := FromInt64(240)
	b := FromInt64(46)
	g, u, v := a.GCDExt(b)
	require.Equal(t, int64(2), g.Int64())
	got := u.Mul(a).Add(v.Mul(b))
	require.Equal(t, int64(2), got.Int64())
}

func TestPowMod(t *testing.T) {
	base := FromInt64(4)
	exp := FromInt64(13)
	mod := FromInt64(497)
	got, err := base.PowMod(exp, mod)
	require.NoError(t, err)
	require.Equal(t, int64(445), got.Int64())
}

func TestIsPrime(t *testing.T) {
	require.True(t, FromInt64(12289).IsPrime(20))
	require.False(t, FromInt64(12288).IsPrime(20))
}

func TestSqrt(t *testing.T) {
	require.Equal(t, int64(7), FromInt64(50).Sqrt().Int64())
	require.Equal(t, int64(7), FromInt64(49).Sqrt().Int64())
}

func TestRadixArrayRoundTrip(t *testing.T) {
	x := FromInt64(123456)
	digits := x.ToRadixArray(8, 10)
	back := FromRadixArray(digits, 10)
	require.Equal(t, x.Int64(), back.Int64())
}

func TestFdivQRUi(t *testing.T) {
	x := FromInt64(1000)
	q, r := x.FdivQRUi(7)
	require.Equal(t, int64(142), q.Int64())
	require.Equal(t, uint64(6), r)
}

func TestMulMontRoundTrip(t *testing.T) {
	m := FromUint64(12289)
	w := uint(32)
	r2 := MontgomeryR2(m, w)

	x := FromUint64(5000)
	// Convert to Montgomery form: x*R mod m == MulMont(x, R2, w).
	xm, err := x.MulMont(r2, m, w)
	require.NoError(t, err)

	one := FromUint64(1)
	back, err := xm.MulMont(one, m, w)
	require.NoError(t, err)
	require.Equal(t, x.Uint64(), back.Uint64())
}
