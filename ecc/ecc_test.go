package ecc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neil-smyth/phantom/bigint"
)

// secp256k1 parameters, used purely as a well-known test curve (this
// module makes no claim of secp256k1 protocol support).
func testCurve() *Curve {
	p, _ := bigint.FromString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F", 16)
	a := bigint.FromInt64(0)
	b := bigint.FromInt64(7)
	order, _ := bigint.FromString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)
	gx, _ := bigint.FromString("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798", 16)
	gy, _ := bigint.FromString("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8", 16)
	return NewCurve(p, a, b, order, gx, gy)
}

// secp192r1 (NIST P-192) parameters, used only for the literal KAT
// below - this module makes no claim of secp192r1 protocol support.
func testSecp192r1Curve() *Curve {
	p, _ := bigint.FromString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFFFFFFFFFFFF", 16)
	a, _ := bigint.FromString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFFFFFFFFFFFC", 16)
	b, _ := bigint.FromString("64210519E59C80E70FA7E9AB72243049FEB8DEECC146B9B1", 16)
	order, _ := bigint.FromString("FFFFFFFFFFFFFFFFFFFFFFFF99DEF836146BC9B1B4D22831", 16)
	gx, _ := bigint.FromString("188DA80EB03090F67CBF20EB43A18800F4FF0AFD82FF1012", 16)
	gy, _ := bigint.FromString("07192B95FFC8DA78631011ED6B24CDD573F977A11E794811", 16)
	return NewCurve(p, a, b, order, gx, gy)
}

// TestScalarMulSecp192r1KAT pins spec.md §8 item 5: over secp192r1,
// Q = 2*2*G + G and R = Q - G - G - G - G must equal G exactly,
// checked against the literal published NIST P-192 base-point
// coordinates rather than just against whatever Gx/Gy this test
// happens to construct the curve with.
func TestScalarMulSecp192r1KAT(t *testing.T) {
	c := testSecp192r1Curve()
	g := NewAffine(c, c.Gx, c.Gy)

	g2, err := g.Double()
	require.NoError(t, err)
	g4, err := g2.Double()
	require.NoError(t, err)
	q, err := g4.Add(g)
	require.NoError(t, err)

	negG := NewAffine(c, c.Gx, c.mod(c.Gy.Negate()))
	r := q
	for i := 0; i < 4; i++ {
		r, err = r.Add(negG)
		require.NoError(t, err)
	}

	rx, ry, err := r.Affine()
	require.NoError(t, err)

	wantX, _ := bigint.FromString("188DA80EB03090F67CBF20EB43A18800F4FF0AFD82FF1012", 16)
	wantY, _ := bigint.FromString("07192B95FFC8DA78631011ED6B24CDD573F977A11E794811", 16)
	require.Equal(t, 0, rx.Cmp(wantX))
	require.Equal(t, 0, ry.Cmp(wantY))
}

func TestAffineDoubleAddConsistency(t *testing.T) {
	c := testCurve()
	g := NewAffine(c, c.Gx, c.Gy)

	g2, err := g.Double()
	require.NoError(t, err)

	g2Add, err := g.Add(g)
	require.NoError(t, err)

	x1, y1, err := g2.Affine()
	require.NoError(t, err)
	x2, y2, err := g2Add.Affine()
	require.NoError(t, err)

	require.Equal(t, 0, x1.Cmp(x2))
	require.Equal(t, 0, y1.Cmp(y2))
}

func TestJacobianMatchesAffine(t *testing.T) {
	c := testCurve()
	ga := NewAffine(c, c.Gx, c.Gy)
	gj := NewJacobian(c, c.Gx, c.Gy)

	for i := 0; i < 5; i++ {
		gaNext, err := ga.Double()
		require.NoError(t, err)
		ga = gaNext.(*Affine)

		gjNext, err := gj.Double()
		require.NoError(t, err)
		gj = gjNext.(*Jacobian)

		ax, ay, err := ga.Affine()
		require.NoError(t, err)
		jx, jy, err := gj.Affine()
		require.NoError(t, err)

		require.Equal(t, 0, ax.Cmp(jx), "x mismatch at iteration %d", i)
		require.Equal(t, 0, ay.Cmp(jy), "y mismatch at iteration %d", i)
	}
}

func TestProjectiveMatchesAffine(t *testing.T) {
	c := testCurve()
	ga := NewAffine(c, c.Gx, c.Gy)
	gp := NewProjective(c, c.Gx, c.Gy)

	for i := 0; i < 5; i++ {
		gaNext, err := ga.Double()
		require.NoError(t, err)
		ga = gaNext.(*Affine)

		gpNext, err := gp.Double()
		require.NoError(t, err)
		gp = gpNext.(*Projective)

		ax, ay, err := ga.Affine()
		require.NoError(t, err)
		px, py, err := gp.Affine()
		require.NoError(t, err)

		require.Equal(t, 0, ax.Cmp(px), "x mismatch at iteration %d", i)
		require.Equal(t, 0, ay.Cmp(py), "y mismatch at iteration %d", i)
	}
}

func TestProjectiveAddMatchesDouble(t *testing.T) {
	c := testCurve()
	g := NewProjective(c, c.Gx, c.Gy)

	g2, err := g.Double()
	require.NoError(t, err)
	g2Add, err := g.Add(g)
	require.NoError(t, err)

	x1, y1, err := g2.Affine()
	require.NoError(t, err)
	x2, y2, err := g2Add.Affine()
	require.NoError(t, err)

	require.Equal(t, 0, x1.Cmp(x2))
	require.Equal(t, 0, y1.Cmp(y2))
}

func TestScalarMultBinaryMatchesRepeatedAddition(t *testing.T) {
	c := testCurve()
	g := NewAffine(c, c.Gx, c.Gy)

	k := bigint.FromInt64(11)
	got, err := ScalarMult(g, k, CodingBinary, 0)
	require.NoError(t, err)

	var want Point = Infinity(c)
	for i := 0; i < 11; i++ {
		var err error
		want, err = want.Add(g)
		require.NoError(t, err)
	}

	gx, gy, err := got.Affine()
	require.NoError(t, err)
	wx, wy, err := want.Affine()
	require.NoError(t, err)

	require.Equal(t, 0, gx.Cmp(wx))
	require.Equal(t, 0, gy.Cmp(wy))
}

func TestScalarMultNAFMatchesBinary(t *testing.T) {
	c := testCurve()
	g := NewAffine(c, c.Gx, c.Gy)
	k := bigint.FromInt64(0xABCD)

	binResult, err := ScalarMult(g, k, CodingBinary, 0)
	require.NoError(t, err)
	nafResult, err := ScalarMult(g, k, CodingNAF, 4)
	require.NoError(t, err)

	bx, by, err := binResult.Affine()
	require.NoError(t, err)
	nx, ny, err := nafResult.Affine()
	require.NoError(t, err)

	require.Equal(t, 0, bx.Cmp(nx))
	require.Equal(t, 0, by.Cmp(ny))
}

func TestScalarMultWindowMatchesBinary(t *testing.T) {
	c := testCurve()
	g := NewAffine(c, c.Gx, c.Gy)
	k := bigint.FromInt64(12345)

	binResult, err := ScalarMult(g, k, CodingBinary, 0)
	require.NoError(t, err)
	winResult, err := ScalarMult(g, k, CodingWindow, 4)
	require.NoError(t, err)

	bx, by, err := binResult.Affine()
	require.NoError(t, err)
	wx, wy, err := winResult.Affine()
	require.NoError(t, err)

	require.Equal(t, 0, bx.Cmp(wx))
	require.Equal(t, 0, by.Cmp(wy))
}

func TestNAFSymbolsAreNonAdjacent(t *testing.T) {
	k := bigint.FromInt64(0b1011010111)
	p, err := NewScalarParser(CodingNAF, k, 2)
	require.NoError(t, err)

	lastNonzeroIdx := -2
	idx := 0
	for {
		d, ok := p.Pull()
		if !ok {
			break
		}
		if d != 0 {
			require.Greater(t, idx-lastNonzeroIdx, 1, "adjacent nonzero NAF digits")
			lastNonzeroIdx = idx
		}
		idx++
	}
}

func TestBinarySymbolsMatchBitLen(t *testing.T) {
	k := bigint.FromInt64(0b10110)
	p, err := NewScalarParser(CodingBinary, k, 0)
	require.NoError(t, err)
	require.Equal(t, k.BitLen(), p.NumSymbols())

	first, ok := p.Pull()
	require.True(t, ok)
	require.Equal(t, int32(1), first) // MSB of 0b10110 is 1
}
