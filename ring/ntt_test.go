package ring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// q = 12289 is the classic NTRU/Falcon-style modulus: 12289 = 12*1024+1,
// so 2N divides q-1 for every power of two N up to 2048, the largest
// NTT degree it admits.
const testQ = 12289

func randomPoly(n int, q uint64, r *rand.Rand) *Poly {
	p := NewPoly(n)
	for i := range p.Coeffs {
		p.Coeffs[i] = uint64(r.Int63()) % q
	}
	return p
}

func TestNTTRoundTrip(t *testing.T) {
	ring, err := NewRing(64, testQ)
	require.NoError(t, err)

	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 10; trial++ {
		p := randomPoly(64, testQ, r)
		orig := p.CopyNew()

		ring.ToMontgomery(p)
		require.NoError(t, ring.NTT(p))
		require.NoError(t, ring.InvNTT(p))
		ring.FromMontgomery(p)

		require.Equal(t, orig.Coeffs, p.Coeffs)
		require.True(t, orig.Equal(p))
	}
}

// TestNTTHomomorphism pins spec.md §8's "fwd(a*b) == fwd(a)*fwd(b)
// coefficient-wise" property by comparing schoolbook negacyclic
// convolution against the NTT-domain pointwise product.
func TestNTTHomomorphism(t *testing.T) {
	n := 32
	ring, err := NewRing(n, testQ)
	require.NoError(t, err)

	r := rand.New(rand.NewSource(7))
	a := randomPoly(n, testQ, r)
	b := randomPoly(n, testQ, r)

	want := negacyclicConvolve(a.Coeffs, b.Coeffs, testQ)

	am, bm := a.CopyNew(), b.CopyNew()
	ring.ToMontgomery(am)
	ring.ToMontgomery(bm)
	require.NoError(t, ring.NTT(am))
	require.NoError(t, ring.NTT(bm))

	cm, err := ring.MulCoeffs(am, bm)
	require.NoError(t, err)
	require.NoError(t, ring.InvNTT(cm))
	ring.FromMontgomery(cm)

	require.Equal(t, want, cm.Coeffs)
}

// negacyclicConvolve computes a*b mod (X^n+1) mod q the schoolbook way.
func negacyclicConvolve(a, b []uint64, q uint64) []uint64 {
	n := len(a)
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			idx := i + j
			val := mulModSlow(a[i], b[j], q)
			if idx >= n {
				idx -= n
				out[idx] = (out[idx] + q - val%q) % q
			} else {
				out[idx] = (out[idx] + val) % q
			}
		}
	}
	return out
}

func TestNTTInverseMatchesFermat(t *testing.T) {
	ring, err := NewRing(16, testQ)
	require.NoError(t, err)

	p := NewPoly(16)
	for i := range p.Coeffs {
		p.Coeffs[i] = uint64(i + 1)
	}
	ring.ToMontgomery(p)
	require.NoError(t, ring.NTT(p))

	inv, ok := ring.InversePointwise(p)
	require.True(t, ok)

	one, err := ring.MulCoeffs(p, inv)
	require.NoError(t, err)
	ring.FromMontgomery(one)
	for _, c := range one.Coeffs {
		require.Equal(t, uint64(1), c)
	}
}
