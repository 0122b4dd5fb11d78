package ntru

import (
	"github.com/neil-smyth/phantom/bigint"
	"github.com/neil-smyth/phantom/bitutil"
)

// polyAdd, polySub and polyMulMod implement exact-integer arithmetic
// over Z[X]/(X^n+1), the ring the NTRU equation is solved in before
// any reduction mod q. The source (original_source/src/ntru/ntru.cpp)
// carries out the equivalent arithmetic in a residue-number-system
// across a table of 31-bit primes, reconstructed via CRT at each
// step; this package performs the same polynomial arithmetic
// directly on arbitrary-precision bigint.Int coefficients, trading
// the RNS speedup for a much shorter, still-exact implementation -
// the same schoolbook-over-NTT tradeoff already documented for the
// `fft` package.
func polyAdd(a, b []*bigint.Int) []*bigint.Int {
	out := make([]*bigint.Int, len(a))
	for i := range a {
		out[i] = a[i].Add(b[i])
	}
	return out
}

func polySub(a, b []*bigint.Int) []*bigint.Int {
	out := make([]*bigint.Int, len(a))
	for i := range a {
		out[i] = a[i].Sub(b[i])
	}
	return out
}

func polyNeg(a []*bigint.Int) []*bigint.Int {
	out := make([]*bigint.Int, len(a))
	for i := range a {
		out[i] = a[i].Negate()
	}
	return out
}

// polyMulMod computes the negacyclic convolution of a and b modulo
// X^n+1.
func polyMulMod(a, b []*bigint.Int) []*bigint.Int {
	n := len(a)
	out := make([]*bigint.Int, n)
	for i := range out {
		out[i] = bigint.FromInt64(0)
	}
	for i := 0; i < n; i++ {
		if a[i].IsZero() {
			continue
		}
		for j := 0; j < n; j++ {
			if b[j].IsZero() {
				continue
			}
			term := a[i].Mul(b[j])
			k := i + j
			if k >= n {
				k -= n
				term = term.Negate()
			}
			out[k] = out[k].Add(term)
		}
	}
	return out
}

// mulByX multiplies p by X modulo X^n+1: a rotation with wraparound
// negation of the top coefficient.
func mulByX(p []*bigint.Int) []*bigint.Int {
	n := len(p)
	out := make([]*bigint.Int, n)
	out[0] = p[n-1].Negate()
	copy(out[1:], p[:n-1])
	return out
}

// conjugate returns a(-X) mod X^n+1: negate every odd-indexed
// coefficient, since (-X)^i = (-1)^i X^i.
func conjugate(p []*bigint.Int) []*bigint.Int {
	out := make([]*bigint.Int, len(p))
	for i, c := range p {
		if i%2 == 1 {
			out[i] = c.Negate()
		} else {
			out[i] = c.Clone()
		}
	}
	return out
}

// splitEvenOdd decomposes p(X) = p0(X^2) + X*p1(X^2) into its two
// half-degree halves, the bigint-exact counterpart of fft.Split used
// by the recursive equation solve's field-norm step.
func splitEvenOdd(p []*bigint.Int) (p0, p1 []*bigint.Int) {
	hn := len(p) / 2
	p0, p1 = make([]*bigint.Int, hn), make([]*bigint.Int, hn)
	for i := 0; i < hn; i++ {
		p0[i] = p[2*i].Clone()
		p1[i] = p[2*i+1].Clone()
	}
	return
}

// upsample is the inverse operation used when lifting a half-degree
// solution back up: p(X) -> p(X^2), i.e. zero-stuff the odd
// coefficients.
func upsample(p []*bigint.Int) []*bigint.Int {
	out := make([]*bigint.Int, len(p)*2)
	for i, c := range p {
		out[2*i] = c.Clone()
		out[2*i+1] = bigint.FromInt64(0)
	}
	return out
}

// maxBitLen returns the largest coefficient bit length in p, used to
// detect when the Babai-reduction loop has stopped shrinking F, G.
func maxBitLen(p []*bigint.Int) int {
	max := 0
	for _, c := range p {
		max = bitutil.Max(max, c.BitLen())
	}
	return max
}

func zeroPoly(n int) []*bigint.Int {
	out := make([]*bigint.Int, n)
	for i := range out {
		out[i] = bigint.FromInt64(0)
	}
	return out
}
