package ntru

import (
	"github.com/neil-smyth/phantom/bigint"
	"github.com/neil-smyth/phantom/bitutil"
	"github.com/neil-smyth/phantom/fft"
)

// solveNTRUEquation finds F, G in Z[X]/(X^n+1) with small coefficients
// satisfying f*G - g*F = q, per spec.md §4.10's recursive solve: a
// Bezout base case at degree 1, and a lift-then-Babai-reduce step at
// every higher depth.
func solveNTRUEquation(f, g []*bigint.Int, q uint64) (F, G []*bigint.Int, ok bool) {
	n := len(f)
	if n == 1 {
		return solveBase(f[0], g[0], q)
	}

	f0, f1 := splitEvenOdd(f)
	g0, g1 := splitEvenOdd(g)

	// Field norm: f' = f0^2 - X*f1^2, g' = g0^2 - X*g1^2, both reduced
	// in the half ring (spec.md §4.10's recursive descent to degree
	// n/2 before solving).
	fPrime := polySub(polyMulMod(f0, f0), mulByX(polyMulMod(f1, f1)))
	gPrime := polySub(polyMulMod(g0, g0), mulByX(polyMulMod(g1, g1)))

	Fh, Gh, ok := solveNTRUEquation(fPrime, gPrime, q)
	if !ok {
		return nil, nil, false
	}

	// Lift: F <- F_half(X^2)*conj(g), G <- G_half(X^2)*conj(f).
	F = polyMulMod(upsample(Fh), conjugate(g))
	G = polyMulMod(upsample(Gh), conjugate(f))

	return babaiReduce(F, G, f, g)
}

// solveBase solves the degree-1 NTRU equation f0*G0 - g0*F0 = q via an
// extended GCD: d = gcd(f0, g0) = u*f0 + v*g0; if d | q with k = q/d,
// then G0 = u*k and F0 = -v*k satisfy f0*G0 - g0*F0 =
// k*(u*f0+v*g0) = k*d = q. The source computes the same Bezout
// coefficients across a residue-number-system of 31-bit primes
// reconstructed via CRT; bigint.Int's native GCDExt reaches the
// identical result directly on the full-precision values (see
// ntru/poly.go's doc comment for the broader RNS-vs-bigint tradeoff).
func solveBase(f0, g0 *bigint.Int, q uint64) (F, G []*bigint.Int, ok bool) {
	d, u, v := f0.GCDExt(g0)
	if d.IsZero() {
		return nil, nil, false
	}
	qi := bigint.FromUint64(q)
	k, r, err := qi.QuoRem(d)
	if err != nil || !r.IsZero() {
		return nil, nil, false
	}
	G0 := u.Mul(k)
	F0 := v.Mul(k).Negate()
	return []*bigint.Int{F0}, []*bigint.Int{G0}, true
}

// babaiReduce repeatedly subtracts k*(f,g) from (F,G), where k is the
// nearest-integer rounding of (F*conj(f)+G*conj(g)) / (f*conj(f)+g*conj(g))
// computed over the floating-point FFT, per spec.md §4.10. It stops
// when F, G stop shrinking, signalling convergence, and reports
// failure if the reduced pair never settles within a sane bit bound -
// the caller resamples f, g in that case.
func babaiReduce(F, G, f, g []*bigint.Int) ([]*bigint.Int, []*bigint.Int, bool) {
	n := len(F)
	ff, gf := toFFT(f), toFFT(g)
	if err := fft.Forward(ff); err != nil {
		return nil, nil, false
	}
	if err := fft.Forward(gf); err != nil {
		return nil, nil, false
	}
	den := fft.Add(fft.MulSelfAdjoint(ff), fft.MulSelfAdjoint(gf))

	prevBits := bitutil.Max(maxBitLen(F), maxBitLen(G))

	const maxRounds = 64
	for round := 0; round < maxRounds; round++ {
		Ff, Gf := toFFT(F), toFFT(G)
		if err := fft.Forward(Ff); err != nil {
			return nil, nil, false
		}
		if err := fft.Forward(Gf); err != nil {
			return nil, nil, false
		}
		num := fft.Add(fft.Mul(Ff, fft.Adjoint(ff)), fft.Mul(Gf, fft.Adjoint(gf)))
		kf := fft.Div(num, den)
		if err := fft.Inverse(kf); err != nil {
			return nil, nil, false
		}

		k := make([]*bigint.Int, n)
		allZero := true
		for i := 0; i < n; i++ {
			ki := roundToInt64(kf.Coeffs[i])
			if ki != 0 {
				allZero = false
			}
			k[i] = bigint.FromInt64(ki)
		}
		if allZero {
			return F, G, true
		}

		F = polySub(F, polyMulMod(k, f))
		G = polySub(G, polyMulMod(k, g))

		bits := bitutil.Max(maxBitLen(F), maxBitLen(G))
		if bits >= prevBits {
			// Bit length stopped shrinking: converged, or stuck - a
			// final sanity bound on key size distinguishes the two.
			return F, G, bits < 256
		}
		prevBits = bits
	}
	return nil, nil, false
}

func toFFT(p []*bigint.Int) *fft.Poly {
	out := fft.New(len(p))
	for i, c := range p {
		out.Coeffs[i] = float64(c.Int64())
	}
	return out
}

func roundToInt64(x float64) int64 {
	if x >= 0 {
		return int64(x + 0.5)
	}
	return -int64(-x + 0.5)
}
