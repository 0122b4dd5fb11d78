// Package fft implements the floating-point FFT over R[X]/(X^N+1)
// used by the NTRU trapdoor's Babai reduction and the Falcon/DLP-style
// LDL* tree (ntru, ntru/ldl packages): forward/inverse transforms
// between the coefficient representation and the N/2 independent
// evaluation points at the roots of X^N+1, and the non-standard
// split/merge pair used to move between a degree-N polynomial and a
// pair of degree-N/2 polynomials.
//
// The representation and the split/merge operations are grounded on
// original_source/src/fft/fft_generic.hpp's fwd/inv/split_fft/merge_fft
// (read in full during grounding); the transforms themselves are
// expressed here as a direct evaluation/interpolation at those points
// rather than the source's in-place butterfly network, using Go's
// native complex128 rather than hand-rolled real/imaginary pairs.
package fft

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Poly is a polynomial over R[X]/(X^N+1) (or its FFT-domain image,
// same length, same storage) represented as N real float64
// coefficients when in coefficient form, and in a packed layout when
// in FFT form: Coeffs[0..N/2) holds the real parts and Coeffs[N/2..N)
// holds the imaginary parts of the N/2 independent (conjugate-paired)
// evaluation points, in natural order of the root index j (see root).
type Poly struct {
	Coeffs []float64
}

// New allocates a zero polynomial of length n (n must be a power of two).
func New(n int) *Poly { return &Poly{Coeffs: make([]float64, n)} }

// Clone returns an independent copy.
func (p *Poly) Clone() *Poly {
	out := New(len(p.Coeffs))
	copy(out.Coeffs, p.Coeffs)
	return out
}

// root returns the j-th of n "positive" roots of X^n+1, ω_j =
// exp(iπ(2j+1)/n) for j in [0, n/2) — the evaluation points underlying
// every transform in this file. f(ω_j) and f(conj(ω_j)) are themselves
// complex conjugates for any real-coefficient f, which is exactly why
// only n/2 points need to be stored to represent a length-n real
// polynomial (spec.md §4.4's FFT-domain representation).
func root(n, j int) complex128 {
	theta := math.Pi * float64(2*j+1) / float64(n)
	return complex(math.Cos(theta), math.Sin(theta))
}

// Forward computes the FFT of f in place: Coeffs[j] and Coeffs[j+N/2]
// become the real and imaginary parts of f(ω_j) for j in [0, N/2), the
// N/2 independent evaluation points of the real-coefficient polynomial
// f at the roots of X^N+1 (spec.md §4.4's fwd operation).
func Forward(f *Poly) error {
	n := len(f.Coeffs)
	if n <= 1 || n&(n-1) != 0 {
		return fmt.Errorf("fft.Forward: length %d is not a power of two >= 2", n)
	}
	hn := n >> 1

	out := make([]complex128, hn)
	for j := 0; j < hn; j++ {
		w := root(n, j)
		acc := complex(0, 0)
		pw := complex(1, 0)
		for k := 0; k < n; k++ {
			acc += complex(f.Coeffs[k], 0) * pw
			pw *= w
		}
		out[j] = acc
	}
	for j := 0; j < hn; j++ {
		f.Coeffs[j] = real(out[j])
		f.Coeffs[j+hn] = imag(out[j])
	}
	return nil
}

// Inverse computes the inverse FFT of f in place, recovering the real
// coefficient representation from the N/2 evaluation points, using the
// conjugate-symmetry identity c_k = (2/N) Re( sum_j a_j * ω_j^-k ).
func Inverse(f *Poly) error {
	n := len(f.Coeffs)
	if n <= 1 || n&(n-1) != 0 {
		return fmt.Errorf("fft.Inverse: length %d is not a power of two >= 2", n)
	}
	hn := n >> 1

	a := make([]complex128, hn)
	for j := 0; j < hn; j++ {
		a[j] = complex(f.Coeffs[j], f.Coeffs[j+hn])
	}

	out := make([]float64, n)
	for k := 0; k < n; k++ {
		var acc complex128
		for j := 0; j < hn; j++ {
			w := root(n, j)
			wInvK := cmplx.Pow(1/w, complex(float64(k), 0))
			acc += a[j] * wInvK
		}
		out[k] = 2 * real(acc) / float64(n)
	}
	copy(f.Coeffs, out)
	return nil
}

// Split implements Falcon's split_fft: given f = f0(X^2) + X*f1(X^2)
// in FFT form, produces f0 and f1 in FFT form over R[X]/(X^(N/2)+1),
// via f0(ω_j^2) = (f(ω_j) + conj(f(ω_{hn-1-j})))/2 and f1 analogously
// divided by ω_j, restricted to the N/4 points f0/f1 need to store.
func Split(f *Poly) (f0, f1 *Poly, err error) {
	n := len(f.Coeffs)
	if n < 2 || n&(n-1) != 0 {
		return nil, nil, fmt.Errorf("fft.Split: length %d is not a power of two >= 2", n)
	}
	if n == 2 {
		// N/2 = 1: the sub-rings R[X]/(X+1) have no complex evaluation
		// point of their own, they ARE their single real coefficient -
		// which is just the even/odd coefficient split of f at this
		// smallest size, where f's FFT form coincides with its
		// coefficient form (X^2+1's one root pair collapses to a
		// single complex point equal to (c0, c1)).
		return &Poly{Coeffs: []float64{f.Coeffs[0]}}, &Poly{Coeffs: []float64{f.Coeffs[1]}}, nil
	}
	hn := n >> 1
	qn := hn >> 1

	f0, f1 = New(hn), New(hn)
	for j := 0; j < qn; j++ {
		aj := complex(f.Coeffs[j], f.Coeffs[j+hn])
		bj := cmplx.Conj(complex(f.Coeffs[hn-1-j], f.Coeffs[hn-1-j+hn]))
		wj := root(n, j)

		f0v := (aj + bj) / 2
		f1v := (aj - bj) / (2 * wj)

		setComplexAt(f0, j, qn, f0v)
		setComplexAt(f1, j, qn, f1v)
	}
	return f0, f1, nil
}

// Merge implements Falcon's merge_fft, the inverse of Split: for
// j < qn the point is read directly off f0/f1; for j >= qn it is
// recovered via the conjugate-symmetry f0/f1 already satisfy within
// their own half-size representation.
func Merge(f0, f1 *Poly) (*Poly, error) {
	if len(f0.Coeffs) != len(f1.Coeffs) {
		return nil, fmt.Errorf("fft.Merge: mismatched half-lengths %d, %d", len(f0.Coeffs), len(f1.Coeffs))
	}
	hn := len(f0.Coeffs)
	n := hn << 1
	if hn < 1 || hn&(hn-1) != 0 {
		return nil, fmt.Errorf("fft.Merge: half-length %d is not a power of two >= 1", hn)
	}
	if hn == 1 {
		return &Poly{Coeffs: []float64{f0.Coeffs[0], f1.Coeffs[0]}}, nil
	}
	qn := hn >> 1

	f := New(n)
	for j := 0; j < hn; j++ {
		var f0v, f1v complex128
		if j < qn {
			f0v = complexAt(f0, j, qn)
			f1v = complexAt(f1, j, qn)
		} else {
			f0v = cmplx.Conj(complexAt(f0, hn-1-j, qn))
			f1v = cmplx.Conj(complexAt(f1, hn-1-j, qn))
		}
		wj := root(n, j)
		aj := f0v + wj*f1v
		f.Coeffs[j] = real(aj)
		f.Coeffs[j+hn] = imag(aj)
	}
	return f, nil
}

// complexAt returns the u-th evaluation point of p (FFT domain) as a
// complex128, for the handful of helpers below that are easiest to
// express via cmplx directly.
func complexAt(p *Poly, u, hn int) complex128 { return complex(p.Coeffs[u], p.Coeffs[u+hn]) }

func setComplexAt(p *Poly, u, hn int, v complex128) {
	p.Coeffs[u] = real(v)
	p.Coeffs[u+hn] = imag(v)
}

// Add adds a and b pointwise (valid in both coefficient and FFT form,
// since the transform is linear).
func Add(a, b *Poly) *Poly {
	out := New(len(a.Coeffs))
	for i := range a.Coeffs {
		out.Coeffs[i] = a.Coeffs[i] + b.Coeffs[i]
	}
	return out
}

// Sub subtracts b from a pointwise (valid in both coefficient and FFT
// form).
func Sub(a, b *Poly) *Poly {
	out := New(len(a.Coeffs))
	for i := range a.Coeffs {
		out.Coeffs[i] = a.Coeffs[i] - b.Coeffs[i]
	}
	return out
}

// Mul multiplies a and b pointwise in FFT domain.
func Mul(a, b *Poly) *Poly {
	hn := len(a.Coeffs) / 2
	out := New(len(a.Coeffs))
	for u := 0; u < hn; u++ {
		setComplexAt(out, u, hn, complexAt(a, u, hn)*complexAt(b, u, hn))
	}
	return out
}

// MulConst multiplies every evaluation point of a by the real scalar c.
func MulConst(a *Poly, c float64) *Poly {
	out := New(len(a.Coeffs))
	for i, v := range a.Coeffs {
		out.Coeffs[i] = v * c
	}
	return out
}

// Div divides a by b pointwise in FFT domain.
func Div(a, b *Poly) *Poly {
	hn := len(a.Coeffs) / 2
	out := New(len(a.Coeffs))
	for u := 0; u < hn; u++ {
		setComplexAt(out, u, hn, complexAt(a, u, hn)/complexAt(b, u, hn))
	}
	return out
}

// Adjoint returns the Hermitian adjoint (conjugate) of a.
func Adjoint(a *Poly) *Poly {
	hn := len(a.Coeffs) / 2
	out := New(len(a.Coeffs))
	for u := 0; u < hn; u++ {
		setComplexAt(out, u, hn, cmplx.Conj(complexAt(a, u, hn)))
	}
	return out
}

// MulSelfAdjoint returns a * adjoint(a), which is always real-valued
// at each evaluation point (imaginary part is numerically ~0).
func MulSelfAdjoint(a *Poly) *Poly { return Mul(a, Adjoint(a)) }

// MulAdjoint returns a * adjoint(b).
func MulAdjoint(a, b *Poly) *Poly { return Mul(a, Adjoint(b)) }

// MulAutoAdjoint returns a multiplied by its own conjugate, an alias
// kept distinct from MulSelfAdjoint for call-site clarity matching the
// source's separate `mul_auto_adjoint` operation (acts on a single
// already-self-adjoint operand rather than general a).
func MulAutoAdjoint(a *Poly) *Poly { return MulSelfAdjoint(a) }

// DivAutoAdjoint divides a (assumed real-valued / self-adjoint) by the
// self-adjoint product b*adjoint(b).
func DivAutoAdjoint(a, b *Poly) *Poly { return Div(a, MulSelfAdjoint(b)) }

// InvNorm2 computes 1/(a*conj(a) + b*conj(b)) pointwise, real-only
// result broadcast into both halves (used by ntru's fg-sampling norm
// check in ntru/sample.go).
func InvNorm2(a, b *Poly) *Poly {
	hn := len(a.Coeffs) / 2
	out := New(len(a.Coeffs))
	for u := 0; u < hn; u++ {
		na := complexAt(a, u, hn)
		nb := complexAt(b, u, hn)
		norm := real(na)*real(na) + imag(na)*imag(na) + real(nb)*real(nb) + imag(nb)*imag(nb)
		inv := 1.0 / norm
		out.Coeffs[u] = inv
		out.Coeffs[u+hn] = inv
	}
	return out
}
