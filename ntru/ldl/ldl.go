// Package ldl builds an LDL* tree over a self-adjoint quasicyclic 2x2
// Gram matrix in FFT form, and samples short lattice preimages from
// it. Grounded on original_source/src/ntru/ldl.cpp, read in full
// during grounding: ldl_fft (the L10/D11 step), the tree's recursive
// fft_inner build (unified here into one recursive Build, since every
// inner call happens to pass the same polynomial as both the g00 and
// g11 argument), and binary_normalize.
package ldl

import (
	"fmt"
	"math"

	"github.com/neil-smyth/phantom/bitutil"
	"github.com/neil-smyth/phantom/fft"
	"github.com/neil-smyth/phantom/internal/errs"
)

// Tree is one node of the LDL* decomposition. A leaf (logN == 0)
// carries only a scalar standard deviation in Leaf; an internal node
// carries the L10 polynomial produced at this level plus the two
// child subtrees for D00 and D11.
type Tree struct {
	L10         *fft.Poly
	Leaf        float64
	Left, Right *Tree
}

// Build computes the LDL* decomposition of the self-adjoint matrix
// [[g00, g01], [adjoint(g01), g11]] (all in FFT representation) and
// returns the root of its tree. At the top level g11 is the true
// (2,2) Gram entry; every recursive call below the root happens to
// receive g11 == g00, since splitting a quasicyclic Gram matrix always
// produces equal diagonal sub-blocks - a single recursive function
// covers both the source's top-level create_tree and its inner
// fft_inner.
func Build(g00, g01, g11 *fft.Poly, logN int) (*Tree, error) {
	n := len(g00.Coeffs)
	if n != len(g01.Coeffs) || n != len(g11.Coeffs) {
		return nil, fmt.Errorf("ldl.Build: mismatched poly lengths: %w", errs.ErrInvalidArgument)
	}

	if logN == 0 {
		// Base case: 1x1 "matrix", the Gram entry is the leaf variance.
		return &Tree{Leaf: g00.Coeffs[0]}, nil
	}

	l10 := fft.Div(g01, g00)
	// d11 = g11 - l10 * adjoint(l10) * g00
	d11 := fft.Sub(g11, fft.Mul(fft.MulSelfAdjoint(l10), g00))

	d00l, d00r, err := fft.Split(g00)
	if err != nil {
		return nil, fmt.Errorf("ldl.Build: split g00: %w", err)
	}
	d11l, d11r, err := fft.Split(d11)
	if err != nil {
		return nil, fmt.Errorf("ldl.Build: split d11: %w", err)
	}

	// d00's own sub-blocks share a diagonal by construction (d00 is
	// itself a diagonal block of a quasicyclic matrix), so the
	// recursive g11 argument is d00l here and d11l below - both equal
	// to the corresponding g00 argument, matching fft_inner's
	// invariant.
	left, err := Build(d00l, d00r, d00l, logN-1)
	if err != nil {
		return nil, err
	}
	right, err := Build(d11l, d11r, d11l, logN-1)
	if err != nil {
		return nil, err
	}

	return &Tree{L10: l10, Left: left, Right: right}, nil
}

// Normalize walks the tree converting every leaf variance x into
// sigma/sqrt(x), per binary_normalize. Internal L10 nodes are left
// untouched; only leaves change value.
func Normalize(t *Tree, sigma float64, logN int) {
	if logN == 0 {
		t.Leaf = sigma * bitutil.InvSqrt(t.Leaf)
		return
	}
	Normalize(t.Left, sigma, logN-1)
	Normalize(t.Right, sigma, logN-1)
}

// Sampler draws the base discrete-Gaussian samples used at tree
// leaves. *gauss.CDFSampler satisfies this, parameterised fresh at
// each leaf's own sigma via NewCDFSampler.
type Sampler interface {
	SignedSample() int64
}

// leafSample adds a zero-centred base sample at sigma=leaf to floor(t),
// matching the base case of gaussian_lattice_sample: floor(t) +
// sample_from(sigma=leaf). The fractional part of t is discarded.
func leafSample(newSampler func(sigma float64) (Sampler, error), leaf, t float64) (float64, error) {
	s, err := newSampler(leaf)
	if err != nil {
		return 0, fmt.Errorf("ldl.leafSample: %w", err)
	}
	fl := math.Floor(t)
	return fl + float64(s.SignedSample()), nil
}

// SamplePreimage implements gaussian_lattice_sample: given the tree
// for a self-adjoint 2x2 Gram matrix and a target (t0, t1) in FFT
// representation, it returns a short preimage (z0, z1), also in FFT
// representation. newSampler constructs a fresh base sampler at a
// given standard deviation (the leaf value); the caller supplies it so
// tree sampling stays independent of any one CSPRNG-wiring choice.
func SamplePreimage(t *Tree, t0, t1 *fft.Poly, logN int, newSampler func(sigma float64) (Sampler, error)) (z0, z1 *fft.Poly, err error) {
	if logN == 0 {
		z0v, err := leafSample(newSampler, t.Leaf, t0.Coeffs[0])
		if err != nil {
			return nil, nil, err
		}
		z1v, err := leafSample(newSampler, t.Leaf, t1.Coeffs[0])
		if err != nil {
			return nil, nil, err
		}
		return &fft.Poly{Coeffs: []float64{z0v}}, &fft.Poly{Coeffs: []float64{z1v}}, nil
	}

	t1l, t1r, err := fft.Split(t1)
	if err != nil {
		return nil, nil, fmt.Errorf("ldl.SamplePreimage: split t1: %w", err)
	}
	z1l, z1r, err := SamplePreimage(t.Right, t1l, t1r, logN-1, newSampler)
	if err != nil {
		return nil, nil, err
	}
	z1, err = fft.Merge(z1l, z1r)
	if err != nil {
		return nil, nil, fmt.Errorf("ldl.SamplePreimage: merge z1: %w", err)
	}

	// tb0 = t0 + (t1 - z1) * L10
	diff := fft.Sub(t1, z1)
	tb0 := fft.Add(t0, fft.Mul(diff, t.L10))

	tb0l, tb0r, err := fft.Split(tb0)
	if err != nil {
		return nil, nil, fmt.Errorf("ldl.SamplePreimage: split tb0: %w", err)
	}
	z0l, z0r, err := SamplePreimage(t.Left, tb0l, tb0r, logN-1, newSampler)
	if err != nil {
		return nil, nil, err
	}
	z0, err = fft.Merge(z0l, z0r)
	if err != nil {
		return nil, nil, fmt.Errorf("ldl.SamplePreimage: merge z0: %w", err)
	}
	return z0, z1, nil
}

// TreeSize returns the number of polynomial coefficients stored across
// the whole tree at a given logN, matching the source's recurrence
// s(0) = 1, s(k) = 2^k + 2*s(k-1) = (k+1) * 2^k.
func TreeSize(logN int) int {
	if logN == 0 {
		return 1
	}
	return (logN + 1) << uint(logN)
}
