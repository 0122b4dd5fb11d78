// Package gauss implements a discrete Gaussian sampler over the
// integers: a tabulated-CDF base sampler for small sigma, a combiner
// ladder that widens sigma by composing independent base samples, and
// a bootstrap ("flip-and-round") rounding routine on top that supports
// an arbitrary real-valued center.
//
// Grounded on original_source/src/sampling/gaussian_cdf.hpp,
// gaussian_sampler.{hpp,cpp} (all read in full during grounding).
package gauss

import (
	"fmt"
	"math"

	"github.com/neil-smyth/phantom/bitutil"
	"github.com/neil-smyth/phantom/csprng"
)

const (
	twoOverSqrtPi = 1.1283791670955126 // 2/sqrt(pi)
	invSqrt2      = 0.7071067811865476 // 1/sqrt(2)
)

// Sampler is implemented by both CDFSampler and Combiner, mirroring
// the source's gaussian<U, P> base class: a node that can be
// recursively composed into wider combiners.
type Sampler interface {
	SignedSample() int64
	UnsignedSample() int64
}

// CDFSampler draws from a discrete Gaussian via a precomputed
// cumulative-distribution table and a fixed-step binary search over a
// uniformly drawn internal value, making the search itself take the
// same number of steps regardless of the drawn value.
type CDFSampler struct {
	rng    *csprng.DRBG
	cdf    []uint64
	steps  int
}

// NewCDFSampler builds a table of 2^ceil(log2(tail*sigma)) precomputed
// CDF thresholds scaled across the full uint64 range, per the source's
// gaussian_cdf constructor.
func NewCDFSampler(rng *csprng.DRBG, sigma, tail float64) (*CDFSampler, error) {
	if sigma <= 0 || tail <= 0 {
		return nil, fmt.Errorf("gauss.NewCDFSampler: %w", ErrInvalidArgument)
	}

	bound := uint64(tail * sigma)
	bits := 0
	for (uint64(1) << uint(bits)) < bound {
		bits++
	}
	size := 1 << uint(bits)
	if size < 2 {
		return nil, fmt.Errorf("gauss.NewCDFSampler: table too small: %w", ErrInvalidArgument)
	}

	cdf := make([]uint64, size)
	d := twoOverSqrtPi * invSqrt2 * 18446744073709551616.0 / sigma
	e := -0.5 / (sigma * sigma)
	s := 0.5 * d
	cdf[0] = 0

	i := 1
	ej := e
	for j := 1.0; i < size-1; i++ {
		cdf[i] = uint64(math.Round(s))
		if cdf[i] == 0 {
			break
		}
		s += d * math.Exp(ej*j)
		j++
		if cdf[i-1] > cdf[i] {
			break
		}
		ej += e
	}
	for ; i < size; i++ {
		cdf[i] = ^uint64(0)
	}

	steps := 0
	for st := size >> 1; st > 0; st >>= 1 {
		steps++
	}

	return &CDFSampler{rng: rng, cdf: cdf, steps: steps}, nil
}

// binarySearch returns the index b such that x >= cdf[b], taking a
// fixed number of steps regardless of x.
func (c *CDFSampler) binarySearch(x uint64) int64 {
	var a int64
	st := int64(len(c.cdf) >> 1)
	for i := 0; i < c.steps; i++ {
		b := a + st
		less := bitutil.CmpLessThan(c.cdf[b], x)
		a = int64(bitutil.IfConditionIsTrue(less, uint64(b), uint64(a)))
		st >>= 1
	}
	return a
}

// SignedSample draws a symmetric sample, the sign taken from a bit of
// the same internal draw used for the magnitude.
func (c *CDFSampler) SignedSample() int64 {
	x := c.rng.GetU64()
	a := c.binarySearch(x)
	sign := uint64(x) & 1
	return int64(bitutil.IfConditionIsTrue(sign, uint64(-a), uint64(a)))
}

// UnsignedSample draws a non-negative sample.
func (c *CDFSampler) UnsignedSample() int64 {
	x := c.rng.GetU64()
	return c.binarySearch(x)
}
