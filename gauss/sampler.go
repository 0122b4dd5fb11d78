package gauss

import (
	"fmt"
	"math"

	"github.com/neil-smyth/phantom/csprng"
)

// WideSampler is the M&W-style bootstrap Gaussian sampler: a ladder of
// Combiners on top of one CDFSampler, driving a "flip-and-round"
// rounding routine that supports an arbitrary real-valued center.
// Adapted from gaussian_sampler.{hpp,cpp}, read in full during
// grounding.
type WideSampler struct {
	rng      *csprng.DRBG
	base     *CDFSampler
	ladder   []*Combiner // ladder[len-1] is the widest rung, used by Sample
	baseCentre []float64
	maxSlevels int
	k          int64
	flips      int
	logBase    int
	mask       uint64
	wideSigma2 float64
	invWideSigma2 float64
	rrSigma2   float64
}

// NewWideSampler builds the combiner ladder and rounding parameters.
// q is the modulus the sampled coefficients will be reduced into (kept
// for parity with the source's signature; this package does not
// itself reduce samples mod q). eta controls the z1/z2 split at each
// combiner rung (floor(sqrt(wideSigma2/(2*eta^2)))).
func NewWideSampler(rng *csprng.DRBG, q int32, baseSigma float64, maxSlevels, logBase, precision, maxFlips int, eta float64) (*WideSampler, error) {
	if maxSlevels < 2 {
		return nil, fmt.Errorf("gauss.NewWideSampler: maxSlevels must be >= 2: %w", ErrInvalidArgument)
	}

	base, err := NewCDFSampler(rng, baseSigma, 10.0)
	if err != nil {
		return nil, err
	}

	baseCentre := make([]float64, 1<<uint(logBase))
	step := 1.0 / math.Pow(2, float64(logBase))
	for i := range baseCentre {
		baseCentre[i] = float64(i) * step
	}

	invTwoEta2 := 1.0 / (2.0 * eta * eta)
	wideSigma2 := baseSigma * baseSigma
	baseSigma2 := wideSigma2

	ladder := make([]*Combiner, maxSlevels-1)
	var cur Sampler = base
	for i := 0; i < maxSlevels-1; i++ {
		z1 := int64(math.Floor(math.Sqrt(wideSigma2 * invTwoEta2)))
		z2 := z1 - 1
		if z2 < 1 {
			z2 = 1
		}
		comb := NewCombiner(cur, z1, z2)
		ladder[i] = comb
		wideSigma2 = float64(z1*z1+z2*z2) * wideSigma2
		cur = comb
	}

	k := int64(math.Ceil(float64(precision-maxFlips) / float64(logBase)))
	flips := precision - logBase*int(k)
	mask := uint64(1)<<uint(logBase) - 1

	rrSigma2 := 1.0
	t := 1.0 / float64(uint64(1)<<uint(2*logBase))
	s := 1.0
	for i := k - 1; i > 0; i-- {
		s *= t
		rrSigma2 += s
	}
	rrSigma2 *= baseSigma2

	return &WideSampler{
		rng: rng, base: base, ladder: ladder, baseCentre: baseCentre,
		maxSlevels: maxSlevels, k: k, flips: flips, logBase: logBase, mask: mask,
		wideSigma2: wideSigma2, invWideSigma2: 1 / wideSigma2, rrSigma2: rrSigma2,
	}, nil
}

// Sample draws one integer from the discrete Gaussian with the given
// variance and center, via the top combiner rung plus flip-and-round.
func (w *WideSampler) Sample(sigma2, centre float64) int64 {
	top := w.ladder[w.maxSlevels-2]
	x := float64(top.SignedSample())

	c := centre + x*math.Sqrt((sigma2-w.rrSigma2)*w.invWideSigma2)
	ci := math.Floor(c)
	c -= ci

	return int64(ci) + w.flipAndRound(c)
}

// round refines a sample generated at the base sigma at integer center
// centre, via k rounds of biased rounding using the base sampler at
// the per-digit centers.
func (w *WideSampler) round(centre int64) int64 {
	for i := 0; i < int(w.k); i++ {
		idx := w.mask & uint64(centre)
		sample := int64(w.baseCentre[idx]) + w.base.SignedSample()
		if idx > 0 && centre < 0 {
			sample--
		}
		for j := 0; j < w.logBase; j++ {
			centre = (centre + (centre >> 63 & 1)) >> 1
		}
		centre += sample
	}
	return centre
}

// flipAndRound implements the bootstrap's biased coin-flip rounding:
// scan the fractional bits of centre at the configured precision,
// flip random bits until a disambiguating position is found, and round
// the base integer up or down accordingly.
func (w *WideSampler) flipAndRound(centre float64) int64 {
	precision := w.flips + w.logBase*int(w.k)
	c := int64(centre * float64(uint64(1)<<uint(precision)))
	baseC := c >> uint(w.flips)

	var rbits uint64
	for i, j := w.flips-1, 0; i >= 0; i, j = i-1, j+1 {
		j &= 0x3f
		if j == 0 {
			rbits = w.rng.GetU64()
		}
		rbit := int64(rbits & 1)
		rbits >>= 1

		check := (c >> uint(i)) & 1
		if rbit > check {
			return w.round(baseC)
		}
		if rbit < check {
			return w.round(baseC + 1)
		}
	}
	return w.round(baseC + 1)
}
