package gauss

// Combiner widens a base sampler's sigma by linearly combining two
// independent draws from an underlying Sampler with small integer
// coefficients z1, z2 chosen so that z1^2 + z2^2 scales sigma^2 by the
// desired amount, per gaussian_sampler.hpp's gaussian_combiner. A
// ladder of Combiners, each built on the previous rung, reaches
// arbitrarily wide sigma from one narrow-sigma CDFSampler at the base.
type Combiner struct {
	base   Sampler
	z1, z2 int64
}

// NewCombiner constructs one rung of the ladder on top of base.
func NewCombiner(base Sampler, z1, z2 int64) *Combiner {
	return &Combiner{base: base, z1: z1, z2: z2}
}

func (c *Combiner) SignedSample() int64 {
	return c.z1*c.base.SignedSample() + c.z2*c.base.SignedSample()
}

func (c *Combiner) UnsignedSample() int64 {
	return c.z1*c.base.UnsignedSample() + c.z2*c.base.UnsignedSample()
}
