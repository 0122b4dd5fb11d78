package ring

import "fmt"

// MontgomeryContext is a Reducer storing values in Montgomery form.
type MontgomeryContext struct {
	p MRedParams
}

// NewMontgomeryContext builds a Montgomery reducer for the given odd
// modulus.
func NewMontgomeryContext(q uint64) (*MontgomeryContext, error) {
	if q&1 == 0 {
		return nil, fmt.Errorf("ring: Montgomery modulus %d is even", q)
	}
	return &MontgomeryContext{p: GenMRedParams(q)}, nil
}

func (c *MontgomeryContext) Modulus() uint64         { return c.p.Q }
func (c *MontgomeryContext) ConvertTo(x uint64) uint64   { return MForm(x, c.p) }
func (c *MontgomeryContext) ConvertFrom(x uint64) uint64 { return InvMForm(x, c.p) }
func (c *MontgomeryContext) Reduce(x uint64) uint64      { return CRed(x, c.p.Q) }
func (c *MontgomeryContext) Add(x, y uint64) uint64 {
	s := x + y
	if s >= c.p.Q {
		s -= c.p.Q
	}
	return s
}
func (c *MontgomeryContext) Sub(x, y uint64) uint64 {
	if x >= y {
		return x - y
	}
	return x + c.p.Q - y
}
func (c *MontgomeryContext) Mul(x, y uint64) uint64 { return MRed(x, y, c.p) }
func (c *MontgomeryContext) Sqr(x uint64) uint64    { return MRed(x, x, c.p) }
func (c *MontgomeryContext) Negate(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	return c.p.Q - x
}
func (c *MontgomeryContext) Rshift1(x uint64) uint64 {
	if x&1 == 1 {
		x += c.p.Q
	}
	return x >> 1
}
func (c *MontgomeryContext) Lshift1(x uint64) uint64 { return c.Add(x, x) }
func (c *MontgomeryContext) Pow(x, e uint64) uint64 {
	// x and the result are in Montgomery form throughout: squaring and
	// multiplying in Montgomery form composes correctly because each
	// MRed already divides out one factor of R.
	result := c.ConvertTo(1)
	base := x
	for e > 0 {
		if e&1 == 1 {
			result = c.Mul(result, base)
		}
		base = c.Sqr(base)
		e >>= 1
	}
	return result
}
func (c *MontgomeryContext) Inverse(x uint64) (uint64, bool) {
	// Fermat's little theorem: x^(q-2) mod q, computed in Montgomery
	// form throughout.
	if x == 0 {
		return 0, false
	}
	return c.Pow(x, c.p.Q-2), true
}
func (c *MontgomeryContext) InversePow2(k int) uint64 {
	inv := c.ConvertTo(1)
	half := c.Rshift1(c.ConvertTo(1))
	for i := 0; i < k; i++ {
		inv = c.Mul(inv, half)
	}
	return inv
}
func (c *MontgomeryContext) Div(x, y uint64) (uint64, bool) {
	yInv, ok := c.Inverse(y)
	if !ok {
		return 0, false
	}
	return c.Mul(x, yInv), true
}

// BarrettContext is a Reducer that stores values in plain (non
// Montgomery) form, reducing double-word products via BRed.
type BarrettContext struct {
	p BRedParams
}

// NewBarrettContext builds a Barrett reducer for the given modulus.
func NewBarrettContext(q uint64) *BarrettContext {
	return &BarrettContext{p: GenBRedParams(q)}
}

func (c *BarrettContext) Modulus() uint64         { return c.p.Q }
func (c *BarrettContext) ConvertTo(x uint64) uint64   { return CRed(x, c.p.Q) }
func (c *BarrettContext) ConvertFrom(x uint64) uint64 { return x }
func (c *BarrettContext) Reduce(x uint64) uint64      { return CRed(x, c.p.Q) }
func (c *BarrettContext) Add(x, y uint64) uint64 {
	s := x + y
	if s >= c.p.Q {
		s -= c.p.Q
	}
	return s
}
func (c *BarrettContext) Sub(x, y uint64) uint64 {
	if x >= y {
		return x - y
	}
	return x + c.p.Q - y
}
func (c *BarrettContext) mulWide(x, y uint64) (hi, lo uint64) {
	return mul64Wide(x, y)
}
func (c *BarrettContext) Mul(x, y uint64) uint64 {
	hi, lo := c.mulWide(x, y)
	return BRed(hi, lo, c.p)
}
func (c *BarrettContext) Sqr(x uint64) uint64 { return c.Mul(x, x) }
func (c *BarrettContext) Negate(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	return c.p.Q - x
}
func (c *BarrettContext) Rshift1(x uint64) uint64 {
	if x&1 == 1 {
		x += c.p.Q
	}
	return x >> 1
}
func (c *BarrettContext) Lshift1(x uint64) uint64 { return c.Add(x, x) }
func (c *BarrettContext) Pow(x, e uint64) uint64 {
	result := uint64(1)
	base := x
	for e > 0 {
		if e&1 == 1 {
			result = c.Mul(result, base)
		}
		base = c.Sqr(base)
		e >>= 1
	}
	return result
}
func (c *BarrettContext) Inverse(x uint64) (uint64, bool) {
	if x == 0 {
		return 0, false
	}
	return c.Pow(x, c.p.Q-2), true
}
func (c *BarrettContext) InversePow2(k int) uint64 {
	two := uint64(2)
	inv, _ := c.Inverse(two)
	result := uint64(1)
	for i := 0; i < k; i++ {
		result = c.Mul(result, inv)
	}
	return result
}
func (c *BarrettContext) Div(x, y uint64) (uint64, bool) {
	yInv, ok := c.Inverse(y)
	if !ok {
		return 0, false
	}
	return c.Mul(x, yInv), true
}
