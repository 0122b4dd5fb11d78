package ecc

import "github.com/neil-smyth/phantom/bigint"

// Projective is a Weierstrass point in standard projective coordinates
// (x, y, z) representing the affine point (x/z, y/z). Unlike Jacobian
// (x/z^2, y/z^3), this is the "Cohen et al." projective form used by
// weierstrass_prime_projective.hpp, with its own doubling/addition
// formulas (w = a*z^2 + 3*x^2, s = y*z, b = x*y*s, h = w^2 - 8*b).
type Projective struct {
	Curve   *Curve
	x, y, z *bigint.Int
}

// NewProjective lifts an affine (x, y) pair into projective coordinates
// with z = 1.
func NewProjective(c *Curve, x, y *bigint.Int) *Projective {
	return &Projective{Curve: c, x: c.mod(x), y: c.mod(y), z: bigint.FromInt64(1)}
}

// ProjectiveInfinity returns the identity element.
func ProjectiveInfinity(c *Curve) *Projective {
	return &Projective{Curve: c, x: bigint.New(), y: bigint.New(), z: bigint.New()}
}

func (p *Projective) X() *bigint.Int { return p.x }
func (p *Projective) Y() *bigint.Int { return p.y }
func (p *Projective) Z() *bigint.Int { return p.z }

func (p *Projective) IsZero() bool {
	return p.x.IsZero() && p.y.IsZero() && p.z.IsZero()
}

func (p *Projective) zIsOne() bool { return p.z.Cmp(bigint.FromInt64(1)) == 0 }

// Double returns 2*p, adapted from weierstrass_prime_projective.hpp's
// doubling(): w = a*z^2 + 3*x^2 (or the a == -3 shortcut), s = y*z,
// b = x*y*s, h = w^2 - 8*b, x' = 2*h*s, y' = w*(4*b - h) - 8*y^2*s^2,
// z' = 8*s^3.
func (p *Projective) Double() (Point, error) {
	c := p.Curve
	if p.y.IsZero() {
		return ProjectiveInfinity(c), nil
	}

	var w *bigint.Int
	if c.AIsMinus3 {
		x2 := c.mod(p.x.Mul(p.x))
		z2 := c.mod(p.z.Mul(p.z))
		w = c.mod(x2.Sub(z2))
		w = c.mod(w.Add(w).Add(w)) // w = 3*(x^2 - z^2)
	} else {
		x2 := c.mod(p.x.Mul(p.x))
		threeX2 := c.mod(x2.Add(x2).Add(x2))
		z2a := c.mod(c.mod(p.z.Mul(p.z)).Mul(c.A))
		w = c.mod(z2a.Add(threeX2))
	}

	s := c.mod(p.y.Mul(p.z))       // s = y*z
	b := c.mod(p.x.Mul(p.y).Mul(s)) // b = x*y*s

	eightB := c.mod(b.Add(b))
	eightB = c.mod(eightB.Add(eightB))
	eightB = c.mod(eightB.Add(eightB))
	h := c.mod(c.mod(w.Mul(w)).Sub(eightB)) // h = w^2 - 8b

	hs := c.mod(h.Mul(s))
	xr := c.mod(hs.Add(hs)) // x' = 2*h*s

	fourB := c.mod(b.Add(b))
	fourB = c.mod(fourB.Add(fourB))
	wTerm := c.mod(c.mod(fourB.Sub(h)).Mul(w)) // w*(4b - h)

	ySq := c.mod(p.y.Mul(p.y))
	sSq := c.mod(s.Mul(s))
	y8 := c.mod(ySq.Mul(sSq))
	y8 = c.mod(y8.Add(y8))
	y8 = c.mod(y8.Add(y8))
	y8 = c.mod(y8.Add(y8)) // 8*y^2*s^2

	yr := c.mod(wTerm.Sub(y8))

	s3, _ := s.PowMod(bigint.FromInt64(3), c.P)
	s3 = c.mod(s3)
	zr := c.mod(s3.Add(s3))
	zr = c.mod(zr.Add(zr))
	zr = c.mod(zr.Add(zr)) // z' = 8*s^3

	return &Projective{Curve: c, x: xr, y: yr, z: zr}, nil
}

// Add returns p+q, adapted from weierstrass_prime_projective.hpp's
// addition(), with a mixed-addition shortcut when q.Z() == 1.
func (p *Projective) Add(q Point) (Point, error) {
	c := p.Curve
	if p.IsZero() {
		return q, nil
	}
	if q.IsZero() {
		return p, nil
	}

	qp, ok := q.(*Projective)
	if !ok {
		qx, qy, err := q.Affine()
		if err != nil {
			return nil, err
		}
		qp = NewProjective(c, qx, qy)
	}

	if p.x.Cmp(qp.x) == 0 {
		if p.y.Cmp(qp.y) != 0 {
			return ProjectiveInfinity(c), nil
		}
		return p.Double()
	}

	u1 := c.mod(qp.y.Mul(p.z)) // b.y * a.z

	var u2 *bigint.Int
	if qp.zIsOne() {
		u2 = p.y.Clone()
	} else {
		u2 = c.mod(p.y.Mul(qp.z))
	}

	v1 := c.mod(qp.x.Mul(p.z)) // b.x * a.z

	var v2 *bigint.Int
	if qp.zIsOne() {
		v2 = p.x.Clone()
	} else {
		v2 = c.mod(p.x.Mul(qp.z))
	}

	u1 = c.mod(u1.Sub(u2))
	v1 = c.mod(v1.Sub(v2))

	w1 := c.mod(v1.Mul(v1))   // w = v1^2 (v1 is now the diff)
	v2 = c.mod(v2.Mul(w1))    // v2 = v2_orig * v1^2
	a := c.mod(w1.Mul(v1))    // a = v1^3

	var w2 *bigint.Int
	if qp.zIsOne() {
		w2 = p.z.Clone()
	} else {
		w2 = c.mod(p.z.Mul(qp.z))
	}

	zr := c.mod(w2.Mul(a))  // z' = (a.z*b.z) * v1^3
	yTemp := c.mod(u2.Mul(a))

	u1Sq := c.mod(u1.Mul(u1))
	a2 := c.mod(c.mod(u1Sq.Mul(w2)).Sub(v2).Sub(v2).Sub(a))

	xr := c.mod(v1.Mul(a2))
	yr := c.mod(c.mod(v2.Sub(a2)).Mul(u1).Sub(yTemp))

	return &Projective{Curve: c, x: xr, y: yr, z: zr}, nil
}

// Affine converts back to (x, y) by dividing out z^-1.
func (p *Projective) Affine() (x, y *bigint.Int, err error) {
	c := p.Curve
	invZ, ok := p.z.Invert(c.P)
	if !ok {
		return nil, nil, errPointErrorf("ecc.Projective.Affine")
	}
	x = c.mod(p.x.Mul(invZ))
	y = c.mod(p.y.Mul(invZ))
	return x, y, nil
}
