package ecc

import "github.com/neil-smyth/phantom/bigint"

// Jacobian is a Weierstrass point in Jacobian projective coordinates
// (x, y, z) representing the affine point (x/z^2, y/z^3). The identity
// is x == y == z == 0.
type Jacobian struct {
	Curve   *Curve
	x, y, z *bigint.Int
}

// NewJacobian lifts an affine (x, y) pair into Jacobian coordinates
// with z = 1.
func NewJacobian(c *Curve, x, y *bigint.Int) *Jacobian {
	return &Jacobian{Curve: c, x: c.mod(x), y: c.mod(y), z: bigint.FromInt64(1)}
}

// JacobianInfinity returns the identity element.
func JacobianInfinity(c *Curve) *Jacobian {
	return &Jacobian{Curve: c, x: bigint.New(), y: bigint.New(), z: bigint.New()}
}

func (p *Jacobian) X() *bigint.Int { return p.x }
func (p *Jacobian) Y() *bigint.Int { return p.y }
func (p *Jacobian) Z() *bigint.Int { return p.z }

func (p *Jacobian) IsZero() bool { return p.x.IsZero() && p.y.IsZero() && p.z.IsZero() }

func (p *Jacobian) zIsOne() bool { return p.z.Cmp(bigint.FromInt64(1)) == 0 }

// Double returns 2*p, adapted from weierstrass_prime_jacobian.hpp's
// doubling (the a == -3 shortcut avoids a second squaring of z).
func (p *Jacobian) Double() (Point, error) {
	c := p.Curve
	if p.y.IsZero() {
		return JacobianInfinity(c), nil
	}

	w := c.mod(p.y.Mul(p.y)) // w = y^2
	v1 := c.mod(w.Mul(p.x))  // v1 = x*y^2
	v1 = c.mod(v1.Add(v1))  // v1 = 2*x*y^2
	v1 = c.mod(v1.Add(v1))  // v1 = 4*x*y^2 (standard "S")

	var u1 *bigint.Int
	if c.AIsMinus3 {
		z2 := c.mod(p.z.Mul(p.z))
		a := c.mod(p.x.Add(z2).Mul(p.x.Sub(z2)))
		u1 = c.mod(a.Add(a).Add(a))
	} else {
		z4 := c.mod(p.z.Mul(p.z))
		z4 = c.mod(z4.Mul(z4))
		u2 := c.mod(z4.Mul(c.A))
		x2 := c.mod(p.x.Mul(p.x))
		u1 = c.mod(x2.Add(x2).Add(x2).Add(u2))
	}

	xr := c.mod(u1.Mul(u1).Sub(v1).Sub(v1))

	zr := c.mod(p.z.Mul(p.y))
	zr = c.mod(zr.Add(zr))

	w2 := c.mod(w.Mul(w))
	w8 := c.mod(w2.Add(w2).Add(w2).Add(w2).Add(w2).Add(w2).Add(w2).Add(w2))

	yr := c.mod(v1.Sub(xr).Mul(u1).Sub(w8))

	return &Jacobian{Curve: c, x: xr, y: yr, z: zr}, nil
}

// Add returns p+q, with a mixed-addition shortcut when q.Z() == 1
// (the common case for a fixed-base ladder), adapted from
// weierstrass_prime_jacobian.hpp's addition.
func (p *Jacobian) Add(q Point) (Point, error) {
	c := p.Curve
	if p.IsZero() {
		return q, nil
	}
	if q.IsZero() {
		return p, nil
	}

	qj, ok := q.(*Jacobian)
	if !ok {
		qx, qy, err := q.Affine()
		if err != nil {
			return nil, err
		}
		qj = NewJacobian(c, qx, qy)
	}

	var a, u1, v1 *bigint.Int
	if qj.zIsOne() {
		a = c.mod(p.z.Mul(p.z))
		u1 = p.x.Clone()
		v1 = p.y.Clone()
	} else {
		w := c.mod(qj.z.Mul(qj.z))
		a = c.mod(p.z.Mul(p.z))
		u1 = c.mod(p.x.Mul(w))
		v1 = c.mod(p.y.Mul(w).Mul(qj.z))
	}
	u2 := c.mod(qj.x.Mul(a))
	v2 := c.mod(qj.y.Mul(a).Mul(p.z))

	if u1.Cmp(u2) == 0 {
		if v1.Cmp(v2) != 0 {
			return JacobianInfinity(c), nil
		}
		return p.Double()
	}

	h := c.mod(u2.Sub(u1))
	r := c.mod(v2.Sub(v1))

	var zr *bigint.Int
	if qj.zIsOne() {
		zr = c.mod(p.z.Mul(h))
	} else {
		zr = c.mod(p.z.Mul(h).Mul(qj.z))
	}

	h2 := c.mod(h.Mul(h))
	h3 := c.mod(h2.Mul(h))
	r2 := c.mod(r.Mul(r))
	u1h2 := c.mod(u1.Mul(h2))

	xr := c.mod(r2.Sub(h3).Sub(u1h2).Sub(u1h2))
	yr := c.mod(r.Mul(u1h2.Sub(xr)).Sub(v1.Mul(h3)))

	return &Jacobian{Curve: c, x: xr, y: yr, z: zr}, nil
}

// Affine converts back to (x, y) by dividing out z^-2 and z^-3.
func (p *Jacobian) Affine() (x, y *bigint.Int, err error) {
	c := p.Curve
	invZ, ok := p.z.Invert(c.P)
	if !ok {
		return nil, nil, errPointErrorf("ecc.Jacobian.Affine")
	}
	invZ2 := c.mod(invZ.Mul(invZ))
	x = c.mod(p.x.Mul(invZ2))
	y = c.mod(p.y.Mul(invZ2).Mul(invZ))
	return x, y, nil
}
