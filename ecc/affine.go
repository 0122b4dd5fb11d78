package ecc

import (
	"github.com/neil-smyth/phantom/bigint"
	"github.com/neil-smyth/phantom/internal/errs"
)

// Affine is a Weierstrass point in plain (x, y) coordinates. The
// identity (point at infinity) is represented by x == y == 0, matching
// the source's is_zero() convention.
type Affine struct {
	Curve *Curve
	x, y  *bigint.Int
}

// NewAffine constructs an affine point, reducing the coordinates into
// the curve's field.
func NewAffine(c *Curve, x, y *bigint.Int) *Affine {
	return &Affine{Curve: c, x: c.mod(x), y: c.mod(y)}
}

// Infinity returns the identity element in affine coordinates.
func Infinity(c *Curve) *Affine { return &Affine{Curve: c, x: bigint.New(), y: bigint.New()} }

func (p *Affine) X() *bigint.Int { return p.x }
func (p *Affine) Y() *bigint.Int { return p.y }
func (p *Affine) Z() *bigint.Int { return bigint.FromInt64(1) }

func (p *Affine) IsZero() bool { return p.x.IsZero() && p.y.IsZero() }

// Negate returns -p (y negated mod p).
func (p *Affine) Negate() *Affine {
	neg, _ := p.y.Negate().ModPositive(p.Curve.P)
	return &Affine{Curve: p.Curve, x: p.x.Clone(), y: neg}
}

// Double returns 2*p via lambda = (3x^2 + a) / 2y.
func (p *Affine) Double() (Point, error) {
	c := p.Curve
	if p.y.IsZero() {
		return Infinity(c), nil
	}

	twoY := c.mod(p.y.Add(p.y))
	invTwoY, ok := twoY.Invert(c.P)
	if !ok {
		return nil, errs.ErrPointError
	}

	x2 := c.mod(p.x.Mul(p.x))
	numerator := c.mod(x2.Add(x2).Add(x2).Add(c.A))
	lambda := c.mod(numerator.Mul(invTwoY))

	xr := c.mod(lambda.Mul(lambda).Sub(p.x).Sub(p.x))
	yr := c.mod(lambda.Mul(p.x.Sub(xr)).Sub(p.y))

	return &Affine{Curve: c, x: xr, y: yr}, nil
}

// Add returns p+q via lambda = (yb - ya) / (xb - xa).
func (p *Affine) Add(q Point) (Point, error) {
	c := p.Curve
	if p.IsZero() {
		return q, nil
	}
	if q.IsZero() {
		return p, nil
	}

	qa, ok := q.(*Affine)
	if !ok {
		x, y, err := q.Affine()
		if err != nil {
			return nil, err
		}
		qa = &Affine{Curve: c, x: x, y: y}
	}

	if p.x.Cmp(qa.x) == 0 {
		if p.y.Cmp(qa.y) != 0 {
			return Infinity(c), nil
		}
		return p.Double()
	}

	dx := c.mod(qa.x.Sub(p.x))
	invDx, ok := dx.Invert(c.P)
	if !ok {
		return nil, errs.ErrPointError
	}
	lambda := c.mod(qa.y.Sub(p.y).Mul(invDx))

	xr := c.mod(lambda.Mul(lambda).Sub(p.x).Sub(qa.x))
	yr := c.mod(lambda.Mul(p.x.Sub(xr)).Sub(p.y))

	return &Affine{Curve: c, x: xr, y: yr}, nil
}

// Affine returns the point unchanged (it is already in this system).
func (p *Affine) Affine() (x, y *bigint.Int, err error) { return p.x, p.y, nil }
