// Package ecc implements prime-field Weierstrass elliptic-curve point
// arithmetic across three coordinate systems sharing one Point
// interface (affine, Jacobian and standard projective) and the scalar
// recoding needed to drive a double-and-add ladder: binary, Montgomery
// ladder, windowed, NAF and binary-dual encodings.
//
// Point arithmetic is adapted from original_source/src/ecc/
// weierstrass_prime_affine.hpp, weierstrass_prime_jacobian.hpp and
// weierstrass_prime_projective.hpp (all read in full during grounding);
// scalar recoding from original_source/src/core/scalar_parser.{hpp,cpp}.
package ecc

import (
	"github.com/neil-smyth/phantom/bigint"
)

// Curve holds the parameters of a short Weierstrass curve y^2 = x^3 +
// a*x + b over a prime field Z_p.
type Curve struct {
	P         *bigint.Int
	A         *bigint.Int
	B         *bigint.Int
	Order     *bigint.Int
	Gx, Gy    *bigint.Int
	AIsMinus3 bool
}

// NewCurve constructs a Curve, detecting the common a == -3 special
// case used by the Jacobian doubling formula's shortcut.
func NewCurve(p, a, b, order, gx, gy *bigint.Int) *Curve {
	minus3, _ := bigint.FromInt64(-3).ModPositive(p)
	return &Curve{
		P: p, A: a, B: b, Order: order, Gx: gx, Gy: gy,
		AIsMinus3: a.Cmp(minus3) == 0,
	}
}

// mod reduces x into [0, c.P).
func (c *Curve) mod(x *bigint.Int) *bigint.Int {
	r, _ := x.ModPositive(c.P)
	return r
}

// Point is implemented by the concrete coordinate systems below.
type Point interface {
	// X, Y, Z return the point's raw coordinates in its native system.
	X() *bigint.Int
	Y() *bigint.Int
	Z() *bigint.Int
	// IsZero reports whether the point is the identity (point at infinity).
	IsZero() bool
	// Double returns 2*p.
	Double() (Point, error)
	// Add returns p+q.
	Add(q Point) (Point, error)
	// Affine converts the point to affine (x, y) coordinates.
	Affine() (x, y *bigint.Int, err error)
}
