package phantom

import (
	"fmt"

	"github.com/neil-smyth/phantom/bigint"
	"github.com/neil-smyth/phantom/csprng"
	"github.com/neil-smyth/phantom/ecc"
	"github.com/neil-smyth/phantom/internal/errs"
)

// ECDHKeyExchange is the KeyExchange interface's one concrete
// realization: a classic Diffie-Hellman exchange over package ecc's
// Weierstrass point arithmetic, scalar-multiplying the curve's base
// point by a freshly sampled private scalar and, on SharedSecret,
// scalar-multiplying the peer's point by that same scalar - the
// textbook construction spec.md §4.8's ECC layer exists to drive.
type ECDHKeyExchange struct {
	curve  *ecc.Curve
	priv   *bigint.Int
	pub    *ecc.Affine
	coding ecc.Coding
	window int
}

// NewECDHKeyExchange samples a private scalar in [1, curve.Order) via
// rng and derives the corresponding public point.
func NewECDHKeyExchange(curve *ecc.Curve, rng *csprng.DRBG, coding ecc.Coding, window int) (*ECDHKeyExchange, error) {
	priv, err := randScalar(curve, rng)
	if err != nil {
		return nil, fmt.Errorf("phantom.NewECDHKeyExchange: %w", err)
	}

	base := ecc.NewAffine(curve, curve.Gx, curve.Gy)
	pubPoint, err := ecc.ScalarMult(base, priv, coding, window)
	if err != nil {
		return nil, fmt.Errorf("phantom.NewECDHKeyExchange: %w", err)
	}
	px, py, err := pubPoint.Affine()
	if err != nil {
		return nil, fmt.Errorf("phantom.NewECDHKeyExchange: %w", err)
	}

	return &ECDHKeyExchange{
		curve:  curve,
		priv:   priv,
		pub:    ecc.NewAffine(curve, px, py),
		coding: coding,
		window: window,
	}, nil
}

func randScalar(curve *ecc.Curve, rng *csprng.DRBG) (*bigint.Int, error) {
	byteLen := (curve.Order.BitLen() + 7) / 8
	buf := make([]byte, byteLen)
	for {
		rng.GetMem(buf)
		k := bigint.FromBytes(buf, true)
		reduced, err := k.ModPositive(curve.Order)
		if err != nil {
			return nil, err
		}
		if !reduced.IsZero() {
			return reduced, nil
		}
	}
}

// Public implements KeyExchange: the big-endian (x||y) encoding of
// this party's public point, each coordinate padded to the field's
// byte width.
func (e *ECDHKeyExchange) Public() []byte {
	fieldLen := (e.curve.P.BitLen() + 7) / 8
	xb, _ := e.pub.X().GetBytes(fieldLen, true)
	yb, _ := e.pub.Y().GetBytes(fieldLen, true)
	return append(xb, yb...)
}

// SharedSecret implements KeyExchange: scalar-multiplies the decoded
// peer point by this party's private scalar and returns the shared
// x-coordinate, big-endian, the standard ECDH shared-secret encoding.
func (e *ECDHKeyExchange) SharedSecret(peerPublic []byte) ([]byte, error) {
	fieldLen := (e.curve.P.BitLen() + 7) / 8
	if len(peerPublic) != 2*fieldLen {
		return nil, fmt.Errorf("phantom.ECDHKeyExchange.SharedSecret: %w: peer public key length mismatch", errs.ErrInvalidArgument)
	}
	px := bigint.FromBytes(peerPublic[:fieldLen], true)
	py := bigint.FromBytes(peerPublic[fieldLen:], true)
	peer := ecc.NewAffine(e.curve, px, py)

	shared, err := ecc.ScalarMult(peer, e.priv, e.coding, e.window)
	if err != nil {
		return nil, fmt.Errorf("phantom.ECDHKeyExchange.SharedSecret: %w", err)
	}
	sx, _, err := shared.Affine()
	if err != nil {
		return nil, fmt.Errorf("phantom.ECDHKeyExchange.SharedSecret: %w", err)
	}
	out, err := sx.GetBytes(fieldLen, true)
	if err != nil {
		return nil, fmt.Errorf("phantom.ECDHKeyExchange.SharedSecret: %w", err)
	}
	return out, nil
}
