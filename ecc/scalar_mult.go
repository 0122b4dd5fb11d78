package ecc

import (
	"fmt"

	"github.com/neil-smyth/phantom/bigint"
)

// ScalarMult computes k*p via a double-and-add ladder driven by a
// ScalarParser under the given coding. NAF and Window codings consume
// signed/unsigned multi-bit digits; Binary and MontgomeryLadder consume
// one bit at a time. BinaryDual is not supported here (it drives a
// dual-accumulator ladder, not this single-accumulator one).
func ScalarMult(p Point, k *bigint.Int, coding Coding, window int) (Point, error) {
	if coding == CodingBinaryDual {
		return nil, fmt.Errorf("ecc.ScalarMult: CodingBinaryDual requires a dual-accumulator ladder")
	}
	if k.Sign() == 0 {
		return zeroOf(p), nil
	}

	parser, err := NewScalarParser(coding, k, window)
	if err != nil {
		return nil, fmt.Errorf("ecc.ScalarMult: %w", err)
	}

	switch coding {
	case CodingBinary, CodingMontgomeryLadder:
		return binaryLadder(p, parser)
	case CodingWindow:
		return windowLadder(p, parser, window)
	case CodingNAF:
		return nafLadder(p, parser)
	default:
		return nil, fmt.Errorf("ecc.ScalarMult: unsupported coding %d", coding)
	}
}

func zeroOf(p Point) Point {
	switch v := p.(type) {
	case *Affine:
		return Infinity(v.Curve)
	case *Jacobian:
		return JacobianInfinity(v.Curve)
	case *Projective:
		return ProjectiveInfinity(v.Curve)
	default:
		return p
	}
}

func binaryLadder(p Point, parser *ScalarParser) (Point, error) {
	acc := zeroOf(p)
	for {
		bit, ok := parser.Pull()
		if !ok {
			break
		}
		var err error
		acc, err = acc.Double()
		if err != nil {
			return nil, err
		}
		if bit == 1 {
			acc, err = acc.Add(p)
			if err != nil {
				return nil, err
			}
		}
	}
	return acc, nil
}

func windowLadder(p Point, parser *ScalarParser, w int) (Point, error) {
	table, err := precomputeMultiples(p, (1<<uint(w))-1)
	if err != nil {
		return nil, err
	}

	acc := zeroOf(p)
	for {
		digit, ok := parser.Pull()
		if !ok {
			break
		}
		var err error
		for i := 0; i < w; i++ {
			acc, err = acc.Double()
			if err != nil {
				return nil, err
			}
		}
		if digit != 0 {
			acc, err = acc.Add(table[digit])
			if err != nil {
				return nil, err
			}
		}
	}
	return acc, nil
}

func nafLadder(p Point, parser *ScalarParser) (Point, error) {
	acc := zeroOf(p)
	neg, err := negate(p)
	if err != nil {
		return nil, err
	}

	for {
		digit, ok := parser.Pull()
		if !ok {
			break
		}
		var err error
		acc, err = acc.Double()
		if err != nil {
			return nil, err
		}
		switch {
		case digit > 0:
			acc, err = acc.Add(scaledMultiple(p, digit))
			if err != nil {
				return nil, err
			}
		case digit < 0:
			acc, err = acc.Add(scaledMultiple(neg, -digit))
			if err != nil {
				return nil, err
			}
		}
	}
	return acc, nil
}

// scaledMultiple returns d*base for the small odd d produced by NAF
// recoding, via repeated doubling-free addition (d is always odd and
// small, so this is a short loop, not a full ladder).
func scaledMultiple(base Point, d int32) Point {
	acc := zeroOf(base)
	for i := int32(0); i < d; i++ {
		acc, _ = acc.Add(base)
	}
	return acc
}

func negate(p Point) (Point, error) {
	switch v := p.(type) {
	case *Affine:
		return v.Negate(), nil
	case *Jacobian:
		x, y, err := v.Affine()
		if err != nil {
			return nil, err
		}
		neg := NewAffine(v.Curve, x, y).Negate()
		return NewJacobian(v.Curve, neg.x, neg.y), nil
	case *Projective:
		x, y, err := v.Affine()
		if err != nil {
			return nil, err
		}
		neg := NewAffine(v.Curve, x, y).Negate()
		return NewProjective(v.Curve, neg.x, neg.y), nil
	default:
		return nil, fmt.Errorf("ecc.negate: unsupported point type %T", p)
	}
}

// precomputeMultiples returns a table where table[d] = d*p for
// d in [1, max], built by repeated addition.
func precomputeMultiples(p Point, max int32) (map[int32]Point, error) {
	table := make(map[int32]Point, max)
	acc := p
	table[1] = p
	for d := int32(2); d <= max; d++ {
		var err error
		acc, err = acc.Add(p)
		if err != nil {
			return nil, err
		}
		table[d] = acc
	}
	return table, nil
}
