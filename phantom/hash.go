package phantom

import (
	"fmt"

	"github.com/neil-smyth/phantom/xof"
)

// hashToPoint maps salt||msg to n coefficients uniform in [0, q) via
// rejection-sampled SHAKE-256 output, the standard "hash a message to
// a ring element" step every hash-and-sign or hash-based IBE scheme
// over NTRU/ring-LWE lattices needs before calling the trapdoor
// sampler (Falcon's HashToPoint; grounded on package xof's SHAKE-256
// wrapper, itself grounded on golang.org/x/crypto/sha3).
func hashToPoint(salt, msg []byte, n int, q uint64) ([]int64, error) {
	s, err := xof.NewShake256(32)
	if err != nil {
		return nil, fmt.Errorf("phantom.hashToPoint: %w", err)
	}
	s.Absorb(salt)
	s.Absorb(msg)
	s.Final()

	limit := (65536 / q) * q
	out := make([]int64, n)
	for i := 0; i < n; {
		buf := s.Squeeze(2)
		v := uint64(buf[0])<<8 | uint64(buf[1])
		if v >= limit {
			continue
		}
		out[i] = int64(v % q)
		i++
	}
	return out, nil
}
