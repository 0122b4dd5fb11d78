// Package xof wraps golang.org/x/crypto/sha3's Keccak sponge for the
// SHAKE-128/256 extendable-output functions and the fixed-length
// SHA-3 digests used as the random oracle throughout this module.
package xof

import (
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Shake is an extendable-output function instance. The zero value is
// not usable; construct with NewShake128 or NewShake256.
type Shake struct {
	h       sha3.ShakeHash
	mdlen   int
	final   bool
}

// NewShake128 returns a SHAKE-128 instance with the given target
// digest length in bytes (16 or 32, per the source's accepted mdlen
// set); any other length returns an error rather than a bool, the
// idiomatic Go replacement for the source's `init() -> bool` contract.
func NewShake128(mdlen int) (*Shake, error) { return newShake(sha3.NewShake128(), mdlen) }

// NewShake256 returns a SHAKE-256 instance.
func NewShake256(mdlen int) (*Shake, error) { return newShake(sha3.NewShake256(), mdlen) }

func newShake(h sha3.ShakeHash, mdlen int) (*Shake, error) {
	if mdlen != 16 && mdlen != 32 {
		return nil, fmt.Errorf("xof: unsupported digest length %d: %w", mdlen, ErrInit)
	}
	return &Shake{h: h, mdlen: mdlen}, nil
}

// Absorb XORs bytes into the sponge. It may be called any number of
// times before Final; calling it afterwards is a programmer error.
func (s *Shake) Absorb(p []byte) {
	if s.final {
		panic("xof: Absorb after Final")
	}
	if len(p) == 0 {
		return
	}
	s.h.Write(p)
}

// Final closes the absorb phase. Squeeze may only be called
// afterwards. x/crypto/sha3's ShakeHash already applies the SHAKE
// domain separation byte internally on the first Read, so Final here
// is a state transition marker rather than an additional operation.
func (s *Shake) Final() { s.final = true }

// Squeeze emits n bytes, permuting the sponge on rate boundaries as
// needed. It implicitly finalizes the instance if not already done.
func (s *Shake) Squeeze(n int) []byte {
	s.final = true
	out := make([]byte, n)
	_, _ = s.h.Read(out)
	return out
}

// Clone returns an independent copy of the sponge state, allowing a
// forked squeeze sequence from the same absorbed input — the source's
// `get_copy()`.
func (s *Shake) Clone() *Shake {
	return &Shake{h: s.h.Clone(), mdlen: s.mdlen, final: s.final}
}

// Sha3_224 returns the SHA3-224 digest of p.
func Sha3_224(p []byte) [28]byte { var out [28]byte; h := sha3.Sum224(p); copy(out[:], h[:]); return out }

// Sha3_256 returns the SHA3-256 digest of p.
func Sha3_256(p []byte) [32]byte { return sha3.Sum256(p) }

// Sha3_384 returns the SHA3-384 digest of p.
func Sha3_384(p []byte) [48]byte { return sha3.Sum384(p) }

// Sha3_512 returns the SHA3-512 digest of p.
func Sha3_512(p []byte) [64]byte { return sha3.Sum512(p) }
