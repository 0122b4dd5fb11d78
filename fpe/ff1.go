package fpe

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"math/big"

	"github.com/neil-smyth/phantom/internal/errs"
)

// ff1Rounds is the fixed Feistel round count, per
// aes_fpe_ff1.hpp's ff1_rounds.
const ff1Rounds = 10

// ff1Core holds the AES key and tweak for one FF1 invocation, per
// aes_fpe_ff1.hpp's create_ctx/encrypt/decrypt.
type ff1Core struct {
	block cipher.Block
	tweak []byte
}

func newFF1Core(key, tweak []byte) (*ff1Core, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("fpe.newFF1Core: %w: %v", errs.ErrInvalidArgument, err)
	}
	return &ff1Core{block: block, tweak: append([]byte(nil), tweak...)}, nil
}

// ceilDiv returns ceil(a/b) for non-negative a and positive b.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// log2Ceil returns ceil(log2(r)) for r >= 2.
func log2Ceil(r uint32) int {
	bits := 0
	v := uint64(1)
	for v < uint64(r) {
		v <<= 1
		bits++
	}
	return bits
}

// numRadix computes NUM_r(X): the big-endian base-r value of the
// symbol array X, per aes_fpe_ff1.hpp's from_radix_array.
func numRadix(x []uint32, radix uint32) *big.Int {
	n := new(big.Int)
	r := big.NewInt(int64(radix))
	for _, d := range x {
		n.Mul(n, r)
		n.Add(n, big.NewInt(int64(d)))
	}
	return n
}

// strRadix produces the length-m base-r digit array (most significant
// first) representing n mod r^m, per aes_fpe_ff1.hpp's
// to_radix_array.
func strRadix(n *big.Int, radix uint32, m int) []uint32 {
	r := big.NewInt(int64(radix))
	mod := new(big.Int).Exp(r, big.NewInt(int64(m)), nil)
	v := new(big.Int).Mod(n, mod)

	out := make([]uint32, m)
	tmp := new(big.Int).Set(v)
	rem := new(big.Int)
	for i := m - 1; i >= 0; i-- {
		tmp.DivMod(tmp, r, rem)
		out[i] = uint32(rem.Int64())
	}
	return out
}

// computeP builds the fixed 16-byte P block, per aes_fpe_ff1.hpp's
// computeP: format id, radix, rounds, u mod 256, n, tweak length.
func computeP(radix uint32, u, n, tweaklen int) []byte {
	p := make([]byte, 16)
	p[0] = 1
	p[1] = 2
	p[2] = 1
	p[3] = byte(radix >> 16)
	p[4] = byte(radix >> 8)
	p[5] = byte(radix)
	p[6] = 10 // ff1Rounds
	p[7] = byte(u)
	p[8] = byte(n >> 24)
	p[9] = byte(n >> 16)
	p[10] = byte(n >> 8)
	p[11] = byte(n)
	p[12] = byte(tweaklen >> 24)
	p[13] = byte(tweaklen >> 16)
	p[14] = byte(tweaklen >> 8)
	p[15] = byte(tweaklen)
	return p
}

// prf is the CBC-MAC-style keyed hash over P followed by Q: R =
// AES(P), then R = AES(Qi xor R) per 16-byte block of Q, per
// aes_fpe_ff1.hpp's PRF.
func prf(block cipher.Block, p, q []byte) []byte {
	r := make([]byte, 16)
	block.Encrypt(r, p)

	buf := make([]byte, 16)
	for off := 0; off < len(q); off += 16 {
		for i := 0; i < 16; i++ {
			buf[i] = q[off+i] ^ r[i]
		}
		block.Encrypt(r, buf)
	}
	return r
}

// computeS extends R into a d-byte (or more) pseudorandom string via
// CTR-like counter blocks XORed with R then re-encrypted, per
// aes_fpe_ff1.hpp's computeS: S = R || AES(R xor ctr=1) || AES(R xor
// ctr=2) || ...
func computeS(block cipher.Block, r []byte, cnt int) []byte {
	s := make([]byte, 0, 16*(cnt+1))
	s = append(s, r...)

	buf := make([]byte, 16)
	out := make([]byte, 16)
	for j := 1; j <= cnt; j++ {
		copy(buf, r)
		buf[12] ^= byte(j >> 24)
		buf[13] ^= byte(j >> 16)
		buf[14] ^= byte(j >> 8)
		buf[15] ^= byte(j)
		block.Encrypt(out, buf)
		s = append(s, out...)
	}
	return s
}

// cipher runs the 10-round Feistel construction (NIST SP800-38G
// FF1, the algorithm aes_fpe_ff1.hpp implements) over a base-radix
// symbol array, in the given direction.
func (c *ff1Core) cipher(radix uint32, in []uint32, encrypt bool) ([]uint32, error) {
	n := len(in)
	if n < 2 {
		return nil, fmt.Errorf("fpe.ff1Core.cipher: %w: input too short", errs.ErrInvalidArgument)
	}
	u := n / 2
	v := n - u

	a := append([]uint32(nil), in[:u]...)
	b := append([]uint32(nil), in[u:]...)

	// ceil(v*log2(radix)) is the bit length of radix^v - 1.
	rv := new(big.Int).Exp(big.NewInt(int64(radix)), big.NewInt(int64(v)), nil)
	ceilVlog2 := rv.Sub(rv, big.NewInt(1)).BitLen()
	byteLen := ceilDiv(ceilVlog2, 8)
	d := 4*ceilDiv(byteLen, 4) + 4
	tweaklen := len(c.tweak)
	pad := (-(tweaklen + byteLen + 1)) % 16
	if pad < 0 {
		pad += 16
	}
	qlen := tweaklen + pad + 1 + byteLen
	cnt := ceilDiv(d, 16) - 1

	p := computeP(radix, u, n, tweaklen)

	for round := 0; round < ff1Rounds; round++ {
		i := round
		if !encrypt {
			i = ff1Rounds - 1 - round
		}
		m := u
		if i%2 == 1 {
			m = v
		}

		q := make([]byte, qlen)
		copy(q, c.tweak)
		q[tweaklen+pad] = byte(i)

		var numBytes []byte
		if encrypt {
			numBytes = numRadix(b, radix).Bytes()
		} else {
			numBytes = numRadix(a, radix).Bytes()
		}
		if len(numBytes) > byteLen {
			numBytes = numBytes[len(numBytes)-byteLen:]
		}
		copy(q[qlen-len(numBytes):], numBytes)

		r := prf(c.block, p, q)
		s := computeS(c.block, r, cnt)
		y := new(big.Int).SetBytes(s[:d])

		if encrypt {
			num := numRadix(a, radix)
			num.Add(num, y)
			newB := strRadix(num, radix, m)
			a, b = b, newB
		} else {
			num := numRadix(b, radix)
			num.Sub(num, y)
			newA := strRadix(num, radix, m)
			b, a = a, newA
		}
	}

	out := make([]uint32, 0, n)
	out = append(out, a...)
	out = append(out, b...)
	return out, nil
}
