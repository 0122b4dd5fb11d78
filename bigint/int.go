// Package bigint implements the module's multi-precision integer
// layer: construction from machine words, strings and byte arrays,
// truncated and floored division, modular arithmetic, GCD/modular
// inverse, primality testing and radix I/O. It is built on top of
// math/big.Int rather than a hand-rolled limb array (see DESIGN.md);
// the Int type adds the specific modular/Montgomery-adjacent surface
// the rest of the module (ring, ntru, fpe) needs.
package bigint

import (
	"fmt"
	"math/big"
)

// Int is a multi-precision signed integer. The zero value is a valid
// representation of zero.
type Int struct {
	v big.Int
}

// New returns a freshly-allocated zero Int.
func New() *Int { return &Int{} }

// FromInt64 constructs an Int from a machine integer.
func FromInt64(x int64) *Int {
	i := New()
	i.v.SetInt64(x)
	return i
}

// FromUint64 constructs an Int from an unsigned machine integer.
func FromUint64(x uint64) *Int {
	i := New()
	i.v.SetUint64(x)
	return i
}

// FromString parses s in the given base (2, 8, 10 or 16). Base 0 asks
// math/big to infer the base from a leading "0x"/"0o"/"0b" prefix, as
// the source's radix-autodetect string constructor does.
func FromString(s string, base int) (*Int, error) {
	i := New()
	_, ok := i.v.SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("bigint: invalid string %q for base %d: %w", s, base, ErrInvalidArgument)
	}
	return i, nil
}

// FromBytes constructs an unsigned Int from a byte slice, either
// big-endian (bigEndian=true) or little-endian.
func FromBytes(b []byte, bigEndian bool) *Int {
	i := New()
	if bigEndian {
		i.v.SetBytes(b)
		return i
	}
	rev := make([]byte, len(b))
	for k, c := range b {
		rev[len(b)-1-k] = c
	}
	i.v.SetBytes(rev)
	return i
}

// Clone returns an independent copy.
func (i *Int) Clone() *Int {
	out := New()
	out.v.Set(&i.v)
	return out
}

// Sign returns -1, 0 or 1.
func (i *Int) Sign() int { return i.v.Sign() }

// IsZero reports whether the value is zero.
func (i *Int) IsZero() bool { return i.v.Sign() == 0 }

// Negate returns -i.
func (i *Int) Negate() *Int {
	out := New()
	out.v.Neg(&i.v)
	return out
}

// Add returns i+j.
func (i *Int) Add(j *Int) *Int {
	out := New()
	out.v.Add(&i.v, &j.v)
	return out
}

// Sub returns i-j.
func (i *Int) Sub(j *Int) *Int {
	out := New()
	out.v.Sub(&i.v, &j.v)
	return out
}

// Mul returns i*j.
func (i *Int) Mul(j *Int) *Int {
	out := New()
	out.v.Mul(&i.v, &j.v)
	return out
}

// QuoRem returns the truncated quotient and remainder of i/j (sign of
// remainder follows i, matching Go's math/big and C's truncated
// division), erroring on division by zero.
func (i *Int) QuoRem(j *Int) (q, r *Int, err error) {
	if j.IsZero() {
		return nil, nil, fmt.Errorf("bigint: division by zero: %w", ErrInvalidArgument)
	}
	q, r = New(), New()
	q.v.QuoRem(&i.v, &j.v, &r.v)
	return q, r, nil
}

// DivMod returns the floored quotient and a non-negative-when-divisor-
// positive remainder of i/j (Euclidean-style floored division).
func (i *Int) DivMod(j *Int) (q, r *Int, err error) {
	if j.IsZero() {
		return nil, nil, fmt.Errorf("bigint: division by zero: %w", ErrInvalidArgument)
	}
	q, r = New(), New()
	q.v.DivMod(&i.v, &j.v, &r.v)
	return q, r, nil
}

// Lsh returns i << n.
func (i *Int) Lsh(n uint) *Int {
	out := New()
	out.v.Lsh(&i.v, n)
	return out
}

// Rsh returns i >> n, arithmetic (sign-propagating), matching spec.md
// §9's requirement that right shift on signed values is arithmetic.
func (i *Int) Rsh(n uint) *Int {
	out := New()
	out.v.Rsh(&i.v, n)
	return out
}

// Cmp returns -1, 0 or +1 comparing i to j.
func (i *Int) Cmp(j *Int) int { return i.v.Cmp(&j.v) }

// Mod returns i mod m with the sign of i (truncated-style remainder).
func (i *Int) Mod(m *Int) (*Int, error) {
	_, r, err := i.QuoRem(m)
	return r, err
}

// ModPositive returns i mod m in [0, m) regardless of i's sign.
func (i *Int) ModPositive(m *Int) (*Int, error) {
	if m.IsZero() {
		return nil, fmt.Errorf("bigint: modulus is zero: %w", ErrInvalidArgument)
	}
	out := New()
	out.v.Mod(&i.v, &m.v)
	return out, nil
}

// AddMod returns (i+j) mod m, result in [0, m).
func (i *Int) AddMod(j, m *Int) (*Int, error) { return i.Add(j).ModPositive(m) }

// SubMod returns (i-j) mod m, result in [0, m).
func (i *Int) SubMod(j, m *Int) (*Int, error) { return i.Sub(j).ModPositive(m) }

// MulMod returns (i*j) mod m, result in [0, m).
func (i *Int) MulMod(j, m *Int) (*Int, error) { return i.Mul(j).ModPositive(m) }

// SquareMod returns (i*i) mod m.
func (i *Int) SquareMod(m *Int) (*Int, error) { return i.MulMod(i, m) }

// PowMod returns i^e mod m via square-and-multiply (delegated to
// math/big's constant-width exponentiation).
func (i *Int) PowMod(e, m *Int) (*Int, error) {
	if m.IsZero() {
		return nil, fmt.Errorf("bigint: modulus is zero: %w", ErrInvalidArgument)
	}
	out := New()
	out.v.Exp(&i.v, &e.v, &m.v)
	return out, nil
}

// GCD returns the non-negative greatest common divisor of i and j.
func (i *Int) GCD(j *Int) *Int {
	out := New()
	out.v.GCD(nil, nil, abs(&i.v), abs(&j.v))
	return out
}

// GCDExt returns (g, u, v) such that u*i + v*j = g = gcd(i,j) (Bezout
// coefficients), matching spec.md §4.4's `gcdext`.
func (i *Int) GCDExt(j *Int) (g, u, v *Int) {
	g, u, v = New(), New(), New()
	g.v.GCD(&u.v, &v.v, &i.v, &j.v)
	return
}

// Invert returns x^-1 mod m, or ok=false if x is not invertible (not
// coprime with m), matching spec.md's boolean-failure `invert`.
func (i *Int) Invert(m *Int) (inv *Int, ok bool) {
	out := New()
	r := out.v.ModInverse(&i.v, &m.v)
	if r == nil {
		return nil, false
	}
	return out, true
}

// IsPrime runs a probabilistic Miller-Rabin-style primality test (via
// math/big's ProbablyPrime, which runs Baillie-PSW plus n rounds of
// Miller-Rabin) with the given number of extra rounds.
func (i *Int) IsPrime(rounds int) bool { return i.v.ProbablyPrime(rounds) }

// Sqrt returns floor(sqrt(i)) for i >= 0; panics for negative i (a
// programmer error, as taking the integer square root of a negative
// value is undefined for this module's callers).
func (i *Int) Sqrt() *Int {
	if i.Sign() < 0 {
		panic("bigint: Sqrt of negative value")
	}
	out := New()
	out.v.Sqrt(&i.v)
	return out
}

// SizeInBase returns the number of digits needed to represent |i| in
// the given base, analogous to GMP's mpz_sizeinbase.
func (i *Int) SizeInBase(base int) int { return len(abs(&i.v).Text(base)) }

// SetBit returns a copy of i with bit position set to 0 or 1.
func (i *Int) SetBit(pos int, bit uint) *Int {
	out := New()
	out.v.SetBit(&i.v, pos, bit)
	return out
}

// GetBit returns the bit at pos (0 or 1); two's-complement semantics
// for negative i, matching math/big.Int.Bit.
func (i *Int) GetBit(pos int) uint { return i.v.Bit(pos) }

// GetStr renders i in the given base, optionally uppercase for bases
// requiring letters.
func (i *Int) GetStr(base int, uppercase bool) string {
	s := i.v.Text(base)
	if uppercase {
		return toUpper(s)
	}
	return s
}

// GetBytes renders the unsigned magnitude as exactly `size` bytes,
// big- or little-endian, left-padding with zeros (big-endian) or
// right-padding (little-endian) as needed. It is an error if the
// magnitude does not fit in `size` bytes.
func (i *Int) GetBytes(size int, bigEndian bool) ([]byte, error) {
	mag := abs(&i.v).Bytes()
	if len(mag) > size {
		return nil, fmt.Errorf("bigint: value does not fit in %d bytes: %w", size, ErrInvalidArgument)
	}
	out := make([]byte, size)
	if bigEndian {
		copy(out[size-len(mag):], mag)
		return out, nil
	}
	for k := range mag {
		out[k] = mag[len(mag)-1-k]
	}
	return out, nil
}

// FdivQRUi divides i by a small unsigned word, returning the floored
// quotient and the word remainder — spec.md §4.4's `fdiv_qr_ui`.
func (i *Int) FdivQRUi(d uint64) (q *Int, r uint64) {
	if d == 0 {
		panic("bigint: FdivQRUi by zero")
	}
	q = New()
	m := new(big.Int).SetUint64(d)
	rem := new(big.Int)
	q.v.DivMod(&i.v, m, rem)
	return q, rem.Uint64()
}

// FromRadixArray reconstructs an Int from a slice of digits in the
// given radix, most-significant digit first.
func FromRadixArray(digits []uint64, radix uint64) *Int {
	out := New()
	r := new(big.Int).SetUint64(radix)
	for _, d := range digits {
		out.v.Mul(&out.v, r)
		out.v.Add(&out.v, new(big.Int).SetUint64(d))
	}
	return out
}

// ToRadixArray renders i (assumed non-negative) as exactly `n` digits
// in the given radix, most-significant digit first.
func (i *Int) ToRadixArray(n int, radix uint64) []uint64 {
	digits := make([]uint64, n)
	rem := new(big.Int).Set(&i.v)
	r := new(big.Int).SetUint64(radix)
	tmp := new(big.Int)
	for k := n - 1; k >= 0; k-- {
		tmp.Mod(rem, r)
		digits[k] = tmp.Uint64()
		rem.Div(rem, r)
	}
	return digits
}

// Int64 returns the value truncated to an int64 (callers must ensure
// it fits; used only for already range-checked small values).
func (i *Int) Int64() int64 { return i.v.Int64() }

// Uint64 returns the value truncated to a uint64.
func (i *Int) Uint64() uint64 { return i.v.Uint64() }

// BitLen returns the number of bits in the magnitude.
func (i *Int) BitLen() int { return i.v.BitLen() }

func abs(x *big.Int) *big.Int {
	out := new(big.Int).Set(x)
	out.Abs(out)
	return out
}

func toUpper(s string) string {
	b := []byte(s)
	for k, c := range b {
		if c >= 'a' && c <= 'z' {
			b[k] = c - 'a' + 'A'
		}
	}
	return string(b)
}
