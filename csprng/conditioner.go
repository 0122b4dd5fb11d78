package csprng

import (
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// Conditioner compresses arbitrary-length entropy-callback output down
// to fixed-width key material for the AES-CTR-DRBG core. A caller
// supplying a raw hardware RNG callback rarely hands back exactly the
// 32 key bytes + 16 IV bytes the DRBG wants, so the pool is first run
// through a conditioning hash the same way the teacher keys its own
// deterministic PRNG off blake2b (ckks/utils.go, dbfv/collective_CRS.go).
type Conditioner interface {
	// Condition compresses raw into exactly n bytes.
	Condition(raw []byte, n int) []byte
}

// Blake2bConditioner conditions via BLAKE2b, directly grounded on the
// teacher's own PRNG construction pattern.
type Blake2bConditioner struct{}

func (Blake2bConditioner) Condition(raw []byte, n int) []byte {
	out := make([]byte, 0, n)
	counter := byte(0)
	for len(out) < n {
		h, _ := blake2b.New512(nil)
		h.Write(raw)
		h.Write([]byte{counter})
		out = append(out, h.Sum(nil)...)
		counter++
	}
	return out[:n]
}

// Blake3Conditioner conditions via BLAKE3's native XOF, a faster
// alternative for large entropy inputs (e.g. conditioning a fresh FF1
// per-round key schedule in batch format-preserving encryption).
type Blake3Conditioner struct{}

func (Blake3Conditioner) Condition(raw []byte, n int) []byte {
	h := blake3.New()
	h.Write(raw)
	out := make([]byte, n)
	d := h.Digest()
	_, _ = d.Read(out)
	return out
}
