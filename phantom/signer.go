package phantom

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/neil-smyth/phantom/bigint"
	"github.com/neil-smyth/phantom/csprng"
	"github.com/neil-smyth/phantom/fft"
	"github.com/neil-smyth/phantom/gauss"
	"github.com/neil-smyth/phantom/internal/errs"
	"github.com/neil-smyth/phantom/ntru"
	"github.com/neil-smyth/phantom/ntru/ldl"
	"github.com/neil-smyth/phantom/ring"
)

// saltLen matches Falcon's 40-byte per-signature salt, which domain
// separates HashToPoint across signatures of the same message.
const saltLen = 40

// KeyPair is an NTRU trapdoor keypair usable for both the Signer and
// IBE realizations below - both are "sample a short preimage of
// H(x) under the public lattice" at heart, differing only in what x
// is and what's done with the result.
type KeyPair struct {
	Priv   *ntru.PrivateKey
	Pub    *ntru.PublicKey
	Params ntru.Params
}

// GenerateKeyPair runs ntru.GenerateTrapdoor and wraps the result. The
// per-attempt retry count lives inside ntru.GenerateTrapdoor's own
// loop and isn't surfaced here; WithLogger only traces the overall
// start/outcome of key generation, the granularity a caller of the
// facade actually observes.
func GenerateKeyPair(ctx context.Context, params ntru.Params, rng *csprng.DRBG, opts ...Option) (*KeyPair, error) {
	o := resolveOptions(opts)
	o.logger("keygen.start", "logN", params.LogN, "q", params.Q)
	priv, pub, err := ntru.GenerateTrapdoor(ctx, params, rng)
	if err != nil {
		o.logger("keygen.failed", "err", err)
		return nil, fmt.Errorf("phantom.GenerateKeyPair: %w", err)
	}
	o.logger("keygen.done")
	return &KeyPair{Priv: priv, Pub: pub, Params: params}, nil
}

// NTRUSigner is a Falcon-style hash-and-sign scheme: sign samples a
// short lattice vector (s0, s1) congruent to (H(salt||msg), 0) via
// the LDL* tree's preimage sampler and keeps only s1 (the verifier
// recomputes s0 = H(salt||msg) - s1*h mod q); verify checks that
// relation and a squared-norm bound. Grounded on spec.md §4.11's
// calling sequence for the preimage sampler and §4.10's NTRU
// equation, composed the way Falcon's reference sign/verify compose
// ntru/ldl's primitives.
type NTRUSigner struct {
	keys   *KeyPair
	rng    *csprng.DRBG
	logger Logger
}

// NewNTRUSigner builds a signer over an existing keypair, using rng
// for per-signature salt and Gaussian sampling.
func NewNTRUSigner(keys *KeyPair, rng *csprng.DRBG, opts ...Option) *NTRUSigner {
	o := resolveOptions(opts)
	return &NTRUSigner{keys: keys, rng: rng, logger: o.logger}
}

func intsToFFT(c []int64, n int) *fft.Poly {
	out := fft.New(n)
	for i, v := range c {
		out.Coeffs[i] = float64(v)
	}
	return out
}

func roundFFTCoeffs(p *fft.Poly) []int64 {
	out := make([]int64, len(p.Coeffs))
	for i, c := range p.Coeffs {
		if c >= 0 {
			out[i] = int64(c + 0.5)
		} else {
			out[i] = -int64(-c + 0.5)
		}
	}
	return out
}

func bigToFFTForward(p []*bigint.Int, n int) *fft.Poly {
	out := fft.New(n)
	for i, c := range p {
		out.Coeffs[i] = float64(c.Int64())
	}
	if err := fft.Forward(out); err != nil {
		panic(err) // fft.Forward only fails on a non-power-of-two length, which ntru.Params guarantees
	}
	return out
}

func gaussSamplerFactory(rng *csprng.DRBG) func(sigma float64) (ldl.Sampler, error) {
	return func(sigma float64) (ldl.Sampler, error) {
		return gauss.NewCDFSampler(rng, sigma, 10.0)
	}
}

// Sign implements Signer.
func (s *NTRUSigner) Sign(ctx context.Context, msg []byte) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("phantom.NTRUSigner.Sign: %w", errs.ErrCancelled)
	default:
	}

	salt := make([]byte, saltLen)
	s.rng.GetMem(salt)

	c, err := hashToPoint(salt, msg, s.keys.Params.N, s.keys.Params.Q)
	if err != nil {
		return nil, fmt.Errorf("phantom.NTRUSigner.Sign: %w", err)
	}

	s0, s1, err := s.preimage(c)
	if err != nil {
		return nil, fmt.Errorf("phantom.NTRUSigner.Sign: %w", err)
	}

	if normSq(s0)+normSq(s1) > s.keys.Params.GSBound {
		return nil, fmt.Errorf("phantom.NTRUSigner.Sign: %w: sampled signature exceeds norm bound", errs.ErrResourceExhausted)
	}

	s.logger("sign.done", "msgLen", len(msg))
	return encodeSignature(salt, s1), nil
}

// preimage samples (s0, s1) close to (c, 0) under the trapdoor basis,
// per spec.md §4.11: B1*sampler output transformed back through the
// basis B = [[g,-f],[G,-F]].
func (s *NTRUSigner) preimage(c []int64) (s0, s1 []int64, err error) {
	return samplePreimagePair(s.keys, s.rng, c)
}

// samplePreimagePair samples a short (s0, s1) congruent to (target, 0)
// under the trapdoor basis B = [[g,-f],[G,-F]]: the shared step behind
// both NTRUSigner.Sign (target = H(salt||msg)) and DLPIBE.Extract
// (target = H(identity)) - both schemes are, at this level, "sample a
// short preimage of a hashed point," differing only in what gets
// hashed and what's done with the result afterwards.
func samplePreimagePair(keys *KeyPair, rng *csprng.DRBG, target []int64) (s0, s1 []int64, err error) {
	n := keys.Params.N
	ff := bigToFFTForward(keys.Priv.SmallF, n)
	Ff := bigToFFTForward(keys.Priv.F, n)

	// (t0, t1) = (target, 0) * B^-1, where B^-1 = [[-F, f], [-G, g]] / q
	// because det(B) = f*G - g*F = q.
	cf := intsToFFT(target, n)
	if err := fft.Forward(cf); err != nil {
		return nil, nil, err
	}
	t0 := fft.MulConst(fft.Mul(cf, Ff), -1/float64(keys.Params.Q))
	t1 := fft.MulConst(fft.Mul(cf, ff), 1/float64(keys.Params.Q))

	z0, z1, err := ldl.SamplePreimage(keys.Priv.Tree, t0, t1, keys.Params.LogN, gaussSamplerFactory(rng))
	if err != nil {
		return nil, nil, err
	}

	d0 := fft.Sub(t0, z0)
	d1 := fft.Sub(t1, z1)

	gf := bigToFFTForward(keys.Priv.SmallG, n)
	Gf := bigToFFTForward(keys.Priv.G, n)

	s0f := fft.Add(fft.Mul(d0, gf), fft.Mul(d1, Gf))
	s1f := fft.Add(fft.Mul(d0, fft.MulConst(ff, -1)), fft.Mul(d1, fft.MulConst(Ff, -1)))

	if err := fft.Inverse(s0f); err != nil {
		return nil, nil, err
	}
	if err := fft.Inverse(s1f); err != nil {
		return nil, nil, err
	}

	return roundFFTCoeffs(s0f), roundFFTCoeffs(s1f), nil
}

func normSq(v []int64) float64 {
	var sum float64
	for _, c := range v {
		sum += float64(c) * float64(c)
	}
	return sum
}

// Verify implements Signer.
func (s *NTRUSigner) Verify(msg, sig []byte) error {
	salt, s1, err := decodeSignature(sig, s.keys.Params.N)
	if err != nil {
		return fmt.Errorf("phantom.NTRUSigner.Verify: %w", err)
	}

	c, err := hashToPoint(salt, msg, s.keys.Params.N, s.keys.Params.Q)
	if err != nil {
		return fmt.Errorf("phantom.NTRUSigner.Verify: %w", err)
	}

	r := s.keys.Pub.Ring
	q := s.keys.Params.Q

	s1Poly := toRingPolyInt64(r, s1, q)
	if err := r.NTT(s1Poly); err != nil {
		return fmt.Errorf("phantom.NTRUSigner.Verify: %w", err)
	}
	prodNTT, err := r.MulCoeffs(s1Poly, s.keys.Pub.HNTT)
	if err != nil {
		return fmt.Errorf("phantom.NTRUSigner.Verify: %w", err)
	}
	prod := prodNTT.CopyNew()
	if err := r.InvNTT(prod); err != nil {
		return fmt.Errorf("phantom.NTRUSigner.Verify: %w", err)
	}

	s0 := make([]int64, s.keys.Params.N)
	for i := range s0 {
		diff := (int64(c[i]) - centered(prod.Coeffs[i], q) + int64(q)) % int64(q)
		s0[i] = centered(uint64(diff), q)
	}

	if normSq(s0)+normSq(s1) > s.keys.Params.GSBound {
		return fmt.Errorf("phantom.NTRUSigner.Verify: %w: signature exceeds norm bound", errs.ErrAuthFailed)
	}
	s.logger("verify.ok")
	return nil
}

func centered(v, q uint64) int64 {
	iv := int64(v % q)
	if iv > int64(q)/2 {
		iv -= int64(q)
	}
	return iv
}

func toRingPolyInt64(r *ring.Ring, p []int64, q uint64) *ring.Poly {
	out := r.NewPoly()
	for i, c := range p {
		v := c % int64(q)
		if v < 0 {
			v += int64(q)
		}
		out.Coeffs[i] = uint64(v)
	}
	return out
}

func encodeSignature(salt []byte, s1 []int64) []byte {
	buf := make([]byte, 0, len(salt)+4+8*len(s1))
	buf = append(buf, salt...)
	lenBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(lenBytes, uint32(len(s1)))
	buf = append(buf, lenBytes...)
	for _, c := range s1 {
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(c))
		buf = append(buf, b[:]...)
	}
	return buf
}

func decodeSignature(sig []byte, n int) (salt []byte, s1 []int64, err error) {
	if len(sig) < saltLen+4 {
		return nil, nil, fmt.Errorf("%w: signature too short", errs.ErrDecodeError)
	}
	salt = sig[:saltLen]
	count := binary.BigEndian.Uint32(sig[saltLen : saltLen+4])
	if int(count) != n {
		return nil, nil, fmt.Errorf("%w: signature dimension mismatch", errs.ErrDecodeError)
	}
	want := saltLen + 4 + 8*int(count)
	if len(sig) != want {
		return nil, nil, fmt.Errorf("%w: signature length mismatch", errs.ErrDecodeError)
	}
	s1 = make([]int64, count)
	for i := range s1 {
		off := saltLen + 4 + 8*i
		s1[i] = int64(binary.BigEndian.Uint64(sig[off : off+8]))
	}
	return salt, s1, nil
}
