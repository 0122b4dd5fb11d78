// Package ntru generates NTRU lattice trapdoors: short bases (f, g,
// F, G) of the lattice {(x, y) : x*h = y mod q} satisfying the NTRU
// equation f*G - g*F = q, plus the corresponding public key h = g/f
// mod q. Grounded on original_source/src/ntru/ntru.{hpp,cpp} (read in
// full) and spec.md §4.10's plain-English restatement of the same
// algorithm: fg-sampling with a Gram-Schmidt norm check (ntru/sample.go),
// a recursive equation solve with a Bezout base case and Babai-reduced
// lifting (ntru/solve.go), and NTT-domain public-key derivation below.
package ntru

import (
	"context"
	"fmt"

	"github.com/neil-smyth/phantom/bigint"
	"github.com/neil-smyth/phantom/csprng"
	"github.com/neil-smyth/phantom/fft"
	"github.com/neil-smyth/phantom/internal/errs"
	"github.com/neil-smyth/phantom/ntru/ldl"
	"github.com/neil-smyth/phantom/ring"
)

// PrivateKey is the short NTRU basis (f, g, F, G) plus the LDL* tree
// built over its Gram matrix, ready for Falcon/DLP-style preimage
// sampling (spec.md §4.11's calling sequence).
type PrivateKey struct {
	F, G, SmallF, SmallG []*bigint.Int
	Tree                 *ldl.Tree
}

// PublicKey is h = g*f^-1 mod q, stored in both coefficient and NTT
// form so callers avoid repeated transforms.
type PublicKey struct {
	H     *ring.Poly
	HNTT  *ring.Poly
	Ring  *ring.Ring
	Q     uint64
}

// GenerateTrapdoor samples f, g, solves the NTRU equation for F, G,
// derives the public key, and builds the LDL* tree, retrying the
// fg-sampling step on any failure per spec.md §4.10's failure mode
// ("any single algorithmic failure ... restarts only the
// fg-sampling step"). ctx allows the caller to bound the number of
// attempts with a deadline; MaxAttempts is still honoured as a hard
// backstop.
func GenerateTrapdoor(ctx context.Context, params Params, rng *csprng.DRBG) (*PrivateKey, *PublicKey, error) {
	for attempt := 0; attempt < params.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, nil, fmt.Errorf("ntru.GenerateTrapdoor: %w", errs.ErrCancelled)
		default:
		}

		f, g, ok, err := sampleFG(rng, params)
		if err != nil {
			return nil, nil, fmt.Errorf("ntru.GenerateTrapdoor: %w", err)
		}
		if !ok {
			continue
		}

		F, G, ok := solveNTRUEquation(f, g, params.Q)
		if !ok {
			continue
		}

		pub, err := derivePublicKey(f, g, params)
		if err != nil {
			continue
		}

		tree, err := buildTree(f, g, F, G, params)
		if err != nil {
			continue
		}

		priv := &PrivateKey{F: F, G: G, SmallF: f, SmallG: g, Tree: tree}
		return priv, pub, nil
	}
	return nil, nil, fmt.Errorf("ntru.GenerateTrapdoor: exhausted %d attempts: %w", params.MaxAttempts, errs.ErrResourceExhausted)
}

// derivePublicKey converts f, g to NTT domain and computes h = g/f,
// restarting (returning an error the caller treats as a resample
// signal) if f is not invertible mod q, per spec.md §4.10's "Public
// key" step.
func derivePublicKey(f, g []*bigint.Int, params Params) (*PublicKey, error) {
	r, err := ring.NewRing(params.N, params.Q)
	if err != nil {
		return nil, fmt.Errorf("ntru.derivePublicKey: %w", err)
	}

	fp := toRingPoly(r, f, params.Q)
	gp := toRingPoly(r, g, params.Q)

	if err := r.NTT(fp); err != nil {
		return nil, fmt.Errorf("ntru.derivePublicKey: %w", err)
	}
	if err := r.NTT(gp); err != nil {
		return nil, fmt.Errorf("ntru.derivePublicKey: %w", err)
	}

	fInv, ok := r.InversePointwise(fp)
	if !ok {
		return nil, fmt.Errorf("ntru.derivePublicKey: %w", errs.ErrNotInvertible)
	}

	hNTT, err := r.MulCoeffs(gp, fInv)
	if err != nil {
		return nil, fmt.Errorf("ntru.derivePublicKey: %w", err)
	}
	h := hNTT.CopyNew()
	if err := r.InvNTT(h); err != nil {
		return nil, fmt.Errorf("ntru.derivePublicKey: %w", err)
	}

	return &PublicKey{H: h, HNTT: hNTT, Ring: r, Q: params.Q}, nil
}

func toRingPoly(r *ring.Ring, p []*bigint.Int, q uint64) *ring.Poly {
	out := r.NewPoly()
	for i, c := range p {
		v := c.Int64() % int64(q)
		if v < 0 {
			v += int64(q)
		}
		out.Coeffs[i] = uint64(v)
	}
	return out
}

// buildTree constructs the Gram matrix [[g*adj(g)+f*adj(f), ...]] in
// FFT form for the basis B = [[g, -f], [G, -F]] and decomposes it via
// ntru/ldl, per spec.md §4.11's calling sequence for Falcon-style
// signing: G00 = g*adj(g) + f*adj(f), G01 = G*adj(g) + F*adj(f),
// G11 = G*adj(G) + F*adj(F).
func buildTree(f, g, F, G []*bigint.Int, params Params) (*ldl.Tree, error) {
	ff, gf := toFFTForward(f), toFFTForward(g)
	Ff, Gf := toFFTForward(F), toFFTForward(G)

	g00 := fft.Add(fft.MulSelfAdjoint(gf), fft.MulSelfAdjoint(ff))
	g01 := fft.Add(fft.MulAdjoint(Gf, gf), fft.MulAdjoint(Ff, ff))
	g11 := fft.Add(fft.MulSelfAdjoint(Gf), fft.MulSelfAdjoint(Ff))

	tree, err := ldl.Build(g00, g01, g11, params.LogN)
	if err != nil {
		return nil, fmt.Errorf("ntru.buildTree: %w", err)
	}
	ldl.Normalize(tree, params.SigmaFG, params.LogN)
	return tree, nil
}

func toFFTForward(p []*bigint.Int) *fft.Poly {
	out := toFFT(p)
	fft.Forward(out)
	return out
}
