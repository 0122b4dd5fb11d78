package ring

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// Poly is a fixed-length polynomial over Z_q, tagged with the domain
// (normal coefficient form vs NTT form) it currently holds.
type Poly struct {
	Coeffs []uint64
	IsNTT  bool
}

// NewPoly allocates a zero polynomial of degree n.
func NewPoly(n int) *Poly { return &Poly{Coeffs: make([]uint64, n)} }

// CopyNew returns an independent copy.
func (p *Poly) CopyNew() *Poly {
	out := &Poly{Coeffs: make([]uint64, len(p.Coeffs)), IsNTT: p.IsNTT}
	copy(out.Coeffs, p.Coeffs)
	return out
}

// Equal reports whether p and other hold the same coefficients in the
// same domain, the same deep-equality-over-slice-fields idiom the
// teacher's core/rlwe.Parameters.Equal uses for its own qi/pi moduli
// slices.
func (p *Poly) Equal(other *Poly) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.IsNTT == other.IsNTT && cmp.Equal(p.Coeffs, other.Coeffs)
}

// Ring bundles an NTT-friendly modulus with its reducer and twiddle
// tables — the realization of the spec's "modular context + NTT
// context" pair, built once and shared read-only by every polynomial
// constructed against it (spec.md §3).
type Ring struct {
	N     int
	Mont  *MontgomeryContext
	Table *NTTTable
}

// NewRing constructs a Ring of degree n over the odd NTT-friendly
// prime q.
func NewRing(n int, q uint64) (*Ring, error) {
	mc, err := NewMontgomeryContext(q)
	if err != nil {
		return nil, fmt.Errorf("ring.NewRing: %w", err)
	}
	table, err := NewNTTTable(n, mc)
	if err != nil {
		return nil, fmt.Errorf("ring.NewRing: %w", err)
	}
	return &Ring{N: n, Mont: mc, Table: table}, nil
}

// NewPoly allocates a zero polynomial sized for this ring.
func (r *Ring) NewPoly() *Poly { return NewPoly(r.N) }

// NTT transforms p in place from normal to NTT domain.
func (r *Ring) NTT(p *Poly) error {
	if p.IsNTT {
		return fmt.Errorf("ring.Ring.NTT: polynomial is already in NTT domain")
	}
	NTT(p.Coeffs, r.Table, r.Mont, 1)
	p.IsNTT = true
	return nil
}

// InvNTT transforms p in place from NTT to normal domain.
func (r *Ring) InvNTT(p *Poly) error {
	if !p.IsNTT {
		return fmt.Errorf("ring.Ring.InvNTT: polynomial is not in NTT domain")
	}
	InvNTT(p.Coeffs, r.Table, r.Mont, 1)
	p.IsNTT = false
	return nil
}

// MulCoeffs multiplies a and b coefficient-wise (both must share the
// same domain tag) into a fresh polynomial.
func (r *Ring) MulCoeffs(a, b *Poly) (*Poly, error) {
	if a.IsNTT != b.IsNTT {
		return nil, fmt.Errorf("ring.Ring.MulCoeffs: domain mismatch")
	}
	out := r.NewPoly()
	out.IsNTT = a.IsNTT
	for i := range out.Coeffs {
		out.Coeffs[i] = r.Mont.Mul(a.Coeffs[i], b.Coeffs[i])
	}
	return out, nil
}

// Add adds a and b coefficient-wise.
func (r *Ring) Add(a, b *Poly) *Poly {
	out := r.NewPoly()
	out.IsNTT = a.IsNTT
	for i := range out.Coeffs {
		out.Coeffs[i] = r.Mont.Add(a.Coeffs[i], b.Coeffs[i])
	}
	return out
}

// Sub subtracts b from a coefficient-wise.
func (r *Ring) Sub(a, b *Poly) *Poly {
	out := r.NewPoly()
	out.IsNTT = a.IsNTT
	for i := range out.Coeffs {
		out.Coeffs[i] = r.Mont.Sub(a.Coeffs[i], b.Coeffs[i])
	}
	return out
}

// Negate negates a coefficient-wise.
func (r *Ring) Negate(a *Poly) *Poly {
	out := r.NewPoly()
	out.IsNTT = a.IsNTT
	for i := range out.Coeffs {
		out.Coeffs[i] = r.Mont.Negate(a.Coeffs[i])
	}
	return out
}

// ToMontgomery converts every coefficient of p (assumed in plain
// [0,q) form) into Montgomery form in place.
func (r *Ring) ToMontgomery(p *Poly) {
	for i, c := range p.Coeffs {
		p.Coeffs[i] = r.Mont.ConvertTo(c)
	}
}

// FromMontgomery converts every coefficient of p out of Montgomery
// form in place.
func (r *Ring) FromMontgomery(p *Poly) {
	for i, c := range p.Coeffs {
		p.Coeffs[i] = r.Mont.ConvertFrom(c)
	}
}

// InversePointwise inverts every NTT-domain coefficient of p, used by
// the NTRU public-key derivation (h = g * f^-1) and the NTT-domain
// Inverse auxiliary op named in spec.md §4.6. Returns false if any
// coefficient is zero (f is not invertible mod q; caller restarts
// keygen per spec.md §4.10's failure mode).
func (r *Ring) InversePointwise(p *Poly) (*Poly, bool) {
	out := r.NewPoly()
	out.IsNTT = p.IsNTT
	for i, c := range p.Coeffs {
		inv, ok := r.Mont.Inverse(c)
		if !ok {
			return nil, false
		}
		out.Coeffs[i] = inv
	}
	return out, true
}
