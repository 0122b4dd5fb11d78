package ring

import "fmt"

// NTTTable holds the precomputed twiddle tables for a ring of degree N
// over modulus q: the forward table at p[rev(i)] = g^i and the
// inverse table at p[rev(i)] = g^-i, where g is a primitive 2N-th root
// of unity mod q, plus N^-1 mod q — adapted from the teacher's
// ring/ntt.go table-generation loop.
type NTTTable struct {
	N       int
	NInv    uint64
	Forward []uint64 // Montgomery form
	Inverse []uint64 // Montgomery form
}

// NewNTTTable searches for a primitive 2N-th root of unity mod q and
// builds the bit-reversed twiddle tables.
func NewNTTTable(n int, mc *MontgomeryContext) (*NTTTable, error) {
	if n <= 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("ring: NTT degree %d is not a power of two", n)
	}
	q := mc.Modulus()
	if (q-1)%uint64(2*n) != 0 {
		return nil, fmt.Errorf("ring: modulus %d admits no NTT of degree %d", q, n)
	}

	g, err := findPrimitive2NthRoot(q, n)
	if err != nil {
		return nil, err
	}

	logN := 0
	for (1 << logN) < n {
		logN++
	}

	fwd := make([]uint64, n)
	inv := make([]uint64, n)

	br := NewBarrettContext(q)
	gInv, ok := br.Inverse(g)
	if !ok {
		return nil, fmt.Errorf("ring: root of unity %d not invertible mod %d", g, q)
	}

	power := uint64(1)
	powerInv := uint64(1)
	for i := 0; i < n; i++ {
		ridx := int(bitReverse(uint64(i), logN))
		fwd[ridx] = mc.ConvertTo(power)
		inv[ridx] = mc.ConvertTo(powerInv)
		power = br.Mul(power, g)
		powerInv = br.Mul(powerInv, gInv)
	}

	nInv, ok := br.Inverse(uint64(n) % q)
	if !ok {
		return nil, fmt.Errorf("ring: N=%d not invertible mod %d", n, q)
	}

	return &NTTTable{N: n, NInv: mc.ConvertTo(nInv), Forward: fwd, Inverse: inv}, nil
}

func bitReverse(x uint64, bitLen int) uint64 {
	var r uint64
	for i := 0; i < bitLen; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

// findPrimitive2NthRoot searches upward from 2 for g with g^(2n) == 1
// mod q and no smaller power of g equal to 1, matching the teacher's
// table-generation search in ring/ntt.go.
func findPrimitive2NthRoot(q uint64, n int) (uint64, error) {
	br := NewBarrettContext(q)
	order := q - 1
	exp := order / uint64(2*n)
	for cand := uint64(2); cand < q; cand++ {
		g := br.Pow(cand, exp)
		if g == 0 {
			continue
		}
		if isPrimitive2Nth(g, n, br) {
			return g, nil
		}
	}
	return 0, fmt.Errorf("ring: no primitive 2N-th root of unity found mod %d", q)
}

func isPrimitive2Nth(g uint64, n int, br *BarrettContext) bool {
	// g^n must be -1 mod q (the defining property of a primitive
	// 2n-th root used by the forward/inverse NTT schedule): then
	// g^(2n) = 1 and no smaller power of g equals 1, because a root
	// whose n-th power is -1 cannot have order dividing n.
	gn := br.Pow(g, uint64(n))
	return gn == br.Modulus()-1
}

// NTT performs an in-place forward Cooley-Tukey (decimation-in-time)
// transform of coeffs (length table.N*stride, data for transform k
// held at positions k, k+stride, k+2*stride, ...), matching the
// teacher's stride-carrying free function used by the NTRU solver for
// interleaved column layouts.
func NTT(coeffs []uint64, table *NTTTable, mc *MontgomeryContext, stride int) {
	n := table.N
	t := n
	for m := 1; m < n; m <<= 1 {
		t >>= 1
		for i := 0; i < m; i++ {
			j1 := 2 * i * t
			j2 := j1 + t
			s := table.Forward[m+i]
			for j := j1; j < j2; j++ {
				idxU := j * stride
				idxV := (j + t) * stride
				u := coeffs[idxU]
				v := mc.Mul(coeffs[idxV], s)
				coeffs[idxU] = mc.Add(u, v)
				coeffs[idxV] = mc.Sub(u, v)
			}
		}
	}
}

// InvNTT performs an in-place inverse Gentleman-Sande transform,
// mirroring NTT's schedule and finishing with a pointwise
// multiplication by N^-1.
func InvNTT(coeffs []uint64, table *NTTTable, mc *MontgomeryContext, stride int) {
	n := table.N
	t := 1
	for m := n; m > 1; m >>= 1 {
		j1 := 0
		h := m >> 1
		for i := 0; i < h; i++ {
			j2 := j1 + t
			s := table.Inverse[h+i]
			for j := j1; j < j2; j++ {
				idxU := j * stride
				idxV := (j + t) * stride
				u := coeffs[idxU]
				v := coeffs[idxV]
				coeffs[idxU] = mc.Add(u, v)
				coeffs[idxV] = mc.Mul(mc.Sub(u, v), s)
			}
			j1 += 2 * t
		}
		t <<= 1
	}
	for i := 0; i < n; i++ {
		coeffs[i*stride] = mc.Mul(coeffs[i*stride], table.NInv)
	}
}
