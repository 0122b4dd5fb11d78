package ntru

import (
	"fmt"

	"github.com/neil-smyth/phantom/bigint"
	"github.com/neil-smyth/phantom/csprng"
	"github.com/neil-smyth/phantom/fft"
	"github.com/neil-smyth/phantom/gauss"
)

// sampleFG draws one candidate short pair (f, g) from the discrete
// Gaussian at params.SigmaFG and checks a Gram-Schmidt-style norm
// bound, per spec.md §4.10's fg-sampling step: b = max(||(f,g)||^2,
// q^2*||1/D||^2) with D = f*conj(f) + g*conj(g) computed over the
// floating-point FFT - the second term approximates the bound the
// source evaluates against q*conj(F)/D once F, G exist, applied here
// before they do so that degenerate (near-non-invertible) pairs are
// rejected before the much more expensive equation solve runs.
func sampleFG(rng *csprng.DRBG, params Params) (f, g []*bigint.Int, ok bool, err error) {
	sampler, err := gauss.NewCDFSampler(rng, params.SigmaFG, 10.0)
	if err != nil {
		return nil, nil, false, fmt.Errorf("ntru.sampleFG: %w", err)
	}

	f = make([]*bigint.Int, params.N)
	g = make([]*bigint.Int, params.N)
	ff := fft.New(params.N)
	gf := fft.New(params.N)
	normFG := 0.0
	for i := 0; i < params.N; i++ {
		fi := sampler.SignedSample()
		gi := sampler.SignedSample()
		f[i] = bigint.FromInt64(fi)
		g[i] = bigint.FromInt64(gi)
		ff.Coeffs[i] = float64(fi)
		gf.Coeffs[i] = float64(gi)
		normFG += float64(fi*fi + gi*gi)
	}

	if err := fft.Forward(ff); err != nil {
		return nil, nil, false, fmt.Errorf("ntru.sampleFG: %w", err)
	}
	if err := fft.Forward(gf); err != nil {
		return nil, nil, false, fmt.Errorf("ntru.sampleFG: %w", err)
	}

	inv := fft.InvNorm2(ff, gf) // 1/D pointwise, D = f*conj(f)+g*conj(g)
	qf := float64(params.Q)
	invNormQ := 0.0
	for i := 0; i < params.N; i++ {
		invNormQ += qf * qf * inv.Coeffs[i] * inv.Coeffs[i]
	}

	b := normFG
	if invNormQ > b {
		b = invNormQ
	}

	return f, g, b <= params.GSBound, nil
}
