package gauss

import (
	"math"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"

	"github.com/neil-smyth/phantom/csprng"
)

func testDRBG(t *testing.T) *csprng.DRBG {
	t.Helper()
	d, err := csprng.New(0, func(p []byte) int {
		for i := range p {
			p[i] = byte(i*7 + 3)
		}
		return len(p)
	}, nil)
	require.NoError(t, err)
	return d
}

func TestCDFSamplerRejectsNonPositiveSigma(t *testing.T) {
	rng := testDRBG(t)
	_, err := NewCDFSampler(rng, 0, 10)
	require.Error(t, err)
}

func TestCDFSamplerWithinTailBound(t *testing.T) {
	rng := testDRBG(t)
	sigma := 4.0
	s, err := NewCDFSampler(rng, sigma, 10.0)
	require.NoError(t, err)

	samples := make([]float64, 2000)
	for i := range samples {
		samples[i] = float64(s.SignedSample())
	}

	sd, err := stats.StandardDeviation(samples)
	require.NoError(t, err)
	// Loose bound: empirical sigma should be in the right ballpark of
	// the target, well inside the distribution's 10-sigma tail cut.
	require.Less(t, math.Abs(sd-sigma), sigma)
}

func TestCombinerWidensVariance(t *testing.T) {
	rng := testDRBG(t)
	base, err := NewCDFSampler(rng, 2.0, 10.0)
	require.NoError(t, err)

	comb := NewCombiner(base, 3, 2)

	baseSamples := make([]float64, 2000)
	combSamples := make([]float64, 2000)
	for i := range baseSamples {
		baseSamples[i] = float64(base.SignedSample())
		combSamples[i] = float64(comb.SignedSample())
	}

	baseSD, err := stats.StandardDeviation(baseSamples)
	require.NoError(t, err)
	combSD, err := stats.StandardDeviation(combSamples)
	require.NoError(t, err)

	// z1^2+z2^2 = 13, so the combined sigma should be noticeably wider.
	require.Greater(t, combSD, baseSD)
}

func TestWideSamplerProducesVariedOutput(t *testing.T) {
	rng := testDRBG(t)
	ws, err := NewWideSampler(rng, 12289, 2.0, 3, 8, 64, 24, 1.0)
	require.NoError(t, err)

	seen := map[int64]bool{}
	for i := 0; i < 200; i++ {
		v := ws.Sample(100.0, 0.5)
		seen[v] = true
	}
	require.Greater(t, len(seen), 1)
}
