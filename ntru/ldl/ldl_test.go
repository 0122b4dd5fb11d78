package ldl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neil-smyth/phantom/csprng"
	"github.com/neil-smyth/phantom/fft"
	"github.com/neil-smyth/phantom/gauss"
)

// identityGram builds a trivial self-adjoint Gram matrix (g00=g11=c,
// g01=0) of size n in FFT form (every evaluation point is the real
// value c, so only the real half is filled), which LDL* decomposes
// with every L10 == 0 and every leaf == c.
func identityGram(n int, c float64) (g00, g01, g11 *fft.Poly) {
	g00, g01, g11 = fft.New(n), fft.New(n), fft.New(n)
	for i := 0; i < n/2; i++ {
		g00.Coeffs[i] = c
		g11.Coeffs[i] = c
	}
	return
}

func TestTreeSizeRecurrence(t *testing.T) {
	require.Equal(t, 1, TreeSize(0))
	require.Equal(t, 4, TreeSize(1))
	require.Equal(t, 12, TreeSize(2))
	require.Equal(t, 32, TreeSize(3))
}

func TestBuildDiagonalGramZeroesL10(t *testing.T) {
	g00, g01, g11 := identityGram(8, 2.0)
	tree, err := Build(g00, g01, g11, 3)
	require.NoError(t, err)
	require.NotNil(t, tree.L10)
	for _, v := range tree.L10.Coeffs {
		require.InDelta(t, 0.0, v, 1e-9)
	}
}

func TestNormalizeConvertsLeafToSigmaOverSqrt(t *testing.T) {
	g00, g01, g11 := identityGram(4, 4.0)
	tree, err := Build(g00, g01, g11, 2)
	require.NoError(t, err)

	Normalize(tree, 1.0, 2)

	var walk func(tr *Tree, logN int)
	var leaves []float64
	walk = func(tr *Tree, logN int) {
		if logN == 0 {
			leaves = append(leaves, tr.Leaf)
			return
		}
		walk(tr.Left, logN-1)
		walk(tr.Right, logN-1)
	}
	walk(tree, 2)

	for _, v := range leaves {
		require.InDelta(t, 0.5, v, 1e-9) // 1/sqrt(4) == 0.5
	}
}

func newTestSampler(rng *csprng.DRBG) func(sigma float64) (Sampler, error) {
	return func(sigma float64) (Sampler, error) {
		return gauss.NewCDFSampler(rng, sigma, 10.0)
	}
}

func TestSamplePreimageBaseCase(t *testing.T) {
	rng, err := csprng.New(0, func(p []byte) int {
		for i := range p {
			p[i] = byte(i*13 + 5)
		}
		return len(p)
	}, nil)
	require.NoError(t, err)

	tree := &Tree{Leaf: 2.0}
	t0 := &fft.Poly{Coeffs: []float64{1.3}}
	t1 := &fft.Poly{Coeffs: []float64{-0.6}}

	z0, z1, err := SamplePreimage(tree, t0, t1, 0, newTestSampler(rng))
	require.NoError(t, err)
	require.Len(t, z0.Coeffs, 1)
	require.Len(t, z1.Coeffs, 1)
	// floor(1.3) == 1, floor(-0.6) == -1, plus whatever the sampler adds.
	require.True(t, math.Abs(z0.Coeffs[0]-1.0) < 50)
	require.True(t, math.Abs(z1.Coeffs[0]-(-1.0)) < 50)
}

func TestSamplePreimageRecursiveCaseMatchesDimensions(t *testing.T) {
	rng, err := csprng.New(0, func(p []byte) int {
		for i := range p {
			p[i] = byte(i*3 + 1)
		}
		return len(p)
	}, nil)
	require.NoError(t, err)

	g00, g01, g11 := identityGram(8, 9.0)
	tree, err := Build(g00, g01, g11, 3)
	require.NoError(t, err)
	Normalize(tree, 1.0, 3)

	t0, t1 := fft.New(8), fft.New(8)
	for i := range t0.Coeffs {
		t0.Coeffs[i] = float64(i) * 0.1
		t1.Coeffs[i] = float64(i) * -0.2
	}

	z0, z1, err := SamplePreimage(tree, t0, t1, 3, newTestSampler(rng))
	require.NoError(t, err)
	require.Len(t, z0.Coeffs, 8)
	require.Len(t, z1.Coeffs, 8)
}
