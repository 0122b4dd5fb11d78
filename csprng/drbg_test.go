package csprng

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testEntropy mirrors original_source's unit_csprng.cpp test_cb: a
// deterministic, non-cryptographic fill so tests are reproducible.
func testEntropy(p []byte) int {
	for i := range p {
		p[i] = byte(i + 1)
	}
	return len(p)
}

func TestNewRejectsNilCallback(t *testing.T) {
	_, err := New(0, nil, nil)
	require.Error(t, err)
}

func TestNewAcceptsCallback(t *testing.T) {
	d, err := New(0, testEntropy, nil)
	require.NoError(t, err)
	require.NotNil(t, d)
}

func TestGetBitsMasksHighBits(t *testing.T) {
	d, err := New(0, testEntropy, nil)
	require.NoError(t, err)

	require.Equal(t, uint32(0), d.GetBits(0))
	for n := 1; n < 32; n++ {
		bits := d.GetBits(n)
		require.Equal(t, uint32(0), bits&(^uint32(0)<<uint(n)), "n=%d", n)
	}
}

func TestGetMemDoesNotOverrun(t *testing.T) {
	d, err := New(0, testEntropy, nil)
	require.NoError(t, err)

	for i := 1; i <= 16; i++ {
		mem := make([]byte, 16)
		d.GetMem(mem[:i])
		for j := i; j < 16; j++ {
			require.Zero(t, mem[j])
		}
	}
}

func TestGetBoolNotConstant(t *testing.T) {
	d, err := New(0, testEntropy, nil)
	require.NoError(t, err)

	numTrue := 0
	for i := 0; i < 1000; i++ {
		if d.GetBool() {
			numTrue++
		}
	}
	require.NotZero(t, numTrue)
	require.NotEqual(t, 1000, numTrue)
}

func TestTypedGettersVary(t *testing.T) {
	d, err := New(0, testEntropy, nil)
	require.NoError(t, err)

	var sum8, sum16, sum32 uint64
	for i := 0; i < 256; i++ {
		sum8 += uint64(d.GetU8())
		sum16 += uint64(d.GetU16())
		sum32 += uint64(d.GetU32())
	}
	require.NotZero(t, sum8)
	require.NotZero(t, sum16)
	require.NotZero(t, sum32)

	u64 := d.GetU64()
	require.NotZero(t, u64)
}

func TestFloatsAreUnitInterval(t *testing.T) {
	d, err := New(0, testEntropy, nil)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		f32 := d.GetF32()
		require.GreaterOrEqual(t, f32, float32(0))
		require.Less(t, f32, float32(1))

		f64 := d.GetF64()
		require.GreaterOrEqual(t, f64, float64(0))
		require.Less(t, f64, float64(1))
	}
}

func TestReseedsAfterSeedPeriod(t *testing.T) {
	calls := 0
	entropy := func(p []byte) int {
		calls++
		return testEntropy(p)
	}

	d, err := New(8, entropy, nil)
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	for i := 0; i < 10; i++ {
		d.GetU32()
	}
	require.Greater(t, calls, 1)
}

func TestBlake3ConditionerMatchesLength(t *testing.T) {
	out := Blake3Conditioner{}.Condition([]byte("seed material"), 48)
	require.Len(t, out, 48)
}

func TestBlake2bConditionerMatchesLength(t *testing.T) {
	out := Blake2bConditioner{}.Condition([]byte("seed material"), 48)
	require.Len(t, out, 48)
}
