package ring

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMRedRoundTrip(t *testing.T) {
	q := uint64(12289)
	p := GenMRedParams(q)

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		x := uint64(r.Int63()) % q
		mx := MForm(x, p)
		back := InvMForm(mx, p)
		require.Equal(t, x, back, "x=%d", x)
	}
}

func TestMRedMultiplicative(t *testing.T) {
	q := uint64(12289)
	p := GenMRedParams(q)

	a, b := uint64(5000), uint64(7000)
	want := (a * b) % q

	am := MForm(a, p)
	bm := MForm(b, p)
	cm := MRed(am, bm, p)
	got := InvMForm(cm, p)
	require.Equal(t, want, got)
}

func TestBRed(t *testing.T) {
	q := uint64(576460752308273153) // a 60-bit NTT-friendly prime (2^17 divides q-1)
	p := GenBRedParams(q)

	r := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		a := uint64(r.Int63()) % q
		b := uint64(r.Int63()) % q
		hi, lo := bits.Mul64(a, b)
		got := BRed(hi, lo, p)
		want := mulModSlow(a, b, q)
		require.Equal(t, want, got)
	}
}
