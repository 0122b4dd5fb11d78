package phantom

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neil-smyth/phantom/csprng"
	"github.com/neil-smyth/phantom/ntru"
)

func testRNG(t *testing.T, seed byte) *csprng.DRBG {
	t.Helper()
	rng, err := csprng.New(0, func(p []byte) int {
		for i := range p {
			p[i] = byte(int(seed) + i*41 + 7)
		}
		return len(p)
	}, nil)
	require.NoError(t, err)
	return rng
}

func testKeyPair(t *testing.T, rng *csprng.DRBG) *KeyPair {
	t.Helper()
	params := ntru.NewParams(3, 12289, 512) // N=8
	keys, err := GenerateKeyPair(context.Background(), params, rng)
	require.NoError(t, err)
	return keys
}

func TestNTRUSignerSignVerifyRoundTrip(t *testing.T) {
	rng := testRNG(t, 11)
	keys := testKeyPair(t, rng)
	signer := NewNTRUSigner(keys, rng)

	msg := []byte("a message to authenticate")
	sig, err := signer.Sign(context.Background(), msg)
	require.NoError(t, err)
	require.NoError(t, signer.Verify(msg, sig))
}

func TestNTRUSignerRejectsTamperedMessage(t *testing.T) {
	rng := testRNG(t, 23)
	keys := testKeyPair(t, rng)
	signer := NewNTRUSigner(keys, rng)

	msg := []byte("original message")
	sig, err := signer.Sign(context.Background(), msg)
	require.NoError(t, err)

	err = signer.Verify([]byte("tampered message"), sig)
	require.Error(t, err)
}

func TestNTRUSignerRejectsTruncatedSignature(t *testing.T) {
	rng := testRNG(t, 37)
	keys := testKeyPair(t, rng)
	signer := NewNTRUSigner(keys, rng)

	err := signer.Verify([]byte("msg"), []byte("too short"))
	require.Error(t, err)
}

func TestNTRUSignerWithLoggerTracesEvents(t *testing.T) {
	rng := testRNG(t, 59)
	var events []string
	keys, err := GenerateKeyPair(context.Background(), ntru.NewParams(3, 12289, 512), rng, WithLogger(func(event string, _ ...any) {
		events = append(events, event)
	}))
	require.NoError(t, err)

	signer := NewNTRUSigner(keys, rng, WithLogger(func(event string, _ ...any) {
		events = append(events, event)
	}))
	sig, err := signer.Sign(context.Background(), []byte("trace me"))
	require.NoError(t, err)
	require.NoError(t, signer.Verify([]byte("trace me"), sig))

	require.Contains(t, events, "keygen.start")
	require.Contains(t, events, "keygen.done")
	require.Contains(t, events, "sign.done")
	require.Contains(t, events, "verify.ok")
}

func TestNTRUSignerRespectsCancellation(t *testing.T) {
	rng := testRNG(t, 41)
	keys := testKeyPair(t, rng)
	signer := NewNTRUSigner(keys, rng)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := signer.Sign(ctx, []byte("msg"))
	require.Error(t, err)
}
