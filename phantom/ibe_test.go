package phantom

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDLPIBEExtractEncryptDecryptRoundTrip(t *testing.T) {
	rng := testRNG(t, 101)
	keys := testKeyPair(t, rng)
	ibe := NewDLPIBE(keys, rng)

	identity := []byte("alice@example.com")
	userKey, err := ibe.Extract(context.Background(), identity)
	require.NoError(t, err)

	plaintext := []byte{0xA5} // one byte fits within the N=8 toy parameter's one-bit-per-coefficient limit
	ct, err := ibe.Encrypt(context.Background(), identity, plaintext)
	require.NoError(t, err)

	recovered, err := ibe.Decrypt(userKey, ct)
	require.NoError(t, err)
	require.Equal(t, plaintext, recovered)
}

func TestDLPIBEEncryptRejectsOverlongPlaintext(t *testing.T) {
	rng := testRNG(t, 103)
	keys := testKeyPair(t, rng)
	ibe := NewDLPIBE(keys, rng)

	_, err := ibe.Encrypt(context.Background(), []byte("bob@example.com"), []byte("too many bytes for N=8"))
	require.Error(t, err)
}

func TestDLPIBERespectsCancellation(t *testing.T) {
	rng := testRNG(t, 107)
	keys := testKeyPair(t, rng)
	ibe := NewDLPIBE(keys, rng)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ibe.Extract(ctx, []byte("carol@example.com"))
	require.Error(t, err)
}
