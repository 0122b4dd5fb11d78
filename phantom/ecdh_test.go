package phantom

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neil-smyth/phantom/bigint"
	"github.com/neil-smyth/phantom/ecc"
)

// secp256k1 parameters, used purely as a well-known test curve (this
// module makes no claim of secp256k1 protocol support).
func testECDHCurve() *ecc.Curve {
	p, _ := bigint.FromString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F", 16)
	a := bigint.FromInt64(0)
	b := bigint.FromInt64(7)
	order, _ := bigint.FromString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)
	gx, _ := bigint.FromString("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798", 16)
	gy, _ := bigint.FromString("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8", 16)
	return ecc.NewCurve(p, a, b, order, gx, gy)
}

func TestECDHKeyExchangeSharedSecretAgrees(t *testing.T) {
	curve := testECDHCurve()

	alice, err := NewECDHKeyExchange(curve, testRNG(t, 71), ecc.CodingNAF, 4)
	require.NoError(t, err)
	bob, err := NewECDHKeyExchange(curve, testRNG(t, 89), ecc.CodingNAF, 4)
	require.NoError(t, err)

	aliceSecret, err := alice.SharedSecret(bob.Public())
	require.NoError(t, err)
	bobSecret, err := bob.SharedSecret(alice.Public())
	require.NoError(t, err)

	require.Equal(t, aliceSecret, bobSecret)
}

func TestECDHKeyExchangeRejectsMalformedPeerKey(t *testing.T) {
	curve := testECDHCurve()
	alice, err := NewECDHKeyExchange(curve, testRNG(t, 97), ecc.CodingNAF, 4)
	require.NoError(t, err)

	_, err = alice.SharedSecret([]byte("too short"))
	require.Error(t, err)
}
