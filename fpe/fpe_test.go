package fpe

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	return []byte("0123456789abcdef")
}

func TestMapUnmapRoundTripWithPadCodes(t *testing.T) {
	symbols, pad, err := Map(FormatAlphanumeric, "ab-12_CD")
	require.NoError(t, err)
	require.Len(t, pad, 2)

	out, err := Unmap(FormatAlphanumeric, symbols, pad)
	require.NoError(t, err)
	require.Equal(t, "ab-12_CD", out)
}

func TestMapRejectsUnsupportedFormat(t *testing.T) {
	_, _, err := Map(Format(999), "x")
	require.Error(t, err)
}

func TestFF1RoundTrip(t *testing.T) {
	ctx, err := NewContext(AlgorithmFF1, FormatNumeric, testKey(), []byte("tweak-bytes"))
	require.NoError(t, err)

	enc, err := ctx.EncryptString("0123456789")
	require.NoError(t, err)
	require.Len(t, enc, 10)
	require.NotEqual(t, "0123456789", enc)

	dec, err := ctx.DecryptString(enc)
	require.NoError(t, err)
	require.Equal(t, "0123456789", dec)
}

// TestFF1NISTSample1 pins spec.md §8 item 2 against its real NIST SP
// 800-38G Rev.1 CAVP source: Sample #1 (radix 10, empty tweak,
// key 2B7E151628AED2A6ABF7158809CF4F3C, PT "0123456789") has a
// published ciphertext of "2433477484" - a self-consistent round
// trip alone would also pass with a Feistel round function that
// diverges from the real FF1 definition, so this checks the literal
// NIST output bit-exactly instead.
func TestFF1NISTSample1(t *testing.T) {
	key, err := hex.DecodeString("2B7E151628AED2A6ABF7158809CF4F3C")
	require.NoError(t, err)

	ctx, err := NewContext(AlgorithmFF1, FormatNumeric, key, nil)
	require.NoError(t, err)

	enc, err := ctx.EncryptString("0123456789")
	require.NoError(t, err)
	require.Equal(t, "2433477484", enc)

	dec, err := ctx.DecryptString(enc)
	require.NoError(t, err)
	require.Equal(t, "0123456789", dec)
}

func TestFF1RoundTripAlphanumeric(t *testing.T) {
	ctx, err := NewContext(AlgorithmFF1, FormatAlphanumeric, testKey(), nil)
	require.NoError(t, err)

	enc, err := ctx.EncryptString("Account42")
	require.NoError(t, err)
	dec, err := ctx.DecryptString(enc)
	require.NoError(t, err)
	require.Equal(t, "Account42", dec)
}

func TestFF3v1RoundTrip(t *testing.T) {
	ctx, err := NewContext(AlgorithmFF3v1, FormatNumeric, testKey(), []byte("1234567"))
	require.NoError(t, err)

	enc, err := ctx.EncryptString("482910375")
	require.NoError(t, err)
	require.NotEqual(t, "482910375", enc)

	dec, err := ctx.DecryptString(enc)
	require.NoError(t, err)
	require.Equal(t, "482910375", dec)
}

func TestFF3v1RejectsBadTweakLength(t *testing.T) {
	_, err := NewContext(AlgorithmFF3v1, FormatNumeric, testKey(), []byte("short"))
	require.Error(t, err)
}

func TestFF3v1RejectsInputLongerThanDomain(t *testing.T) {
	ctx, err := NewContext(AlgorithmFF3v1, FormatNumeric, testKey(), []byte("1234567"))
	require.NoError(t, err)

	long := make([]byte, maxInputLen(FormatNumeric.Radix())+1)
	for i := range long {
		long[i] = '1'
	}
	_, err = ctx.EncryptString(string(long))
	require.Error(t, err)
}

func TestEncryptIntegerRoundTrip(t *testing.T) {
	ctx, err := NewContext(AlgorithmFF1, FormatNumeric, testKey(), nil)
	require.NoError(t, err)

	enc, err := EncryptInteger(ctx, 42, 8)
	require.NoError(t, err)
	require.Len(t, enc, 8)

	dec, err := DecryptInteger(ctx, enc)
	require.NoError(t, err)
	require.Equal(t, uint64(42), dec)
}

func TestEncryptFloatRoundTrip(t *testing.T) {
	ctx, err := NewContext(AlgorithmFF1, FormatNumeric, testKey(), nil)
	require.NoError(t, err)

	enc, err := EncryptFloat(ctx, 3.14159, 4, 5)
	require.NoError(t, err)

	dec, err := DecryptFloat(ctx, enc)
	require.NoError(t, err)
	require.InDelta(t, 3.14159, dec, 1e-9)
}

func TestRdnInverseRdnRoundTrip(t *testing.T) {
	cases := [][3]int{{2024, 3, 15}, {2000, 1, 1}, {1970, 1, 1}, {2399, 12, 31}}
	for _, c := range cases {
		z := rdn(c[0], c[1], c[2])
		y, m, d := inverseRdn(z)
		require.Equal(t, c[0], y)
		require.Equal(t, c[1], m)
		require.Equal(t, c[2], d)
	}
}

func TestEncryptISO8601RoundTrip(t *testing.T) {
	ctx, err := NewContext(AlgorithmFF1, FormatNumeric, testKey(), nil)
	require.NoError(t, err)

	orig := "2024-03-15T13:45:30Z"
	enc, err := EncryptISO8601(ctx, orig)
	require.NoError(t, err)
	require.NotEqual(t, orig, enc)
	require.Equal(t, "Z", enc[19:])

	dec, err := DecryptISO8601(ctx, enc)
	require.NoError(t, err)
	require.Equal(t, orig, dec)
}

func TestParseISO8601RejectsMalformedSeparators(t *testing.T) {
	_, _, _, _, _, _, err := parseISO8601("2024/03/15T13:45:30")
	require.Error(t, err)
}
