package keys

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Known secp256k1 values for the scalar 1: the public key is the curve's
// base point G.
const (
	keyOneHex = "0000000000000000000000000000000000000000000000000000000000000001"

	basePointCompressed   = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	basePointUncompressed = "0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"

	// Curve order N, the first value FromScalar and FromHex must reject
	// from above.
	curveOrderHex = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"
)

// mustKeyFromHex builds a key from hex, failing the test on error.
func mustKeyFromHex(t *testing.T, s string, network Network) *PrivateKey {
	t.Helper()
	key, err := PrivateKeyFromHex(s, network)
	require.NoError(t, err)
	return key
}

func hexStr(b []byte) string {
	return hex.EncodeToString(b)
}

func TestGenerateDeterministic(t *testing.T) {
	// A fixed entropy source pins the generated scalar: the generator
	// reads 32 bytes and accepts them when they land in [1, N-1].
	seed := bytes.Repeat([]byte{0x01}, 32)

	key, err := GeneratePrivateKeyFromRand(bytes.NewReader(seed), MainNet)
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("01", 32), key.Hex())
	assert.Equal(t, MainNet, key.Network())
	assert.True(t, key.Compressed())

	again, err := GeneratePrivateKeyFromRand(bytes.NewReader(seed), MainNet)
	require.NoError(t, err)
	assert.Equal(t, key.WIF(), again.WIF())
}

func TestGenerate(t *testing.T) {
	for _, network := range []Network{MainNet, TestNet, RegTest} {
		t.Run(network.String(), func(t *testing.T) {
			key, err := GeneratePrivateKey(network)
			require.NoError(t, err)

			assert.Equal(t, network, key.Network())
			assert.True(t, key.Compressed())
			assert.Len(t, key.Hex(), 64)
		})
	}

	// Two draws from the OS entropy source must not collide.
	k1, err := GeneratePrivateKey(MainNet)
	require.NoError(t, err)
	k2, err := GeneratePrivateKey(MainNet)
	require.NoError(t, err)
	assert.NotEqual(t, k1.Hex(), k2.Hex())
}

func TestGenerateErrors(t *testing.T) {
	_, err := GeneratePrivateKey(Network(42))
	var badParam *BadParameterError
	require.ErrorAs(t, err, &badParam)

	// An exhausted entropy source is a hard failure, not a fallback.
	_, err = GeneratePrivateKeyFromRand(bytes.NewReader(nil), MainNet)
	require.Error(t, err)
}

func TestPrivateKeyFromScalar(t *testing.T) {
	key, err := PrivateKeyFromScalar(big.NewInt(1), MainNet)
	require.NoError(t, err)

	assert.Equal(t, keyOneHex, key.Hex())
	assert.Equal(t, MainNet, key.Network())
	assert.True(t, key.Compressed())
	assert.Equal(t, basePointCompressed, key.PubKey().Hex())
}

// TestPrivateKeyFromScalarImmutable verifies the key copies the scalar
// instead of aliasing the caller's big.Int.
func TestPrivateKeyFromScalarImmutable(t *testing.T) {
	d := big.NewInt(7)
	key, err := PrivateKeyFromScalar(d, MainNet)
	require.NoError(t, err)

	d.SetInt64(99)
	assert.Equal(t, strings.Repeat("0", 63)+"7", key.Hex())
}

func TestPrivateKeyFromScalarRejects(t *testing.T) {
	order, ok := new(big.Int).SetString(curveOrderHex, 16)
	require.True(t, ok)

	cases := []struct {
		name   string
		scalar *big.Int
	}{
		{"nil", nil},
		{"zero", big.NewInt(0)},
		{"negative", big.NewInt(-5)},
		{"order", order},
		{"order_plus_one", new(big.Int).Add(order, big.NewInt(1))},
		{"max_256_bit", new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))},
		{"257_bit", new(big.Int).Lsh(big.NewInt(1), 256)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PrivateKeyFromScalar(tc.scalar, MainNet)
			var badParam *BadParameterError
			require.ErrorAs(t, err, &badParam)
		})
	}

	_, err := PrivateKeyFromScalar(big.NewInt(1), Network(9))
	var badParam *BadParameterError
	require.ErrorAs(t, err, &badParam)
}

func TestPrivateKeyFromScalarUpperBound(t *testing.T) {
	// N-1 is the largest valid scalar.
	order, _ := new(big.Int).SetString(curveOrderHex, 16)
	top := new(big.Int).Sub(order, big.NewInt(1))

	key, err := PrivateKeyFromScalar(top, MainNet)
	require.NoError(t, err)
	assert.Equal(t, "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140", key.Hex())
}

func TestPrivateKeyFromHex(t *testing.T) {
	// Short input is zero-extended on the left; the rendered form is
	// always the full 64 characters.
	key := mustKeyFromHex(t, "01", MainNet)
	assert.Equal(t, keyOneHex, key.Hex())

	// Odd nibble counts parse like a big integer would.
	key = mustKeyFromHex(t, "abc", MainNet)
	assert.Equal(t, strings.Repeat("0", 61)+"abc", key.Hex())

	// Case does not change the value.
	lower := mustKeyFromHex(t, "0c28fca386c7a227600b2fe50b7cae11ec86d3bf1fbe471be89827e19d72aa1d", MainNet)
	upper := mustKeyFromHex(t, "0C28FCA386C7A227600B2FE50B7CAE11EC86D3BF1FBE471BE89827E19D72AA1D", MainNet)
	assert.Equal(t, lower.Hex(), upper.Hex())
}

func TestPrivateKeyFromHexRejects(t *testing.T) {
	format := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"0x_prefix", "0x01"},
		{"sign", "-1"},
		{"space", " 01"},
		{"non_hex", "notahexstring"},
		{"lowercase_l", "0l"},
	}
	for _, tc := range format {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PrivateKeyFromHex(tc.in, MainNet)
			var invalidFormat *InvalidFormatError
			require.ErrorAs(t, err, &invalidFormat)
		})
	}

	// Well-formed hex carrying an out-of-range value fails as a bad
	// parameter, not a format error.
	rangeCases := []struct {
		name string
		in   string
	}{
		{"zero", strings.Repeat("0", 64)},
		{"order", curveOrderHex},
		{"too_wide", "1" + strings.Repeat("0", 64)},
	}
	for _, tc := range rangeCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PrivateKeyFromHex(tc.in, MainNet)
			var badParam *BadParameterError
			require.ErrorAs(t, err, &badParam)
		})
	}
}

func TestBytesReturnsCopy(t *testing.T) {
	key := mustKeyFromHex(t, "01", MainNet)

	b := key.Bytes()
	require.Len(t, b, 32)
	b[31] = 0xFF

	assert.Equal(t, keyOneHex, key.Hex())
}

func TestWithCompression(t *testing.T) {
	comp := mustKeyFromHex(t, "01", MainNet)
	uncomp := comp.WithCompression(false)

	assert.True(t, comp.Compressed())
	assert.False(t, uncomp.Compressed())
	assert.Equal(t, comp.Hex(), uncomp.Hex())

	// The two serialization preferences hash to different addresses.
	assert.NotEqual(t, comp.Address().Hash160(), uncomp.Address().Hash160())

	// The copy owns its key material.
	uncomp.Zero()
	assert.Equal(t, keyOneHex, comp.Hex())
}

func TestZero(t *testing.T) {
	key := mustKeyFromHex(t, "0c28fca386c7a227600b2fe50b7cae11ec86d3bf1fbe471be89827e19d72aa1d", MainNet)
	key.Zero()
	assert.Equal(t, make([]byte, 32), key.Bytes())
}

func TestPublicKeySerializations(t *testing.T) {
	key := mustKeyFromHex(t, "01", MainNet)
	pub := key.PubKey()

	assert.True(t, pub.IsCompressed())
	assert.Equal(t, basePointCompressed, pub.Hex())
	assert.Len(t, pub.Serialize(), 33)

	// The explicit forms ignore the preference.
	assert.Equal(t, basePointCompressed, hexStr(pub.SerializeCompressed()))
	assert.Equal(t, basePointUncompressed, hexStr(pub.SerializeUncompressed()))

	uncomp := key.WithCompression(false).PubKey()
	assert.False(t, uncomp.IsCompressed())
	assert.Equal(t, basePointUncompressed, uncomp.Hex())
	assert.Len(t, uncomp.Serialize(), 65)
}

func TestPrivateKeyAddressUsesOwnNetwork(t *testing.T) {
	key := mustKeyFromHex(t, "01", TestNet)
	addr := key.Address()

	assert.Equal(t, TestNet, addr.Network())
	assert.True(t, strings.HasPrefix(addr.CashAddr(), "bchtest:"))

	_, err := key.PubKey().Address(Network(77))
	var badParam *BadParameterError
	require.ErrorAs(t, err, &badParam)
}
