package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkConstants(t *testing.T) {
	// Serialization bytes are consensus constants; a typo here corrupts
	// every key and address this package emits.
	main := MainNet.params()
	assert.Equal(t, byte(0x80), main.wifVersion)
	assert.Equal(t, byte(0x00), main.p2pkhVersion)
	assert.Equal(t, byte(0x05), main.p2shVersion)
	assert.Equal(t, "bitcoincash", main.cashAddrPrefix)

	test := TestNet.params()
	assert.Equal(t, byte(0xEF), test.wifVersion)
	assert.Equal(t, byte(0x6F), test.p2pkhVersion)
	assert.Equal(t, byte(0xC4), test.p2shVersion)
	assert.Equal(t, "bchtest", test.cashAddrPrefix)

	// RegTest shares TestNet's byte-level constants but not its prefix.
	reg := RegTest.params()
	assert.Equal(t, test.wifVersion, reg.wifVersion)
	assert.Equal(t, test.p2pkhVersion, reg.p2pkhVersion)
	assert.Equal(t, test.p2shVersion, reg.p2shVersion)
	assert.Equal(t, "bchreg", reg.cashAddrPrefix)
}

func TestNetworkValid(t *testing.T) {
	assert.True(t, MainNet.Valid())
	assert.True(t, TestNet.Valid())
	assert.True(t, RegTest.Valid())
	assert.False(t, Network(3).Valid())
	assert.False(t, Network(255).Valid())
}

func TestNetworkString(t *testing.T) {
	assert.Equal(t, "mainnet", MainNet.String())
	assert.Equal(t, "testnet", TestNet.String())
	assert.Equal(t, "regtest", RegTest.String())
	assert.Equal(t, "unknown(7)", Network(7).String())
}

// TestParseNetwork covers canonical names, short forms, and case folding.
func TestParseNetwork(t *testing.T) {
	cases := []struct {
		in   string
		want Network
	}{
		{"mainnet", MainNet},
		{"main", MainNet},
		{"MAINNET", MainNet},
		{"  mainnet ", MainNet},
		{"testnet", TestNet},
		{"test", TestNet},
		{"Test", TestNet},
		{"regtest", RegTest},
		{"reg", RegTest},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseNetwork(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, bad := range []string{"", "simnet", "bitcoin", "mainnet2"} {
		_, err := ParseNetwork(bad)
		require.Error(t, err)
		var badParam *BadParameterError
		assert.ErrorAs(t, err, &badParam)
	}
}
