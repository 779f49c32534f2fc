package keys

import (
	"fmt"
	"strings"
)

// Network identifies which Bitcoin Cash chain a key or address belongs to.
//
// The network selects the WIF version byte, the legacy address version
// bytes, and the CashAddr prefix used when serializing keys and addresses.
type Network uint8

// Supported networks.
const (
	MainNet Network = iota // Production chain
	TestNet                // Public test chain
	RegTest                // Local regression-test chain
)

// networkParams holds the serialization constants for one network.
type networkParams struct {
	name           string // Canonical lowercase name
	wifVersion     byte   // WIF version byte
	p2pkhVersion   byte   // Legacy pay-to-pubkey-hash version byte
	p2shVersion    byte   // Legacy pay-to-script-hash version byte
	cashAddrPrefix string // CashAddr human-readable prefix
}

// RegTest shares TestNet's WIF and legacy version bytes. WIF and legacy
// address round-trips of a RegTest key therefore come back as TestNet;
// only the CashAddr prefix tells the two chains apart on the wire.
var allNetworks = map[Network]networkParams{
	MainNet: {name: "mainnet", wifVersion: 0x80, p2pkhVersion: 0x00, p2shVersion: 0x05, cashAddrPrefix: "bitcoincash"},
	TestNet: {name: "testnet", wifVersion: 0xEF, p2pkhVersion: 0x6F, p2shVersion: 0xC4, cashAddrPrefix: "bchtest"},
	RegTest: {name: "regtest", wifVersion: 0xEF, p2pkhVersion: 0x6F, p2shVersion: 0xC4, cashAddrPrefix: "bchreg"},
}

// Valid reports whether n is one of the defined network constants.
func (n Network) Valid() bool {
	_, ok := allNetworks[n]
	return ok
}

// String returns the canonical lowercase network name.
func (n Network) String() string {
	if p, ok := allNetworks[n]; ok {
		return p.name
	}
	return fmt.Sprintf("unknown(%d)", uint8(n))
}

// CashAddrPrefix returns the CashAddr prefix for the network
// ("bitcoincash", "bchtest", or "bchreg").
func (n Network) CashAddrPrefix() string {
	return allNetworks[n].cashAddrPrefix
}

func (n Network) params() networkParams {
	return allNetworks[n]
}

// ParseNetwork converts a network name to its Network constant. It accepts
// the canonical names ("mainnet", "testnet", "regtest") and the short
// forms ("main", "test", "reg"), case-insensitively.
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mainnet", "main":
		return MainNet, nil
	case "testnet", "test":
		return TestNet, nil
	case "regtest", "reg":
		return RegTest, nil
	default:
		return 0, &BadParameterError{Message: fmt.Sprintf("unknown network %q", s)}
	}
}
