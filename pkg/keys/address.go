// Package keys address derivation and parsing.
//
// Addresses are 20-byte HASH160 digests bound to a network and an output
// kind. Two renderings exist: CashAddr (the canonical form, with a
// per-network prefix) and the older Base58Check "legacy" form. Parsing
// accepts both.
package keys

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/crypto/ripemd160"

	"github.com/suffix-labs/bchkey/pkg/cashaddr"
)

// AddressKind distinguishes the two output-script families an address can
// pay to.
type AddressKind uint8

// Address kinds.
const (
	PubKeyHash AddressKind = iota // pay-to-pubkey-hash
	ScriptHash                    // pay-to-script-hash
)

// String returns the short script-family name.
func (k AddressKind) String() string {
	switch k {
	case PubKeyHash:
		return "p2pkh"
	case ScriptHash:
		return "p2sh"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Address is a 20-byte HASH160 bound to a network and an output kind.
// The zero value is a mainnet pay-to-pubkey-hash of the zero digest;
// build real values with NewAddress, PublicKey.Address, or ParseAddress.
type Address struct {
	hash    [20]byte
	network Network
	kind    AddressKind
}

// NewAddress builds an Address from a raw HASH160 digest.
func NewAddress(kind AddressKind, hash [20]byte, network Network) (Address, error) {
	if !network.Valid() {
		return Address{}, &BadParameterError{Message: fmt.Sprintf("unknown network %d", uint8(network))}
	}
	if kind != PubKeyHash && kind != ScriptHash {
		return Address{}, &BadParameterError{Message: fmt.Sprintf("unknown address kind %d", uint8(kind))}
	}
	return Address{hash: hash, network: network, kind: kind}, nil
}

// Hash160 returns the 20-byte digest the address pays to.
func (a Address) Hash160() [20]byte {
	return a.hash
}

// Network returns the network the address belongs to.
func (a Address) Network() Network {
	return a.network
}

// Kind returns the output-script family of the address.
func (a Address) Kind() AddressKind {
	return a.kind
}

// String renders the canonical form: CashAddr with the network prefix.
func (a Address) String() string {
	return a.CashAddr()
}

// CashAddr renders the address with its network's CashAddr prefix, e.g.
// "bitcoincash:qpm2qsznhks23z7629mms6s4cwef74vcwvy22gdx6a".
func (a Address) CashAddr() string {
	addrType := cashaddr.P2PKH
	if a.kind == ScriptHash {
		addrType = cashaddr.P2SH
	}
	s, _ := cashaddr.Encode(a.network.CashAddrPrefix(), addrType, a.hash[:])
	return s
}

// Legacy renders the Base58Check form with the network's legacy version
// byte.
func (a Address) Legacy() string {
	p := a.network.params()
	version := p.p2pkhVersion
	if a.kind == ScriptHash {
		version = p.p2shVersion
	}
	return base58.CheckEncode(a.hash[:], version)
}

// ParseAddress decodes either rendering: CashAddr with its prefix,
// CashAddr without a prefix (each known prefix is tried), or legacy
// Base58Check. Legacy testnet and regtest share version bytes, so legacy
// test-chain addresses always parse as TestNet.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, &InvalidFormatError{Message: "empty address"}
	}

	if i := strings.IndexByte(s, ':'); i >= 0 {
		prefix := strings.ToLower(s[:i])
		network, ok := networkForCashAddrPrefix(prefix)
		if !ok {
			return Address{}, &InvalidNetworkError{Prefix: prefix, Message: "unrecognized CashAddr prefix"}
		}
		addrType, hash, err := cashaddr.Decode(s, prefix)
		if err != nil {
			return Address{}, &InvalidFormatError{Message: "undecodable CashAddr", Cause: err}
		}
		return fromCashAddr(network, addrType, hash)
	}

	// No prefix: try each known CashAddr prefix, then fall back to legacy
	// Base58Check.
	for _, network := range []Network{MainNet, TestNet, RegTest} {
		addrType, hash, err := cashaddr.Decode(s, network.CashAddrPrefix())
		if err == nil {
			return fromCashAddr(network, addrType, hash)
		}
	}

	return parseLegacyAddress(s)
}

func parseLegacyAddress(s string) (Address, error) {
	decoded, version, err := base58.CheckDecode(s)
	if err != nil {
		return Address{}, &InvalidFormatError{Message: "not a CashAddr or legacy address", Cause: err}
	}
	if len(decoded) != 20 {
		return Address{}, &InvalidFormatError{Message: fmt.Sprintf("legacy payload must be 20 bytes, got %d", len(decoded))}
	}

	var hash [20]byte
	copy(hash[:], decoded)

	// RegTest shares TestNet's bytes; TestNet wins.
	for _, network := range []Network{MainNet, TestNet} {
		p := network.params()
		switch version {
		case p.p2pkhVersion:
			return Address{hash: hash, network: network, kind: PubKeyHash}, nil
		case p.p2shVersion:
			return Address{hash: hash, network: network, kind: ScriptHash}, nil
		}
	}

	return Address{}, &InvalidNetworkError{
		Prefix:  fmt.Sprintf("0x%02x", version),
		Message: "unrecognized legacy version byte",
	}
}

func fromCashAddr(network Network, addrType cashaddr.AddressType, hash []byte) (Address, error) {
	if len(hash) != 20 {
		return Address{}, &InvalidFormatError{Message: fmt.Sprintf("unsupported %d-byte address hash", len(hash))}
	}

	var kind AddressKind
	switch addrType {
	case cashaddr.P2PKH:
		kind = PubKeyHash
	case cashaddr.P2SH:
		kind = ScriptHash
	default:
		return Address{}, &InvalidFormatError{Message: fmt.Sprintf("unsupported address type %d", addrType)}
	}

	var h [20]byte
	copy(h[:], hash)
	return Address{hash: h, network: network, kind: kind}, nil
}

func networkForCashAddrPrefix(prefix string) (Network, bool) {
	for _, network := range []Network{MainNet, TestNet, RegTest} {
		if network.CashAddrPrefix() == prefix {
			return network, true
		}
	}
	return 0, false
}

// hash160 computes RIPEMD-160 over the SHA-256 of b, the digest behind
// both legacy and CashAddr addresses.
func hash160(b []byte) [20]byte {
	sha := sha256.Sum256(b)
	r := ripemd160.New()
	r.Write(sha[:])

	var out [20]byte
	copy(out[:], r.Sum(nil))
	return out
}
