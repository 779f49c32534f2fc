package keys

import (
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// PublicKey wraps a secp256k1 public key together with the serialization
// preference inherited from the private key that derived it.
type PublicKey struct {
	key        *secp256k1.PublicKey
	compressed bool
}

// IsCompressed reports whether Serialize uses the 33-byte compressed form.
func (p *PublicKey) IsCompressed() bool {
	return p.compressed
}

// Serialize returns the SEC-encoded public key: 33 bytes compressed or
// 65 bytes uncompressed, per the key's preference.
func (p *PublicKey) Serialize() []byte {
	if p.compressed {
		return p.key.SerializeCompressed()
	}
	return p.key.SerializeUncompressed()
}

// SerializeCompressed returns the 33-byte compressed encoding regardless
// of the key's preference.
func (p *PublicKey) SerializeCompressed() []byte {
	return p.key.SerializeCompressed()
}

// SerializeUncompressed returns the 65-byte uncompressed encoding
// regardless of the key's preference.
func (p *PublicKey) SerializeUncompressed() []byte {
	return p.key.SerializeUncompressed()
}

// Hex returns the lowercase hex rendering of Serialize().
func (p *PublicKey) Hex() string {
	return hex.EncodeToString(p.Serialize())
}

// Address derives the pay-to-pubkey-hash address of this key on the given
// network: HASH160 over the serialized key. The serialization preference
// matters: compressed and uncompressed forms of the same key hash to
// different addresses.
func (p *PublicKey) Address(network Network) (Address, error) {
	if !network.Valid() {
		return Address{}, &BadParameterError{Message: fmt.Sprintf("unknown network %d", uint8(network))}
	}
	return Address{
		hash:    hash160(p.Serialize()),
		network: network,
		kind:    PubKeyHash,
	}, nil
}
