// Package keys implements secp256k1 private-key management for Bitcoin
// Cash wallets: generation, import from raw scalars, hex strings, and WIF,
// and export back to WIF, hex, and addresses.
//
// Key formats:
//   - Private keys: WIF (Wallet Import Format), hex, or a raw 256-bit scalar
//   - Public keys: compressed 33-byte or uncompressed 65-byte SEC encoding
//   - Addresses: CashAddr (canonical) and legacy Base58Check
//
// The WIF wire layout is
//
//	version_byte || scalar (32 bytes) || [0x01 if compressed] || checksum (4 bytes)
//
// Base58-encoded, where the checksum is the first four bytes of a double
// SHA-256 over everything before it. The version byte is 0x80 on mainnet
// and 0xEF on testnet and regtest.
package keys

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// PrivateKey wraps a secp256k1 private key together with the metadata
// needed to serialize it: the owning network and the public-key
// compression preference. The scalar always lies in [1, order-1].
//
// A PrivateKey is immutable after construction. Every constructor either
// returns a fully built key or an error; no partially initialized key is
// ever observable. The derived public key is computed once, at
// construction.
type PrivateKey struct {
	key        *secp256k1.PrivateKey
	network    Network
	compressed bool
	pub        *PublicKey
}

// GeneratePrivateKey creates a fresh random private key for the given
// network from the operating system's entropy source. Generated keys
// always prefer the compressed public-key form.
func GeneratePrivateKey(network Network) (*PrivateKey, error) {
	return GeneratePrivateKeyFromRand(rand.Reader, network)
}

// GeneratePrivateKeyFromRand is GeneratePrivateKey with an explicit
// entropy source, so callers (and tests) can control where key material
// comes from. Production code should pass crypto/rand.Reader or use
// GeneratePrivateKey.
func GeneratePrivateKeyFromRand(rng io.Reader, network Network) (*PrivateKey, error) {
	if !network.Valid() {
		return nil, &BadParameterError{Message: fmt.Sprintf("unknown network %d", uint8(network))}
	}

	key, err := secp256k1.GeneratePrivateKeyFromRand(rng)
	if err != nil {
		return nil, fmt.Errorf("generating private key: %w", err)
	}

	return assemble(key, network, true), nil
}

// PrivateKeyFromScalar wraps a caller-supplied scalar. The scalar must lie
// in [1, order-1]; zero, negative, and too-large values are rejected with
// BadParameter. Keys built from raw scalars always prefer the compressed
// public-key form.
func PrivateKeyFromScalar(d *big.Int, network Network) (*PrivateKey, error) {
	if d == nil {
		return nil, &BadParameterError{Message: "scalar is nil"}
	}
	if d.Sign() == 0 {
		return nil, &BadParameterError{Message: "scalar is zero"}
	}
	if d.Sign() < 0 {
		return nil, &BadParameterError{Message: "scalar is negative"}
	}
	if d.BitLen() > 256 {
		return nil, &BadParameterError{Message: "scalar is not below the curve order"}
	}

	var buf [32]byte
	d.FillBytes(buf[:])
	defer zeroBytes(buf[:])

	return wrapScalar(&buf, network, true)
}

// PrivateKeyFromHex parses s as a base-16 integer and wraps it as a
// private key. Odd nibble counts and leading zeros are accepted the way a
// big-integer parser accepts them; any character outside [0-9a-fA-F]
// (including signs and "0x" prefixes) fails with InvalidFormat.
func PrivateKeyFromHex(s string, network Network) (*PrivateKey, error) {
	if s == "" {
		return nil, &InvalidFormatError{Message: "empty hex string"}
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return nil, &InvalidFormatError{Message: fmt.Sprintf("non-hex character %q at index %d", s[i], i)}
		}
	}

	d, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, &InvalidFormatError{Message: fmt.Sprintf("unparseable hex string %q", s)}
	}

	return PrivateKeyFromScalar(d, network)
}

// wrapScalar is the single validation point all constructors converge on:
// it rejects out-of-range and zero scalars, then builds the curve key and
// derives the public key.
func wrapScalar(buf *[32]byte, network Network, compressed bool) (*PrivateKey, error) {
	if !network.Valid() {
		return nil, &BadParameterError{Message: fmt.Sprintf("unknown network %d", uint8(network))}
	}

	var s secp256k1.ModNScalar
	overflow := s.SetBytes(buf) != 0
	if overflow {
		s.Zero()
		return nil, &BadParameterError{Message: "scalar is not below the curve order"}
	}
	if s.IsZero() {
		return nil, &BadParameterError{Message: "scalar is zero"}
	}

	key := secp256k1.NewPrivateKey(&s)
	s.Zero()
	return assemble(key, network, compressed), nil
}

func assemble(key *secp256k1.PrivateKey, network Network, compressed bool) *PrivateKey {
	return &PrivateKey{
		key:        key,
		network:    network,
		compressed: compressed,
		pub:        &PublicKey{key: key.PubKey(), compressed: compressed},
	}
}

// Network returns the network the key belongs to.
func (k *PrivateKey) Network() Network {
	return k.network
}

// Compressed reports whether the derived public key serializes in
// compressed form.
func (k *PrivateKey) Compressed() bool {
	return k.compressed
}

// PubKey returns the public key derived from the scalar at construction.
func (k *PrivateKey) PubKey() *PublicKey {
	return k.pub
}

// Bytes returns a fresh 32-byte big-endian copy of the scalar. Callers
// handling key material should zero the copy when done with it.
func (k *PrivateKey) Bytes() []byte {
	return k.key.Serialize()
}

// Hex renders the scalar as a lowercase, zero-left-padded, 64-character
// hex string. The width is fixed regardless of the scalar's magnitude.
func (k *PrivateKey) Hex() string {
	b := k.key.Serialize()
	defer zeroBytes(b)
	return hex.EncodeToString(b)
}

// Address derives the pay-to-pubkey-hash address of the public key on the
// key's own network. Deriving for another network goes through
// PubKey().Address directly.
func (k *PrivateKey) Address() Address {
	addr, _ := k.pub.Address(k.network)
	return addr
}

// WithCompression returns a copy of the key with the given compression
// preference. The scalar and network are unchanged; the copy owns its own
// key material, so zeroing one key does not affect the other.
func (k *PrivateKey) WithCompression(compressed bool) *PrivateKey {
	keyCopy := *k.key
	return assemble(&keyCopy, k.network, compressed)
}

// Zero overwrites the scalar's backing memory. The key and anything
// derived from it must not be used afterwards.
func (k *PrivateKey) Zero() {
	k.key.Zero()
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
