// Package keys WIF encoding and decoding.
//
// A WIF string is 51 characters (uncompressed keys) or 52 characters
// (compressed keys), and its leading character pins down the network and
// the compression preference before any decoding happens:
//
//	'5'        mainnet, uncompressed, 51 chars
//	'9'        testnet, uncompressed, 51 chars
//	'L' / 'K'  mainnet, compressed,   52 chars
//	'c'        testnet, compressed,   52 chars
//
// After the Base58Check decode strips the version byte, a 33-byte payload
// must end in the 0x01 compression marker (which forces the compressed
// flag on, whatever the prefix implied) and a 32-byte payload means
// uncompressed. Checksum failures surface as the base58 package's own
// errors.
package keys

import (
	"fmt"

	"github.com/btcsuite/btcutil/base58"
)

// WIF string lengths.
const (
	wifUncompressedLen = 51 // uncompressed-key WIF
	wifCompressedLen   = 52 // compressed-key WIF
)

// compressionMarker is the payload suffix byte marking a compressed key.
const compressionMarker = 0x01

// wifClass is what a WIF prefix character implies about the string.
type wifClass struct {
	network     Network
	compressed  bool
	requiredLen int
}

// classifyWIF maps the leading character of a WIF string to its class.
func classifyWIF(prefix byte) (wifClass, error) {
	switch prefix {
	case '5':
		return wifClass{network: MainNet, compressed: false, requiredLen: wifUncompressedLen}, nil
	case '9':
		return wifClass{network: TestNet, compressed: false, requiredLen: wifUncompressedLen}, nil
	case 'L', 'K':
		return wifClass{network: MainNet, compressed: true, requiredLen: wifCompressedLen}, nil
	case 'c':
		return wifClass{network: TestNet, compressed: true, requiredLen: wifCompressedLen}, nil
	default:
		return wifClass{}, &InvalidNetworkError{
			Prefix:  string(prefix),
			Message: "unrecognized WIF prefix character",
		}
	}
}

// PrivateKeyFromWIF decodes a WIF-encoded private key. The network and the
// compression preference come from the string itself.
func PrivateKeyFromWIF(wif string) (*PrivateKey, error) {
	if len(wif) != wifUncompressedLen && len(wif) != wifCompressedLen {
		return nil, &InvalidKeyError{
			Message: fmt.Sprintf("WIF must be %d or %d characters, got %d",
				wifUncompressedLen, wifCompressedLen, len(wif)),
		}
	}

	class, err := classifyWIF(wif[0])
	if err != nil {
		return nil, err
	}

	// Per-class length re-check: a '5' string of 52 characters is broken
	// even though 52 is a legal WIF length.
	if len(wif) != class.requiredLen {
		return nil, &InvalidKeyError{
			Message: fmt.Sprintf("WIF with prefix %q must be %d characters, got %d",
				wif[0], class.requiredLen, len(wif)),
		}
	}

	// CheckDecode verifies the trailing checksum and strips the version
	// byte. Its failures pass through untouched.
	payload, _, err := base58.CheckDecode(wif)
	if err != nil {
		return nil, err
	}
	defer zeroBytes(payload)

	compressed := class.compressed
	switch len(payload) {
	case 33:
		if payload[32] != compressionMarker {
			return nil, &InvalidKeyError{
				Message: fmt.Sprintf("compression marker must be 0x%02x, got 0x%02x",
					compressionMarker, payload[32]),
			}
		}
		payload = payload[:32]
		compressed = true
	case 32:
		compressed = false
	default:
		return nil, &InvalidKeyError{
			Message: fmt.Sprintf("decoded payload must be 32 or 33 bytes, got %d", len(payload)),
		}
	}

	var buf [32]byte
	copy(buf[:], payload)
	defer zeroBytes(buf[:])

	return wrapScalar(&buf, class.network, compressed)
}

// WIF renders the key in Wallet Import Format: the network's version
// byte, the 32-byte big-endian scalar, a 0x01 marker when the public key
// is compressed, and a 4-byte double-SHA256 checksum, all Base58 encoded.
// The output is always 51 or 52 characters.
func (k *PrivateKey) WIF() string {
	scalar := k.key.Serialize()
	defer zeroBytes(scalar)

	payload := make([]byte, 0, 33)
	payload = append(payload, scalar...)
	if k.compressed {
		payload = append(payload, compressionMarker)
	}
	defer zeroBytes(payload)

	return base58.CheckEncode(payload, k.network.params().wifVersion)
}
