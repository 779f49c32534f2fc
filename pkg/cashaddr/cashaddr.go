// Package cashaddr implements the CashAddr address encoding used by
// Bitcoin Cash: a lowercase prefix, a colon separator, and a base32
// payload protected by a 40-bit BCH checksum.
//
// Payload layout (before the 5-bit regrouping):
//
//	version_byte || hash
//
// The version byte packs the address type into bits 6-3 and the hash size
// into bits 2-0; bit 7 is reserved and must be zero. The checksum covers
// the expanded prefix and the whole payload. The format shares bech32's
// charset but uses a different generator polynomial and an eight-character
// checksum.
package cashaddr

import (
	"errors"
	"fmt"
	"strings"
)

// CashAddr base32 charset (shared with bech32).
const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

var charsetRev = [128]int8{
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	15, -1, 10, 17, 21, 20, 26, 30, 7, 5, -1, -1, -1, -1, -1, -1,
	-1, 29, -1, 24, 13, 25, 9, 8, 23, -1, 18, 22, 31, 27, 19, -1,
	1, 0, 3, 16, 11, 28, 12, 14, 6, 4, 2, -1, -1, -1, -1, -1,
	-1, 29, -1, 24, 13, 25, 9, 8, 23, -1, 18, 22, 31, 27, 19, -1,
	1, 0, 3, 16, 11, 28, 12, 14, 6, 4, 2, -1, -1, -1, -1, -1,
}

// AddressType is the address class packed into the version byte.
type AddressType byte

// Defined address types.
const (
	P2PKH AddressType = 0 // pay-to-pubkey-hash
	P2SH  AddressType = 1 // pay-to-script-hash
)

// hashSizes maps the version byte's three size bits to hash lengths in
// bytes.
var hashSizes = [8]int{20, 24, 28, 32, 40, 48, 56, 64}

// polymod computes the 40-bit BCH checksum over 5-bit symbols.
func polymod(values []byte) uint64 {
	gen := [5]uint64{0x98f2bc8e61, 0x79b76d99e2, 0xf33e5fb3c4, 0xae2eabe2a8, 0x1e4f43e470}
	c := uint64(1)
	for _, d := range values {
		c0 := c >> 35
		c = ((c & 0x07ffffffff) << 5) ^ uint64(d)
		for i := 0; i < 5; i++ {
			if (c0>>uint(i))&1 == 1 {
				c ^= gen[i]
			}
		}
	}
	return c ^ 1
}

// expandPrefix turns the prefix into checksum symbols: the low five bits
// of each character, then a zero separator.
func expandPrefix(prefix string) []byte {
	out := make([]byte, 0, len(prefix)+1)
	for i := 0; i < len(prefix); i++ {
		out = append(out, prefix[i]&0x1f)
	}
	return append(out, 0)
}

// appendChecksum appends the eight checksum symbols for payload under
// prefix.
func appendChecksum(prefix string, payload []byte) []byte {
	values := append(expandPrefix(prefix), payload...)
	values = append(values, 0, 0, 0, 0, 0, 0, 0, 0)
	mod := polymod(values)
	for i := 0; i < 8; i++ {
		payload = append(payload, byte((mod>>uint(5*(7-i)))&0x1f))
	}
	return payload
}

// verifyChecksum reports whether payload (checksum symbols included) is
// valid under prefix.
func verifyChecksum(prefix string, payload []byte) bool {
	return polymod(append(expandPrefix(prefix), payload...)) == 0
}

// convertBits regroups data from fromBits-wide symbols to toBits-wide
// symbols. With pad set, leftover bits are zero-padded into a final
// symbol; without it, leftovers must be empty zero padding.
func convertBits(data []byte, fromBits, toBits uint, pad bool) ([]byte, error) {
	acc := 0
	bits := uint(0)
	ret := make([]byte, 0, len(data)*int(fromBits)/int(toBits)+1)
	maxv := (1 << toBits) - 1
	for _, value := range data {
		if int(value)>>fromBits != 0 {
			return nil, fmt.Errorf("symbol %d exceeds %d bits", value, fromBits)
		}
		acc = (acc << fromBits) | int(value)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			ret = append(ret, byte((acc>>bits)&maxv))
		}
	}
	if pad {
		if bits > 0 {
			ret = append(ret, byte((acc<<(toBits-bits))&maxv))
		}
	} else if bits >= fromBits || ((acc<<(toBits-bits))&maxv) != 0 {
		return nil, errors.New("invalid padding")
	}
	return ret, nil
}

// Encode renders hash as a CashAddr string, prefix and colon included.
// The hash length must be one of the eight sizes the version byte can
// express (20, 24, 28, 32, 40, 48, 56, or 64 bytes).
func Encode(prefix string, addrType AddressType, hash []byte) (string, error) {
	if err := checkPrefix(prefix); err != nil {
		return "", err
	}
	if addrType > 0x0f {
		return "", fmt.Errorf("address type %d does not fit the version byte", addrType)
	}

	sizeBits := -1
	for i, n := range hashSizes {
		if len(hash) == n {
			sizeBits = i
			break
		}
	}
	if sizeBits < 0 {
		return "", fmt.Errorf("unsupported hash length %d", len(hash))
	}

	version := byte(addrType)<<3 | byte(sizeBits)
	payload, err := convertBits(append([]byte{version}, hash...), 8, 5, true)
	if err != nil {
		return "", err
	}
	payload = appendChecksum(prefix, payload)

	var b strings.Builder
	b.Grow(len(prefix) + 1 + len(payload))
	b.WriteString(prefix)
	b.WriteByte(':')
	for _, v := range payload {
		b.WriteByte(charset[v])
	}
	return b.String(), nil
}

// Decode parses a CashAddr string. addr may include its prefix
// ("bitcoincash:qp...") or be a bare payload, in which case prefix
// supplies the checksum context. All-uppercase input is accepted; mixed
// case is rejected.
func Decode(addr, prefix string) (AddressType, []byte, error) {
	if addr != strings.ToLower(addr) && addr != strings.ToUpper(addr) {
		return 0, nil, errors.New("mixed case in address")
	}
	addr = strings.ToLower(addr)
	prefix = strings.ToLower(prefix)
	if err := checkPrefix(prefix); err != nil {
		return 0, nil, err
	}

	if i := strings.IndexByte(addr, ':'); i >= 0 {
		if addr[:i] != prefix {
			return 0, nil, fmt.Errorf("prefix %q does not match %q", addr[:i], prefix)
		}
		addr = addr[i+1:]
	}

	// Shortest legal payload: one version symbol group plus the eight
	// checksum symbols.
	if len(addr) <= 8 {
		return 0, nil, errors.New("address too short")
	}

	payload := make([]byte, len(addr))
	for i := 0; i < len(addr); i++ {
		c := addr[i]
		if c >= 128 || charsetRev[c] == -1 {
			return 0, nil, fmt.Errorf("invalid character %q at index %d", c, i)
		}
		payload[i] = byte(charsetRev[c])
	}

	if !verifyChecksum(prefix, payload) {
		return 0, nil, errors.New("checksum mismatch")
	}
	payload = payload[:len(payload)-8]

	data, err := convertBits(payload, 5, 8, false)
	if err != nil {
		return 0, nil, err
	}
	if len(data) == 0 {
		return 0, nil, errors.New("empty payload")
	}

	version := data[0]
	if version&0x80 != 0 {
		return 0, nil, errors.New("reserved version bit set")
	}
	hash := data[1:]
	if want := hashSizes[version&0x07]; len(hash) != want {
		return 0, nil, fmt.Errorf("hash is %d bytes but the version byte says %d", len(hash), want)
	}

	return AddressType(version >> 3), hash, nil
}

func checkPrefix(prefix string) error {
	if prefix == "" {
		return errors.New("empty prefix")
	}
	for i := 0; i < len(prefix); i++ {
		if c := prefix[i]; c < 'a' || c > 'z' {
			return fmt.Errorf("prefix character %q outside a-z", c)
		}
	}
	return nil
}
