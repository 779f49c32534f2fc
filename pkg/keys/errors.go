// Package keys error types.
//
// These error types cover the failure modes of key construction and
// import: rejected scalar values, malformed WIF strings, unrecognized
// network markers, and unparseable hex or address text. All of them are
// immediate validation failures; none are retryable.
//
// Checksum failures from Base58Check decoding are NOT wrapped into these
// types. They surface as the base58 package's own sentinel errors
// (base58.ErrChecksum, base58.ErrInvalidFormat) so callers can match them
// with errors.Is.
package keys

import "fmt"

// BadParameterError is returned when a caller-supplied scalar or network
// is unusable: the scalar is zero, the scalar is not below the curve
// order, or the network value is not one of the defined constants.
type BadParameterError struct {
	Message string // Human-readable error message
}

func (e *BadParameterError) Error() string {
	return fmt.Sprintf("bad parameter: %s", e.Message)
}

// InvalidKeyError is returned when a WIF string is structurally broken:
// wrong length for its class, a compression marker byte that is not 0x01,
// or a decoded payload that is neither 32 nor 33 bytes.
type InvalidKeyError struct {
	Message string // Human-readable error message
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid key: %s", e.Message)
}

// InvalidNetworkError is returned when a WIF prefix character or an
// address version/prefix does not belong to any recognized network.
type InvalidNetworkError struct {
	Prefix  string // The offending prefix character or version marker
	Message string // Human-readable error message
}

func (e *InvalidNetworkError) Error() string {
	if e.Prefix != "" {
		return fmt.Sprintf("invalid network: %s (prefix %q)", e.Message, e.Prefix)
	}
	return fmt.Sprintf("invalid network: %s", e.Message)
}

// InvalidFormatError is returned when textual input fails to parse at
// all: non-hex characters in a hex string, undecodable address text, or
// a malformed payment URI.
type InvalidFormatError struct {
	Message string // Human-readable error message
	Cause   error  // Underlying decode error (if any)
}

func (e *InvalidFormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid format: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid format: %s", e.Message)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Cause
}
