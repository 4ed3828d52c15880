// Package service implements the identifier obfuscation codecs: a block-cipher
// token codec for arbitrary ids and a bijective permutation for bounded
// numeric ids. Both are deterministic so that issued ids stay stable forever.
package service

import (
	"context"

	codecDomain "github.com/allisson/publicid/internal/codec/domain"
)

// StringCodec defines the interface for the opaque token codec.
type StringCodec interface {
	// Encode obfuscates an identifier into a URL-safe token. The padding flag
	// controls whether trailing base64 '=' characters are emitted; disable it
	// when the token is embedded directly in a path segment.
	Encode(id string, padding bool) string

	// EncodeInt64 encodes the decimal rendering of a numeric identifier.
	EncodeInt64(id int64, padding bool) string

	// Decode reverses Encode and parses the recovered text as a decimal
	// integer (best-effort: leading sign and digits, otherwise 0). It accepts
	// arbitrary untrusted input and returns ErrUndecodableToken for anything
	// that is not a well-formed token under the current key.
	Decode(token string) (int64, error)
}

// NumericCodec defines the interface for the fixed-width numeric permutation.
type NumericCodec interface {
	// Encode maps an id in [0, MaxNumericID] to a unique obfuscated id in the
	// same range. Inputs outside the domain are rejected with ErrIDOutOfRange.
	Encode(id int64) (int64, error)

	// Decode inverts Encode. Every 30-bit value has a well-defined inverse
	// image, so decoding never fails; larger inputs are truncated to the low
	// 30 bits.
	Decode(obfuscatedID int64) int64
}

// KeySource defines the interface for resolving codec key material from the
// external configuration/secrets collaborator.
type KeySource interface {
	// Resolve produces the key material for this process. Callers memoize the
	// result; resolution is a pure function of external configuration read at
	// that moment.
	Resolve(ctx context.Context) (codecDomain.KeyMaterial, error)
}
