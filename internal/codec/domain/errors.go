package domain

import (
	"github.com/allisson/publicid/internal/errors"
)

// Codec error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for codec failures. All errors are mapped to
// appropriate HTTP status codes by the error handling layer.
var (
	// ErrIDOutOfRange indicates a numeric id outside the 30-bit codec domain.
	//
	// Encoding a value at or above 2^30 would alias onto another id's
	// obfuscated form and break the bijection, so it is rejected up front.
	// This signals a programming error upstream (an id grew past the
	// reserved bit width), not a routine input problem.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrIDOutOfRange = errors.Wrap(errors.ErrInvalidInput, "numeric id out of range")

	// ErrUndecodableToken indicates a token that could not be decoded.
	//
	// This error can occur due to:
	//   - The token is not valid URL-safe base64
	//   - The ciphertext length is not a whole number of cipher blocks
	//   - The padding is invalid (tampered, truncated, or foreign-key token)
	//
	// Tokens arrive from untrusted clients (URLs), so this is an expected,
	// routine occurrence and is treated like a lookup miss.
	//
	// HTTP Status: 404 Not Found
	ErrUndecodableToken = errors.Wrap(errors.ErrNotFound, "undecodable token")
)
