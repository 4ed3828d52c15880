// Package usecase implements the application layer for identifier obfuscation.
//
// The use case coordinates the two codecs and realizes the fail-soft decode
// contract: malformed external tokens are an expected, routine occurrence
// (clients can put anything in a URL), so decode failures are reported to the
// observability layer and surfaced as not-found, never as faults.
package usecase

import (
	"context"
	"log/slog"

	"github.com/allisson/publicid/internal/codec/service"
)

// CodecUseCase defines the operations exposed to handlers and commands.
type CodecUseCase interface {
	// EncodeToken obfuscates an identifier into a URL-safe opaque token.
	EncodeToken(ctx context.Context, id string, padding bool) string

	// DecodeToken reverses EncodeToken. Undecodable input yields an error
	// wrapping ErrNotFound; the offending token and reason are logged.
	DecodeToken(ctx context.Context, token string) (int64, error)

	// EncodeNumeric maps a 30-bit id to its obfuscated form. Out-of-domain
	// input yields an error wrapping ErrInvalidInput.
	EncodeNumeric(ctx context.Context, id int64) (int64, error)

	// DecodeNumeric inverts EncodeNumeric; it never fails.
	DecodeNumeric(ctx context.Context, obfuscatedID int64) int64
}

// codecUseCase implements CodecUseCase on top of the codec services.
type codecUseCase struct {
	stringCodec  service.StringCodec
	numericCodec service.NumericCodec
	logger       *slog.Logger
}

// NewCodecUseCase creates a codec use case with required dependencies.
func NewCodecUseCase(
	stringCodec service.StringCodec,
	numericCodec service.NumericCodec,
	logger *slog.Logger,
) CodecUseCase {
	return &codecUseCase{
		stringCodec:  stringCodec,
		numericCodec: numericCodec,
		logger:       logger,
	}
}

// EncodeToken obfuscates an identifier into a URL-safe opaque token.
func (u *codecUseCase) EncodeToken(_ context.Context, id string, padding bool) string {
	return u.stringCodec.Encode(id, padding)
}

// DecodeToken decodes a previously issued token back to the original id.
//
// Decode failures are logged with the offending token and the underlying
// reason. The token is not secret data (the client already has it), so logging
// it is safe and makes tampering attempts visible.
func (u *codecUseCase) DecodeToken(_ context.Context, token string) (int64, error) {
	id, err := u.stringCodec.Decode(token)
	if err != nil {
		u.logger.Warn("token decode failed",
			slog.String("token", token),
			slog.Any("error", err),
		)
		return 0, err
	}
	return id, nil
}

// EncodeNumeric maps a 30-bit id to its obfuscated form.
func (u *codecUseCase) EncodeNumeric(_ context.Context, id int64) (int64, error) {
	return u.numericCodec.Encode(id)
}

// DecodeNumeric inverts EncodeNumeric.
func (u *codecUseCase) DecodeNumeric(_ context.Context, obfuscatedID int64) int64 {
	return u.numericCodec.Decode(obfuscatedID)
}
