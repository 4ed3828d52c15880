package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"gocloud.dev/secrets"

	codecDomain "github.com/allisson/publicid/internal/codec/domain"
	apperrors "github.com/allisson/publicid/internal/errors"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KeyResolverOptions holds the raw configuration values the resolver reads.
// Values come from the external configuration/secrets collaborator; the
// resolver only interprets them.
type KeyResolverOptions struct {
	// CipherKey is the plain string cipher key. Wins over the KMS-wrapped form.
	CipherKey string
	// SecretKeyBase is the application-wide secret used when no cipher key is
	// provisioned.
	SecretKeyBase string
	// CipherKeyEncrypted is a base64-encoded, KMS-wrapped cipher key.
	CipherKeyEncrypted string
	// KMSKeyURI is the gocloud.dev secrets URI used to unwrap CipherKeyEncrypted.
	KMSKeyURI string
	// NumericCipherKey is the numeric codec key as a raw string.
	NumericCipherKey string
}

// KeyResolverService implements KeySource.
//
// Resolution order for the string cipher key:
//  1. CipherKey, when set.
//  2. CipherKeyEncrypted + KMSKeyURI, unwrapped via gocloud.dev/secrets.
//  3. SecretKeyBase.
//
// An empty result is legal (if insecure): the token codec derives its key by
// digest and never assumes a non-empty secret. A configured KMS source that
// fails to unwrap is a hard error — a misconfigured secrets collaborator must
// not silently degrade to the fallback.
//
// The numeric key is parsed as a non-negative integer; absent, unparseable, or
// negative values resolve to zero, which keeps environments without secrets
// provisioned functional but reduces the numeric codec to bit reversal only.
// That condition is logged as a warning so it is visible at startup.
//
// Resolve is called once per process by the container's initialize-once cell;
// the resolved value is immutable for the process lifetime.
type KeyResolverService struct {
	opts   KeyResolverOptions
	logger *slog.Logger
}

// NewKeyResolver creates a key resolver with the provided options.
func NewKeyResolver(opts KeyResolverOptions, logger *slog.Logger) *KeyResolverService {
	return &KeyResolverService{opts: opts, logger: logger}
}

// Resolve produces the process-wide key material.
func (r *KeyResolverService) Resolve(ctx context.Context) (codecDomain.KeyMaterial, error) {
	cipherKey, err := r.resolveCipherKey(ctx)
	if err != nil {
		return codecDomain.KeyMaterial{}, err
	}

	if cipherKey == "" {
		r.logger.Warn("cipher key is empty, string tokens are trivially decodable")
	}

	keyMaterial := codecDomain.KeyMaterial{
		CipherKey:  cipherKey,
		NumericKey: r.resolveNumericKey(),
	}

	if keyMaterial.IsNumericKeyWeak() {
		r.logger.Warn("numeric cipher key is zero, numeric obfuscation reduces to bit reversal")
	}

	return keyMaterial, nil
}

// resolveCipherKey picks the string cipher key from the configured sources.
func (r *KeyResolverService) resolveCipherKey(ctx context.Context) (string, error) {
	if r.opts.CipherKey != "" {
		return r.opts.CipherKey, nil
	}

	if r.opts.CipherKeyEncrypted != "" && r.opts.KMSKeyURI != "" {
		unwrapped, err := r.unwrapCipherKey(ctx)
		if err != nil {
			return "", err
		}
		return unwrapped, nil
	}

	return r.opts.SecretKeyBase, nil
}

// unwrapCipherKey decrypts the KMS-wrapped cipher key.
// Supports gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://.
func (r *KeyResolverService) unwrapCipherKey(ctx context.Context) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(r.opts.CipherKeyEncrypted)
	if err != nil {
		return "", apperrors.Wrap(
			apperrors.ErrInvalidInput,
			"CIPHER_KEY_ENCRYPTED is not valid base64",
		)
	}

	keeper, err := secrets.OpenKeeper(ctx, r.opts.KMSKeyURI)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrUnavailable, fmt.Sprintf("failed to open KMS keeper: %v", err))
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			r.logger.Error("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrUnavailable, fmt.Sprintf("failed to unwrap cipher key: %v", err))
	}

	return string(plaintext), nil
}

// resolveNumericKey parses the numeric key, falling back to zero.
func (r *KeyResolverService) resolveNumericKey() int64 {
	raw := strings.TrimSpace(r.opts.NumericCipherKey)
	if raw == "" {
		return 0
	}

	key, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || key < 0 {
		r.logger.Warn(
			"numeric cipher key is not a non-negative integer, falling back to zero",
			slog.String("value", raw),
		)
		return 0
	}

	return key
}
