package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	codecDomain "github.com/allisson/publicid/internal/codec/domain"
	apperrors "github.com/allisson/publicid/internal/errors"
)

// AESTokenCodec implements StringCodec using AES-256-CBC over the UTF-8 bytes
// of the identifier's text rendering.
//
// The cipher key is a SHA-256 digest of the configured secret, so secrets of
// any length (including empty) produce a valid 32-byte AES key.
//
// INTENTIONAL: the IV is fixed (all zeros) instead of randomly generated per
// encryption. This deviates from conventional CBC guidance on purpose — tokens
// are embedded in permanent links, so the same id must always produce the same
// byte-identical token. Randomizing the IV would break that determinism. Do
// not "fix" this. The tokens are obfuscated identifiers, not encrypted payload
// data; unlinkability from the internal sequence is the only goal.
//
// Thread safety: the codec is stateless after construction and safe for
// concurrent use.
type AESTokenCodec struct {
	block cipher.Block
}

// NewAESTokenCodec creates a token codec keyed by a digest of the key
// material's cipher key.
func NewAESTokenCodec(keyMaterial codecDomain.KeyMaterial) (*AESTokenCodec, error) {
	digest := sha256.Sum256([]byte(keyMaterial.CipherKey))

	block, err := aes.NewCipher(digest[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	return &AESTokenCodec{block: block}, nil
}

// Encode obfuscates an identifier into a URL-safe token.
//
// The plaintext is PKCS#7-padded, encrypted block by block in CBC mode with
// the fixed zero IV, and the ciphertext is encoded with the URL-safe base64
// alphabet. Encoding never fails and has no side effects.
func (c *AESTokenCodec) Encode(id string, padding bool) string {
	plaintext := pkcs7Pad([]byte(id), aes.BlockSize)

	ciphertext := make([]byte, len(plaintext))
	iv := make([]byte, aes.BlockSize) // fixed zero IV, see type comment
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(ciphertext, plaintext)

	if padding {
		return base64.URLEncoding.EncodeToString(ciphertext)
	}
	return base64.RawURLEncoding.EncodeToString(ciphertext)
}

// EncodeInt64 encodes the decimal rendering of a numeric identifier.
func (c *AESTokenCodec) EncodeInt64(id int64, padding bool) string {
	return c.Encode(strconv.FormatInt(id, 10), padding)
}

// Decode reverses Encode and parses the recovered plaintext as a decimal
// integer.
//
// Both padded and unpadded token forms are accepted. Malformed input — an
// invalid base64 string, a ciphertext that is not a whole number of blocks, or
// invalid PKCS#7 padding after decryption (tampered, truncated, or produced
// under a different key) — yields ErrUndecodableToken with the underlying
// reason. Decoding never panics on untrusted input.
//
// The integer parse is best-effort: an optional sign followed by leading
// digits; a plaintext with no leading digits parses to 0. This mirrors the
// callers' contract of encoding decimal-rendered primary keys.
func (c *AESTokenCodec) Decode(token string) (int64, error) {
	ciphertext, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return 0, apperrors.Wrap(codecDomain.ErrUndecodableToken, "invalid base64")
	}

	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return 0, apperrors.Wrapf(
			codecDomain.ErrUndecodableToken,
			"ciphertext length %d is not a positive multiple of the block size",
			len(ciphertext),
		)
	}

	plaintext := make([]byte, len(ciphertext))
	iv := make([]byte, aes.BlockSize)
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return 0, apperrors.Wrap(codecDomain.ErrUndecodableToken, "invalid padding")
	}

	return leadingInt(string(unpadded)), nil
}

// pkcs7Pad appends PKCS#7 padding so the result is a whole number of blocks.
// An input that is already block-aligned gains a full block of padding.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

// pkcs7Unpad strips and verifies PKCS#7 padding.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, fmt.Errorf("invalid padding byte %d", padLen)
	}

	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}

	return data[:len(data)-padLen], nil
}

// leadingInt parses an optional sign followed by leading decimal digits,
// ignoring everything after the first non-digit. No digits means 0; the parse
// itself cannot fail.
func leadingInt(s string) int64 {
	i := 0
	negative := false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		negative = s[i] == '-'
		i++
	}

	var value int64
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			break
		}
		value = value*10 + int64(s[i]-'0')
	}

	if negative {
		return -value
	}
	return value
}
