package commands

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	codecDomain "github.com/allisson/publicid/internal/codec/domain"
)

// RunGenerateKey generates fresh key material and prints it as environment
// variables ready for a .env file.
//
// Output format:
//   - CIPHER_KEY: 32 random bytes, base64-encoded
//   - NUMERIC_CIPHER_KEY: random integer within the numeric codec domain
func RunGenerateKey(io IOTuple) error {
	// Generate a cryptographically secure 32-byte cipher key
	cipherKey := make([]byte, 32)
	if _, err := rand.Read(cipherKey); err != nil {
		return fmt.Errorf("failed to generate cipher key: %w", err)
	}

	// Generate a random numeric key inside the codec domain
	var raw [8]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return fmt.Errorf("failed to generate numeric cipher key: %w", err)
	}
	numericKey := int64(binary.BigEndian.Uint64(raw[:]) & codecDomain.MaxNumericID)

	fmt.Fprintln(io.Writer, "# Key Material Configuration")
	fmt.Fprintln(io.Writer, "# Copy these environment variables to your .env file or secrets manager")
	fmt.Fprintln(io.Writer)
	fmt.Fprintf(io.Writer, "CIPHER_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(cipherKey))
	fmt.Fprintf(io.Writer, "NUMERIC_CIPHER_KEY=\"%d\"\n", numericKey)

	// Zero out the cipher key from memory
	for i := range cipherKey {
		cipherKey[i] = 0
	}

	return nil
}
