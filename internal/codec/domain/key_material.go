// Package domain defines the codec domain model: key material, the numeric
// codec domain constants, and codec error values.
package domain

// KeyMaterial holds the resolved secrets consumed by both codecs.
//
// The values are resolved once per process and never change afterwards, so a
// single process always encodes and decodes consistently even if the external
// configuration store is mutated concurrently. Rotating a key requires a
// restart — and remaps every previously issued id, which is why there is no
// rotation protocol here.
//
// Fields:
//   - CipherKey: arbitrary-length secret for the string token codec. A fixed
//     32-byte cipher key is derived from it by digest. Empty is legal (if
//     insecure); the codec never assumes non-empty.
//   - NumericKey: non-negative integer secret for the numeric codec. Only the
//     low 30 bits participate in the transform. Zero is legal but collapses
//     the numeric codec to the bit-reversal-only transform.
type KeyMaterial struct {
	CipherKey  string
	NumericKey int64
}

// IsNumericKeyWeak reports whether the effective numeric key is zero,
// i.e. contributes nothing to obfuscation.
func (k KeyMaterial) IsNumericKeyWeak() bool {
	return k.NumericKey&MaxNumericID == 0
}
