package service

import (
	"math/bits"

	codecDomain "github.com/allisson/publicid/internal/codec/domain"
	apperrors "github.com/allisson/publicid/internal/errors"
)

// NumericPermutation implements NumericCodec as a bijection on the 30-bit
// integer domain: XOR with the key, then reverse the bit order.
//
// XOR alone is a bijection but preserves positional structure — adjacent
// inputs still look adjacent in the high-order bits, leaking monotonic trends.
// Reversing the bit order after the XOR scrambles the significance ordering so
// sequential ids do not produce sequential-looking outputs. Both steps are
// self-inverse bijections on a fixed-width value, so the composite is
// perfectly invertible by applying them in the opposite order.
//
// Unlike the token codec there is no ciphertext expansion: the output is
// another integer of the same width, so obfuscated ids keep looking like
// ordinary numbers.
type NumericPermutation struct {
	key uint32
}

// NewNumericPermutation creates a numeric codec keyed by the low 30 bits of
// the key material's numeric key.
func NewNumericPermutation(keyMaterial codecDomain.KeyMaterial) *NumericPermutation {
	return &NumericPermutation{
		key: uint32(keyMaterial.NumericKey) & codecDomain.MaxNumericID,
	}
}

// Encode maps an id in [0, MaxNumericID] to its obfuscated form.
//
// Inputs outside the domain are rejected: truncating would alias onto another
// id's obfuscated form and break the bijection, and an id above the reserved
// bit width indicates a programming error upstream.
func (p *NumericPermutation) Encode(id int64) (int64, error) {
	if id < 0 || id > codecDomain.MaxNumericID {
		return 0, apperrors.Wrapf(
			codecDomain.ErrIDOutOfRange,
			"id %d is outside [0, %d]",
			id, int64(codecDomain.MaxNumericID),
		)
	}

	// XOR first, then reverse. Decode mirrors this in the opposite order.
	return int64(reverseBits(uint32(id) ^ p.key)), nil
}

// Decode inverts Encode: reverse the bit order, then XOR with the same key.
// Inputs above the domain ceiling are truncated to the low 30 bits.
func (p *NumericPermutation) Decode(obfuscatedID int64) int64 {
	x := uint32(obfuscatedID) & codecDomain.MaxNumericID
	return int64(reverseBits(x) ^ p.key)
}

// reverseBits reverses a value's bit order within the 30-bit domain width.
func reverseBits(x uint32) uint32 {
	return bits.Reverse32(x) >> (32 - codecDomain.NumericBits)
}
