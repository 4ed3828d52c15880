package domain

// Numeric codec domain parameters.
//
// The numeric codec is a bijective permutation over a fixed 30-bit integer
// domain. The width is part of the external contract: obfuscated ids are
// embedded in permanent links, so changing it would remap every issued id.
const (
	// NumericBits is the bit width of the numeric codec domain.
	NumericBits = 30

	// MaxNumericID is the largest valid input and output of the numeric codec.
	MaxNumericID = 1<<NumericBits - 1
)
