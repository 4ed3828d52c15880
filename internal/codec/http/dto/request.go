// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/publicid/internal/validation"
)

// EncodeTokenRequest contains the parameters for obfuscating an identifier into a token.
type EncodeTokenRequest struct {
	ID      string `json:"id"`
	Padding *bool  `json:"padding"` // Optional; defaults to true (padded base64)
}

// Validate checks if the encode token request is valid.
func (r *EncodeTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// WithPadding returns the padding flag, defaulting to true when unset.
func (r *EncodeTokenRequest) WithPadding() bool {
	if r.Padding == nil {
		return true
	}
	return *r.Padding
}

// DecodeTokenRequest contains the parameters for decoding an obfuscated token.
//
// The token is deliberately not validated for base64 shape: malformed tokens
// are an expected input and must surface as not-found, not as a validation
// failure.
type DecodeTokenRequest struct {
	Token string `json:"token"`
}

// Validate checks if the decode token request is valid.
func (r *DecodeTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			validation.Required,
		),
	)
}

// EncodeNumericRequest contains the parameters for obfuscating a numeric identifier.
type EncodeNumericRequest struct {
	ID *int64 `json:"id"`
}

// Validate checks if the encode numeric request is valid.
// Range checking belongs to the codec so that out-of-domain ids surface
// through the domain error path.
func (r *EncodeNumericRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID,
			validation.NotNil,
		),
	)
}

// DecodeNumericRequest contains the parameters for reversing a numeric obfuscation.
type DecodeNumericRequest struct {
	ObfuscatedID *int64 `json:"obfuscated_id"`
}

// Validate checks if the decode numeric request is valid.
func (r *DecodeNumericRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ObfuscatedID,
			validation.NotNil,
		),
	)
}
