package dto

// EncodeTokenResponse contains the obfuscated token for an identifier.
type EncodeTokenResponse struct {
	Token string `json:"token"`
}

// DecodeTokenResponse contains the identifier recovered from a token.
type DecodeTokenResponse struct {
	ID int64 `json:"id"`
}

// EncodeNumericResponse contains the obfuscated form of a numeric identifier.
type EncodeNumericResponse struct {
	ObfuscatedID int64 `json:"obfuscated_id"`
}

// DecodeNumericResponse contains the identifier recovered from its obfuscated form.
type DecodeNumericResponse struct {
	ID int64 `json:"id"`
}
