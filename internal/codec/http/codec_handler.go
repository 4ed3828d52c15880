// Package http provides HTTP handlers for identifier obfuscation operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/publicid/internal/codec/http/dto"
	codecUseCase "github.com/allisson/publicid/internal/codec/usecase"
	"github.com/allisson/publicid/internal/httputil"
	customValidation "github.com/allisson/publicid/internal/validation"
)

// CodecHandler handles HTTP requests for encode and decode operations.
type CodecHandler struct {
	useCase codecUseCase.CodecUseCase
	logger  *slog.Logger
}

// NewCodecHandler creates a new codec handler with required dependencies.
func NewCodecHandler(useCase codecUseCase.CodecUseCase, logger *slog.Logger) *CodecHandler {
	return &CodecHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// EncodeTokenHandler obfuscates an identifier into a URL-safe token.
// POST /v1/codec/tokens/encode
// Returns 200 OK with the opaque token.
func (h *CodecHandler) EncodeTokenHandler(c *gin.Context) {
	var req dto.EncodeTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	token := h.useCase.EncodeToken(c.Request.Context(), req.ID, req.WithPadding())

	c.JSON(http.StatusOK, dto.EncodeTokenResponse{Token: token})
}

// DecodeTokenHandler recovers the identifier behind a previously issued token.
// POST /v1/codec/tokens/decode
// Returns 200 OK with the identifier, or 404 Not Found when the token is
// undecodable. Malformed tokens are routine client input, not server faults.
func (h *CodecHandler) DecodeTokenHandler(c *gin.Context) {
	var req dto.DecodeTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	id, err := h.useCase.DecodeToken(c.Request.Context(), req.Token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DecodeTokenResponse{ID: id})
}

// EncodeNumericHandler obfuscates a numeric identifier inside its 30-bit domain.
// POST /v1/codec/numeric/encode
// Returns 200 OK with the obfuscated id, or 422 Unprocessable Entity when the
// id falls outside the supported domain.
func (h *CodecHandler) EncodeNumericHandler(c *gin.Context) {
	var req dto.EncodeNumericRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	obfuscatedID, err := h.useCase.EncodeNumeric(c.Request.Context(), *req.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.EncodeNumericResponse{ObfuscatedID: obfuscatedID})
}

// DecodeNumericHandler reverses a numeric obfuscation.
// POST /v1/codec/numeric/decode
// Returns 200 OK with the identifier; this operation cannot fail.
func (h *CodecHandler) DecodeNumericHandler(c *gin.Context) {
	var req dto.DecodeNumericRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	id := h.useCase.DecodeNumeric(c.Request.Context(), *req.ObfuscatedID)

	c.JSON(http.StatusOK, dto.DecodeNumericResponse{ID: id})
}
