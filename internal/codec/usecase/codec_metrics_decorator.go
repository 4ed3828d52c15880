package usecase

import (
	"context"
	"time"

	"github.com/allisson/publicid/internal/metrics"
)

// codecUseCaseWithMetrics decorates CodecUseCase with metrics instrumentation.
type codecUseCaseWithMetrics struct {
	next    CodecUseCase
	metrics metrics.BusinessMetrics
}

// NewCodecUseCaseWithMetrics wraps a CodecUseCase with metrics recording.
func NewCodecUseCaseWithMetrics(useCase CodecUseCase, m metrics.BusinessMetrics) CodecUseCase {
	return &codecUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// EncodeToken records metrics for token encode operations.
func (c *codecUseCaseWithMetrics) EncodeToken(ctx context.Context, id string, padding bool) string {
	start := time.Now()
	token := c.next.EncodeToken(ctx, id, padding)

	c.metrics.RecordOperation(ctx, "codec", "token_encode", "success")
	c.metrics.RecordDuration(ctx, "codec", "token_encode", time.Since(start), "success")

	return token
}

// DecodeToken records metrics for token decode operations.
func (c *codecUseCaseWithMetrics) DecodeToken(ctx context.Context, token string) (int64, error) {
	start := time.Now()
	id, err := c.next.DecodeToken(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "codec", "token_decode", status)
	c.metrics.RecordDuration(ctx, "codec", "token_decode", time.Since(start), status)

	return id, err
}

// EncodeNumeric records metrics for numeric encode operations.
func (c *codecUseCaseWithMetrics) EncodeNumeric(ctx context.Context, id int64) (int64, error) {
	start := time.Now()
	obfuscatedID, err := c.next.EncodeNumeric(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "codec", "numeric_encode", status)
	c.metrics.RecordDuration(ctx, "codec", "numeric_encode", time.Since(start), status)

	return obfuscatedID, err
}

// DecodeNumeric records metrics for numeric decode operations.
func (c *codecUseCaseWithMetrics) DecodeNumeric(ctx context.Context, obfuscatedID int64) int64 {
	start := time.Now()
	id := c.next.DecodeNumeric(ctx, obfuscatedID)

	c.metrics.RecordOperation(ctx, "codec", "numeric_decode", "success")
	c.metrics.RecordDuration(ctx, "codec", "numeric_decode", time.Since(start), "success")

	return id
}
