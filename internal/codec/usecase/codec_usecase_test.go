package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/publicid/internal/codec/domain"
	"github.com/allisson/publicid/internal/codec/service"
	"github.com/allisson/publicid/internal/errors"
)

func newTestUseCase(t *testing.T) CodecUseCase {
	t.Helper()

	keyMaterial := domain.KeyMaterial{CipherKey: "test-cipher-key", NumericKey: 123456789}
	stringCodec, err := service.NewAESTokenCodec(keyMaterial)
	require.NoError(t, err)
	numericCodec := service.NewNumericPermutation(keyMaterial)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewCodecUseCase(stringCodec, numericCodec, logger)
}

func TestCodecUseCase_EncodeToken(t *testing.T) {
	useCase := newTestUseCase(t)
	ctx := context.Background()

	t.Run("Success_RoundTrip", func(t *testing.T) {
		token := useCase.EncodeToken(ctx, "12345", true)
		require.NotEmpty(t, token)

		id, err := useCase.DecodeToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, int64(12345), id)
	})

	t.Run("Success_Deterministic", func(t *testing.T) {
		first := useCase.EncodeToken(ctx, "42", true)
		second := useCase.EncodeToken(ctx, "42", true)
		assert.Equal(t, first, second)
	})

	t.Run("Success_PaddingFlagControlsTrailingEquals", func(t *testing.T) {
		padded := useCase.EncodeToken(ctx, "42", true)
		unpadded := useCase.EncodeToken(ctx, "42", false)
		assert.NotContains(t, unpadded, "=")

		id, err := useCase.DecodeToken(ctx, padded)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)

		id, err = useCase.DecodeToken(ctx, unpadded)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})
}

func TestCodecUseCase_DecodeToken(t *testing.T) {
	useCase := newTestUseCase(t)
	ctx := context.Background()

	t.Run("Error_MalformedTokenIsNotFound", func(t *testing.T) {
		id, err := useCase.DecodeToken(ctx, "not!!valid@@base64")

		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrNotFound)
		assert.ErrorIs(t, err, domain.ErrUndecodableToken)
		assert.Equal(t, int64(0), id)
	})

	t.Run("Error_EmptyToken", func(t *testing.T) {
		_, err := useCase.DecodeToken(ctx, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})

	t.Run("Error_NeverPanicsOnGarbage", func(t *testing.T) {
		garbage := []string{
			"a", "==", "AAAA", "dG9vc2hvcnQ", "%%%%", "\x00\x01\x02",
		}
		for _, token := range garbage {
			assert.NotPanics(t, func() {
				_, _ = useCase.DecodeToken(ctx, token) //nolint:errcheck
			})
		}
	})
}

func TestCodecUseCase_EncodeNumeric(t *testing.T) {
	useCase := newTestUseCase(t)
	ctx := context.Background()

	t.Run("Success_RoundTrip", func(t *testing.T) {
		obfuscatedID, err := useCase.EncodeNumeric(ctx, 98765)
		require.NoError(t, err)

		assert.Equal(t, int64(98765), useCase.DecodeNumeric(ctx, obfuscatedID))
	})

	t.Run("Error_NegativeID", func(t *testing.T) {
		_, err := useCase.EncodeNumeric(ctx, -1)

		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
		assert.ErrorIs(t, err, domain.ErrIDOutOfRange)
	})

	t.Run("Error_IDAboveDomain", func(t *testing.T) {
		_, err := useCase.EncodeNumeric(ctx, domain.MaxNumericID+1)

		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})
}

func TestCodecUseCase_DecodeNumeric(t *testing.T) {
	useCase := newTestUseCase(t)
	ctx := context.Background()

	t.Run("Success_NeverFails", func(t *testing.T) {
		// Out-of-domain input is truncated to the low 30 bits, not rejected.
		id := useCase.DecodeNumeric(ctx, int64(1)<<40|12345)
		truncated := useCase.DecodeNumeric(ctx, 12345)
		assert.Equal(t, truncated, id)
	})
}
