package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/publicid/internal/codec/domain"
	"github.com/allisson/publicid/internal/codec/service"
)

// recordingMetrics captures business metric calls for assertions.
type recordingMetrics struct {
	mu         sync.Mutex
	operations []recordedOperation
	durations  []recordedOperation
}

type recordedOperation struct {
	component string
	operation string
	status    string
}

func (r *recordingMetrics) RecordOperation(_ context.Context, component, operation, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations = append(r.operations, recordedOperation{component, operation, status})
}

func (r *recordingMetrics) RecordDuration(
	_ context.Context,
	component, operation string,
	_ time.Duration,
	status string,
) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durations = append(r.durations, recordedOperation{component, operation, status})
}

func newDecoratedUseCase(t *testing.T) (CodecUseCase, *recordingMetrics) {
	t.Helper()

	keyMaterial := domain.KeyMaterial{CipherKey: "decorator-test-key", NumericKey: 42}
	stringCodec, err := service.NewAESTokenCodec(keyMaterial)
	require.NoError(t, err)
	numericCodec := service.NewNumericPermutation(keyMaterial)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	recorder := &recordingMetrics{}
	useCase := NewCodecUseCaseWithMetrics(
		NewCodecUseCase(stringCodec, numericCodec, logger),
		recorder,
	)
	return useCase, recorder
}

func TestCodecUseCaseWithMetrics_EncodeToken(t *testing.T) {
	useCase, recorder := newDecoratedUseCase(t)

	token := useCase.EncodeToken(context.Background(), "77", true)
	assert.NotEmpty(t, token)

	require.Len(t, recorder.operations, 1)
	assert.Equal(t, recordedOperation{"codec", "token_encode", "success"}, recorder.operations[0])
	require.Len(t, recorder.durations, 1)
	assert.Equal(t, recordedOperation{"codec", "token_encode", "success"}, recorder.durations[0])
}

func TestCodecUseCaseWithMetrics_DecodeToken(t *testing.T) {
	t.Run("Success_RecordsSuccessStatus", func(t *testing.T) {
		useCase, recorder := newDecoratedUseCase(t)
		token := useCase.EncodeToken(context.Background(), "77", true)
		recorder.operations = nil
		recorder.durations = nil

		id, err := useCase.DecodeToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, int64(77), id)

		require.Len(t, recorder.operations, 1)
		assert.Equal(t, recordedOperation{"codec", "token_decode", "success"}, recorder.operations[0])
	})

	t.Run("Error_RecordsErrorStatus", func(t *testing.T) {
		useCase, recorder := newDecoratedUseCase(t)

		_, err := useCase.DecodeToken(context.Background(), "!!not-a-token!!")
		require.Error(t, err)

		require.Len(t, recorder.operations, 1)
		assert.Equal(t, recordedOperation{"codec", "token_decode", "error"}, recorder.operations[0])
		require.Len(t, recorder.durations, 1)
		assert.Equal(t, recordedOperation{"codec", "token_decode", "error"}, recorder.durations[0])
	})
}

func TestCodecUseCaseWithMetrics_EncodeNumeric(t *testing.T) {
	t.Run("Success_RecordsSuccessStatus", func(t *testing.T) {
		useCase, recorder := newDecoratedUseCase(t)

		_, err := useCase.EncodeNumeric(context.Background(), 1000)
		require.NoError(t, err)

		require.Len(t, recorder.operations, 1)
		assert.Equal(t, recordedOperation{"codec", "numeric_encode", "success"}, recorder.operations[0])
	})

	t.Run("Error_RecordsErrorStatus", func(t *testing.T) {
		useCase, recorder := newDecoratedUseCase(t)

		_, err := useCase.EncodeNumeric(context.Background(), -5)
		require.Error(t, err)

		require.Len(t, recorder.operations, 1)
		assert.Equal(t, recordedOperation{"codec", "numeric_encode", "error"}, recorder.operations[0])
	})
}

func TestCodecUseCaseWithMetrics_DecodeNumeric(t *testing.T) {
	useCase, recorder := newDecoratedUseCase(t)

	obfuscatedID, err := useCase.EncodeNumeric(context.Background(), 1000)
	require.NoError(t, err)
	recorder.operations = nil
	recorder.durations = nil

	id := useCase.DecodeNumeric(context.Background(), obfuscatedID)
	assert.Equal(t, int64(1000), id)

	require.Len(t, recorder.operations, 1)
	assert.Equal(t, recordedOperation{"codec", "numeric_decode", "success"}, recorder.operations[0])
}
