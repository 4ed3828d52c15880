package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/allisson/publicid/internal/app"
	codecUseCase "github.com/allisson/publicid/internal/codec/usecase"
	"github.com/allisson/publicid/internal/config"
)

// buildUseCase loads configuration and assembles the codec use case.
// The returned container must be shut down by the caller.
func buildUseCase(ctx context.Context) (*app.Container, codecUseCase.CodecUseCase, error) {
	cfg := config.Load()
	container := app.NewContainer(cfg)

	useCase, err := container.CodecUseCase(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize codec: %w", err)
	}

	return container, useCase, nil
}

// writeResult prints the command result in text or json format.
func writeResult(io IOTuple, format string, textLine string, jsonPayload interface{}) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(io.Writer)
		return encoder.Encode(jsonPayload)
	case "text", "":
		_, err := fmt.Fprintln(io.Writer, textLine)
		return err
	default:
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
}

// RunEncode obfuscates an identifier into a URL-safe token and prints it.
func RunEncode(ctx context.Context, id string, padding bool, format string, io IOTuple) error {
	if id == "" {
		return fmt.Errorf("--id is required")
	}

	container, useCase, err := buildUseCase(ctx)
	if err != nil {
		return err
	}
	defer closeContainer(container, container.Logger())

	token := useCase.EncodeToken(ctx, id, padding)

	return writeResult(io, format, token, map[string]string{"token": token})
}

// RunDecode recovers the identifier behind a token and prints it.
// An undecodable token is reported as an error.
func RunDecode(ctx context.Context, token string, format string, io IOTuple) error {
	if token == "" {
		return fmt.Errorf("--token is required")
	}

	container, useCase, err := buildUseCase(ctx)
	if err != nil {
		return err
	}
	defer closeContainer(container, container.Logger())

	id, err := useCase.DecodeToken(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to decode token: %w", err)
	}

	return writeResult(io, format, fmt.Sprintf("%d", id), map[string]int64{"id": id})
}

// RunEncodeNumeric obfuscates a numeric identifier and prints the result.
func RunEncodeNumeric(ctx context.Context, id int64, format string, io IOTuple) error {
	container, useCase, err := buildUseCase(ctx)
	if err != nil {
		return err
	}
	defer closeContainer(container, container.Logger())

	obfuscatedID, err := useCase.EncodeNumeric(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to encode numeric id: %w", err)
	}

	return writeResult(
		io,
		format,
		fmt.Sprintf("%d", obfuscatedID),
		map[string]int64{"obfuscated_id": obfuscatedID},
	)
}

// RunDecodeNumeric reverses a numeric obfuscation and prints the result.
func RunDecodeNumeric(ctx context.Context, obfuscatedID int64, format string, io IOTuple) error {
	container, useCase, err := buildUseCase(ctx)
	if err != nil {
		return err
	}
	defer closeContainer(container, container.Logger())

	id := useCase.DecodeNumeric(ctx, obfuscatedID)

	return writeResult(io, format, fmt.Sprintf("%d", id), map[string]int64{"id": id})
}
