package app

import (
	"context"
	"testing"
	"time"

	"github.com/allisson/publicid/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:              "localhost",
		ServerPort:              8080,
		LogLevel:                "error",
		CipherKey:               "container-test-key",
		NumericCipherKey:        "123456789",
		RateLimitEnabled:        false,
		RateLimitRequestsPerSec: 50,
		RateLimitBurst:          100,
		MetricsEnabled:          false,
		MetricsNamespace:        "publicid",
		MetricsPort:             8081,
		ShutdownTimeout:         30 * time.Second,
	}
}

// TestNewContainer verifies that a new container can be created with a valid configuration.
func TestNewContainer(t *testing.T) {
	cfg := testConfig()

	container := NewContainer(cfg)

	if container == nil {
		t.Fatal("expected non-nil container")
	}

	if container.Config() != cfg {
		t.Error("container config does not match provided config")
	}
}

// TestContainerLogger verifies that the logger can be retrieved from the container.
func TestContainerLogger(t *testing.T) {
	container := NewContainer(testConfig())

	logger := container.Logger()
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}

	// Calling Logger() again should return the same instance (singleton)
	logger2 := container.Logger()
	if logger != logger2 {
		t.Error("expected same logger instance on multiple calls")
	}
}

// TestContainerKeyMaterial verifies that key material resolves once and is memoized.
func TestContainerKeyMaterial(t *testing.T) {
	container := NewContainer(testConfig())
	ctx := context.Background()

	keyMaterial, err := container.KeyMaterial(ctx)
	if err != nil {
		t.Fatalf("unexpected error resolving key material: %v", err)
	}

	if keyMaterial.CipherKey != "container-test-key" {
		t.Errorf("unexpected cipher key: %q", keyMaterial.CipherKey)
	}
	if keyMaterial.NumericKey != 123456789 {
		t.Errorf("unexpected numeric key: %d", keyMaterial.NumericKey)
	}

	// Second call returns the memoized value
	keyMaterial2, err := container.KeyMaterial(ctx)
	if err != nil {
		t.Fatalf("unexpected error on second resolve: %v", err)
	}
	if keyMaterial != keyMaterial2 {
		t.Error("expected identical key material on multiple calls")
	}
}

// TestContainerKeyMaterialError verifies that a failing KMS source is a hard error.
func TestContainerKeyMaterialError(t *testing.T) {
	cfg := testConfig()
	cfg.CipherKey = ""
	cfg.CipherKeyEncrypted = "bm90LXJlYWxseS13cmFwcGVk"
	cfg.KMSKeyURI = "unknownscheme://key"

	container := NewContainer(cfg)

	if _, err := container.KeyMaterial(context.Background()); err == nil {
		t.Fatal("expected error for unresolvable KMS key")
	}

	// The error is sticky: later calls fail the same way
	if _, err := container.KeyMaterial(context.Background()); err == nil {
		t.Fatal("expected memoized error on second call")
	}
}

// TestContainerCodecUseCase verifies that the use case assembles and round-trips.
func TestContainerCodecUseCase(t *testing.T) {
	container := NewContainer(testConfig())
	ctx := context.Background()

	useCase, err := container.CodecUseCase(ctx)
	if err != nil {
		t.Fatalf("unexpected error building use case: %v", err)
	}

	token := useCase.EncodeToken(ctx, "12345", true)
	id, err := useCase.DecodeToken(ctx, token)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if id != 12345 {
		t.Errorf("expected 12345, got %d", id)
	}

	obfuscatedID, err := useCase.EncodeNumeric(ctx, 777)
	if err != nil {
		t.Fatalf("unexpected numeric encode error: %v", err)
	}
	if got := useCase.DecodeNumeric(ctx, obfuscatedID); got != 777 {
		t.Errorf("expected 777, got %d", got)
	}
}

// TestContainerMetricsDisabled verifies the no-op wiring when metrics are off.
func TestContainerMetricsDisabled(t *testing.T) {
	container := NewContainer(testConfig())

	provider, err := container.MetricsProvider()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider != nil {
		t.Error("expected nil metrics provider when disabled")
	}

	businessMetrics, err := container.BusinessMetrics()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if businessMetrics == nil {
		t.Fatal("expected non-nil business metrics (no-op) when disabled")
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if metricsServer != nil {
		t.Error("expected nil metrics server when disabled")
	}
}

// TestContainerMetricsEnabled verifies the full metrics wiring.
func TestContainerMetricsEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = true

	container := NewContainer(cfg)

	provider, err := container.MetricsProvider()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider == nil {
		t.Fatal("expected non-nil metrics provider when enabled")
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if metricsServer == nil {
		t.Fatal("expected non-nil metrics server when enabled")
	}
}

// TestContainerHTTPServer verifies that the HTTP server assembles.
func TestContainerHTTPServer(t *testing.T) {
	container := NewContainer(testConfig())

	server, err := container.HTTPServer(context.Background())
	if err != nil {
		t.Fatalf("unexpected error building http server: %v", err)
	}
	if server == nil {
		t.Fatal("expected non-nil http server")
	}
}

// TestContainerShutdown verifies that shutdown succeeds for initialized components.
func TestContainerShutdown(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = true

	container := NewContainer(cfg)
	ctx := context.Background()

	if _, err := container.HTTPServer(ctx); err != nil {
		t.Fatalf("unexpected error building http server: %v", err)
	}
	if _, err := container.MetricsServer(); err != nil {
		t.Fatalf("unexpected error building metrics server: %v", err)
	}

	if err := container.Shutdown(ctx); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}
}
