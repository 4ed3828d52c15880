// Package app provides the dependency injection container for assembling application components.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	codecDomain "github.com/allisson/publicid/internal/codec/domain"
	codecHTTP "github.com/allisson/publicid/internal/codec/http"
	codecService "github.com/allisson/publicid/internal/codec/service"
	codecUseCase "github.com/allisson/publicid/internal/codec/usecase"
	"github.com/allisson/publicid/internal/config"
	"github.com/allisson/publicid/internal/http"
	"github.com/allisson/publicid/internal/metrics"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
//
// Key material is resolved exactly once per process: KeyMaterial() is the
// memoizing cell, and every codec built from it sees the same immutable value.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Key material
	keyMaterial codecDomain.KeyMaterial

	// Codecs
	stringCodec  codecService.StringCodec
	numericCodec codecService.NumericCodec

	// Use Cases
	codecUseCase codecUseCase.CodecUseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	keyMaterialInit     sync.Once
	stringCodecInit     sync.Once
	numericCodecInit    sync.Once
	codecUseCaseInit    sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// MetricsProvider returns the metrics provider instance.
// Returns nil when metrics collection is disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics instance.
// Returns a no-op implementation when metrics collection is disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// KeyMaterial returns the resolved key material.
// Resolution happens exactly once; later calls return the memoized value.
func (c *Container) KeyMaterial(ctx context.Context) (codecDomain.KeyMaterial, error) {
	var err error
	c.keyMaterialInit.Do(func() {
		c.keyMaterial, err = c.initKeyMaterial(ctx)
		if err != nil {
			c.initErrors["keyMaterial"] = err
		}
	})
	if err != nil {
		return codecDomain.KeyMaterial{}, err
	}
	if storedErr, exists := c.initErrors["keyMaterial"]; exists {
		return codecDomain.KeyMaterial{}, storedErr
	}
	return c.keyMaterial, nil
}

// StringCodec returns the string token codec instance.
func (c *Container) StringCodec(ctx context.Context) (codecService.StringCodec, error) {
	var err error
	c.stringCodecInit.Do(func() {
		c.stringCodec, err = c.initStringCodec(ctx)
		if err != nil {
			c.initErrors["stringCodec"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["stringCodec"]; exists {
		return nil, storedErr
	}
	return c.stringCodec, nil
}

// NumericCodec returns the numeric codec instance.
func (c *Container) NumericCodec(ctx context.Context) (codecService.NumericCodec, error) {
	var err error
	c.numericCodecInit.Do(func() {
		c.numericCodec, err = c.initNumericCodec(ctx)
		if err != nil {
			c.initErrors["numericCodec"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["numericCodec"]; exists {
		return nil, storedErr
	}
	return c.numericCodec, nil
}

// CodecUseCase returns the codec use case instance.
func (c *Container) CodecUseCase(ctx context.Context) (codecUseCase.CodecUseCase, error) {
	var err error
	c.codecUseCaseInit.Do(func() {
		c.codecUseCase, err = c.initCodecUseCase(ctx)
		if err != nil {
			c.initErrors["codecUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["codecUseCase"]; exists {
		return nil, storedErr
	}
	return c.codecUseCase, nil
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer(ctx)
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance.
// Returns nil when metrics collection is disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Shutdown HTTP server if initialized
	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	// Shutdown metrics server if initialized
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	// Shutdown metrics provider if initialized
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if c.config.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// initMetricsProvider creates the metrics provider when metrics are enabled.
func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

// initBusinessMetrics creates the business metrics instance.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}

	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

// initKeyMaterial resolves the key material from the configured sources.
func (c *Container) initKeyMaterial(ctx context.Context) (codecDomain.KeyMaterial, error) {
	resolver := codecService.NewKeyResolver(codecService.KeyResolverOptions{
		CipherKey:          c.config.CipherKey,
		SecretKeyBase:      c.config.SecretKeyBase,
		CipherKeyEncrypted: c.config.CipherKeyEncrypted,
		KMSKeyURI:          c.config.KMSKeyURI,
		NumericCipherKey:   c.config.NumericCipherKey,
	}, c.Logger())

	keyMaterial, err := resolver.Resolve(ctx)
	if err != nil {
		return codecDomain.KeyMaterial{}, fmt.Errorf("failed to resolve key material: %w", err)
	}
	return keyMaterial, nil
}

// initStringCodec creates the string token codec.
func (c *Container) initStringCodec(ctx context.Context) (codecService.StringCodec, error) {
	keyMaterial, err := c.KeyMaterial(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get key material for string codec: %w", err)
	}

	stringCodec, err := codecService.NewAESTokenCodec(keyMaterial)
	if err != nil {
		return nil, fmt.Errorf("failed to create string codec: %w", err)
	}
	return stringCodec, nil
}

// initNumericCodec creates the numeric codec.
func (c *Container) initNumericCodec(ctx context.Context) (codecService.NumericCodec, error) {
	keyMaterial, err := c.KeyMaterial(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get key material for numeric codec: %w", err)
	}

	return codecService.NewNumericPermutation(keyMaterial), nil
}

// initCodecUseCase creates the codec use case, decorated with metrics when enabled.
func (c *Container) initCodecUseCase(ctx context.Context) (codecUseCase.CodecUseCase, error) {
	stringCodec, err := c.StringCodec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get string codec for use case: %w", err)
	}

	numericCodec, err := c.NumericCodec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get numeric codec for use case: %w", err)
	}

	useCase := codecUseCase.NewCodecUseCase(stringCodec, numericCodec, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for use case: %w", err)
		}
		useCase = codecUseCase.NewCodecUseCaseWithMetrics(useCase, businessMetrics)
	}

	return useCase, nil
}

// initHTTPServer creates the HTTP server with the codec handler and middleware.
func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	useCase, err := c.CodecUseCase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get codec use case for http server: %w", err)
	}

	handler := codecHTTP.NewCodecHandler(useCase, c.Logger())

	options := http.ServerOptions{
		RateLimitEnabled: c.config.RateLimitEnabled,
		RateLimitRPS:     c.config.RateLimitRequestsPerSec,
		RateLimitBurst:   c.config.RateLimitBurst,
		CORSEnabled:      c.config.CORSEnabled,
		CORSAllowOrigins: c.config.CORSAllowOrigins,
	}

	if c.config.MetricsEnabled {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
		}
		if provider != nil {
			options.MetricsMiddleware = metrics.HTTPMetricsMiddleware(
				provider.MeterProvider(),
				c.config.MetricsNamespace,
			)
		}
	}

	// Readiness follows key material: the server cannot answer codec
	// requests if resolution failed.
	readyCheck := func(ctx context.Context) error {
		_, err := c.KeyMaterial(ctx)
		return err
	}

	return http.NewServer(
		c.config.ServerHost,
		c.config.ServerPort,
		c.Logger(),
		handler,
		readyCheck,
		options,
	), nil
}

// initMetricsServer creates the metrics server when metrics are enabled.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}

	return http.NewMetricsServer(
		c.config.ServerHost,
		c.config.MetricsPort,
		c.Logger(),
		provider,
	), nil
}
