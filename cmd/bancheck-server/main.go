// Package main is the entrypoint for the ban check server.
//
// @title           Free Fire Ban Check API
// @version         2.0
// @description     Thin HTTP relay in front of the official Garena ban status endpoint. Validates player UIDs, forwards lookups upstream, and returns the result in a stable JSON envelope.
//
// @contact.name   FlameX Hub
// @contact.url    https://github.com/flamexhub/bancheck
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @tag.name BanCheck
// @tag.description Ban status lookups against the official Garena API
// @tag.name Health
// @tag.description Service health
// @tag.name Version
// @tag.description Server version information
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/flamexhub/bancheck/internal/api"
	"github.com/flamexhub/bancheck/internal/config"
	"github.com/flamexhub/bancheck/internal/garena"
	"github.com/flamexhub/bancheck/internal/httpclient"
	"github.com/flamexhub/bancheck/internal/metrics"
)

// Build-time variables set via ldflags.
var (
	Version   = "2.0.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration first so the logger honors .env settings
	cfg := config.LoadServerConfig()

	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("version", Version).Logger()
	if cfg.Environment != config.EnvProduction {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && lvl != zerolog.NoLevel {
		logger = logger.Level(lvl)
	}

	logger.Info().
		Str("version", Version).
		Str("commit", Commit).
		Str("build_date", BuildDate).
		Str("env", string(cfg.Environment)).
		Msg("Starting ban check server")

	// Register Prometheus metrics
	m, err := metrics.New(prometheus.NewRegistry())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to register metrics")
		return 1
	}

	// Build the outbound HTTP client, with proxy support if configured
	httpClient, err := httpclient.New(httpclient.Options{
		Timeout:     cfg.UpstreamTimeout,
		ProxyConfig: &cfg.Proxy,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to configure HTTP client")
		return 1
	}

	if cfg.Proxy.HasProxy() {
		logger.Info().Str("proxy", httpclient.ProxyInfo(&cfg.Proxy)).Msg("Outbound proxy configured")
	}

	// Configure the Garena checker
	checkerCfg := garena.DefaultConfig()
	checkerCfg.Timeout = cfg.UpstreamTimeout
	checkerCfg.Mode = garena.ResponseMode(cfg.ResponseMode)
	if cfg.UpstreamURL != "" {
		checkerCfg.APIURL = cfg.UpstreamURL
	}
	checker := garena.New(checkerCfg, httpClient, m, logger)

	logger.Info().
		Str("url", checkerCfg.APIURL).
		Str("mode", string(checkerCfg.Mode)).
		Dur("timeout", checkerCfg.Timeout).
		Msg("Upstream checker configured")

	// Build API router
	routerCfg := api.Config{
		CORSOrigin: cfg.CORSOrigin,
		Version:    Version,
		Commit:     Commit,
		BuildDate:  BuildDate,
	}
	router := api.NewRouter(routerCfg, checker, m, logger)

	// Start HTTP server
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router.Engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	logger.Info().Str("signal", sig.String()).Msg("Shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown error")
		return 1
	}

	logger.Info().Msg("Server stopped gracefully")
	return 0
}
