// Package main starts the development storefront backend: an in-memory
// commerce API under /api/mobile, served over HTTP or, when a certificate is
// configured, HTTPS.
package main

import (
	"cmp"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/storefront/internal/config"
	"github.com/atinyakov/storefront/internal/logger"
	"github.com/atinyakov/storefront/internal/server"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options, err := config.ParseServer(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Wire repositories, services and handlers.
	backend := server.NewBackend(options.APIKey, zapLogger)
	if options.APIKey == "" {
		zapLogger.Warn("API key check disabled")
	}

	// Drop idle sessions and their carts.
	backend.StartSweeper(ctx, time.Duration(options.SweepInterval), time.Duration(options.SessionIdle))

	srv := &nethttp.Server{
		Addr:              options.Address,
		Handler:           backend.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if options.TLS() {
			// Load server TLS certificate and key.
			cert, err := tls.LoadX509KeyPair(options.TLSCert, options.TLSKey)
			if err != nil {
				errCh <- fmt.Errorf("failed to load server TLS cert/key: %w", err)
				return
			}
			srv.TLSConfig = &tls.Config{
				Certificates: []tls.Certificate{cert},
				MinVersion:   tls.VersionTLS12,
			}
			zapLogger.Info("starting HTTPS server", zap.String("addr", options.Address))
			errCh <- srv.ListenAndServeTLS("", "")
			return
		}
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		zapLogger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
