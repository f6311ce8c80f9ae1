// Package main initializes and starts the todokeeper server, setting up
// configuration, logging, the database, repositories, services, handlers,
// and optional TLS.
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

	"github.com/atinyakov/todokeeper/internal/config"
	"github.com/atinyakov/todokeeper/internal/db"
	"github.com/atinyakov/todokeeper/internal/logger"
	"github.com/atinyakov/todokeeper/internal/repository"
	"github.com/atinyakov/todokeeper/internal/server/handler/http"
	"github.com/atinyakov/todokeeper/internal/service"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse config file and environment configuration.
	options, err := config.Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot read configuration:", err)
		os.Exit(1)
	}
	addr := options.Port

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Open SQLite or PostgreSQL depending on the DSN.
	store, err := db.Open(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			zapLogger.Warn("failed to close database", zap.Error(err))
		}
	}()

	// Hash the fixed account once; the plaintext never leaves this function.
	admin, err := service.NewUser(config.DefaultUsername, config.DefaultPassword, bcrypt.DefaultCost)
	if err != nil {
		zapLogger.Fatal("cannot hash credentials", zap.Error(err))
	}

	// Initialize repositories.
	credRepo := repository.NewStaticCredentialRepository(admin)
	todoRepo := repository.NewSQLTodoRepository(store)

	// Initialize business-logic services.
	authService := service.NewAuthService(credRepo)
	todoService := service.NewTodoService(todoRepo)

	todoHandler := &http.TodoHandler{TodoService: todoService, Logger: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(todoHandler, authService, zapLogger)

	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if options.TLSEnabled() {
		server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if options.TLSEnabled() {
			zapLogger.Info("starting HTTPS server", zap.String("addr", addr))
			errCh <- server.ListenAndServeTLS(options.TLSCertFile, options.TLSKeyFile)
			return
		}
		zapLogger.Info("starting HTTP server", zap.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Error("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		zapLogger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
