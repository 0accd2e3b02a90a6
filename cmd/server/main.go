// Package main initializes and starts the user portal server, setting up
// configuration, logging, the optional database mirror, in-memory state,
// services, handlers, and TLS.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/userportal/internal/config"
	"github.com/atinyakov/userportal/internal/db"
	"github.com/atinyakov/userportal/internal/logger"
	"github.com/atinyakov/userportal/internal/repository"
	"github.com/atinyakov/userportal/internal/server/handler/http"
	"github.com/atinyakov/userportal/internal/service"
	"github.com/atinyakov/userportal/internal/state"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const shutdownTimeout = 5 * time.Second

func main() {
	// Parse command-line, config file and environment configuration.
	options := config.Parse()
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// In-memory users and sessions.
	manager := state.NewManager()

	// Optional PostgreSQL mirror of the user directory.
	var mirror service.UserMirror
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		defer postgresDB.Close()

		// Rows from earlier runs are dropped once, before any request can
		// mirror a new user.
		_, _ = db.CleanStaleUsers(ctx, postgresDB, manager.UserCount(), zapLogger)

		userRepo := repository.NewPostgresUserRepository(postgresDB)
		if n, err := userRepo.CountUsers(ctx); err != nil {
			zapLogger.Warn("cannot count mirrored users", zap.Error(err))
		} else {
			zapLogger.Info("database mirror ready", zap.Int("rows", n))
		}
		mirror = userRepo
	}

	// Initialize business logic.
	authService := service.NewAuthService(manager, mirror, zapLogger)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService}
	profileHandler := &http.ProfileHandler{ProfileService: authService}
	pageHandler := &http.PageHandler{Dir: options.PagesDir, Log: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, profileHandler, pageHandler, authService, zapLogger)

	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		var err error
		if options.UseTLS() {
			zapLogger.Info("starting HTTPS server", zap.String("addr", addr))
			err = server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
		} else {
			zapLogger.Info("starting HTTP server", zap.String("addr", addr))
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
