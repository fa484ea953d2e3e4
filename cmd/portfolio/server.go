package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	core "github.com/artpar/portfolio/internal/core/spotlight"
	"github.com/artpar/portfolio/internal/shell/api"
	"github.com/artpar/portfolio/internal/shell/imagehost"
	"github.com/artpar/portfolio/internal/shell/spotlight"
	"github.com/artpar/portfolio/internal/shell/store"
	"github.com/artpar/portfolio/internal/shell/workers"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess         = 0
	ExitConfigError     = 1
	ExitDatabaseError   = 2
	ExitHTTPServerError = 3
	ExitSeedError       = 4
)

// =============================================================================
// Server
// =============================================================================

// Server represents the portfolio application server.
type Server struct {
	config     *Config
	httpServer *http.Server
	store      store.Store
	sweeper    *workers.SessionSweeper
	logger     *slog.Logger
}

// NewServer creates a new server with the given config.
func NewServer(cfg *Config, logger *slog.Logger) (*Server, error) {
	policy, err := core.ParsePolicy(cfg.Spotlight.Policy)
	if err != nil {
		return nil, &ServerError{
			Op:       "NewServer",
			Err:      err,
			ExitCode: ExitConfigError,
		}
	}

	// Connect to database
	s, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	uploader := imagehost.New(imagehost.Config{
		BaseURL:      cfg.ImageHost.BaseURL,
		CloudName:    cfg.ImageHost.CloudName,
		UploadPreset: cfg.ImageHost.UploadPreset,
		Timeout:      cfg.ImageHost.Timeout,
	})
	if _, ok := uploader.(*imagehost.NoopUploader); ok {
		logger.Warn("image host not configured, uploads disabled")
	}

	handler := api.NewHandler(api.Config{
		Store:          s,
		Enforcer:       spotlight.NewEnforcer(s, policy, logger),
		Uploader:       uploader,
		Logger:         logger,
		CookieName:     cfg.Auth.CookieName,
		CookieSecure:   cfg.Auth.CookieSecure,
		SessionTTL:     cfg.Auth.SessionTTL,
		MetricsEnabled: cfg.Metrics.Enabled,
		MaxUploadBytes: cfg.ImageHost.MaxUploadBytes,
		Version:        Version,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	sweepCfg := workers.DefaultSessionSweeperConfig()
	if cfg.Auth.SweepInterval > 0 {
		sweepCfg.Interval = cfg.Auth.SweepInterval
	}

	logger.Info("server configured",
		"spotlight_policy", policy,
		"metrics", cfg.Metrics.Enabled,
	)

	return &Server{
		config:     cfg,
		httpServer: httpServer,
		store:      s,
		sweeper:    workers.NewSessionSweeper(s, sweepCfg, logger),
		logger:     logger,
	}, nil
}

// openStore opens the configured database, running migrations.
func openStore(cfg *Config) (*store.SQLiteStore, error) {
	s, err := store.NewSQLiteStore(cfg.Database.DSN)
	if err != nil {
		return nil, &ServerError{
			Op:       "openStore",
			Err:      err,
			ExitCode: ExitDatabaseError,
		}
	}
	return s, nil
}

// Start starts the server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	s.sweeper.Start()

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server",
			"address", s.config.Server.Address())
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		s.logger.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		s.sweeper.Stop()
		s.closeStore()
		return &ServerError{
			Op:       "Start",
			Err:      err,
			ExitCode: ExitHTTPServerError,
		}
	case <-ctx.Done():
		s.logger.Info("context cancelled")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("initiating graceful shutdown")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.sweeper.Stop()
	s.closeStore()

	s.logger.Info("shutdown complete")
	return nil
}

func (s *Server) closeStore() {
	if err := s.store.Close(); err != nil {
		s.logger.Error("database close error", "error", err)
	}
}

// =============================================================================
// Server Error
// =============================================================================

// ServerError represents an error during server operation.
type ServerError struct {
	Op       string
	Err      error
	ExitCode int
}

func (e *ServerError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ServerError) Unwrap() error {
	return e.Err
}
