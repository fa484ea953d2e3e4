// Package workers runs periodic background maintenance for the server.
package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SessionPurger deletes sessions that expired at or before now.
// The store implements this interface.
type SessionPurger interface {
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}

// SessionSweeperConfig configures the session sweeper.
type SessionSweeperConfig struct {
	Interval     time.Duration
	InitialDelay time.Duration
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// DefaultSessionSweeperConfig returns default configuration.
func DefaultSessionSweeperConfig() SessionSweeperConfig {
	return SessionSweeperConfig{
		Interval:     time.Hour,
		InitialDelay: 10 * time.Second,
	}
}

// SessionSweeper periodically removes expired admin sessions.
type SessionSweeper struct {
	store  SessionPurger
	config SessionSweeperConfig
	logger *slog.Logger
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSessionSweeper creates a new session sweeper.
func NewSessionSweeper(s SessionPurger, config SessionSweeperConfig, logger *slog.Logger) *SessionSweeper {
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}
	if config.InitialDelay < 0 {
		config.InitialDelay = 0
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionSweeper{
		store:  s,
		config: config,
		logger: logger.With("component", "session_sweeper"),
	}
}

// Start begins the sweeper background goroutine.
func (w *SessionSweeper) Start() {
	var ctx context.Context
	ctx, w.cancel = context.WithCancel(context.Background())
	w.wg.Add(1)
	go w.run(ctx)
	w.logger.Info("session sweeper started", "interval", w.config.Interval)
}

// Stop stops the sweeper and waits for an in-flight sweep to finish.
func (w *SessionSweeper) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	w.logger.Info("session sweeper stopped")
}

func (w *SessionSweeper) run(ctx context.Context) {
	defer w.wg.Done()

	select {
	case <-ctx.Done():
		return
	case <-time.After(w.config.InitialDelay):
	}
	w.Sweep(ctx)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs one purge and returns how many sessions were removed.
func (w *SessionSweeper) Sweep(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	n, err := w.store.DeleteExpiredSessions(ctx, w.config.Now())
	if err != nil {
		w.logger.Error("failed to purge expired sessions", "error", err)
		return 0
	}
	if n > 0 {
		w.logger.Info("purged expired sessions", "count", n)
	}
	return n
}
