package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/tradestats"
	"github.com/etnz/tradestats/logger"
	"github.com/fsnotify/fsnotify"
)

// settleDelay lets a writer finish before the ledger is read again.
const settleDelay = 200 * time.Millisecond

// LoadLedger loads the ledger file at path into the default session. The
// previous default session is kept if loading fails.
func (s *Server) LoadLedger(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	d := s.cfg.Defaults
	session, err := s.Load(ctx, filepath.Base(path), f, tradestats.NewSettings(d.Capital, d.Brokerage, d.ProfitSharing))
	if err != nil {
		return fmt.Errorf("failed to load ledger %q: %w", path, err)
	}
	s.store.Put(DefaultSession, session)
	s.metrics.Sessions.Set(float64(s.store.Len()))
	return nil
}

// WatchLedger reloads the ledger at path into the default session whenever
// it changes, until ctx is done.
func (s *Server) WatchLedger(ctx context.Context, path string) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", filepath.Dir(path), err)
	}
	log := s.logger.With(slog.String("ledger", path))
	log.Info("watching ledger")

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			settle = time.After(settleDelay)
		case <-settle:
			settle = nil
			if err := s.LoadLedger(ctx, path); err != nil {
				logger.Error(ctx, "ledger reload failed, keeping previous session", err, "ledger", path)
				continue
			}
			log.Info("ledger reloaded")
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn(ctx, "watcher error", "error", err)
		}
	}
}
