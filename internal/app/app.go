// Package app wires Satchel's configuration, stores, API client and UI
// together and runs the program.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"satchel/internal/cart"
	"satchel/internal/catalog"
	"satchel/internal/config"
	"satchel/internal/journal"
	"satchel/internal/prefs"
	"satchel/internal/session"
	"satchel/internal/stash"
	"satchel/internal/storefront"
	"satchel/internal/ui"
)

// Options configure the Satchel application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/satchel/prefs.toml
	PollEvery  int    // catalog refresh seconds; zero uses default
}

// Run boots the Satchel TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load satchel config: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	logger := newFileLogger(cfg.LogPath())
	defer func() { _ = logger.Sync() }()

	client, err := storefront.NewClient(cfg.APIBase)
	if err != nil {
		return fmt.Errorf("init storefront client: %w", err)
	}

	slot := stash.New(cfg.GuestCartPath())
	guest := cart.NewGuest(slot, logger)
	guest.Set(slot.Load())

	activity := journal.New(cfg.JournalPath(), logger)

	sess := session.New(session.Options{
		Client:   client,
		Guest:    guest,
		Restore:  slot,
		Recorder: activity,
		Log:      logger,
	})

	interval := catalog.DefaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	catalogStore := &catalog.Store{}
	catalog.StartPoller(ctx, catalogStore, client, interval, logger)

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	uiOpts := ui.Options{
		Context:     ctx,
		Client:      client,
		Session:     sess,
		Catalog:     catalogStore,
		JournalPath: cfg.JournalPath(),
		PollTick:    time.Second,
		Prefs:       userPrefs,
		PrefsPath:   prefsPath,
	}
	return ui.Run(uiOpts)
}

// newFileLogger builds a zap logger writing to path so log output never
// corrupts the terminal UI. Any setup failure degrades to a no-op logger.
func newFileLogger(path string) *zap.Logger {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zap.NewNop()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
