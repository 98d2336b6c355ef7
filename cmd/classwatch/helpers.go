package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/config"
	"github.com/Veraticus/classwatch/internal/live"
	"github.com/Veraticus/classwatch/internal/service"
	"github.com/Veraticus/classwatch/internal/source"
	"github.com/Veraticus/classwatch/internal/storage"
	"github.com/Veraticus/classwatch/internal/timemath"
)

// app bundles what most commands need.
type app struct {
	cfg   *config.Config
	store *storage.SQLiteStorage
	svc   *live.Service
}

func (a *app) Close() {
	a.svc.Stop()
	if err := a.store.Close(); err != nil {
		slog.Warn("Failed to close cache database", "error", err)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, common.NewUserError("invalid configuration", err)
	}
	return cfg, nil
}

// initStorage opens the cache database and brings its schema up to date.
func initStorage(ctx context.Context, cfg *config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newApp wires config, cache and the live service. onAttempt may be nil.
func newApp(ctx context.Context, presenter service.Presenter, onAttempt func(int)) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	fetcher, err := source.New(cfg.SourceBaseURL, cfg.SourceDir, cfg.FetchTimeout)
	if err != nil {
		return nil, common.NewUserError("no schedule source configured (use --source-url or --source-dir)", err)
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc := live.New(live.Config{
		Poll:           cfg.PollConfig(),
		StatusInterval: cfg.StatusInterval,
		MaxWeek:        cfg.MaxWeek,
	}, live.Deps{
		Fetcher:   fetcher,
		Cache:     store,
		Presenter: presenter,
		Clock:     timemath.SystemClock{},
		OnAttempt: onAttempt,
	})

	return &app{cfg: cfg, store: store, svc: svc}, nil
}

func writeLine(w io.Writer, line string) {
	if _, err := fmt.Fprintln(w, line); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}
