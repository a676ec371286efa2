package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/learnquest/learnquest/internal/config"
	"github.com/learnquest/learnquest/internal/content"
	"github.com/learnquest/learnquest/internal/llm"
	"github.com/learnquest/learnquest/internal/metrics"
	"github.com/learnquest/learnquest/internal/realtime"
	"github.com/learnquest/learnquest/internal/store"
	"github.com/learnquest/learnquest/internal/store/jsonfile"
	"github.com/learnquest/learnquest/internal/store/redis"
	"github.com/learnquest/learnquest/internal/tracker"
)

// app is everything a command needs, opened from the config.
type app struct {
	cfg     config.Config
	log     *slog.Logger
	store   *store.Store
	hub     *realtime.Hub
	tracker *tracker.Tracker
	closers []io.Closer
}

// loadConfig reads the config named by --config (or the default path).
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openStore opens the SQLite database holding the event log.
func openStore(cmd *cobra.Command, cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// openApp opens the store, builds dependencies and starts the tracker.
func openApp(cmd *cobra.Command) (*app, error) {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg: cfg,
		log: cfg.Logger(os.Stderr),
		hub: realtime.NewHub(),
	}

	a.store, err = openStore(cmd, cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.store)

	docs, err := a.openDocuments(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	opts := tracker.Options{
		Documents: docs,
		Events:    a.store.EventRepo(),
		Hub:       a.hub,
		Logger:    a.log,
	}
	provider, err := llm.NewProvider(ctx, cfg.LLMSettings(), llm.Recorder{
		Events:   a.store.EventRepo(),
		Logger:   a.log,
		Observer: metrics.LLMObserver{},
	})
	if err != nil {
		if errors.Is(err, llm.ErrMissingCredential) {
			a.log.Debug("AI features disabled", "reason", err)
		} else {
			a.log.Warn("LLM provider not configured, AI features will be unavailable", "error", err)
		}
		opts.ContentErr = err
	} else {
		opts.Content = content.NewService(provider, cfg.ContentSettings())
	}

	a.tracker, err = tracker.New(ctx, opts)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("start tracker: %w", err)
	}
	return a, nil
}

// openDocuments returns the configured document backend.
func (a *app) openDocuments(ctx context.Context) (store.Documents, error) {
	switch a.cfg.Storage.Backend {
	case config.BackendJSONFile:
		return jsonfile.New(a.cfg.Storage.Dir)
	case config.BackendRedis:
		rc := redis.DefaultConfig()
		rc.Addr = a.cfg.Storage.Redis.Addr
		rc.Password = a.cfg.Storage.Redis.Password
		rc.DB = a.cfg.Storage.Redis.DB
		rs, err := redis.New(ctx, rc)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rs)
		return rs, nil
	default:
		return a.store.Documents(), nil
	}
}

// Close stops the tracker and releases the backends.
func (a *app) Close() {
	if a.tracker != nil {
		a.tracker.Close()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.log.Warn("close", "error", err)
		}
	}
}

// termWidth is the width views are laid out for.
const termWidth = 80

// openEventStore opens only the database, for commands that read the
// event log.
func openEventStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return openStore(cmd, cfg)
}
