// Package cli wires configuration, logging, storage and metrics into an errfix engine for the command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/errfix"
	"github.com/aretw0/errfix/internal/adapters/redis"
	"github.com/aretw0/errfix/internal/config"
	"github.com/aretw0/errfix/internal/logging"
	"github.com/aretw0/errfix/internal/metrics"
	"github.com/aretw0/errfix/pkg/adapters/memory"
	"github.com/aretw0/errfix/pkg/domain"
	"github.com/aretw0/errfix/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Options are the settings shared by every command.
// Flags left at their zero value fall back to the config file.
type Options struct {
	ConfigPath string
	ModelPath  string
	LogLevel   string
	// Debug forces the debug level, which logs every step and driver call.
	Debug bool
	// LogOutput receives the log lines. Defaults to stderr.
	LogOutput io.Writer
}

// Session is an engine together with the resources it was built from.
type Session struct {
	Engine   *errfix.Engine
	Config   config.Config
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Collector

	closers []func() error
}

// Close releases the walk store connection, if any.
func (s *Session) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &domain.AggregateError{Errors: errs}
	}
	return nil
}

// NewSession loads the configuration and the state table and builds an engine.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultFile
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.ModelPath != "" {
		cfg.Model = opts.ModelPath
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("no state table given: pass --model or set 'model' in %s", path)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level)
	if opts.LogOutput != nil {
		logger = logging.NewWithWriter(opts.LogOutput, level)
	}

	s := &Session{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}
	s.Metrics = metrics.New(s.Registry)

	store, closer, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		s.closers = append(s.closers, closer)
	}

	engineOpts := []errfix.Option{
		errfix.WithLogger(logger),
		errfix.WithStore(store),
		errfix.WithHooks(s.Metrics.Hooks()),
	}
	s.Engine, err = errfix.Load(cfg.Model, engineOpts...)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return s, nil
}

// openStore picks Redis when configured and an in-memory store otherwise.
func openStore(ctx context.Context, cfg config.Config) (ports.WalkStore, func() error, error) {
	if cfg.Redis == nil {
		return memory.NewStore(), nil, nil
	}

	var opts []redis.Option
	if cfg.Redis.Prefix != "" {
		opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
	}
	if cfg.Redis.TTL > 0 {
		opts = append(opts, redis.WithTTL(cfg.Redis.TTL))
	}
	store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("redis at %s: %w", cfg.Redis.Addr, err)
	}
	return store, store.Close, nil
}
