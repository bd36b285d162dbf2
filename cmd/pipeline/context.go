package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/meeting-flow/internal/cache"
	"github.com/nguyentantai21042004/meeting-flow/internal/config"
	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/internal/metrics"
	"github.com/nguyentantai21042004/meeting-flow/internal/processor"
	"github.com/nguyentantai21042004/meeting-flow/internal/provider"
	"github.com/nguyentantai21042004/meeting-flow/internal/registry"
	"github.com/nguyentantai21042004/meeting-flow/internal/store"
	"github.com/nguyentantai21042004/meeting-flow/internal/transcriber"
	"github.com/nguyentantai21042004/meeting-flow/pkg/executor"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := "config.yaml"
		if c.configFlag != nil && strings.TrimSpace(*c.configFlag) != "" {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := ensureDirectories(cfg); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// app is the fully wired pipeline shared by every subcommand.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	metrics  *metrics.Metrics
	exec     executor.Executor
	registry *registry.Registry
	chain    *provider.Chain
	store    *store.NotionClient
	cache    *cache.Cache
	proc     processor.Processor
}

func (c *commandContext) newApp(ctx context.Context) (*app, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Debug(ctx, "System: %s/%s, %d CPU cores", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())

	reg, err := registry.Load(cfg.Paths.Employees)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			log.Warn(ctx, "Employee registry not found at %s, name hints and routing by assignee are disabled", cfg.Paths.Employees)
		} else {
			log.Warn(ctx, "Employee registry unusable: %v", err)
		}
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		metrics:  metrics.New(),
		exec:     executor.New(),
		registry: reg,
		store:    store.NewNotionClient(cfg.Notion),
	}
	a.chain = provider.FromConfig(cfg.Providers, log, a.metrics)

	deps := processor.Deps{
		Audio:       transcriber.NewFFmpeg(cfg.FFmpeg, cfg.Paths.Temp, a.exec, log),
		Transcriber: transcriber.NewWhisper(cfg.Whisper, reg.Names(), a.exec, log),
		Chain:       a.chain,
		Store:       a.store,
		Registry:    reg,
		Recorder:    a.metrics,
		Logger:      log,
	}

	if !cfg.Cache.Disabled {
		tc, err := cache.Open(cfg.Cache.Path)
		if err != nil {
			log.Warn(ctx, "Transcript cache disabled: %v", err)
		} else {
			a.cache = tc
			deps.Cache = tc
		}
	}

	a.proc = processor.New(cfg, deps)
	return a, nil
}

func (a *app) Close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn(context.Background(), "Failed to close cache: %v", err)
		}
	}
	_ = a.log.Sync()
}

func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
		cfg.Paths.Debug,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
