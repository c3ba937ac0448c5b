package main

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mediashelf/internal/config"
	"mediashelf/internal/importer"
	"mediashelf/internal/library"
	"mediashelf/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	mu       sync.Mutex
	logger   *slog.Logger
	importer *importer.Service
	store    *library.Store
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// fileLogger keeps one-shot command output clean by logging to the log file
// only. The serve command builds its own console logger.
func (c *commandContext) fileLogger() (*slog.Logger, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logPath := filepath.Join(cfg.Paths.LogDir, "mediashelf.log")
	logger, err := logging.New(logging.Options{
		Level:            cfg.Logging.Level,
		Format:           "json",
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	})
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return logger, nil
}

func (c *commandContext) importService() (*importer.Service, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.fileLogger()
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.importer == nil {
		svc, err := importer.NewFromConfig(cfg, logger)
		if err != nil {
			return nil, err
		}
		c.importer = svc
	}
	return c.importer, nil
}

func (c *commandContext) libraryStore() (*library.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.fileLogger()
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		store, err := library.Open(cfg, logger)
		if err != nil {
			return nil, err
		}
		c.store = store
	}
	return c.store, nil
}

func (c *commandContext) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var errs []error
	if c.store != nil {
		errs = append(errs, c.store.Close())
		c.store = nil
	}
	return errors.Join(errs...)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
