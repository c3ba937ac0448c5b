package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"

	"mediashelf/internal/api"
	"mediashelf/internal/config"
	"mediashelf/internal/importer"
	"mediashelf/internal/library"
	"mediashelf/internal/logging"
)

// Daemon hosts the HTTP API and enforces one server per data directory.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *library.Store
	importer *importer.Service

	lockPath string
	lock     *flock.Flock

	mu      sync.Mutex
	api     *apiServer
	running atomic.Bool
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running            bool   `json:"running"`
	PID                int    `json:"pid"`
	DatabasePath       string `json:"database_path"`
	LockFilePath       string `json:"lock_file_path"`
	APIAddress         string `json:"api_address,omitempty"`
	ArtistCacheEntries int    `json:"artist_cache_entries"`
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *library.Store, svc *importer.Service, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || svc == nil {
		return nil, errors.New("daemon requires config, store, and import service")
	}
	lockPath := cfg.LockPath()
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    store,
		importer: svc,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock and begins serving the API.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another mediashelf server is already running for this data directory")
	}

	runCtx, cancel := context.WithCancel(ctx)
	handler := api.New(d.cfg, d.importer, d.store, d.logger).Handler()
	server := newAPIServer(d.cfg.Paths.APIBind, handler, d.logger)
	if err := server.start(runCtx); err != nil {
		cancel()
		_ = d.lock.Unlock()
		return err
	}

	d.api = server
	d.cancel = cancel
	d.running.Store(true)
	d.logger.Info("mediashelf server started",
		logging.String("lock", d.lockPath),
		logging.String("address", server.addr()),
	)
	return nil
}

// Stop shuts the API down and releases the instance lock.
func (d *Daemon) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop()
	d.api = nil
	if err := d.lock.Unlock(); err != nil {
		logging.WarnWithContext(d.logger, "failed to release server lock", "lock_release_failed", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("mediashelf server stopped")
}

// Close stops the daemon and closes the record store.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Addr returns the bound API address while running.
func (d *Daemon) Addr() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.api.addr()
}

// Status reports the current runtime state.
func (d *Daemon) Status() Status {
	return Status{
		Running:            d.running.Load(),
		PID:                os.Getpid(),
		DatabasePath:       d.store.Path(),
		LockFilePath:       d.lockPath,
		APIAddress:         d.Addr(),
		ArtistCacheEntries: d.importer.Cache().Count(),
	}
}
