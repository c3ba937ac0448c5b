package daemon_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"mediashelf/internal/config"
	"mediashelf/internal/daemon"
	"mediashelf/internal/importer"
	"mediashelf/internal/testsupport"
)

func newDaemon(t *testing.T, cfg *config.Config) *daemon.Daemon {
	t.Helper()
	store := testsupport.MustOpenStore(t, cfg)
	svc, err := importer.NewFromConfig(cfg, nil)
	if err != nil {
		t.Fatalf("importer.NewFromConfig: %v", err)
	}
	d, err := daemon.New(cfg, store, svc, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		d.Stop()
	})
	return d
}

func TestDaemonStartStop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	d := newDaemon(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	status := d.Status()
	if !status.Running || status.APIAddress == "" {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.LockFilePath != cfg.LockPath() {
		t.Fatalf("lock path = %q", status.LockFilePath)
	}

	resp, err := http.Get("http://" + d.Addr() + "/api/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d", resp.StatusCode)
	}
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if payload.Status != "ok" {
		t.Fatalf("health payload = %+v", payload)
	}

	if err := d.Start(ctx); err == nil {
		t.Fatal("expected second start to fail")
	}

	d.Stop()
	if d.Status().Running {
		t.Fatal("expected daemon to be stopped")
	}
	if d.Addr() != "" {
		t.Fatalf("expected no address after stop, got %q", d.Addr())
	}

	if err := d.Start(ctx); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
}

func TestSecondInstanceIsRejected(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first := newDaemon(t, cfg)
	second := newDaemon(t, cfg)

	ctx := context.Background()
	if err := first.Start(ctx); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if err := second.Start(ctx); err == nil {
		t.Fatal("expected lock contention error")
	}
	first.Stop()
	if err := second.Start(ctx); err != nil {
		t.Fatalf("second Start after release: %v", err)
	}
}

func TestNewRequiresDependencies(t *testing.T) {
	if _, err := daemon.New(nil, nil, nil, nil); err == nil {
		t.Fatal("expected error for missing dependencies")
	}
}
