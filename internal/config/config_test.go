package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DXWATCH_CALLSIGN", "N0CALL")

	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.ClusterHost != "dxc.nc7j.com" {
		t.Errorf("ClusterHost = %q, want dxc.nc7j.com", cfg.ClusterHost)
	}
	if cfg.ClusterPort != 7300 {
		t.Errorf("ClusterPort = %d, want 7300", cfg.ClusterPort)
	}
	if cfg.IARURegion != 2 {
		t.Errorf("IARURegion = %d, want 2", cfg.IARURegion)
	}
	if cfg.CacheCapacity != 500 {
		t.Errorf("CacheCapacity = %d, want 500", cfg.CacheCapacity)
	}
	if cfg.ConnectTimeout != 10*time.Second {
		t.Errorf("ConnectTimeout = %v, want 10s", cfg.ConnectTimeout)
	}
	if cfg.IdleTimeout != 120*time.Second {
		t.Errorf("IdleTimeout = %v, want 120s", cfg.IdleTimeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DXWATCH_CALLSIGN", "N0CALL")
	t.Setenv("DXWATCH_CLUSTER_HOST", "dx.example.org")
	t.Setenv("DXWATCH_CLUSTER_PORT", "8000")
	t.Setenv("DXWATCH_IARU_REGION", "1")
	t.Setenv("DXWATCH_IDLE_TIMEOUT", "30s")

	cfg := Load()

	if cfg.ClusterHost != "dx.example.org" {
		t.Errorf("ClusterHost = %q", cfg.ClusterHost)
	}
	if cfg.ClusterPort != 8000 {
		t.Errorf("ClusterPort = %d", cfg.ClusterPort)
	}
	if cfg.IARURegion != 1 {
		t.Errorf("IARURegion = %d", cfg.IARURegion)
	}
	if cfg.IdleTimeout != 30*time.Second {
		t.Errorf("IdleTimeout = %v", cfg.IdleTimeout)
	}
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dxwatch.yaml")
	data := []byte(`
listen_port: ":9090"
log_level: debug
cluster:
  host: cluster.example.net
  port: 7373
  callsign: W1AW
  iaru_region: 3
  idle_timeout: 90s
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("DXWATCH_CONFIG_FILE", path)

	cfg := Load()

	if cfg.ListenPort != ":9090" {
		t.Errorf("ListenPort = %q, want :9090", cfg.ListenPort)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.ClusterHost != "cluster.example.net" {
		t.Errorf("ClusterHost = %q", cfg.ClusterHost)
	}
	if cfg.ClusterPort != 7373 {
		t.Errorf("ClusterPort = %d", cfg.ClusterPort)
	}
	if cfg.Callsign != "W1AW" {
		t.Errorf("Callsign = %q", cfg.Callsign)
	}
	if cfg.IARURegion != 3 {
		t.Errorf("IARURegion = %d", cfg.IARURegion)
	}
	if cfg.IdleTimeout != 90*time.Second {
		t.Errorf("IdleTimeout = %v", cfg.IdleTimeout)
	}
}

func TestEnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dxwatch.yaml")
	data := []byte("cluster:\n  host: from-file.example.net\n  callsign: W1AW\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("DXWATCH_CONFIG_FILE", path)
	t.Setenv("DXWATCH_CLUSTER_HOST", "from-env.example.net")

	cfg := Load()
	if cfg.ClusterHost != "from-env.example.net" {
		t.Errorf("ClusterHost = %q, env must win over file", cfg.ClusterHost)
	}
}

func TestLoadPanicsWithoutCallsign(t *testing.T) {
	t.Setenv("DXWATCH_CALLSIGN", "")

	defer func() {
		if recover() == nil {
			t.Error("Load() did not panic with an empty callsign")
		}
	}()
	Load()
}

func TestLoadPanicsOnInvalidRegion(t *testing.T) {
	t.Setenv("DXWATCH_CALLSIGN", "N0CALL")
	t.Setenv("DXWATCH_IARU_REGION", "4")

	defer func() {
		if recover() == nil {
			t.Error("Load() did not panic on region 4")
		}
	}()
	Load()
}
