package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Delete.BatchSize != 5 {
		t.Fatalf("default batch size = %d, want 5", cfg.Delete.BatchSize)
	}
	if time.Duration(cfg.Delete.BatchPause) != 200*time.Millisecond {
		t.Fatalf("default batch pause = %v", time.Duration(cfg.Delete.BatchPause))
	}
	if time.Duration(cfg.Delete.RetryBackoff) != time.Second {
		t.Fatalf("default retry backoff = %v", time.Duration(cfg.Delete.RetryBackoff))
	}
}

func TestLoadConfig_File(t *testing.T) {
	home := t.TempDir()
	const body = `
homeserver: https://store.example.org
log_level: debug
delete:
  batch_size: 3
  batch_pause: 50ms
  retry_backoff: 2s
`
	if err := os.WriteFile(filepath.Join(home, configFile), []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Homeserver != "https://store.example.org" {
		t.Fatalf("homeserver = %q", cfg.Homeserver)
	}
	p := cfg.Policy()
	if p.DeleteBatchSize != 3 || p.BatchPause != 50*time.Millisecond || p.RateLimitBackoff != 2*time.Second {
		t.Fatalf("unexpected policy: %+v", p)
	}
}

func TestLoadConfig_BadDuration(t *testing.T) {
	home := t.TempDir()
	if err := os.WriteFile(filepath.Join(home, configFile), []byte("delete:\n  batch_pause: soon\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadConfig(home); err == nil {
		t.Fatal("malformed duration accepted")
	}
}
