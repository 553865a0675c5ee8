package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Server.Listen != ":8085" {
		t.Fatalf("listen = %q", cfg.Server.Listen)
	}
	if cfg.Upstream.BaseURL != "https://generativelanguage.googleapis.com" {
		t.Fatalf("base url = %q", cfg.Upstream.BaseURL)
	}
	if !cfg.OpenAICompatEnabled() {
		t.Fatal("openai compat should default on")
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.Server.Listen != ":8085" {
		t.Fatalf("listen = %q", cfg.Server.Listen)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  listen: ":9000"
upstream:
  base_url: "https://example.test/api/"
  openai_compat: false
logging:
  debug: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Listen != ":9000" {
		t.Fatalf("listen = %q", cfg.Server.Listen)
	}
	if cfg.Upstream.BaseURL != "https://example.test/api" {
		t.Fatalf("base url not trimmed: %q", cfg.Upstream.BaseURL)
	}
	if cfg.OpenAICompatEnabled() {
		t.Fatal("openai compat should be off")
	}
	if !cfg.Logging.Debug {
		t.Fatal("debug should be on")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a mapping"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("want parse error")
	}
}

func TestDurationOrDefault(t *testing.T) {
	if got := DurationOrDefault(5, time.Minute); got != 5*time.Second {
		t.Fatalf("got %v", got)
	}
	if got := DurationOrDefault(0, time.Minute); got != time.Minute {
		t.Fatalf("got %v", got)
	}
}

func TestWatchReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  debug: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 1)
	stop, err := Watch(path, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer stop()

	if err := os.WriteFile(path, []byte("logging:\n  debug: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if !cfg.Logging.Debug {
			t.Fatal("reloaded config lost the change")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("reload callback never fired")
	}
}
