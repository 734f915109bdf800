package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.DBPath != "data/pinbox.db" {
		t.Errorf("DBPath = %q, want data/pinbox.db", cfg.DBPath)
	}
	if cfg.DBMaxConns != 10 {
		t.Errorf("DBMaxConns = %d, want 10", cfg.DBMaxConns)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.CacheEnabled() {
		t.Error("CacheEnabled() = true without PINBOX_REDIS_ADDR")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PINBOX_LISTEN_PORT", ":9191")
	t.Setenv("PINBOX_DB_MAX_CONNS", "3")
	t.Setenv("PINBOX_SHUTDOWN_TIMEOUT", "11s")
	t.Setenv("PINBOX_REDIS_ADDR", "localhost:6379")
	t.Setenv("PINBOX_PRETTY_LOG", "true")

	cfg := Load()

	if cfg.ListenPort != ":9191" {
		t.Errorf("ListenPort = %q, want :9191", cfg.ListenPort)
	}
	if cfg.DBMaxConns != 3 {
		t.Errorf("DBMaxConns = %d, want 3", cfg.DBMaxConns)
	}
	if cfg.ShutdownTimeout != 11*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 11s", cfg.ShutdownTimeout)
	}
	if !cfg.CacheEnabled() {
		t.Error("CacheEnabled() = false with PINBOX_REDIS_ADDR set")
	}
	if !cfg.PrettyLog {
		t.Error("PrettyLog = false, want true")
	}
}

func TestHelpersFallBackOnGarbage(t *testing.T) {
	t.Setenv("PINBOX_DB_MAX_CONNS", "not_a_number")
	t.Setenv("PINBOX_SHUTDOWN_TIMEOUT", "soon")
	t.Setenv("PINBOX_PRETTY_LOG", "maybe")

	cfg := Load()

	if cfg.DBMaxConns != 10 {
		t.Errorf("DBMaxConns = %d, want default 10", cfg.DBMaxConns)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want default 5s", cfg.ShutdownTimeout)
	}
	if cfg.PrettyLog {
		t.Error("PrettyLog = true, want default false")
	}
}
