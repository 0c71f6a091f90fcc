package config

import (
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		unset := []string{
			"PROGRAM_HTTP_PORT",
			"PROGRAM_SQLITE_DSN",
			"PROGRAM_CONFLICT_CACHE_TTL",
			"PROGRAM_SHUTDOWN_TIMEOUT",
			"PROGRAM_LOG_LEVEL",
		}
		for _, key := range unset {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:program.db" {
			t.Fatalf("unexpected default DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.ConflictCacheTTL != 30*time.Second {
			t.Fatalf("expected default cache TTL 30s, got %s", cfg.ConflictCacheTTL)
		}
		if cfg.LogLevel != slog.LevelInfo {
			t.Fatalf("expected default log level info, got %s", cfg.LogLevel)
		}
	})

	t.Run("parses duration and numeric fields", func(t *testing.T) {
		t.Setenv("PROGRAM_HTTP_PORT", "9090")
		t.Setenv("PROGRAM_SQLITE_DSN", "file:/tmp/program.db")
		t.Setenv("PROGRAM_CONFLICT_CACHE_TTL", "2m")
		t.Setenv("PROGRAM_SHUTDOWN_TIMEOUT", "30s")
		t.Setenv("PROGRAM_LOG_LEVEL", "debug")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 9090 {
			t.Fatalf("expected HTTP port 9090, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:/tmp/program.db" {
			t.Fatalf("unexpected DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.ConflictCacheTTL != 2*time.Minute {
			t.Fatalf("expected cache TTL 2m, got %s", cfg.ConflictCacheTTL)
		}
		if cfg.ShutdownTimeout != 30*time.Second {
			t.Fatalf("expected shutdown timeout 30s, got %s", cfg.ShutdownTimeout)
		}
		if cfg.LogLevel != slog.LevelDebug {
			t.Fatalf("expected log level debug, got %s", cfg.LogLevel)
		}
	})

	t.Run("collects every invalid variable in one error", func(t *testing.T) {
		t.Setenv("PROGRAM_HTTP_PORT", "not-a-port")
		t.Setenv("PROGRAM_CONFLICT_CACHE_TTL", "-1s")
		t.Setenv("PROGRAM_LOG_LEVEL", "verbose")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error for invalid values")
		}
		for _, key := range []string{"PROGRAM_HTTP_PORT", "PROGRAM_CONFLICT_CACHE_TTL", "PROGRAM_LOG_LEVEL"} {
			if !strings.Contains(err.Error(), key) {
				t.Fatalf("expected error to mention %s, got %q", key, err.Error())
			}
		}
	})
}
