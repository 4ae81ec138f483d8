package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.DBDriver != "sqlite3" || cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected storage defaults: %+v", cfg)
	}
	if cfg.SchedulerBuffer != 64 || cfg.TokenTTL != 24*time.Hour || cfg.ReminderClock != "09:00" {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if filepath.Base(cfg.SessionPath()) != "userSession.json" {
		t.Fatalf("unexpected session path: %q", cfg.SessionPath())
	}
	if cfg.RemoteMode() {
		t.Fatal("expected local mode by default")
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("TODOD_DATA_DIR", "/tmp/todod-data")
	t.Setenv("TODOD_DB_DRIVER", "postgres")
	t.Setenv("TODOD_DB_DSN", "postgres://localhost/todod?sslmode=disable")
	t.Setenv("TODOD_API_URL", "http://localhost:8080/")
	t.Setenv("TODOD_DESKTOP_NOTIFICATIONS", "true")
	t.Setenv("TODOD_SCHEDULER_BUFFER", "128")
	t.Setenv("TODOD_TOKEN_TTL_HOURS", "2")
	t.Setenv("TODOD_REMINDER_TIME", "07:30")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if !cfg.DesktopNotifications {
		t.Fatal("expected desktop notifications true from env")
	}
	if cfg.DBDriver != "postgres" || cfg.DSN() != "postgres://localhost/todod?sslmode=disable" {
		t.Fatalf("unexpected storage config: %+v", cfg)
	}
	if cfg.APIURL != "http://localhost:8080" || !cfg.RemoteMode() {
		t.Fatalf("unexpected api url: %q", cfg.APIURL)
	}
	if cfg.SchedulerBuffer != 128 || cfg.TokenTTL != 2*time.Hour || cfg.ReminderClock != "07:30" {
		t.Fatalf("unexpected config overrides: %+v", cfg)
	}
	if cfg.LogPath() != filepath.Join("/tmp/todod-data", "todod.log") {
		t.Fatalf("unexpected log path: %q", cfg.LogPath())
	}
}

func TestRuntimeConfigIgnoresInvalidValues(t *testing.T) {
	t.Setenv("TODOD_SCHEDULER_BUFFER", "lots")
	t.Setenv("TODOD_DESKTOP_NOTIFICATIONS", "maybe")
	t.Setenv("TODOD_REMINDER_TIME", "9am")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.SchedulerBuffer != 64 || cfg.DesktopNotifications || cfg.ReminderClock != "09:00" {
		t.Fatalf("expected defaults to survive invalid env: %+v", cfg)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envPath, []byte("TODOD_HTTP_ADDR=:9191\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("TODOD_HTTP_ADDR", "")
	os.Unsetenv("TODOD_HTTP_ADDR")

	cfg, err := Load(envPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":9191" {
		t.Fatalf("expected addr from env file, got %q", cfg.HTTPAddr)
	}

	if _, err := Load(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing env file must be ignored, got %v", err)
	}
}

func TestSecretGeneratedOnce(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.DataDir = t.TempDir()
	first, err := cfg.Secret()
	if err != nil {
		t.Fatalf("secret: %v", err)
	}
	second, err := cfg.Secret()
	if err != nil {
		t.Fatalf("secret again: %v", err)
	}
	if string(first) != string(second) || len(first) != 64 {
		t.Fatalf("expected stable generated secret, got %q and %q", first, second)
	}

	cfg.JWTSecret = "explicit"
	if got, _ := cfg.Secret(); string(got) != "explicit" {
		t.Fatalf("expected explicit secret, got %q", got)
	}
}
