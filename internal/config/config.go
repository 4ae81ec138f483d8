package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type RuntimeConfig struct {
	DataDir              string
	DBDriver             string
	DBDSN                string
	HTTPAddr             string
	APIURL               string
	JWTSecret            string
	TokenTTL             time.Duration
	LogLevel             string
	LogFile              string
	DesktopNotifications bool
	SchedulerBuffer      int
	ReminderClock        string
}

func DefaultRuntimeConfig() RuntimeConfig {
	home, _ := os.UserHomeDir()
	return RuntimeConfig{
		DataDir:              filepath.Join(home, ".todod"),
		DBDriver:             "sqlite3",
		HTTPAddr:             ":8080",
		TokenTTL:             24 * time.Hour,
		LogLevel:             "info",
		DesktopNotifications: false,
		SchedulerBuffer:      64,
		ReminderClock:        "09:00",
	}
}

// Load reads an optional .env file and overlays the environment on the
// defaults. A missing .env is not an error.
func Load(envFiles ...string) (RuntimeConfig, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return RuntimeConfig{}, fmt.Errorf("config: load env file: %w", err)
	}
	return RuntimeConfigFromEnv(DefaultRuntimeConfig()), nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TODOD_DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v, ok := getEnvString("TODOD_DB_DRIVER"); ok {
		cfg.DBDriver = v
	}
	if v, ok := getEnvString("TODOD_DB_DSN"); ok {
		cfg.DBDSN = v
	}
	if v, ok := getEnvString("TODOD_HTTP_ADDR"); ok {
		cfg.HTTPAddr = v
	}
	if v, ok := getEnvString("TODOD_API_URL"); ok {
		cfg.APIURL = strings.TrimRight(v, "/")
	}
	if v, ok := getEnvString("TODOD_JWT_SECRET"); ok {
		cfg.JWTSecret = v
	}
	if v, ok := getEnvInt("TODOD_TOKEN_TTL_HOURS"); ok && v > 0 {
		cfg.TokenTTL = time.Duration(v) * time.Hour
	}
	if v, ok := getEnvString("TODOD_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("TODOD_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvBool("TODOD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("TODOD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvString("TODOD_REMINDER_TIME"); ok {
		if _, err := time.Parse("15:04", v); err == nil {
			cfg.ReminderClock = v
		}
	}
	return cfg
}

// DSN falls back to a database file in the data dir for the sqlite drivers.
func (c RuntimeConfig) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	return filepath.Join(c.DataDir, "todod.db")
}

func (c RuntimeConfig) SessionPath() string {
	return filepath.Join(c.DataDir, "userSession.json")
}

func (c RuntimeConfig) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "todod.log")
}

// RemoteMode reports whether task data comes from a todod HTTP server.
func (c RuntimeConfig) RemoteMode() bool {
	return c.APIURL != ""
}

// Secret returns the signing key, creating and persisting one in the data
// dir the first time when none is configured.
func (c RuntimeConfig) Secret() ([]byte, error) {
	if c.JWTSecret != "" {
		return []byte(c.JWTSecret), nil
	}
	path := filepath.Join(c.DataDir, "jwt.secret")
	raw, err := os.ReadFile(path)
	if err == nil && len(strings.TrimSpace(string(raw))) > 0 {
		return []byte(strings.TrimSpace(string(raw))), nil
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: read secret: %w", err)
	}
	secret, err := randomSecret()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(c.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("config: create data dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(secret+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("config: write secret: %w", err)
	}
	return []byte(secret), nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
