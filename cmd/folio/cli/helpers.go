package cli

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/foliohq/folio/internal/service"
	"github.com/foliohq/folio/internal/store"
)

// dataDir holds the --data-dir persistent flag value (set on root command).
var dataDir string

// resolveDataDir returns the data directory from --data-dir flag,
// FOLIO_DATA_DIR env var, the config file, or ~/.folio as fallback.
func resolveDataDir() string {
	if dataDir != "" {
		return dataDir
	}
	if envDir := os.Getenv("FOLIO_DATA_DIR"); envDir != "" {
		return envDir
	}
	if cfgDir := viper.GetString("storage.data_dir"); cfgDir != "" {
		return cfgDir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".folio")
}

// openStore opens the configured database: SQLite under the data directory
// unless storage.driver selects postgres or mysql.
func openStore() (*store.Store, error) {
	return store.New(store.Options{
		Driver:  viper.GetString("storage.driver"),
		DSN:     viper.GetString("storage.dsn"),
		DataDir: resolveDataDir(),
	})
}

// authConfig assembles the auth service configuration from viper. Zero
// values fall back to the service defaults.
func authConfig() service.Config {
	return service.Config{
		JWTSecret:        viper.GetString("auth.jwt_secret"),
		TokenTTL:         viper.GetDuration("auth.token_ttl"),
		MaxLoginAttempts: viper.GetInt("auth.max_login_attempts"),
		LockoutDuration:  viper.GetDuration("auth.lockout_duration"),
	}
}

// allowlistEntries returns the configured admin allowlist entries. Accepts
// either a YAML list or a comma-separated string (the env-var form), so each
// element is split again on commas.
func allowlistEntries() []string {
	var entries []string
	for _, raw := range viper.GetStringSlice("auth.admin_allowlist") {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				entries = append(entries, part)
			}
		}
	}
	return entries
}

// newLogger builds the process logger honoring logging.level.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose || strings.EqualFold(viper.GetString("logging.level"), "debug") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
