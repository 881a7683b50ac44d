package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvAPIURL           = "VAULT_API_URL"
	EnvDBPath           = "VAULT_DB_PATH"
	EnvClipboardClear   = "VAULT_CLIPBOARD_CLEAR"
	EnvMinPasswordScore = "VAULT_MIN_PASSWORD_SCORE"
	EnvExportDir        = "VAULT_EXPORT_DIR"
	EnvVerbose          = "VAULT_VERBOSE"
)

var dotenvFiles = []string{".env"}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	return v, ok && v != ""
}

// parseEnv overlays cfg with VAULT_* variables. VAULT_CLIPBOARD_CLEAR is
// either a number of seconds or a Go duration.
func parseEnv(cfg *Config) error {
	for _, f := range dotenvFiles {
		_ = godotenv.Load(f)
	}

	if v, ok := lookup(EnvAPIURL); ok {
		cfg.ServerEndpointAddr = v
	}
	if v, ok := lookup(EnvDBPath); ok {
		cfg.DatabasePath = v
	}
	if v, ok := lookup(EnvExportDir); ok {
		cfg.ExportDir = v
	}
	if v, ok := lookup(EnvClipboardClear); ok {
		d, err := parseSeconds(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvClipboardClear, err)
		}
		cfg.ClipboardClearDelay = d
	}
	if v, ok := lookup(EnvMinPasswordScore); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMinPasswordScore, err)
		}
		cfg.MinPasswordScore = n
	}
	if v, ok := lookup(EnvVerbose); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerbose, err)
		}
		cfg.Verbose = b
	}
	return nil
}

func parseSeconds(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}
