package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/zkvault/internal/flagx"
	"github.com/dmitrijs2005/zkvault/internal/timex"
)

// JsonConfig is the on-disk shape of the CLI config file. Pointer fields
// tell "absent" apart from a zero value.
type JsonConfig struct {
	ServerEndpointAddr  string          `json:"server_endpoint_addr"`
	DatabasePath        string          `json:"database_path"`
	ClipboardClearDelay *timex.Duration `json:"clipboard_clear_delay"`
	MinPasswordScore    *int            `json:"min_password_score"`
	ExportDir           string          `json:"export_dir"`
	Verbose             *bool           `json:"verbose"`
}

// parseJson overlays cfg with the file named by -c/-config in args, if any.
// Only flags before the command are considered.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(leadingFlags(args))
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.ClipboardClearDelay != nil {
		cfg.ClipboardClearDelay = jc.ClipboardClearDelay.Duration
	}
	if jc.MinPasswordScore != nil {
		cfg.MinPasswordScore = *jc.MinPasswordScore
	}
	if jc.ExportDir != "" {
		cfg.ExportDir = jc.ExportDir
	}
	if jc.Verbose != nil {
		cfg.Verbose = *jc.Verbose
	}
	return nil
}
