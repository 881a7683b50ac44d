package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultServerEndpointAddr  = "127.0.0.1:50051"
	DefaultClipboardClearDelay = 30 * time.Second
	DefaultMinPasswordScore    = 3
	DefaultDatabaseFile        = "vault.db"
	appDir                     = ".zkvault"
)

// Config holds runtime settings for the vault CLI.
type Config struct {
	ServerEndpointAddr  string
	DatabasePath        string
	ClipboardClearDelay time.Duration
	MinPasswordScore    int
	ExportDir           string
	Verbose             bool
}

var userHomeDir = os.UserHomeDir

// LoadDefaults populates c with defaults. The database lives under
// ~/.zkvault, or the working directory when no home is known.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = DefaultServerEndpointAddr
	c.ClipboardClearDelay = DefaultClipboardClearDelay
	c.MinPasswordScore = DefaultMinPasswordScore
	c.ExportDir = "."
	c.Verbose = false

	if home, err := userHomeDir(); err == nil && home != "" {
		c.DatabasePath = filepath.Join(home, appDir, DefaultDatabaseFile)
	} else {
		c.DatabasePath = filepath.Join(appDir, DefaultDatabaseFile)
	}
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.ServerEndpointAddr == "" {
		return fmt.Errorf("server address is empty")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is empty")
	}
	if c.MinPasswordScore < 0 || c.MinPasswordScore > 4 {
		return fmt.Errorf("min password score must be between 0 and 4, got %d", c.MinPasswordScore)
	}
	if c.ClipboardClearDelay < 0 {
		return fmt.Errorf("clipboard clear delay must not be negative")
	}
	return nil
}

// LoadConfig builds a Config from args (without the program name) and the
// environment. It returns the arguments left after the flags: the command
// and its own arguments.
func LoadConfig(args []string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, nil, err
	}
	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, rest, nil
}
