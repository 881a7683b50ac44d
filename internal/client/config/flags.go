package config

import (
	"flag"
	"io"
	"strings"
	"time"
)

// leadingFlags returns the part of args before the first non-flag token,
// i.e. the global flags preceding the command.
func leadingFlags(args []string) []string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" || !strings.HasPrefix(a, "-") {
			return args[:i]
		}
		if strings.Contains(a, "=") || a == "-v" || a == "--v" {
			continue
		}
		i++
	}
	return args
}

// parseFlags applies global flags and returns the remaining arguments.
//
// Supported flags (short forms):
//
//	-a string   server address
//	-d string   local database path
//	-k int      clipboard clear delay, seconds
//	-m int      minimum master password score (0-4)
//	-o string   export directory
//	-v          verbose logging
//	-c/-config  JSON config file (read by parseJson)
func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("vault", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the vault server")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	clearSecs := fs.Int("k", int(cfg.ClipboardClearDelay/time.Second), "clipboard clear delay (in seconds)")
	fs.IntVar(&cfg.MinPasswordScore, "m", cfg.MinPasswordScore, "minimum master password score (0-4)")
	fs.StringVar(&cfg.ExportDir, "o", cfg.ExportDir, "directory for exports")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	var ignored string
	fs.StringVar(&ignored, "c", "", "path to config file")
	fs.StringVar(&ignored, "config", "", "path to config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "k" {
			cfg.ClipboardClearDelay = time.Duration(*clearSecs) * time.Second
		}
	})
	return fs.Args(), nil
}
