package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	orig := dotenvFiles
	dotenvFiles = nil
	t.Cleanup(func() { dotenvFiles = orig })
	for _, k := range []string{EnvAPIURL, EnvDBPath, EnvClipboardClear, EnvMinPasswordScore, EnvExportDir, EnvVerbose} {
		t.Setenv(k, "")
	}
}

func fixedHome(t *testing.T, home string) {
	t.Helper()
	orig := userHomeDir
	t.Cleanup(func() { userHomeDir = orig })
	userHomeDir = func() (string, error) { return home, nil }
}

func writeJSON(t *testing.T, v any) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(p, b, 0o600))
	return p
}

func TestLoadDefaults(t *testing.T) {
	fixedHome(t, "/home/me")

	var c Config
	c.LoadDefaults()

	want := Config{
		ServerEndpointAddr:  "127.0.0.1:50051",
		DatabasePath:        filepath.Join("/home/me", ".zkvault", "vault.db"),
		ClipboardClearDelay: 30 * time.Second,
		MinPasswordScore:    3,
		ExportDir:           ".",
	}
	assert.Empty(t, cmp.Diff(want, c))
}

func TestLoadDefaults_NoHome(t *testing.T) {
	orig := userHomeDir
	t.Cleanup(func() { userHomeDir = orig })
	userHomeDir = func() (string, error) { return "", errors.New("no home") }

	var c Config
	c.LoadDefaults()
	assert.Equal(t, filepath.Join(".zkvault", "vault.db"), c.DatabasePath)
}

func TestLoadConfig_ReturnsCommand(t *testing.T) {
	isolateEnv(t)
	fixedHome(t, "/home/me")

	cfg, rest, err := LoadConfig([]string{"-a", "vault:9000", "-v", "get", "github", "-copy"})
	require.NoError(t, err)
	assert.Equal(t, "vault:9000", cfg.ServerEndpointAddr)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, []string{"get", "github", "-copy"}, rest)
}

func TestLoadConfig_Precedence(t *testing.T) {
	isolateEnv(t)
	fixedHome(t, "/home/me")

	p := writeJSON(t, map[string]any{
		"server_endpoint_addr":  "json:1",
		"database_path":         "/json/vault.db",
		"clipboard_clear_delay": "1500ms",
		"min_password_score":    0,
		"export_dir":            "/json/out",
	})
	t.Setenv(EnvDBPath, "/env/vault.db")
	t.Setenv(EnvExportDir, "/env/out")

	cfg, rest, err := LoadConfig([]string{"-c", p, "-o", "/flag/out", "list"})
	require.NoError(t, err)
	assert.Equal(t, []string{"list"}, rest)

	assert.Equal(t, "json:1", cfg.ServerEndpointAddr)
	assert.Equal(t, "/env/vault.db", cfg.DatabasePath)
	assert.Equal(t, "/flag/out", cfg.ExportDir)
	assert.Equal(t, 1500*time.Millisecond, cfg.ClipboardClearDelay, "unset -k keeps sub-second values")
	assert.Equal(t, 0, cfg.MinPasswordScore, "explicit zero in json is kept")
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "unknown flag", args: []string{"-z"}},
		{name: "bad int flag", args: []string{"-m", "high"}},
		{name: "score out of range", args: []string{"-m", "7"}},
		{name: "missing config file", args: []string{"-c", "/does/not/exist.json"}},
		{name: "bad env score", env: map[string]string{EnvMinPasswordScore: "x"}},
		{name: "bad env clear", env: map[string]string{EnvClipboardClear: "soon"}},
		{name: "bad env verbose", env: map[string]string{EnvVerbose: "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, _, err := LoadConfig(tt.args)
			require.Error(t, err)
		})
	}
}

func TestParseEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv(EnvAPIURL, "env:1")
	t.Setenv(EnvClipboardClear, "45")
	t.Setenv(EnvMinPasswordScore, "4")
	t.Setenv(EnvVerbose, "true")

	var c Config
	require.NoError(t, parseEnv(&c))
	assert.Equal(t, "env:1", c.ServerEndpointAddr)
	assert.Equal(t, 45*time.Second, c.ClipboardClearDelay)
	assert.Equal(t, 4, c.MinPasswordScore)
	assert.True(t, c.Verbose)

	t.Setenv(EnvClipboardClear, "2m")
	require.NoError(t, parseEnv(&c))
	assert.Equal(t, 2*time.Minute, c.ClipboardClearDelay)
}

func TestParseEnv_Dotenv(t *testing.T) {
	isolateEnv(t)
	os.Unsetenv(EnvExportDir)
	t.Cleanup(func() { os.Unsetenv(EnvExportDir) })

	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("VAULT_EXPORT_DIR=/dotenv/out\n"), 0o600))
	dotenvFiles = []string{p}

	var c Config
	require.NoError(t, parseEnv(&c))
	assert.Equal(t, "/dotenv/out", c.ExportDir)
}

func TestLeadingFlags(t *testing.T) {
	tests := []struct {
		in, want []string
	}{
		{[]string{"-c", "x.json", "list"}, []string{"-c", "x.json"}},
		{[]string{"-v", "-c=x.json", "get", "-c", "y"}, []string{"-v", "-c=x.json"}},
		{[]string{"list", "-c", "x"}, []string{}},
		{[]string{"-a", "h:1"}, []string{"-a", "h:1"}},
	}
	for _, tt := range tests {
		assert.Empty(t, cmp.Diff(tt.want, leadingFlags(tt.in)), tt.in)
	}
}

func TestParseJson_Invalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(p, []byte("{nope"), 0o600))
	require.Error(t, parseJson(&Config{}, []string{"-config", p}))
}
