package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, dir string, content map[string]any) string {
	t.Helper()
	data, err := yaml.Marshal(content)
	require.NoError(t, err)

	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err, "explicit missing file is an error")

	cfg, err = LoadFromDir(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultSessionPath, cfg.Session.Path)
	assert.Equal(t, 80, cfg.Matcher.AutoMapThreshold)
	assert.False(t, cfg.Validation.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, map[string]any{
		"prompts": map[string]any{
			"system": "You analyze sales data.",
			"user":   "Summarize {{Region}} trends",
		},
		"validation": map[string]any{
			"enabled":    true,
			"expression": "GetSelectedCount(Customer)=1",
			"message":    "Select exactly one customer.",
		},
		"server": map[string]any{"port": 9000},
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Summarize {{Region}} trends", cfg.Prompts.User)
	assert.True(t, cfg.Validation.Enabled)
	assert.Equal(t, "GetSelectedCount(Customer)=1", cfg.Validation.Expression)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 80, cfg.Matcher.AutoMapThreshold, "defaults still apply")
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, map[string]any{
		"validation": map[string]any{"enabled": true, "expression": "GetSelectedCount(A)=1"},
	})

	t.Setenv("PROMPTFIELD_VALIDATION__EXPRESSION", "GetSelectedCount(B)=1")
	t.Setenv("PROMPTFIELD_SERVER__PORT", "7777")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "GetSelectedCount(B)=1", cfg.Validation.Expression)
	assert.Equal(t, 7777, cfg.Server.Port)
}

func TestFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, map[string]any{
		"server": map[string]any{"port": 9000},
	})
	t.Setenv("PROMPTFIELD_SERVER__PORT", "7777")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 0, "")
	flags.Bool("verbose", false, "")
	flags.String("table", "", "")
	require.NoError(t, flags.Parse([]string{"--port", "8888", "--verbose", "--table", "sales.csv"}))

	cfg, err := LoadWithFlags(path, flags)
	require.NoError(t, err)

	assert.Equal(t, 8888, cfg.Server.Port, "flags beat env and file")
	assert.True(t, cfg.Verbose)
}

func TestFlagsUnsetDoNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, map[string]any{
		"server": map[string]any{"port": 9000},
	})

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 0, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadWithFlags(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, map[string]any{"verbose": true})

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
}
