package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfigFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("hourglass", pflag.ContinueOnError)
	registerConfigFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := loadConfig(newConfigFlags(t, "--data-dir", dir))

	require.NoError(t, err)
	assert.Equal(t, "en-US", cfg.Locale)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Nil(t, cfg.Prefer24Hour)
	assert.Empty(t, cfg.File)
}

func TestLoadConfigFlags(t *testing.T) {
	cfg, err := loadConfig(newConfigFlags(t, "--data-dir", t.TempDir(), "-l", "en-GB", "--24h", "--log-level", "DEBUG"))

	require.NoError(t, err)
	assert.Equal(t, "en-GB", cfg.Locale)
	assert.Equal(t, "debug", cfg.LogLevel)
	require.NotNil(t, cfg.Prefer24Hour)
	assert.True(t, *cfg.Prefer24Hour)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("HOURGLASS_LOCALE", "en-AU")
	t.Setenv("HOURGLASS_PREFER_24_HOUR", "false")

	cfg, err := loadConfig(newConfigFlags(t, "--data-dir", t.TempDir()))

	require.NoError(t, err)
	assert.Equal(t, "en-AU", cfg.Locale)
	require.NotNil(t, cfg.Prefer24Hour)
	assert.False(t, *cfg.Prefer24Hour)
}

func TestLoadConfigFile(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{"yaml", "config.yaml", "locale: en-CA\nlog_level: info\nprefer_24_hour: true\n"},
		{"toml", "config.toml", "locale = \"en-CA\"\nlog_level = \"info\"\nprefer_24_hour = true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0644))

			cfg, err := loadConfig(newConfigFlags(t, "--data-dir", dir))

			require.NoError(t, err)
			assert.Equal(t, "en-CA", cfg.Locale)
			assert.Equal(t, "info", cfg.LogLevel)
			assert.Equal(t, path, cfg.File)
			require.NotNil(t, cfg.Prefer24Hour)
			assert.True(t, *cfg.Prefer24Hour)
		})
	}
}

func TestLoadConfigFlagBeatsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("locale: en-CA\n"), 0644))

	cfg, err := loadConfig(newConfigFlags(t, "--data-dir", dir, "--locale", "en-IE"))

	require.NoError(t, err)
	assert.Equal(t, "en-IE", cfg.Locale)
}

func TestLoadConfigBrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("locale: [\n"), 0644))

	_, err := loadConfig(newConfigFlags(t, "--data-dir", dir))

	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "timers"), expandHome("~/timers"))
	assert.Equal(t, home, expandHome("~"))
	assert.Equal(t, "/tmp/x", expandHome("/tmp/x"))
}

func TestConfigProvider(t *testing.T) {
	on := true
	l, err := (&Config{Locale: "en_gb", Prefer24Hour: &on}).Provider()
	require.NoError(t, err)
	assert.Equal(t, "en-GB", l.Name())
	assert.True(t, l.Prefer24Hour())

	_, err = (&Config{Locale: "xx-XX"}).Provider()
	assert.Error(t, err)
}

func execConfig(cfg *Config) (string, error) {
	stdout := new(bytes.Buffer)
	cmd := configCmd
	cmd.SetOut(stdout)

	err := runConfig(cmd, cfg)
	return stdout.String(), err
}

func TestConfigCommand(t *testing.T) {
	stdout, err := execConfig(&Config{Locale: "en-ZA", LogLevel: "warn", DataDir: "/data"})

	require.NoError(t, err)
	assert.Contains(t, stdout, "en-ZA")
	assert.Contains(t, stdout, "24-hour (culture default)")
	assert.Contains(t, stdout, "/data")
	assert.Contains(t, stdout, "none")
}

func TestConfigCommandUnknownLocale(t *testing.T) {
	_, err := execConfig(&Config{Locale: "tlh"})

	assert.Error(t, err)
}
