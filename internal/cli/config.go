package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Flyrell/hourglass/internal/locale"
)

const envPrefix = "HOURGLASS"

// Config is the effective CLI configuration after flags, environment and
// the config file are merged, in that order of precedence.
type Config struct {
	Locale string
	// Prefer24Hour overrides the culture's clock preference when set.
	Prefer24Hour *bool
	LogLevel     string
	DataDir      string
	// File is the config file that was read, or "" when there was none.
	File string
}

// configFlags maps config keys to the persistent flags that override them.
var configFlags = map[string]string{
	"locale":         "locale",
	"prefer_24_hour": "24h",
	"log_level":      "log-level",
	"data_dir":       "data-dir",
}

func registerConfigFlags(flags *pflag.FlagSet) {
	flags.StringP("locale", "l", "", "culture used to read and display timer inputs (e.g. en-GB)")
	flags.Bool("24h", false, "read bare hours and display times on a 24-hour clock")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("data-dir", "", "directory holding config.yaml and recent inputs (default ~/.hourglass)")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hourglass"
	}
	return filepath.Join(home, ".hourglass")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// loadConfig resolves the configuration. The data directory is resolved
// first because the config file lives inside it.
func loadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("locale", locale.Default().Name())
	v.SetDefault("log_level", "warn")
	v.SetDefault("data_dir", defaultDataDir())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, name := range configFlags {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, err
		}
	}

	dataDir := expandHome(v.GetString("data_dir"))

	v.SetConfigName("config")
	v.AddConfigPath(dataDir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Locale:   v.GetString("locale"),
		LogLevel: strings.ToLower(v.GetString("log_level")),
		DataDir:  dataDir,
		File:     v.ConfigFileUsed(),
	}
	if v.IsSet("prefer_24_hour") {
		prefer := v.GetBool("prefer_24_hour")
		cfg.Prefer24Hour = &prefer
	}
	return cfg, nil
}

// Provider returns the configured culture with the clock override applied.
func (c *Config) Provider() (*locale.Locale, error) {
	l, err := locale.Lookup(c.Locale)
	if err != nil {
		return nil, err
	}
	if c.Prefer24Hour != nil {
		l = l.WithPrefer24Hour(*c.Prefer24Hour)
	}
	return l, nil
}
