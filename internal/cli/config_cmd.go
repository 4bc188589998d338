package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = LeafCommand{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfig(cmd, appConfig)
	},
}.Build()

func runConfig(cmd *cobra.Command, cfg *Config) error {
	l, err := cfg.Provider()
	if err != nil {
		return err
	}

	clock := "12-hour"
	if l.Prefer24Hour() {
		clock = "24-hour"
	}
	if cfg.Prefer24Hour == nil {
		clock += " (culture default)"
	}

	file := cfg.File
	if file == "" {
		file = "none"
	}

	w := cmd.OutOrStdout()
	rows := [][2]string{
		{"locale", l.Name()},
		{"clock", clock},
		{"log level", cfg.LogLevel},
		{"data dir", cfg.DataDir},
		{"config file", file},
	}
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%-12s %s\n", Silent(row[0]), Text(row[1]))
	}
	return nil
}
