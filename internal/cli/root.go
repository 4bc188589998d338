package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Flyrell/hourglass/internal/parsing"
)

// State shared by every command, set up before a command runs.
var (
	appConfig = &Config{Locale: "en-US", LogLevel: "warn", DataDir: defaultDataDir()}
	appLogger = zap.NewNop()
	appParser = parsing.NewParser()
)

var rootCmd = &cobra.Command{
	Use:   "hourglass",
	Short: "Read natural-language timer inputs like \"10m\" or \"next friday at 5pm\"",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = appLogger.Sync()
	},
}

func init() {
	registerConfigFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(localesCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	appConfig = cfg
	appLogger = logger
	appParser = parsing.NewParser(parsing.WithLogger(logger))

	logger.Debug("configuration loaded",
		zap.String("locale", cfg.Locale),
		zap.String("data_dir", cfg.DataDir),
		zap.String("config_file", cfg.File),
	)
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}
