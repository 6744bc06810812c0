// Package main provides the CLI entry point for gradebook-go.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/gradebook-go/internal/logger"
	"github.com/ukaji3/gradebook-go/pkg/gradebook/config"
)

var (
	configPath string
	logLevel   string
	logFormat  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gradebook",
		Short: "Convert grade workbooks to JSON and look up student records",
		Long: `gradebook-go reads every sheet of a grade workbook (.xlsx), merges the rows
into one JSON document keyed by student identifier, and serves lookups on it.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(logger.Options{
				Level:  logLevel,
				Format: logFormat,
				Writer: cmd.ErrOrStderr(),
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format: console or json")

	rootCmd.AddCommand(newConvertCmd(), newLookupCmd(), newServeCmd())
	return rootCmd
}

// loadConfig returns the config file named by --config, or the defaults.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(configPath)
}
