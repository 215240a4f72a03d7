// Package main provides journalctl, a command line client for the Cura
// mood journal. It reads the same environment as the HTTP service.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/curahealth/cura/backend/go-services/internal/commands"
	"github.com/curahealth/cura/backend/go-services/pkg/logger"
)

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "journalctl",
		Short: "Read and append Cura journal entries",
		Long: `journalctl appends to and prints the Cura mood journal.

The storage backend and key come from the same JOURNAL_* environment
variables (or .env file) the journal service uses.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// stdout is reserved for command output
			logger.SetOutput(zapcore.Lock(os.Stderr))
			logger.Init(logLevel)
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "warn"), "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(commands.NewAddCommand(commands.OpenFromConfig))
	rootCmd.AddCommand(commands.NewListCommand(commands.OpenFromConfig))
	rootCmd.AddCommand(commands.NewMoodsCommand())

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
