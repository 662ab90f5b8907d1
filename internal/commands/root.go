package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/cashflow/internal/buildinfo"
	"github.com/cleared-dev/cashflow/internal/logger"
)

const (
	flagLogLevel = "log-level"
	flagLogJSON  = "log-json"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var logLevel string
	var logJSON bool

	rootCmd := &cobra.Command{
		Use:     "cashflow",
		Short:   "Personal cash flow analysis from bank statement exports",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setLogger(cmd, logLevel, logJSON)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, flagLogLevel, "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, flagLogJSON, false, "write logs as JSON lines")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newCategorizeCommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newForecastCommand())

	return rootCmd
}

// setLogger stores a logger writing to the command's stderr in its context.
func setLogger(cmd *cobra.Command, level string, json bool) {
	l := logger.New(cmd.ErrOrStderr(), level, json)
	cmd.SetContext(logger.WithContext(cmd.Context(), l))
}

// flagChanged reports whether a root persistent flag was set on the command line.
func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Root().PersistentFlags().Lookup(name)
	return f != nil && f.Changed
}
