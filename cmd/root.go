package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	timeout time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "tlint [paths...]",
	Short:            "tlint - lint testing-library queries in JavaScript/TypeScript tests",
	TraverseChildren: true, // Prioritize subcommands
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'tlint' is entered
			_ = cmd.Help()
			return
		}
		// Format: tlint [path1 path2 ...] => behaves like the lint subcommand
		lintCmd.Run(lintCmd, args)
	},
}

func Execute() error {
	defer func() { _ = logger.Sync() }()
	return rootCmd.Execute()
}

func init() {
	logger, _ = zap.NewProduction()

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", ".tlint.yaml", "Configuration file path")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 5*time.Minute, "Timeout for the linter")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(fixCmd)
}
