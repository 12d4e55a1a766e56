package main

import (
	"github.com/spf13/cobra"

	"roundtrip-verifier/internal/logger"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "roundtrip-verifier",
		Short: "Verify that wire documents survive a round trip through the canonical model",
		PersistentPreRun: func(*cobra.Command, []string) {
			logger.Level.SetByName(logLevel)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: error, warn, info, debug or off")

	cmd.AddCommand(newCheckCmd(), newSuiteCmd(), newHistoryCmd(), newExceptionsCmd())

	return cmd
}
