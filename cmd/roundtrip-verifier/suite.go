package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"roundtrip-verifier/internal/audit"
	"roundtrip-verifier/internal/logger"
	"roundtrip-verifier/internal/suite"
)

func newSuiteCmd() *cobra.Command {
	var (
		workers int
		auditDB string
	)

	cmd := &cobra.Command{
		Use:   "suite MANIFEST",
		Short: "Run a manifest of round-trip cases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := suite.LoadManifest(args[0])
			if err != nil {
				return err
			}

			r := &suite.Runner{Workers: workers, Logger: logger.New().With("component", "suite")}

			summary, err := r.Run(cmd.Context(), m)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, c := range summary.Cases {
				failed := 0
				if c.Report != nil {
					failed = c.Report.Counts().Failed
				}

				fmt.Fprintf(out, "%-8s %s failures=%d expected=%d\n", c.Status, c.Name, failed, c.ExpectedFailures)
			}

			for _, d := range summary.Diagnostics.All() {
				fmt.Fprintln(out, d.String())
			}

			if auditDB != "" {
				if err := recordRun(cmd, auditDB, summary); err != nil {
					return err
				}
			}

			if !summary.OK() {
				return fmt.Errorf("%w: %d failed, %d errors: %w", errNotReconciled,
					summary.Count(suite.StatusFailed), summary.Count(suite.StatusError), summary.Diagnostics.Error())
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "maximum concurrent cases (0 means unbounded)")
	cmd.Flags().StringVar(&auditDB, "audit-db", "", "SQLite database to record the run in")

	return cmd
}

func recordRun(cmd *cobra.Command, dsn string, summary *suite.Summary) error {
	store, err := audit.Open(dsn)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(cmd.Context()); err != nil {
		return err
	}

	id, err := store.RecordRun(cmd.Context(), summary)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "recorded run %s\n", id)

	return nil
}
