package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"roundtrip-verifier/internal/audit"
)

func newHistoryCmd() *cobra.Command {
	var auditDB string

	cmd := &cobra.Command{
		Use:   "history [RUN_ID]",
		Short: "List recorded suite runs, or the mapping failures of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := audit.Open(auditDB)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if len(args) == 0 {
				runs, err := store.Runs(cmd.Context())
				if err != nil {
					return err
				}

				for _, r := range runs {
					fmt.Fprintf(out, "%s %s %s total=%d passed=%d failed=%d skipped=%d errors=%d\n",
						r.ID, r.RecordedAt.Format("2006-01-02T15:04:05"), r.Manifest,
						r.Total, r.Passed, r.Failed, r.Skipped, r.Errors)
				}

				return nil
			}

			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid run id %q: %w", args[0], err)
			}

			failures, err := store.Failures(cmd.Context(), id)
			if err != nil {
				return err
			}

			for _, f := range failures {
				fmt.Fprintf(out, "%s: Failed to map: %s ---> %s\n", f.Case, f.Path, f.Value)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&auditDB, "audit-db", "", "SQLite database holding recorded runs (required)")
	_ = cmd.MarkFlagRequired("audit-db")

	return cmd
}
