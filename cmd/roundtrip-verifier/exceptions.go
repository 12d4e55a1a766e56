package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"roundtrip-verifier/internal/document"
	"roundtrip-verifier/internal/exception"
	"roundtrip-verifier/internal/path"
	"roundtrip-verifier/internal/reconcile"
)

type scaffoldOptions struct {
	original   string
	projected  string
	exceptions string
	out        string
}

func newExceptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exceptions",
		Short: "Maintain exception configs",
	}

	cmd.AddCommand(newScaffoldCmd())

	return cmd
}

func newScaffoldCmd() *cobra.Command {
	var opts scaffoldOptions

	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Write an exception config that accepts the current mapping failures",
		Long: `Reconcile one original document against its projection and record every
failed path as expected_unmapped. Entries of an existing config passed with
--exceptions are kept, so the command can be rerun as the mapper evolves.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScaffold(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.original, "original", "", "original wire document (required)")
	f.StringVar(&opts.projected, "projected", "", "projected wire document (required)")
	f.StringVar(&opts.exceptions, "exceptions", "", "existing exception config to extend")
	f.StringVar(&opts.out, "out", "", "file to write (stdout when empty)")

	_ = cmd.MarkFlagRequired("original")
	_ = cmd.MarkFlagRequired("projected")

	return cmd
}

func runScaffold(cmd *cobra.Command, opts scaffoldOptions) error {
	cfg := &exception.Config{Version: "1"}

	if opts.exceptions != "" {
		loaded, err := exception.LoadFile(opts.exceptions)
		if err != nil {
			return err
		}

		cfg = loaded
	}

	expected, excluded, err := cfg.Sets()
	if err != nil {
		return fmt.Errorf("invalid exception config %s: %w", opts.exceptions, err)
	}

	original, err := document.LoadLeaves(opts.original)
	if err != nil {
		return err
	}

	projected, err := document.LoadLeaves(opts.projected)
	if err != nil {
		return err
	}

	rep := reconcile.ReconcileWith(original, projected, reconcile.Policy{
		ExpectedUnmapped: expected,
		Excluded:         excluded,
	})

	paths := expected.Paths()
	for _, f := range rep.Failures() {
		paths = append(paths, f.Path)
	}

	cfg.ExpectedUnmapped = sortedUnique(paths)

	if opts.out != "" {
		if err := exception.WriteFile(cfg, opts.out); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d expected_unmapped, %d new\n",
			opts.out, len(cfg.ExpectedUnmapped), rep.Counts().Failed)

		return nil
	}

	data, err := exception.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal exception config: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}

func sortedUnique(paths []path.Path) []string {
	path.Sort(paths)

	out := make([]string, 0, len(paths))
	for i, p := range paths {
		if i > 0 && p.Equal(paths[i-1]) {
			continue
		}

		out = append(out, p.String())
	}

	return out
}
