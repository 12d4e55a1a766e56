package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"roundtrip-verifier/internal/document"
	"roundtrip-verifier/internal/exception"
	"roundtrip-verifier/internal/match"
	"roundtrip-verifier/internal/projection"
	"roundtrip-verifier/internal/reconcile"
)

type checkOptions struct {
	original   string
	projected  string
	exceptions string
	ingestion  string
	showAdded  bool
	hints      bool
	format     string
}

func newCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Reconcile one original document against its projection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.original, "original", "", "original wire document (required)")
	f.StringVar(&opts.projected, "projected", "", "projected wire document (required)")
	f.StringVar(&opts.exceptions, "exceptions", "", "exception config YAML")
	f.StringVar(&opts.ingestion, "ingestion", "", "ingestion report YAML")
	f.BoolVar(&opts.showAdded, "show-added", false, "list paths present only in the projection")
	f.BoolVar(&opts.hints, "hints", false, "suggest where failed values reappear in the projection")
	f.StringVar(&opts.format, "format", "text", "output format: text or json")

	_ = cmd.MarkFlagRequired("original")
	_ = cmd.MarkFlagRequired("projected")

	return cmd
}

func runCheck(cmd *cobra.Command, opts checkOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	original, err := document.LoadLeaves(opts.original)
	if err != nil {
		return err
	}

	projected, err := document.LoadLeaves(opts.projected)
	if err != nil {
		return err
	}

	policy, err := loadPolicy(opts.exceptions, opts.ingestion)
	if err != nil {
		return err
	}

	rep := reconcile.ReconcileWith(original, projected, policy)

	out := cmd.OutOrStdout()
	if opts.format == "json" {
		err = rep.WriteJSON(out)
	} else {
		err = rep.WriteText(out, opts.showAdded)
	}

	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if opts.hints && opts.format == "text" {
		for _, r := range match.Relocations(rep, projected, match.DefaultMinScore) {
			fmt.Fprintf(out, "Possibly relocated: %s ---> %s (score %.2f)\n", r.From, r.To, r.Score)
		}
	}

	if !rep.IsFullyReconciled() {
		return fmt.Errorf("%w: %d mapping failures", errNotReconciled, rep.Counts().Failed)
	}

	return nil
}

func loadPolicy(exceptionsFile, ingestionFile string) (reconcile.Policy, error) {
	var policy reconcile.Policy

	if exceptionsFile != "" {
		cfg, err := exception.LoadFile(exceptionsFile)
		if err != nil {
			return policy, err
		}

		policy.ExpectedUnmapped, policy.Excluded, err = cfg.Sets()
		if err != nil {
			return policy, fmt.Errorf("invalid exception config %s: %w", exceptionsFile, err)
		}
	}

	if ingestionFile != "" {
		ing, err := projection.LoadIngestionReport(ingestionFile)
		if err != nil {
			return policy, err
		}

		expected, err := ing.ExpectedUnmapped()
		if err != nil {
			return policy, fmt.Errorf("invalid ingestion report %s: %w", ingestionFile, err)
		}

		excluded, err := ing.Excluded()
		if err != nil {
			return policy, fmt.Errorf("invalid ingestion report %s: %w", ingestionFile, err)
		}

		policy.ExpectedUnmapped = exception.Union(policy.ExpectedUnmapped, expected)
		policy.Excluded = exception.Union(policy.Excluded, excluded)
	}

	return policy, nil
}
