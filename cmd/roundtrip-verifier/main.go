// Package main provides the CLI entrypoint for roundtrip-verifier.
//
// roundtrip-verifier checks that a wire document survives ingestion into the
// canonical model and projection back out:
//   - check reconciles one original/projected pair and prints the report
//   - suite runs a manifest of cases and optionally records the run
//   - history lists recorded runs and their mapping failures
//   - exceptions scaffold writes a config accepting the current failures
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Exit codes.
const (
	exitOK        = 0
	exitMismatch  = 1
	exitUsageOrIO = 2
)

// errNotReconciled is returned when verification ran but found failures.
var errNotReconciled = errors.New("round trip not reconciled")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	code := exitCode(err)

	if code == exitUsageOrIO {
		fmt.Fprintln(os.Stderr, "error:", err)
	}

	stop()
	os.Exit(code)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errNotReconciled):
		return exitMismatch
	default:
		return exitUsageOrIO
	}
}
