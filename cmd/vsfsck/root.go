// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vsfsck/vsfsck/pkg/checker"
)

var (
	flagFix     bool
	flagVerbose bool
)

// newRootCmd builds the single root command: one positional argument (the
// image path), one optional --fix flag. Any other argument shape is
// rejected by cobra's Args check before RunE runs, which prints a usage
// line to stderr and returns a non-nil error — main.go maps that to exit
// code 1.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "vsfsck <image>",
		Short:         "Check and repair a VSFS image",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Past this point argument parsing has succeeded; a failure
			// from here on is operational (I/O, size, allocation), not a
			// usage error, so don't print usage for it.
			cmd.SilenceUsage = true

			if flagVerbose {
				logrus.SetLevel(logrus.DebugLevel)
			}

			return runCheck(cmd.OutOrStdout(), args[0], flagFix)
		},
	}

	cmd.Flags().BoolVar(&flagFix, "fix", false, "repair inconsistencies found in the image")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "log internal debug detail to stderr")

	return cmd
}

// runCheck opens path for read+write, runs the driver, and writes the
// diagnostics stream to out. It returns an error for every fatal condition
// (open failure, size mismatch, read failure); structural findings are
// never errors, they are written to out as part of the diagnostics stream.
func runCheck(out io.Writer, path string, fix bool) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("failed to open image %q: %w", path, err)
	}
	defer f.Close()

	result, err := checker.Run(f, fix)
	if err != nil {
		return err
	}

	checker.WriteDiagnostics(out, result.Initial)
	checker.WriteSummary(out, result.Initial, false)

	if result.PostFix != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "=== Post-Fix Verification ===")
		checker.WriteDiagnostics(out, result.PostFix)
		checker.WriteSummary(out, result.PostFix, true)
	}

	return nil
}
