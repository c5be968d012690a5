// SPDX-License-Identifier: MPL-2.0

// Package checker implements the five VSFS consistency passes
// (SuperblockCheck, InodeBitmapCheck, DataBitmapCheck, DuplicateBlockCheck,
// BadBlockCheck) and the driver that sequences them, reads an image into a
// *vsfs.Image, optionally repairs it, and reports the result.
package checker

import (
	"fmt"
	"io"
)

// Diagnostic is one structural finding. It is a value, never an error: a
// pass accumulates diagnostics and returns, it never aborts on one.
type Diagnostic struct {
	// Message describes the inconsistency, citing the offending value and
	// the expected or conflicting one.
	Message string
	// Fix, if non-empty, describes the repair action taken. Set only when
	// the pass ran in repair mode and could act on this diagnostic.
	Fix string
}

// PassName identifies one of the five checker passes, in the fixed order
// the driver runs them.
type PassName string

const (
	PassSuperblock     PassName = "SuperblockCheck"
	PassInodeBitmap    PassName = "InodeBitmapCheck"
	PassDataBitmap     PassName = "DataBitmapCheck"
	PassDuplicateBlock PassName = "DuplicateBlockCheck"
	PassBadBlock       PassName = "BadBlockCheck"
)

// PassOrder is the fixed sequence the driver runs passes in. DataBitmapCheck
// must run before the two mutating passes so its reachability computation
// sees the image as loaded, not as partially repaired.
var PassOrder = []PassName{
	PassSuperblock,
	PassInodeBitmap,
	PassDataBitmap,
	PassDuplicateBlock,
	PassBadBlock,
}

// PassResult is one pass's outcome: whether it found anything wrong, and
// the diagnostics it produced in the order it produced them.
type PassResult struct {
	Name        PassName
	Valid       bool
	Diagnostics []Diagnostic
}

// Report accumulates the results of a single five-pass sweep and renders
// them in a fixed textual form: section headers, per-finding
// Error:/Fixing: lines, and a summary table.
type Report struct {
	Results []PassResult
}

// Add appends a pass's result to the report.
func (r *Report) Add(res PassResult) {
	r.Results = append(r.Results, res)
}

// Valid reports whether every pass in the report found no inconsistency.
func (r *Report) Valid() bool {
	for _, res := range r.Results {
		if !res.Valid {
			return false
		}
	}
	return true
}

// WriteDiagnostics writes one "=== <section> ===" block per pass with its
// Error:/Fixing: lines, in pass order.
func WriteDiagnostics(w io.Writer, r *Report) {
	for _, res := range r.Results {
		fmt.Fprintf(w, "=== %s ===\n", res.Name)
		if len(res.Diagnostics) == 0 {
			fmt.Fprintln(w, "No errors found.")
			continue
		}
		for _, d := range res.Diagnostics {
			fmt.Fprintf(w, "Error: %s\n", d.Message)
			if d.Fix != "" {
				fmt.Fprintf(w, "Fixing: %s\n", d.Fix)
			}
		}
	}
}

// WriteSummary writes the pass-by-pass Valid/Errors table and the overall
// verdict. remain selects the vocabulary used for a failing pass: "Errors
// found" on the initial sweep, "Errors remain" on the post-repair sweep.
func WriteSummary(w io.Writer, r *Report, remain bool) {
	fmt.Fprintln(w, "=== Summary ===")
	for _, res := range r.Results {
		status := "Valid"
		if !res.Valid {
			if remain {
				status = "Errors remain"
			} else {
				status = "Errors found"
			}
		}
		fmt.Fprintf(w, "%s: %s\n", res.Name, status)
	}

	if r.Valid() {
		fmt.Fprintln(w, "CONSISTENT")
	} else {
		fmt.Fprintln(w, "ERRORS DETECTED")
	}
}
