// SPDX-License-Identifier: MPL-2.0

package checker

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/vsfsck/vsfsck/pkg/vsfs"
)

// ImageFile is the minimal surface the driver needs from the image file:
// a full read from the start, and, only in repair mode, a seek back to the
// start followed by a full write.
type ImageFile interface {
	io.Reader
	io.Writer
	io.Seeker
}

// Result is the outcome of a full Run: the initial sweep's report and, in
// repair mode when the initial sweep found errors, the post-repair sweep's
// report.
type Result struct {
	Initial  *Report
	PostFix  *Report // nil unless repair was requested and the initial sweep found errors
	Repaired bool
}

// Run implements the driver's fixed state machine: Load ->
// Verify(RO or RW) -> [if RW and any error] Verify(RO) -> Flush. Load
// failures and unexpected image sizes are returned as errors and abort
// before any pass runs; structural findings never produce an error here,
// they are only ever recorded in the returned Result.
//
// On success, if repair is true, the fully repaired buffer is written back
// to f from the start. f is never written to in check-only mode.
func Run(f ImageFile, repair bool) (*Result, error) {
	img, err := vsfs.LoadImage(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	initial := sweep(img, repair)
	result := &Result{Initial: initial, Repaired: repair}

	if repair && !initial.Valid() {
		logrus.Debug("running post-repair verification sweep")
		result.PostFix = sweep(img, false)
	}

	if repair {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return result, fmt.Errorf("failed to seek before flush: %w", err)
		}
		if err := img.Flush(f); err != nil {
			return result, fmt.Errorf("failed to flush repaired image: %w", err)
		}
	}

	return result, nil
}

// sweep runs the five passes in PassOrder and assembles their results into
// a Report. DataBitmapCheck runs before the two mutating passes so its
// reachability computation reflects the image as sweep found it.
func sweep(img *vsfs.Image, repair bool) *Report {
	report := &Report{}

	report.Add(SuperblockCheck(img, repair))
	report.Add(InodeBitmapCheck(img, repair))
	report.Add(DataBitmapCheck(img, repair))

	refs := NewBlockRefs()
	report.Add(DuplicateBlockCheck(img, refs, repair))
	report.Add(BadBlockCheck(img, repair))

	return report
}
