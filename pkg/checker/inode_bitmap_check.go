// SPDX-License-Identifier: MPL-2.0

package checker

import (
	"fmt"

	"github.com/vsfsck/vsfsck/pkg/vsfs"
)

// InodeBitmapCheck aligns the inode bitmap to the liveness predicate.
// The inode table is the source of truth; a disagreement is always
// resolved by rewriting the bitmap bit, never the inode.
func InodeBitmapCheck(img *vsfs.Image, repair bool) PassResult {
	res := PassResult{Name: PassInodeBitmap, Valid: true}

	bitmap := img.InodeBitmap()

	for i := 0; i < vsfs.InodeCount; i++ {
		ino := img.Inode(i)
		live := ino.Live()
		set := bitmap.Test(i)
		if live == set {
			continue
		}

		res.Valid = false
		d := Diagnostic{
			Message: fmt.Sprintf("inode bitmap bit %d is %s but inode %d is %s", i, onOff(set), i, liveness(live)),
		}
		if repair {
			bitmap.SetTo(i, live)
			d.Fix = fmt.Sprintf("set inode bitmap bit %d to %s", i, onOff(live))
		}
		res.Diagnostics = append(res.Diagnostics, d)
	}

	return res
}

func onOff(v bool) string {
	if v {
		return "set"
	}
	return "clear"
}

func liveness(v bool) string {
	if v {
		return "live"
	}
	return "not live"
}
