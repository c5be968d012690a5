// SPDX-License-Identifier: MPL-2.0

package checker

import (
	"fmt"

	"github.com/vsfsck/vsfsck/pkg/vsfs"
)

// DataBitmapCheck computes which data-region slots are referenced by a
// live inode's root pointer slots — direct_block, single_indirect,
// double_indirect, triple_indirect — and aligns the data bitmap to that
// vector. It deliberately does not descend into indirect subtrees; a
// block reached only through indirection is invisible to this pass.
//
// The driver must run this pass before DuplicateBlockCheck and
// BadBlockCheck mutate the image, so the referenced vector reflects the
// image as loaded rather than as partially repaired.
func DataBitmapCheck(img *vsfs.Image, repair bool) PassResult {
	res := PassResult{Name: PassDataBitmap, Valid: true}

	var referenced [vsfs.DataBlockCount]bool
	for i := 0; i < vsfs.InodeCount; i++ {
		ino := img.Inode(i)
		if !ino.Live() {
			continue
		}
		for _, slot := range ino.RootSlots() {
			if slot != 0 && vsfs.InDataRegion(slot) {
				referenced[slot-vsfs.FirstDataBlock] = true
			}
		}
	}

	bitmap := img.DataBitmap()

	for j := 0; j < vsfs.DataBlockCount; j++ {
		want := referenced[j]
		set := bitmap.Test(j)
		if want == set {
			continue
		}

		res.Valid = false
		blockNum := uint32(j) + vsfs.FirstDataBlock
		d := Diagnostic{
			Message: fmt.Sprintf("data bitmap bit %d (block %d) is %s but block is %s", j, blockNum, onOff(set), referencedStr(want)),
		}
		if repair {
			bitmap.SetTo(j, want)
			d.Fix = fmt.Sprintf("set data bitmap bit %d to %s", j, onOff(want))
		}
		res.Diagnostics = append(res.Diagnostics, d)
	}

	return res
}

func referencedStr(v bool) string {
	if v {
		return "referenced"
	}
	return "unreferenced"
}
