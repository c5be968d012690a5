// SPDX-License-Identifier: MPL-2.0

package checker

import (
	"fmt"

	"github.com/vsfsck/vsfsck/pkg/vsfs"
)

// BadBlockCheck walks every live inode and flags any nonzero block number
// that is >= TotalBlocks, wherever it is stored: an inode root slot or an
// indirect-block entry. Blocks 0-7 are in range for this rule even though
// they fall outside the data region — this check is about storage safety,
// not reachability — and zero is never flagged.
//
// This pass holds no state of its own and is independent of
// DuplicateBlockCheck; it runs after it in the driver's fixed order purely
// so that a block zeroed as a duplicate is not also reported here, not
// because it depends on DuplicateBlockCheck's bookkeeping.
func BadBlockCheck(img *vsfs.Image, repair bool) PassResult {
	res := PassResult{Name: PassBadBlock, Valid: true}

	for i := 0; i < vsfs.InodeCount; i++ {
		ino := img.Inode(i)
		if !ino.Live() {
			continue
		}

		inodeChanged := false
		currentInode := ino

		vsfs.WalkAll(img, &ino, func(ref vsfs.Reference) {
			if vsfs.InRange(ref.Block) {
				return
			}

			res.Valid = false
			d := Diagnostic{
				Message: fmt.Sprintf("inode %d has out-of-range block number %d (role %s)", i, ref.Block, ref.Role),
			}
			if repair {
				if ref.Role.IsRootSlot() {
					zeroRootSlot(&currentInode, ref.Role)
					inodeChanged = true
				} else {
					img.SetIndirectEntry(ref.ParentBlock, ref.Index, 0)
				}
				d.Fix = fmt.Sprintf("zeroed inode %d's out-of-range reference (role %s)", i, ref.Role)
			}
			res.Diagnostics = append(res.Diagnostics, d)
		})

		if inodeChanged {
			img.SetInode(i, currentInode)
		}
	}

	return res
}
