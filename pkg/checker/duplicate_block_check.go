// SPDX-License-Identifier: MPL-2.0

package checker

import (
	"fmt"

	"github.com/vsfsck/vsfsck/pkg/vsfs"
)

// DuplicateBlockCheck walks every live inode, in ascending inode index
// order, and flags any block number claimed by more than one inode.
// The inode with the lower index keeps the block; later claimants lose.
// Within one inode, the walker's fixed emission order plays the same role:
// the first reference to a given block wins, later ones are duplicates.
//
// refs is owned by the driver and shared with nothing else; this pass is
// the only one that populates it.
func DuplicateBlockCheck(img *vsfs.Image, refs *BlockRefs, repair bool) PassResult {
	res := PassResult{Name: PassDuplicateBlock, Valid: true}

	for i := 0; i < vsfs.InodeCount; i++ {
		ino := img.Inode(i)
		if !ino.Live() {
			continue
		}

		inodeChanged := false
		currentInode := ino

		vsfs.Walk(img, &ino, func(ref vsfs.Reference) bool {
			b := ref.Block
			if b < vsfs.FirstDataBlock || b >= vsfs.TotalBlocks {
				// Out of the data region entirely; BadBlockCheck's
				// concern, not this pass's. The walker already refuses to
				// dereference it, so nothing further to decide here.
				return ref.Role.IsIndirectMeta()
			}

			if refs.Claim(b, i) {
				return ref.Role.IsIndirectMeta()
			}

			// Duplicate: refs.FirstOwner(b) claimed it first.
			first := refs.FirstOwner(b)
			res.Valid = false
			d := Diagnostic{
				Message: fmt.Sprintf("block %d is referenced by inode %d and inode %d (first owner wins)", b, first, i),
			}
			if repair {
				if ref.Role.IsRootSlot() {
					zeroRootSlot(&currentInode, ref.Role)
					inodeChanged = true
				} else {
					img.SetIndirectEntry(ref.ParentBlock, ref.Index, 0)
				}
				d.Fix = fmt.Sprintf("zeroed inode %d's duplicate reference to block %d", i, b)
			}
			res.Diagnostics = append(res.Diagnostics, d)

			// Never descend through a duplicate pointer.
			return false
		})

		if inodeChanged {
			img.SetInode(i, currentInode)
		}
	}

	return res
}

// zeroRootSlot clears the one root pointer slot named by role.
func zeroRootSlot(ino *vsfs.Inode, role vsfs.Role) {
	switch role {
	case vsfs.Direct:
		ino.DirectBlock = 0
	case vsfs.L1Root:
		ino.SingleIndirect = 0
	case vsfs.L2Root:
		ino.DoubleIndirect = 0
	case vsfs.L3Root:
		ino.TripleIndirect = 0
	}
}
