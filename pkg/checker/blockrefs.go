// SPDX-License-Identifier: MPL-2.0

package checker

import "github.com/vsfsck/vsfsck/pkg/vsfs"

// BlockRefs tracks, for every absolute block number, whether it has been
// claimed yet during a DuplicateBlockCheck sweep and which live inode
// claimed it first. It is owned by the driver for the duration of one
// sweep and handed to the pass by reference; the pass never retains it.
type BlockRefs struct {
	seen       [vsfs.TotalBlocks]bool
	firstOwner [vsfs.TotalBlocks]int
}

// NewBlockRefs returns an empty reference table.
func NewBlockRefs() *BlockRefs {
	return &BlockRefs{}
}

// Claim records b's first owner if unclaimed and reports whether this call
// was the first claim (true) or a duplicate (false).
func (br *BlockRefs) Claim(b uint32, owner int) (firstClaim bool) {
	if br.seen[b] {
		return false
	}
	br.seen[b] = true
	br.firstOwner[b] = owner
	return true
}

// FirstOwner returns the inode index that first claimed block b. Only
// meaningful if b has been claimed.
func (br *BlockRefs) FirstOwner(b uint32) int {
	return br.firstOwner[b]
}
