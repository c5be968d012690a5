// SPDX-License-Identifier: MPL-2.0

package vsfs

// Role tags why a Reference was yielded by the walker: which pointer slot
// or indirect-block position it came from. Passes make role-dependent
// repair decisions off this tag rather than re-deriving it.
type Role int

const (
	Direct Role = iota
	L1Root
	L1Leaf
	L2Root
	L2Mid
	L2Leaf
	L3Root
	L3Upper
	L3Mid
	L3Leaf
)

func (r Role) String() string {
	switch r {
	case Direct:
		return "direct"
	case L1Root:
		return "single_indirect"
	case L1Leaf:
		return "single_indirect_entry"
	case L2Root:
		return "double_indirect"
	case L2Mid:
		return "double_indirect_mid"
	case L2Leaf:
		return "double_indirect_entry"
	case L3Root:
		return "triple_indirect"
	case L3Upper:
		return "triple_indirect_upper"
	case L3Mid:
		return "triple_indirect_mid"
	case L3Leaf:
		return "triple_indirect_entry"
	default:
		return "unknown"
	}
}

// IsRootSlot reports whether the role names one of the four pointer slots
// stored directly in the inode record, as opposed to an entry inside an
// indirect block.
func (r Role) IsRootSlot() bool {
	switch r {
	case Direct, L1Root, L2Root, L3Root:
		return true
	default:
		return false
	}
}

// IsIndirectMeta reports whether the role names an indirect block that is
// itself eligible to be descended into (a root or a mid-level block), as
// opposed to a leaf entry that only ever holds a data block number.
func (r Role) IsIndirectMeta() bool {
	switch r {
	case L1Root, L2Root, L2Mid, L3Root, L3Upper, L3Mid:
		return true
	default:
		return false
	}
}

// Reference is one block number yielded by the walker, tagged with the role
// it was found in and, for indirect-block entries, the block and index it
// was found at so a repair can zero it in place.
type Reference struct {
	Block      uint32
	Role       Role
	ParentBlock uint32 // indirect block holding this entry; 0 for root slots
	Index       int    // entry index within ParentBlock; -1 for root slots
}

// Visitor is called once per Reference the walker yields, in a fixed
// deterministic order: direct, then single-indirect subtree, then
// double-indirect, then triple-indirect, each subtree walked in ascending
// index order.
//
// descend, when the role is an indirect root or mid-level block
// (Role.IsIndirectMeta), tells the walker whether to follow that block's
// entries. Leaf roles ignore the return value. A false return lets a pass
// (e.g. the duplicate-block check) observe a reference without dereferencing
// it — most commonly because the reference turned out to be a duplicate of
// an already-owned block.
type Visitor func(ref Reference) (descend bool)

// Walk yields every block number reachable from ino's pointer slots,
// including the indirect metadata blocks themselves, to visit. It never
// dereferences a root or intermediate block number that is not in
// [FirstDataBlock, TotalBlocks): such references are still yielded (so
// bounds-checking passes can see them) but the walker does not read their
// contents.
func Walk(img *Image, ino *Inode, visit Visitor) {
	if ino.DirectBlock != 0 {
		visit(Reference{Block: ino.DirectBlock, Role: Direct, Index: -1})
	}

	if ino.SingleIndirect != 0 {
		walkL1(img, ino.SingleIndirect, L1Root, L1Leaf, visit)
	}

	if ino.DoubleIndirect != 0 {
		walkL2(img, ino.DoubleIndirect, visit)
	}

	if ino.TripleIndirect != 0 {
		walkL3(img, ino.TripleIndirect, visit)
	}
}

// walkL1 visits root (tagged rootRole) and, if the visitor asks to descend
// and the block is dereferenceable, each nonzero leaf entry (tagged
// leafRole).
func walkL1(img *Image, block uint32, rootRole, leafRole Role, visit Visitor) {
	descend := visit(Reference{Block: block, Role: rootRole, Index: -1})
	if !descend || !InDataRegion(block) {
		return
	}

	for idx := 0; idx < EntriesPerIndirectBlock; idx++ {
		entry := img.IndirectEntry(block, idx)
		if entry == 0 {
			continue
		}
		visit(Reference{Block: entry, Role: leafRole, ParentBlock: block, Index: idx})
	}
}

func walkL2(img *Image, block uint32, visit Visitor) {
	descend := visit(Reference{Block: block, Role: L2Root, Index: -1})
	if !descend || !InDataRegion(block) {
		return
	}

	for idx := 0; idx < EntriesPerIndirectBlock; idx++ {
		mid := img.IndirectEntry(block, idx)
		if mid == 0 {
			continue
		}
		midDescend := visit(Reference{Block: mid, Role: L2Mid, ParentBlock: block, Index: idx})
		if !midDescend || !InDataRegion(mid) {
			continue
		}

		for leafIdx := 0; leafIdx < EntriesPerIndirectBlock; leafIdx++ {
			leaf := img.IndirectEntry(mid, leafIdx)
			if leaf == 0 {
				continue
			}
			visit(Reference{Block: leaf, Role: L2Leaf, ParentBlock: mid, Index: leafIdx})
		}
	}
}

func walkL3(img *Image, block uint32, visit Visitor) {
	descend := visit(Reference{Block: block, Role: L3Root, Index: -1})
	if !descend || !InDataRegion(block) {
		return
	}

	for upperIdx := 0; upperIdx < EntriesPerIndirectBlock; upperIdx++ {
		upper := img.IndirectEntry(block, upperIdx)
		if upper == 0 {
			continue
		}
		upperDescend := visit(Reference{Block: upper, Role: L3Upper, ParentBlock: block, Index: upperIdx})
		if !upperDescend || !InDataRegion(upper) {
			continue
		}

		for midIdx := 0; midIdx < EntriesPerIndirectBlock; midIdx++ {
			mid := img.IndirectEntry(upper, midIdx)
			if mid == 0 {
				continue
			}
			midDescend := visit(Reference{Block: mid, Role: L3Mid, ParentBlock: upper, Index: midIdx})
			if !midDescend || !InDataRegion(mid) {
				continue
			}

			for leafIdx := 0; leafIdx < EntriesPerIndirectBlock; leafIdx++ {
				leaf := img.IndirectEntry(mid, leafIdx)
				if leaf == 0 {
					continue
				}
				visit(Reference{Block: leaf, Role: L3Leaf, ParentBlock: mid, Index: leafIdx})
			}
		}
	}
}

// WalkAll visits every reference with unconditional descent — the mode
// BadBlockCheck needs, since it makes no duplicate-ownership decisions.
func WalkAll(img *Image, ino *Inode, visit func(ref Reference)) {
	Walk(img, ino, func(ref Reference) bool {
		visit(ref)
		return true
	})
}
