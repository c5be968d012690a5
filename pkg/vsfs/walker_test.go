// SPDX-License-Identifier: MPL-2.0

package vsfs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vsfsck/vsfsck/pkg/vsfs"
)

func TestWalkDirectOnly(t *testing.T) {
	img := vsfs.NewImage()
	ino := vsfs.Inode{DirectBlock: 8}

	var refs []vsfs.Reference
	vsfs.WalkAll(img, &ino, func(r vsfs.Reference) { refs = append(refs, r) })

	require.Equal(t, []vsfs.Reference{{Block: 8, Role: vsfs.Direct, Index: -1}}, refs)
}

func TestWalkHolesAreSkipped(t *testing.T) {
	img := vsfs.NewImage()
	ino := vsfs.Inode{} // all pointer slots zero

	var refs []vsfs.Reference
	vsfs.WalkAll(img, &ino, func(r vsfs.Reference) { refs = append(refs, r) })

	require.Empty(t, refs)
}

func TestWalkSingleIndirect(t *testing.T) {
	img := vsfs.NewImage()
	img.SetIndirectEntry(9, 0, 10)
	img.SetIndirectEntry(9, 2, 11)
	ino := vsfs.Inode{SingleIndirect: 9}

	var refs []vsfs.Reference
	vsfs.WalkAll(img, &ino, func(r vsfs.Reference) { refs = append(refs, r) })

	require.Equal(t, []vsfs.Reference{
		{Block: 9, Role: vsfs.L1Root, Index: -1},
		{Block: 10, Role: vsfs.L1Leaf, ParentBlock: 9, Index: 0},
		{Block: 11, Role: vsfs.L1Leaf, ParentBlock: 9, Index: 2},
	}, refs)
}

func TestWalkDoubleIndirect(t *testing.T) {
	img := vsfs.NewImage()
	// block 12 (L2 root) -> entry 0 points at block 13 (L1 mid)
	img.SetIndirectEntry(12, 0, 13)
	// block 13 -> entry 5 points at data block 20
	img.SetIndirectEntry(13, 5, 20)
	ino := vsfs.Inode{DoubleIndirect: 12}

	var refs []vsfs.Reference
	vsfs.WalkAll(img, &ino, func(r vsfs.Reference) { refs = append(refs, r) })

	require.Equal(t, []vsfs.Reference{
		{Block: 12, Role: vsfs.L2Root, Index: -1},
		{Block: 13, Role: vsfs.L2Mid, ParentBlock: 12, Index: 0},
		{Block: 20, Role: vsfs.L2Leaf, ParentBlock: 13, Index: 5},
	}, refs)
}

func TestWalkTripleIndirect(t *testing.T) {
	img := vsfs.NewImage()
	img.SetIndirectEntry(14, 0, 15) // L3 root -> upper
	img.SetIndirectEntry(15, 0, 16) // upper -> mid
	img.SetIndirectEntry(16, 0, 21) // mid -> leaf (data block)
	ino := vsfs.Inode{TripleIndirect: 14}

	var refs []vsfs.Reference
	vsfs.WalkAll(img, &ino, func(r vsfs.Reference) { refs = append(refs, r) })

	require.Equal(t, []vsfs.Reference{
		{Block: 14, Role: vsfs.L3Root, Index: -1},
		{Block: 15, Role: vsfs.L3Upper, ParentBlock: 14, Index: 0},
		{Block: 16, Role: vsfs.L3Mid, ParentBlock: 15, Index: 0},
		{Block: 21, Role: vsfs.L3Leaf, ParentBlock: 16, Index: 0},
	}, refs)
}

func TestWalkOrder(t *testing.T) {
	img := vsfs.NewImage()
	img.SetIndirectEntry(9, 0, 30)
	img.SetIndirectEntry(12, 0, 13)
	img.SetIndirectEntry(13, 0, 31)
	img.SetIndirectEntry(14, 0, 15)
	img.SetIndirectEntry(15, 0, 16)
	img.SetIndirectEntry(16, 0, 32)

	ino := vsfs.Inode{
		DirectBlock:    8,
		SingleIndirect: 9,
		DoubleIndirect: 12,
		TripleIndirect: 14,
	}

	var order []uint32
	vsfs.WalkAll(img, &ino, func(r vsfs.Reference) { order = append(order, r.Block) })

	require.Equal(t, []uint32{8, 9, 30, 12, 13, 31, 14, 15, 16, 32}, order)
}

func TestWalkRefusesToDereferenceOutOfRangeRoot(t *testing.T) {
	img := vsfs.NewImage()
	ino := vsfs.Inode{SingleIndirect: 999}

	var refs []vsfs.Reference
	vsfs.WalkAll(img, &ino, func(r vsfs.Reference) { refs = append(refs, r) })

	// Only the root reference is yielded; nothing is dereferenced beneath it.
	require.Equal(t, []vsfs.Reference{{Block: 999, Role: vsfs.L1Root, Index: -1}}, refs)
}

func TestWalkRefusesToDereferenceMetadataRegionRoot(t *testing.T) {
	img := vsfs.NewImage()
	// Block 2 is the data bitmap block; in range for the bounded-pointer
	// rule but outside the data region, so it must not be read as an
	// indirect block even though it technically satisfies InRange.
	img.DataBitmap().Set(0) // would corrupt the walk if block 2 were read
	ino := vsfs.Inode{SingleIndirect: 2}

	var refs []vsfs.Reference
	vsfs.WalkAll(img, &ino, func(r vsfs.Reference) { refs = append(refs, r) })

	require.Equal(t, []vsfs.Reference{{Block: 2, Role: vsfs.L1Root, Index: -1}}, refs)
}

func TestWalkDoesNotDescendWhenVisitorDeclines(t *testing.T) {
	img := vsfs.NewImage()
	img.SetIndirectEntry(9, 0, 30)
	ino := vsfs.Inode{SingleIndirect: 9}

	var refs []vsfs.Reference
	vsfs.Walk(img, &ino, func(r vsfs.Reference) bool {
		refs = append(refs, r)
		return false
	})

	require.Equal(t, []vsfs.Reference{{Block: 9, Role: vsfs.L1Root, Index: -1}}, refs)
}

func TestRoleIsRootSlotAndIsIndirectMeta(t *testing.T) {
	require.True(t, vsfs.Direct.IsRootSlot())
	require.True(t, vsfs.L1Root.IsRootSlot())
	require.False(t, vsfs.L1Leaf.IsRootSlot())
	require.False(t, vsfs.L2Mid.IsRootSlot())

	require.True(t, vsfs.L1Root.IsIndirectMeta())
	require.True(t, vsfs.L2Mid.IsIndirectMeta())
	require.True(t, vsfs.L3Upper.IsIndirectMeta())
	require.False(t, vsfs.Direct.IsIndirectMeta())
	require.False(t, vsfs.L1Leaf.IsIndirectMeta())
}
