// SPDX-License-Identifier: MPL-2.0

package vsfs

// Superblock is the on-disk superblock record occupying block 0. All
// multi-byte fields are little-endian. The reserved region is never
// validated or mutated by the checker.
type Superblock struct {
	Magic             uint16
	BlockSize         uint32
	TotalBlocks       uint32
	InodeBitmapBlock  uint32
	DataBitmapBlock   uint32
	InodeTableStart   uint32
	FirstDataBlock    uint32
	InodeSize         uint32
	InodeCount        uint32
}

// ExpectedSuperblock returns the superblock the image must hold for the
// fixed VSFS geometry to be well-formed.
func ExpectedSuperblock() Superblock {
	return Superblock{
		Magic:            SuperblockMagic,
		BlockSize:        BlockSize,
		TotalBlocks:      TotalBlocks,
		InodeBitmapBlock: InodeBitmapBlock,
		DataBitmapBlock:  DataBitmapBlock,
		InodeTableStart:  InodeTableStart,
		FirstDataBlock:   FirstDataBlock,
		InodeSize:        InodeSize,
		InodeCount:       InodeCount,
	}
}

// SuperblockField identifies one of the nine validated superblock fields.
type SuperblockField int

const (
	FieldMagic SuperblockField = iota
	FieldBlockSize
	FieldTotalBlocks
	FieldInodeBitmapBlock
	FieldDataBitmapBlock
	FieldInodeTableStart
	FieldFirstDataBlock
	FieldInodeSize
	FieldInodeCount
)

// String names the field the way a diagnostic should cite it.
func (f SuperblockField) String() string {
	switch f {
	case FieldMagic:
		return "magic"
	case FieldBlockSize:
		return "block_size"
	case FieldTotalBlocks:
		return "total_blocks"
	case FieldInodeBitmapBlock:
		return "inode_bitmap_block"
	case FieldDataBitmapBlock:
		return "data_bitmap_block"
	case FieldInodeTableStart:
		return "inode_table_start"
	case FieldFirstDataBlock:
		return "first_data_block"
	case FieldInodeSize:
		return "inode_size"
	case FieldInodeCount:
		return "inode_count"
	default:
		return "unknown"
	}
}

// Get returns the observed value of field f as a uint64, so magic (2 bytes)
// and the 4-byte fields can be compared uniformly.
func (sb *Superblock) Get(f SuperblockField) uint64 {
	switch f {
	case FieldMagic:
		return uint64(sb.Magic)
	case FieldBlockSize:
		return uint64(sb.BlockSize)
	case FieldTotalBlocks:
		return uint64(sb.TotalBlocks)
	case FieldInodeBitmapBlock:
		return uint64(sb.InodeBitmapBlock)
	case FieldDataBitmapBlock:
		return uint64(sb.DataBitmapBlock)
	case FieldInodeTableStart:
		return uint64(sb.InodeTableStart)
	case FieldFirstDataBlock:
		return uint64(sb.FirstDataBlock)
	case FieldInodeSize:
		return uint64(sb.InodeSize)
	case FieldInodeCount:
		return uint64(sb.InodeCount)
	default:
		return 0
	}
}

// Set overwrites field f with value v.
func (sb *Superblock) Set(f SuperblockField, v uint64) {
	switch f {
	case FieldMagic:
		sb.Magic = uint16(v)
	case FieldBlockSize:
		sb.BlockSize = uint32(v)
	case FieldTotalBlocks:
		sb.TotalBlocks = uint32(v)
	case FieldInodeBitmapBlock:
		sb.InodeBitmapBlock = uint32(v)
	case FieldDataBitmapBlock:
		sb.DataBitmapBlock = uint32(v)
	case FieldInodeTableStart:
		sb.InodeTableStart = uint32(v)
	case FieldFirstDataBlock:
		sb.FirstDataBlock = uint32(v)
	case FieldInodeSize:
		sb.InodeSize = uint32(v)
	case FieldInodeCount:
		sb.InodeCount = uint32(v)
	}
}

// AllFields lists the nine validated fields in their on-disk order.
func AllFields() []SuperblockField {
	return []SuperblockField{
		FieldMagic,
		FieldBlockSize,
		FieldTotalBlocks,
		FieldInodeBitmapBlock,
		FieldDataBitmapBlock,
		FieldInodeTableStart,
		FieldFirstDataBlock,
		FieldInodeSize,
		FieldInodeCount,
	}
}
