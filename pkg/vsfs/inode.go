// SPDX-License-Identifier: MPL-2.0

package vsfs

import "encoding/binary"

// inodeFieldCount is the number of 32-bit fields preceding the reserved
// region of an on-disk inode record.
const inodeFieldCount = 14

// inodeReservedSize is the remainder of the 256-byte inode record after its
// fourteen 32-bit fields. Reserved bytes are never validated or mutated.
const inodeReservedSize = InodeSize - inodeFieldCount*4

// Inode is the decoded, in-memory form of one 256-byte on-disk inode
// record. Reserved bytes round-trip verbatim through Decode/Encode but are
// otherwise opaque.
type Inode struct {
	Mode            uint32
	UID             uint32
	GID             uint32
	Size            uint32
	Atime           uint32
	Ctime           uint32
	Mtime           uint32
	Dtime           uint32
	LinksCount      uint32
	BlocksCount     uint32
	DirectBlock     uint32
	SingleIndirect  uint32
	DoubleIndirect  uint32
	TripleIndirect  uint32
	Reserved        [inodeReservedSize]byte
}

// Live reports whether this inode satisfies the liveness rule: links_count
// > 0 and dtime == 0.
func (ino *Inode) Live() bool {
	return ino.LinksCount > 0 && ino.Dtime == 0
}

// RootSlots returns the inode's four root pointer slots in on-disk order:
// direct_block, single_indirect, double_indirect, triple_indirect.
func (ino *Inode) RootSlots() [4]uint32 {
	return [4]uint32{ino.DirectBlock, ino.SingleIndirect, ino.DoubleIndirect, ino.TripleIndirect}
}

// DecodeInode decodes one 256-byte on-disk record.
func DecodeInode(buf []byte) Inode {
	var ino Inode
	ino.Mode = binary.LittleEndian.Uint32(buf[0:4])
	ino.UID = binary.LittleEndian.Uint32(buf[4:8])
	ino.GID = binary.LittleEndian.Uint32(buf[8:12])
	ino.Size = binary.LittleEndian.Uint32(buf[12:16])
	ino.Atime = binary.LittleEndian.Uint32(buf[16:20])
	ino.Ctime = binary.LittleEndian.Uint32(buf[20:24])
	ino.Mtime = binary.LittleEndian.Uint32(buf[24:28])
	ino.Dtime = binary.LittleEndian.Uint32(buf[28:32])
	ino.LinksCount = binary.LittleEndian.Uint32(buf[32:36])
	ino.BlocksCount = binary.LittleEndian.Uint32(buf[36:40])
	ino.DirectBlock = binary.LittleEndian.Uint32(buf[40:44])
	ino.SingleIndirect = binary.LittleEndian.Uint32(buf[44:48])
	ino.DoubleIndirect = binary.LittleEndian.Uint32(buf[48:52])
	ino.TripleIndirect = binary.LittleEndian.Uint32(buf[52:56])
	copy(ino.Reserved[:], buf[56:InodeSize])
	return ino
}

// EncodeInode writes ino's 256-byte on-disk form into buf.
func EncodeInode(buf []byte, ino Inode) {
	binary.LittleEndian.PutUint32(buf[0:4], ino.Mode)
	binary.LittleEndian.PutUint32(buf[4:8], ino.UID)
	binary.LittleEndian.PutUint32(buf[8:12], ino.GID)
	binary.LittleEndian.PutUint32(buf[12:16], ino.Size)
	binary.LittleEndian.PutUint32(buf[16:20], ino.Atime)
	binary.LittleEndian.PutUint32(buf[20:24], ino.Ctime)
	binary.LittleEndian.PutUint32(buf[24:28], ino.Mtime)
	binary.LittleEndian.PutUint32(buf[28:32], ino.Dtime)
	binary.LittleEndian.PutUint32(buf[32:36], ino.LinksCount)
	binary.LittleEndian.PutUint32(buf[36:40], ino.BlocksCount)
	binary.LittleEndian.PutUint32(buf[40:44], ino.DirectBlock)
	binary.LittleEndian.PutUint32(buf[44:48], ino.SingleIndirect)
	binary.LittleEndian.PutUint32(buf[48:52], ino.DoubleIndirect)
	binary.LittleEndian.PutUint32(buf[52:56], ino.TripleIndirect)
	copy(buf[56:InodeSize], ino.Reserved[:])
}
