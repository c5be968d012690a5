// SPDX-License-Identifier: MPL-2.0

package vsfs

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Image is the single contiguous in-memory copy of a VSFS image: exactly
// TotalBlocks blocks of BlockSize bytes. Every other component in this
// package and in pkg/checker views a typed window into this buffer; none of
// them retain their own copy.
type Image struct {
	buf []byte
	log logrus.FieldLogger
}

// NewImage allocates a zeroed image buffer, useful for building images in
// tests without a backing file.
func NewImage() *Image {
	return &Image{buf: make([]byte, ImageSize), log: logrus.StandardLogger()}
}

// LoadImage reads exactly ImageSize bytes from r into a new Image. An image
// of any other size is rejected: the layout is fixed, not negotiated.
func LoadImage(r io.Reader) (*Image, error) {
	buf := make([]byte, ImageSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if n != ImageSize {
		return nil, fmt.Errorf("unexpected image size: got %d bytes, want %d", n, ImageSize)
	}

	// Reject images with trailing data beyond ImageSize.
	var extra [1]byte
	if m, _ := r.Read(extra[:]); m > 0 {
		return nil, fmt.Errorf("unexpected image size: image is larger than %d bytes", ImageSize)
	}

	img := &Image{buf: buf, log: logrus.StandardLogger()}
	img.log.WithField("bytes", n).Debug("loaded image")
	return img, nil
}

// Flush writes the whole buffer back to w at its current state.
func (img *Image) Flush(w io.Writer) error {
	n, err := w.Write(img.buf)
	if err != nil {
		return fmt.Errorf("failed to flush image: %w", err)
	}
	if n != ImageSize {
		return fmt.Errorf("short flush: wrote %d of %d bytes", n, ImageSize)
	}
	img.log.WithField("bytes", n).Debug("flushed image")
	return nil
}

// Bytes returns the raw backing buffer. Callers that need a typed window
// (bitmap, inode, indirect block) should prefer the typed accessors below;
// Bytes exists for tests and test helpers that want to copy an image or
// compare two images byte-for-byte.
func (img *Image) Bytes() []byte {
	return img.buf
}

// block returns the BlockSize-byte window for absolute block number b.
func (img *Image) block(b uint32) []byte {
	off := BlockOffset(b)
	return img.buf[off : off+BlockSize]
}

// Superblock decodes the superblock from block 0.
func (img *Image) Superblock() Superblock {
	buf := img.block(SuperblockBlock)
	var sb Superblock
	sb.Magic = binary.LittleEndian.Uint16(buf[0:2])
	sb.BlockSize = binary.LittleEndian.Uint32(buf[2:6])
	sb.TotalBlocks = binary.LittleEndian.Uint32(buf[6:10])
	sb.InodeBitmapBlock = binary.LittleEndian.Uint32(buf[10:14])
	sb.DataBitmapBlock = binary.LittleEndian.Uint32(buf[14:18])
	sb.InodeTableStart = binary.LittleEndian.Uint32(buf[18:22])
	sb.FirstDataBlock = binary.LittleEndian.Uint32(buf[22:26])
	sb.InodeSize = binary.LittleEndian.Uint32(buf[26:30])
	sb.InodeCount = binary.LittleEndian.Uint32(buf[30:34])
	return sb
}

// SetSuperblock encodes sb back into block 0, leaving the reserved region
// untouched.
func (img *Image) SetSuperblock(sb Superblock) {
	buf := img.block(SuperblockBlock)
	binary.LittleEndian.PutUint16(buf[0:2], sb.Magic)
	binary.LittleEndian.PutUint32(buf[2:6], sb.BlockSize)
	binary.LittleEndian.PutUint32(buf[6:10], sb.TotalBlocks)
	binary.LittleEndian.PutUint32(buf[10:14], sb.InodeBitmapBlock)
	binary.LittleEndian.PutUint32(buf[14:18], sb.DataBitmapBlock)
	binary.LittleEndian.PutUint32(buf[18:22], sb.InodeTableStart)
	binary.LittleEndian.PutUint32(buf[22:26], sb.FirstDataBlock)
	binary.LittleEndian.PutUint32(buf[26:30], sb.InodeSize)
	binary.LittleEndian.PutUint32(buf[30:34], sb.InodeCount)
}

// InodeBitmap returns a view over the inode bitmap block.
func (img *Image) InodeBitmap() BitmapView {
	return NewBitmapView(img.block(InodeBitmapBlock))
}

// DataBitmap returns a view over the data bitmap block.
func (img *Image) DataBitmap() BitmapView {
	return NewBitmapView(img.block(DataBitmapBlock))
}

// Inode decodes inode i (0 <= i < InodeCount).
func (img *Image) Inode(i int) Inode {
	off := InodeOffset(i)
	return DecodeInode(img.buf[off : off+InodeSize])
}

// SetInode encodes ino back over inode slot i.
func (img *Image) SetInode(i int, ino Inode) {
	off := InodeOffset(i)
	EncodeInode(img.buf[off:off+InodeSize], ino)
}

// IndirectEntry reads the 32-bit entry at index idx (0 <= idx <
// EntriesPerIndirectBlock) of the indirect block at absolute block number b.
// The caller must have already verified b is in range and in the data
// region; IndirectEntry does not re-check.
func (img *Image) IndirectEntry(b uint32, idx int) uint32 {
	buf := img.block(b)
	off := idx * IndirectEntrySize
	return binary.LittleEndian.Uint32(buf[off : off+IndirectEntrySize])
}

// SetIndirectEntry overwrites the 32-bit entry at index idx of the indirect
// block at absolute block number b.
func (img *Image) SetIndirectEntry(b uint32, idx int, v uint32) {
	buf := img.block(b)
	off := idx * IndirectEntrySize
	binary.LittleEndian.PutUint32(buf[off:off+IndirectEntrySize], v)
}
