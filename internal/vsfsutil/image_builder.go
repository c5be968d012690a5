// SPDX-License-Identifier: MPL-2.0

// Package vsfsutil provides test-only helpers for building VSFS images in
// memory, existing purely to support _test.go files elsewhere in this
// module.
package vsfsutil

import (
	"bytes"
	"io"

	"github.com/vsfsck/vsfsck/pkg/vsfs"
)

// Builder constructs a *vsfs.Image fluently for tests, starting from a
// well-formed superblock and all-zero inodes/bitmaps.
type Builder struct {
	img *vsfs.Image
}

// NewBuilder returns a Builder seeded with ExpectedSuperblock already
// written, so tests that only care about inode/bitmap behavior don't also
// have to construct a valid superblock by hand.
func NewBuilder() *Builder {
	img := vsfs.NewImage()
	img.SetSuperblock(vsfs.ExpectedSuperblock())
	return &Builder{img: img}
}

// WithSuperblock overwrites the superblock, e.g. to inject a mismatch.
func (b *Builder) WithSuperblock(sb vsfs.Superblock) *Builder {
	b.img.SetSuperblock(sb)
	return b
}

// WithInode writes ino at index i.
func (b *Builder) WithInode(i int, ino vsfs.Inode) *Builder {
	b.img.SetInode(i, ino)
	return b
}

// WithInodeBitmap sets or clears bit i of the inode bitmap.
func (b *Builder) WithInodeBitmap(i int, v bool) *Builder {
	b.img.InodeBitmap().SetTo(i, v)
	return b
}

// WithDataBitmap sets or clears bit j of the data bitmap.
func (b *Builder) WithDataBitmap(j int, v bool) *Builder {
	b.img.DataBitmap().SetTo(j, v)
	return b
}

// WithIndirectEntry writes entry idx of the indirect block at absolute
// block number blk.
func (b *Builder) WithIndirectEntry(blk uint32, idx int, v uint32) *Builder {
	b.img.SetIndirectEntry(blk, idx, v)
	return b
}

// Image returns the built image.
func (b *Builder) Image() *vsfs.Image {
	return b.img
}

// Bytes returns a copy of the built image's raw bytes, e.g. to feed to
// vsfs.LoadImage via bytes.NewReader or to write out as test fixture data.
func (b *Builder) Bytes() []byte {
	out := make([]byte, len(b.img.Bytes()))
	copy(out, b.img.Bytes())
	return out
}

// Reader returns a reader over the built image's bytes, ready to pass to
// vsfs.LoadImage or checker.Run (wrapped in a ReadWriteSeeker for the
// latter; see ReadWriteSeeker).
func (b *Builder) Reader() *bytes.Reader {
	return bytes.NewReader(b.Bytes())
}

// ReadWriteSeeker wraps a byte buffer so tests can pass a Builder's image
// straight to checker.Run without a real file, mimicking *os.File's
// read/write-at-offset semantics closely enough for the driver's
// Load-then-Seek-then-Flush sequence.
type ReadWriteSeeker struct {
	buf []byte
	pos int64
}

// NewReadWriteSeeker returns a ReadWriteSeeker over a copy of buf.
func NewReadWriteSeeker(buf []byte) *ReadWriteSeeker {
	cp := make([]byte, len(buf))
	copy(cp, buf)
	return &ReadWriteSeeker{buf: cp}
}

func (rw *ReadWriteSeeker) Read(p []byte) (int, error) {
	if rw.pos >= int64(len(rw.buf)) {
		return 0, io.EOF
	}
	n := copy(p, rw.buf[rw.pos:])
	rw.pos += int64(n)
	return n, nil
}

func (rw *ReadWriteSeeker) Write(p []byte) (int, error) {
	n := copy(rw.buf[rw.pos:], p)
	rw.pos += int64(n)
	return n, nil
}

func (rw *ReadWriteSeeker) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = rw.pos
	case io.SeekEnd:
		base = int64(len(rw.buf))
	}
	rw.pos = base + offset
	return rw.pos, nil
}

// Bytes returns the current contents of the backing buffer.
func (rw *ReadWriteSeeker) Bytes() []byte {
	return rw.buf
}
