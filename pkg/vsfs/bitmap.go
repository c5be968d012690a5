// SPDX-License-Identifier: MPL-2.0

package vsfs

// BitmapView is a bit-indexed view over one block-sized, byte-packed
// bitmap. Bit i lives in byte i/8, bit i%8 (LSB-first within the byte). It
// borrows its backing bytes from the image buffer; it never copies.
type BitmapView struct {
	bytes []byte
}

// NewBitmapView wraps buf (expected to be BlockSize bytes) as a bitmap.
func NewBitmapView(buf []byte) BitmapView {
	return BitmapView{bytes: buf}
}

// Test reports whether bit i is set.
func (b BitmapView) Test(i int) bool {
	return b.bytes[i/8]&(1<<uint(i%8)) != 0
}

// Set sets bit i. A no-op if the bit is already set.
func (b BitmapView) Set(i int) {
	b.bytes[i/8] |= 1 << uint(i%8)
}

// Clear clears bit i. A no-op if the bit is already clear.
func (b BitmapView) Clear(i int) {
	b.bytes[i/8] &^= 1 << uint(i%8)
}

// SetTo sets or clears bit i according to v.
func (b BitmapView) SetTo(i int, v bool) {
	if v {
		b.Set(i)
	} else {
		b.Clear(i)
	}
}
