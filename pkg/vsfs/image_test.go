// SPDX-License-Identifier: MPL-2.0

package vsfs_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vsfsck/vsfsck/pkg/vsfs"
)

func TestLoadImageRejectsWrongSize(t *testing.T) {
	_, err := vsfs.LoadImage(bytes.NewReader(make([]byte, 100)))
	require.Error(t, err)

	_, err = vsfs.LoadImage(bytes.NewReader(make([]byte, vsfs.ImageSize+1)))
	require.Error(t, err)
}

func TestLoadImageRoundTrip(t *testing.T) {
	img := vsfs.NewImage()
	sb := vsfs.ExpectedSuperblock()
	img.SetSuperblock(sb)

	ino := vsfs.Inode{LinksCount: 1, DirectBlock: 8}
	img.SetInode(3, ino)

	img.InodeBitmap().Set(3)
	img.DataBitmap().Set(0)

	loaded, err := vsfs.LoadImage(bytes.NewReader(img.Bytes()))
	require.NoError(t, err)

	require.Equal(t, sb, loaded.Superblock())
	require.Equal(t, ino, loaded.Inode(3))
	require.True(t, loaded.InodeBitmap().Test(3))
	require.True(t, loaded.DataBitmap().Test(0))
}

func TestImageFlush(t *testing.T) {
	img := vsfs.NewImage()
	img.SetSuperblock(vsfs.ExpectedSuperblock())

	var out bytes.Buffer
	require.NoError(t, img.Flush(&out))
	require.Equal(t, vsfs.ImageSize, out.Len())
	require.Equal(t, img.Bytes(), out.Bytes())
}

func TestImageIndirectEntries(t *testing.T) {
	img := vsfs.NewImage()
	img.SetIndirectEntry(9, 0, 42)
	img.SetIndirectEntry(9, 1023, 63)

	require.Equal(t, uint32(42), img.IndirectEntry(9, 0))
	require.Equal(t, uint32(63), img.IndirectEntry(9, 1023))
	require.Equal(t, uint32(0), img.IndirectEntry(9, 1))
}
