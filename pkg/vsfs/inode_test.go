// SPDX-License-Identifier: MPL-2.0

package vsfs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vsfsck/vsfsck/pkg/vsfs"
)

func TestInodeEncodeDecodeRoundTrip(t *testing.T) {
	in := vsfs.Inode{
		Mode:           0o100644,
		UID:            1000,
		GID:            1000,
		Size:           4096,
		LinksCount:     1,
		DirectBlock:    8,
		SingleIndirect: 9,
		DoubleIndirect: 10,
		TripleIndirect: 11,
	}

	buf := make([]byte, vsfs.InodeSize)
	vsfs.EncodeInode(buf, in)

	out := vsfs.DecodeInode(buf)
	require.Equal(t, in, out)
}

func TestInodeLiveness(t *testing.T) {
	cases := []struct {
		name  string
		links uint32
		dtime uint32
		live  bool
	}{
		{"links and no dtime", 1, 0, true},
		{"zero links, no dtime", 0, 0, false},
		{"links but dtime set", 1, 123, false},
		{"zero links and dtime set", 0, 123, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ino := vsfs.Inode{LinksCount: c.links, Dtime: c.dtime}
			require.Equal(t, c.live, ino.Live())
		})
	}
}

func TestInodeRootSlots(t *testing.T) {
	ino := vsfs.Inode{
		DirectBlock:    1,
		SingleIndirect: 2,
		DoubleIndirect: 3,
		TripleIndirect: 4,
	}
	require.Equal(t, [4]uint32{1, 2, 3, 4}, ino.RootSlots())
}
