// SPDX-License-Identifier: MPL-2.0

// Command vsfsck checks, and optionally repairs, a VSFS image: the
// superblock, the inode and data bitmaps, the inode table, and the
// block-pointer graph rooted in each live inode.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
