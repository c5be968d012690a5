// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/vsfsck/vsfsck/internal/vsfsutil"
	"github.com/vsfsck/vsfsck/pkg/vsfs"
)

// TestMain lets the test binary re-exec itself as the vsfsck command, the
// idiomatic way testscript drives a CLI end to end without a separate
// `go build` step.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"vsfsck": run1,
	}))
}

// run1 is main()'s body, factored out so TestMain can capture its exit
// code instead of letting it call os.Exit directly.
func run1() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "../../testdata/script",
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"mkimage": mkImageCmd,
		},
	})
}

// mkImageCmd builds one of the fixed scenario images and writes it to the
// path named by the last argument, resolved relative to the script's
// working directory.
func mkImageCmd(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("mkimage does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: mkimage <scenario> <path>")
	}

	scenario, path := args[0], args[1]

	b := vsfsutil.NewBuilder()
	switch scenario {
	case "pristine":
		b.WithInode(0, vsfs.Inode{LinksCount: 1, DirectBlock: 8}).
			WithInodeBitmap(0, true).
			WithDataBitmap(0, true)

	case "bitmaplag":
		b.WithInode(0, vsfs.Inode{LinksCount: 1, DirectBlock: 8})

	case "phantom":
		b.WithInodeBitmap(5, true)

	case "duplicate":
		b.WithInode(0, vsfs.Inode{LinksCount: 1, DirectBlock: 10}).
			WithInode(1, vsfs.Inode{LinksCount: 1, DirectBlock: 10}).
			WithInodeBitmap(0, true).
			WithInodeBitmap(1, true).
			WithDataBitmap(2, true)

	case "badblock":
		b.WithInode(3, vsfs.Inode{LinksCount: 1, TripleIndirect: 999}).
			WithInodeBitmap(3, true)

	case "wrongsize":
		ts.Check(os.WriteFile(ts.MkAbs(path), make([]byte, 1024), 0o644))
		return

	default:
		ts.Fatalf("unknown scenario %q", scenario)
	}

	ts.Check(os.WriteFile(ts.MkAbs(path), b.Bytes(), 0o644))
}
