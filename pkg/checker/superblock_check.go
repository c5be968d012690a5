// SPDX-License-Identifier: MPL-2.0

package checker

import (
	"fmt"

	"github.com/vsfsck/vsfsck/pkg/vsfs"
)

// SuperblockCheck compares every validated superblock field against its
// expected constant. In repair mode it overwrites mismatched fields with
// the expected value; reserved bytes are never touched.
func SuperblockCheck(img *vsfs.Image, repair bool) PassResult {
	res := PassResult{Name: PassSuperblock, Valid: true}

	sb := img.Superblock()
	expected := vsfs.ExpectedSuperblock()

	changed := false
	for _, field := range vsfs.AllFields() {
		got := sb.Get(field)
		want := expected.Get(field)
		if got == want {
			continue
		}

		res.Valid = false
		d := Diagnostic{
			Message: fmt.Sprintf("superblock field %s is %d, expected %d", field, got, want),
		}
		if repair {
			sb.Set(field, want)
			changed = true
			d.Fix = fmt.Sprintf("set superblock field %s to %d", field, want)
		}
		res.Diagnostics = append(res.Diagnostics, d)
	}

	if changed {
		img.SetSuperblock(sb)
	}

	return res
}
