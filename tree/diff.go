package tree

import (
	"fmt"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// unifiedDiff returns a unified diff turning before into after, labelled with
// path on both sides.
func unifiedDiff(path, before, after string) string {
	edits := myers.ComputeEdits(span.URIFromPath(path), before, after)

	return fmt.Sprint(gotextdiff.ToUnified(path, path, before, edits))
}
