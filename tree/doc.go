// Package tree applies a [transform.Transformer] to files and directory
// trees.
//
// A [Processor] mirrors an input directory into an output directory:
// files with a target extension (".idl" by default) are transformed, all
// other files are copied byte-for-byte. Files are processed concurrently,
// bounded by a job limit, and results are reported in path order.
//
// Besides writing, a Processor can print unified diffs of the files that
// would change ([ModeDiff]) or only list them ([ModeList]). [Processor.Watch]
// re-runs the transform whenever a file below the input directory changes.
package tree
