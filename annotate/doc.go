// Package annotate rewrites comments in IDL text into documentation
// directives.
//
// It is the first of two stages used by idldoc. [Scanner.Scan] makes a single
// pass over the input lines, classifies each one with a [Classifier], and
// replaces comments found inside guarded regions (by default between
// "#ifndef" and "#endif") with directive lines such as:
//
//	@doc("Number of elements in the buffer")
//
// Three comment shapes are recognized:
//
//   - Full-line comments ("// text" or "/* text */" alone on a line). A run of
//     consecutive full-line comments becomes one directive, emitted once the
//     first non-comment line is reached.
//   - Inline comments trailing a declaration ("long count; // text"). The
//     line is split into a directive followed by the bare declaration.
//   - Block comments spanning lines ("/*" ... "*/"). The directive is
//     emitted when the block closes, at the indentation of the opening line,
//     even when the block holds no text.
//
// Lines outside guarded regions, and the guard markers themselves, are
// emitted byte-for-byte. Full-line comments starting with "//@" are treated
// as hand-written directives and kept as they are.
//
// The scanner never fails: any line it cannot make sense of is passed
// through unchanged. Each emitted [Line] records the captured comment text so
// that a later stage (see package derive) can mine it for metadata.
package annotate
